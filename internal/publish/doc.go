// Package publish drives the external playlist-creation call through an
// explicit lifecycle state machine.
//
// # States
//
//	idle -> requesting -> success -> idle   (auto after SuccessDismiss)
//	idle -> requesting -> error   -> idle   (auto after ErrorDismiss, or user dismiss)
//
// Triggering while a request is in flight is a no-op, as is triggering with an
// empty marked set. The success transition fires a best-effort snapshot to the
// history sink; a sink failure is logged and never affects the reported state.
//
// Auto-dismissal uses a single pending timer handle that is cancelled on any
// manual transition, so a stale timer can never fire after the user has moved on.
//
// When no authenticated session is available the publish path is bypassed
// entirely: [WatchURL] builds a queue URL for the marked ids that the caller
// opens in a browser, with no state transition at all.
package publish
