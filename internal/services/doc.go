// Package services contains HTTP clients for the two external collaborators.
//
// # Collaborators
//
//   - [BackendService] : syllabus ingestion backend. Takes an uploaded
//     document and returns topic blocks with pre-resolved candidate videos.
//     Ingestion failures are surfaced verbatim to the user.
//   - [YouTubeService] : ytmusicapi proxy for the user's YouTube account.
//     Used for playlist creation (the publish action) and ad hoc search.
//     Requests are throttled with a token bucket (golang.org/x/time/rate)
//     to stay under the proxy's quota.
//
// [APIService] is a thin raw client against either base URL for the debug
// `api` CLI command.
//
// Both collaborator clients return domain types from internal/models; wire
// shapes stay private to this package.
package services
