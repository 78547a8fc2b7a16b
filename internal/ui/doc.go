// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a two-level review workflow over a curation session:
//  1. [TopicListView] : Browse syllabus topics with per-topic mark counts
//  2. [VideoListView] : Review one topic's curated videos, toggle marks, and re-sort
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Publish state changes flow through a channel from the publish state machine,
// rendered as a status footer without blocking keyboard input.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) plus
// space to toggle a mark, s to cycle the sort order, p to publish, d to
// save a snapshot to disk, and x to dismiss an error banner.
package ui
