// Package curation implements the deterministic pipeline that turns raw topic
// candidate pools into a small reviewable video set.
//
// # Pipeline
//
// The stages run in a fixed order, each a pure function of its inputs:
//
//  1. [ParseDuration] : compact duration code -> whole seconds (lenient, malformed -> 0)
//  2. [FilterCandidates] : drop candidates at or under the minimum duration
//  3. [CurateTopic] : pick at most four distinct videos by fixed slot criteria
//     (most liked, most viewed, shortest qualifying, newest)
//  4. [SortCurated] : reorder a curated block for display without changing membership
//  5. [AutoSelect] : mark the most-viewed video of each non-empty curated block
//  6. [Project] : group currently marked videos by topic for export and publish
//
// [Session] owns the live state (topic blocks, threshold, sort criterion,
// curated blocks, marked set) and re-runs the pipeline whenever an input
// changes. Derived state is replaced wholesale on each recompute, never
// patched, so readers always observe a fully consistent set.
//
// A Session is confined to a single goroutine; all methods are synchronous.
package curation
