// Package models defines the domain entities for syllabus-driven video curation.
//
// Input types ([TopicBlock], [VideoCandidate]) arrive from the ingestion backend and
// are never mutated. Derived types ([CuratedTopicBlock], [Snapshot]) are recomputed
// wholesale by the curation pipeline.
// [PersistedSnapshot] is the only entity written to the database; it implements the
// [Model] interface consumed by the repositories package.
package models
