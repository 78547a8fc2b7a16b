// Package repositories implements SQLite persistence for curation history.
//
// [SnapshotRepository] implements models.Repository for snapshot records with
// atomic sequence generation for human-readable ordering and soft deletes via
// deleted_at timestamps; deleted records are excluded from queries by default.
//
// It doubles as the publish state machine's history sink: SaveSnapshot wraps
// Create for fire-and-forget use, where a failure is logged by the caller and
// never surfaced.
package repositories
