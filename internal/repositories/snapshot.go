package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/lectern-app/lectern/internal/models"
	"github.com/lectern-app/lectern/internal/shared"
)

// SnapshotRepository implements models.Repository[*models.PersistedSnapshot]
// for curation history.
//
// Handles snapshot CRUD operations with soft delete support and name lookups.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SnapshotRepository with the given database connection
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Create inserts a new snapshot into the database with generated ID and sequence
func (r *SnapshotRepository) Create(snapshot *models.PersistedSnapshot) error {
	sequence, err := NextSequence(r.db, "snapshots")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	id := shared.GenerateID()
	snapshot.SetID(id)
	snapshot.SetSequence(sequence)

	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	query := `
		INSERT INTO snapshots (id, sequence, name, actor, topic_count, video_count, payload, generated_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		snapshot.Name(),
		snapshot.Actor(),
		snapshot.TopicCount(),
		snapshot.VideoCount(),
		snapshot.Payload(),
		snapshot.GeneratedAt(),
		snapshot.CreatedAt(),
		snapshot.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	return nil
}

// Get retrieves a snapshot by ID, excluding soft-deleted snapshots
func (r *SnapshotRepository) Get(id string) (*models.PersistedSnapshot, error) {
	query := `
		SELECT id, sequence, name, actor, topic_count, video_count, payload, generated_at, created_at, updated_at, deleted_at
		FROM snapshots
		WHERE id = ? AND deleted_at IS NULL
	`

	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByName retrieves the most recently created snapshot with the given name
func (r *SnapshotRepository) GetByName(name string) (*models.PersistedSnapshot, error) {
	query := `
		SELECT id, sequence, name, actor, topic_count, video_count, payload, generated_at, created_at, updated_at, deleted_at
		FROM snapshots
		WHERE name = ? AND deleted_at IS NULL
		ORDER BY sequence DESC
		LIMIT 1
	`

	return r.scanOne(r.db.QueryRow(query, name))
}

// Update modifies an existing snapshot in the database
func (r *SnapshotRepository) Update(snapshot *models.PersistedSnapshot) error {
	if err := snapshot.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	snapshot.Touch()

	query := `
		UPDATE snapshots
		SET name = ?, actor = ?, topic_count = ?, video_count = ?, payload = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query,
		snapshot.Name(),
		snapshot.Actor(),
		snapshot.TopicCount(),
		snapshot.VideoCount(),
		snapshot.Payload(),
		snapshot.UpdatedAt(),
		snapshot.ID(),
	)
	if err != nil {
		return fmt.Errorf("failed to update snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("snapshot not found or already deleted: %s", snapshot.ID())
	}

	return nil
}

// Delete soft-deletes a snapshot by ID
func (r *SnapshotRepository) Delete(id string) error {
	now := time.Now()

	query := `
		UPDATE snapshots
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, now, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("snapshot not found or already deleted: %s", id)
	}

	return nil
}

// List retrieves all snapshots matching the given criteria, excluding soft-deleted snapshots
func (r *SnapshotRepository) List(criteria map[string]any) ([]*models.PersistedSnapshot, error) {
	query := `
		SELECT id, sequence, name, actor, topic_count, video_count, payload, generated_at, created_at, updated_at, deleted_at
		FROM snapshots
		WHERE deleted_at IS NULL
	`

	args := []any{}

	if name, ok := criteria["name"].(string); ok && name != "" {
		query += " AND name = ?"
		args = append(args, name)
	}

	if actor, ok := criteria["actor"].(string); ok && actor != "" {
		query += " AND actor = ?"
		args = append(args, actor)
	}

	query += " ORDER BY sequence ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.PersistedSnapshot
	for rows.Next() {
		snapshot, err := r.scanRow(rows)
		if err != nil {
			return nil, err
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return snapshots, nil
}

// SaveSnapshot stores an export snapshot as a new history record.
//
// This is the entry point used after a successful playlist publish; the
// caller treats failures as non-fatal.
func (r *SnapshotRepository) SaveSnapshot(snapshot models.Snapshot, actor string) error {
	record, err := models.NewPersistedSnapshot(snapshot, actor)
	if err != nil {
		return err
	}
	return r.Create(record)
}

// scanOne scans a single row into a [models.PersistedSnapshot]
func (r *SnapshotRepository) scanOne(row *sql.Row) (*models.PersistedSnapshot, error) {
	var (
		id          string
		sequence    int
		name        string
		actor       string
		topicCount  int
		videoCount  int
		payload     string
		generatedAt time.Time
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := row.Scan(&id, &sequence, &name, &actor, &topicCount, &videoCount, &payload, &generatedAt, &createdAt, &updatedAt, &deletedAt)
	if err == sql.ErrNoRows {
		return nil, shared.ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	return models.HydrateSnapshot(id, sequence, name, actor, topicCount, videoCount, payload, generatedAt, createdAt, updatedAt), nil
}

// scanRow scans a row from [sql.Rows] into a [models.PersistedSnapshot]
func (r *SnapshotRepository) scanRow(rows *sql.Rows) (*models.PersistedSnapshot, error) {
	var (
		id          string
		sequence    int
		name        string
		actor       string
		topicCount  int
		videoCount  int
		payload     string
		generatedAt time.Time
		createdAt   time.Time
		updatedAt   time.Time
		deletedAt   sql.NullTime
	)

	err := rows.Scan(&id, &sequence, &name, &actor, &topicCount, &videoCount, &payload, &generatedAt, &createdAt, &updatedAt, &deletedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan snapshot: %w", err)
	}

	return models.HydrateSnapshot(id, sequence, name, actor, topicCount, videoCount, payload, generatedAt, createdAt, updatedAt), nil
}
