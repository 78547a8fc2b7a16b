package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lectern-app/lectern/internal/models"
	"github.com/lectern-app/lectern/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func testSnapshot(name string) models.Snapshot {
	return models.Snapshot{
		Name:        name,
		GeneratedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		Topics: []models.SnapshotGroup{
			{
				Topic: "Binary Trees",
				Videos: []models.VideoCandidate{
					{ID: "bt1", Title: "Tree Traversal", Channel: "AlgoChannel", Views: 12000, Likes: 800, DurationCode: "PT10M"},
					{ID: "bt2", Title: "AVL Rotations", Channel: "AlgoChannel", Views: 9000, Likes: 450, DurationCode: "PT14M30S"},
				},
			},
			{
				Topic: "Tries",
				Videos: []models.VideoCandidate{
					{ID: "tr1", Title: "Prefix Trees", Channel: "DataStructures", Views: 3000, Likes: 200, DurationCode: "PT8M"},
				},
			},
		},
	}
}

func TestSnapshotRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		record, err := models.NewPersistedSnapshot(testSnapshot("week-3"), "cli")
		if err != nil {
			t.Fatalf("failed to build snapshot record: %v", err)
		}

		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		if record.ID() == "" {
			t.Error("snapshot ID should be set after creation")
		}

		if record.Sequence() != 1 {
			t.Errorf("expected first sequence 1, got %d", record.Sequence())
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		record, err := models.NewPersistedSnapshot(testSnapshot("week-3"), "cli")
		if err != nil {
			t.Fatalf("failed to build snapshot record: %v", err)
		}

		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		retrieved, err := repo.Get(record.ID())
		if err != nil {
			t.Fatalf("failed to get snapshot: %v", err)
		}

		if retrieved.Name() != "week-3" {
			t.Errorf("expected name week-3, got %s", retrieved.Name())
		}

		if retrieved.TopicCount() != 2 {
			t.Errorf("expected 2 topics, got %d", retrieved.TopicCount())
		}

		if retrieved.VideoCount() != 3 {
			t.Errorf("expected 3 videos, got %d", retrieved.VideoCount())
		}

		export, err := retrieved.Export()
		if err != nil {
			t.Fatalf("failed to rebuild export payload: %v", err)
		}

		ids := export.VideoIDs()
		want := []string{"bt1", "bt2", "tr1"}
		if len(ids) != len(want) {
			t.Fatalf("expected %d video ids, got %d", len(want), len(ids))
		}
		for i, id := range want {
			if ids[i] != id {
				t.Errorf("video id %d: expected %s, got %s", i, id, ids[i])
			}
		}
	})

	t.Run("GetMissing", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)

		_, err := repo.Get("nonexistent")
		if !errors.Is(err, shared.ErrSnapshotNotFound) {
			t.Errorf("expected ErrSnapshotNotFound, got %v", err)
		}
	})

	t.Run("GetByName", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)

		for range 2 {
			record, err := models.NewPersistedSnapshot(testSnapshot("week-3"), "cli")
			if err != nil {
				t.Fatalf("failed to build snapshot record: %v", err)
			}
			if err := repo.Create(record); err != nil {
				t.Fatalf("failed to create snapshot: %v", err)
			}
		}

		retrieved, err := repo.GetByName("week-3")
		if err != nil {
			t.Fatalf("failed to get snapshot by name: %v", err)
		}

		if retrieved.Sequence() != 2 {
			t.Errorf("expected latest sequence 2, got %d", retrieved.Sequence())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		record, err := models.NewPersistedSnapshot(testSnapshot("week-3"), "cli")
		if err != nil {
			t.Fatalf("failed to build snapshot record: %v", err)
		}

		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		retrieved, err := repo.Get(record.ID())
		if err != nil {
			t.Fatalf("failed to get snapshot: %v", err)
		}

		if err := repo.Update(retrieved); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		record, err := models.NewPersistedSnapshot(testSnapshot("week-3"), "cli")
		if err != nil {
			t.Fatalf("failed to build snapshot record: %v", err)
		}

		if err := repo.Create(record); err != nil {
			t.Fatalf("failed to create snapshot: %v", err)
		}

		if err := repo.Delete(record.ID()); err != nil {
			t.Fatalf("failed to delete snapshot: %v", err)
		}

		if _, err := repo.Get(record.ID()); err == nil {
			t.Error("expected error when getting deleted snapshot")
		}

		if err := repo.Delete(record.ID()); err == nil {
			t.Error("expected error when deleting twice")
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)

		names := []string{"week-1", "week-2", "week-3"}
		for _, name := range names {
			record, err := models.NewPersistedSnapshot(testSnapshot(name), "cli")
			if err != nil {
				t.Fatalf("failed to build snapshot record: %v", err)
			}
			if err := repo.Create(record); err != nil {
				t.Fatalf("failed to create snapshot: %v", err)
			}
		}

		retrieved, err := repo.List(map[string]any{})
		if err != nil {
			t.Fatalf("failed to list snapshots: %v", err)
		}

		if len(retrieved) != 3 {
			t.Fatalf("expected 3 snapshots, got %d", len(retrieved))
		}

		for i, name := range names {
			if retrieved[i].Name() != name {
				t.Errorf("snapshot %d: expected name %s, got %s", i, name, retrieved[i].Name())
			}
		}

		filtered, err := repo.List(map[string]any{"name": "week-2"})
		if err != nil {
			t.Fatalf("failed to list snapshots by name: %v", err)
		}

		if len(filtered) != 1 || filtered[0].Name() != "week-2" {
			t.Errorf("expected one week-2 snapshot, got %d", len(filtered))
		}
	})

	t.Run("SaveSnapshot", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)

		if err := repo.SaveSnapshot(testSnapshot("published"), "tui"); err != nil {
			t.Fatalf("failed to save snapshot: %v", err)
		}

		retrieved, err := repo.GetByName("published")
		if err != nil {
			t.Fatalf("failed to get saved snapshot: %v", err)
		}

		if retrieved.Actor() != "tui" {
			t.Errorf("expected actor tui, got %s", retrieved.Actor())
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for i := 1; i <= 3; i++ {
		sequence, err := NextSequence(db, "snapshots")
		if err != nil {
			t.Fatalf("failed to generate sequence: %v", err)
		}
		if sequence != i {
			t.Errorf("expected sequence %d, got %d", i, sequence)
		}
	}
}
