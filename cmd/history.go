package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lectern-app/lectern/internal/formatter"
	"github.com/lectern-app/lectern/internal/repositories"
	"github.com/lectern-app/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// openHistory opens the snapshot repository for read commands.
func (r *Runner) openHistory() (*repositories.SnapshotRepository, *sql.DB, error) {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return repositories.NewSnapshotRepository(db), db, nil
}

// HistoryList lists stored publish snapshots.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	criteria := map[string]any{}
	if name := cmd.String("name"); name != "" {
		criteria["name"] = name
	}

	snapshots, err := repo.List(criteria)
	if err != nil {
		return err
	}

	if len(snapshots) == 0 {
		r.writePlain("No snapshots stored.\n")
		return nil
	}

	r.writePlainHeader(fmt.Sprintf("%d stored snapshots", len(snapshots)))
	for _, snapshot := range snapshots {
		r.writePlain("#%d  %s\n", snapshot.Sequence(), snapshot.Name())
		r.writePlain("    id: %s\n", snapshot.ID())
		r.writePlain("    %d topics, %d videos, published via %s at %s\n",
			snapshot.TopicCount(), snapshot.VideoCount(), snapshot.Actor(),
			snapshot.GeneratedAt().Format("2006-01-02 15:04"))
	}

	return nil
}

// HistoryShow prints one snapshot's contents in the requested format.
func (r *Runner) HistoryShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: snapshot id is required", shared.ErrMissingArgument)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	repo, db, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	record, err := repo.Get(id)
	if err != nil {
		return err
	}

	snapshot, err := record.Export()
	if err != nil {
		return err
	}

	data, err := formatter.Export(snapshot, format)
	if err != nil {
		return err
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// HistoryDelete soft-deletes a stored snapshot.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: snapshot id is required", shared.ErrMissingArgument)
	}

	repo, db, err := r.openHistory()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := repo.Delete(id); err != nil {
		return err
	}

	r.logger.Info("snapshot deleted", "id", id)
	r.writePlain("✓ Deleted snapshot %s\n", id)
	return nil
}
