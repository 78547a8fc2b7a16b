package main

import (
	"context"
	"fmt"

	"github.com/lectern-app/lectern/internal/publish"
	"github.com/lectern-app/lectern/internal/repositories"
	"github.com/lectern-app/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// Publish curates a document and creates a playlist from the marked set.
//
// Without a configured auth file (or with --open) it falls back to opening a
// YouTube watch queue in the browser, which needs no credentials.
func (r *Runner) Publish(ctx context.Context, cmd *cli.Command) error {
	if err := r.loadSession(ctx, cmd); err != nil {
		return err
	}

	ids := r.session.PublishIDs()
	if len(ids) == 0 {
		return fmt.Errorf("%w: no videos marked after curation", shared.ErrNoTopics)
	}

	name := playlistName(cmd)

	if cmd.Bool("open") || r.youtube == nil || !r.youtube.Available() {
		url := publish.WatchURL(ids)
		r.writePlain("Opening watch queue with %d videos:\n%s\n", len(ids), url)
		if err := shared.OpenBrowser(url); err != nil {
			r.logger.Warn("failed to open browser", "error", err)
			r.writePlain("Open the URL above manually.\n")
		}
		return nil
	}

	machine := publish.NewMachine(publish.Opts{
		Publisher: r.youtube,
		History:   r.historySink(),
		Logger:    r.logger,
	})

	r.writePlain("Publishing %q (%d videos)...\n", name, len(ids))

	req := publish.Request{
		Name:   name,
		IDs:    ids,
		Groups: r.session.Projection(),
	}
	if !machine.Trigger(ctx, req) {
		return fmt.Errorf("%w: publish request rejected", shared.ErrPublishFailed)
	}

	if machine.State() == publish.StateError {
		return fmt.Errorf("%w: %s", shared.ErrPublishFailed, machine.Message())
	}

	r.writePlainHeader("Publish Complete!")
	r.writePlain("Playlist: %s\n", name)
	r.writePlain("Videos: %d across %d topics\n", len(ids), len(req.Groups))
	r.writePlain("URL: https://www.youtube.com/playlist?list=%s\n", machine.PlaylistID())
	return nil
}

// historySink opens the snapshot repository for the publish audit trail.
// Returns nil when the database is unusable; publishing proceeds without it.
func (r *Runner) historySink() publish.HistorySink {
	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		r.logger.Warn("history disabled, database not available", "error", err)
		return nil
	}

	if err := shared.RunMigrations(db); err != nil {
		r.logger.Warn("history disabled, migrations failed", "error", err)
		db.Close()
		return nil
	}

	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)
	return repositories.NewSnapshotRepository(db)
}
