package main

import (
	"context"
	"fmt"
	"time"

	"github.com/lectern-app/lectern/internal/formatter"
	"github.com/lectern-app/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// Export curates a document and writes the marked set to disk.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	formatName := cmd.String("format")
	if formatName == "" {
		formatName = r.config.Export.Format
	}
	format, err := formatter.ParseFormat(formatName)
	if err != nil {
		return err
	}

	outputDir := cmd.String("output")
	if outputDir == "" {
		outputDir = r.config.Export.Dir
	}

	if err := r.loadSession(ctx, cmd); err != nil {
		return err
	}

	snapshot := r.session.Snapshot(playlistName(cmd), time.Now().UTC())
	if snapshot.VideoCount() == 0 {
		return fmt.Errorf("%w: no videos marked after curation", shared.ErrNoTopics)
	}

	path, err := formatter.WriteExport(snapshot, format, outputDir, "")
	if err != nil {
		return err
	}

	r.logger.Info("snapshot written", "path", path, "format", format)

	r.writePlain("✓ Exported %d videos across %d topics\n", snapshot.VideoCount(), len(snapshot.Topics))
	r.writePlain("File: %s\n", path)
	return nil
}
