package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lectern-app/lectern/internal/curation"
	"github.com/lectern-app/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// loadSession ingests the document argument and configures the runner's
// session from the shared curation flags.
func (r *Runner) loadSession(ctx context.Context, cmd *cli.Command) error {
	docPath := cmd.StringArg("document")
	if docPath == "" {
		return fmt.Errorf("%w: path to syllabus document is required", shared.ErrMissingArgument)
	}

	if r.backend == nil {
		return fmt.Errorf("%w: ingestion backend not initialized", shared.ErrServiceUnavailable)
	}

	criterion, err := curation.ParseCriterion(cmd.String("sort"))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrInvalidFlag, err)
	}

	r.logger.Info("ingesting document", "path", docPath)

	blocks, err := r.backend.IngestDocument(ctx, docPath)
	if err != nil {
		return err
	}

	r.session.SetTopicBlocks(blocks)
	r.session.SetDurationThreshold(int(cmd.Int("min-duration")))
	r.session.SetSortCriterion(criterion)

	r.logger.Info("session ready", "topics", r.session.TopicCount(), "marked", r.session.Marked().Len())
	return nil
}

// playlistName resolves the --name flag, falling back to the document
// filename without its extension.
func playlistName(cmd *cli.Command) string {
	if name := cmd.String("name"); name != "" {
		return name
	}
	base := filepath.Base(cmd.StringArg("document"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Curate runs the pipeline headlessly and prints the curated set.
func (r *Runner) Curate(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if err := r.loadSession(ctx, cmd); err != nil {
		return err
	}

	curated := r.session.Curated()
	marked := r.session.Marked()

	if useJSON {
		return r.writeJSON(curated, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("Curated %d topics (sorted by %s)", len(curated), r.session.Criterion()))

	for _, block := range curated {
		r.writePlain("\n%s\n", block.Topic)
		if len(block.Videos) == 0 {
			r.writePlain("  (no videos over the duration threshold)\n")
			continue
		}
		for _, video := range block.Videos {
			mark := " "
			if marked.Contains(video.ID) {
				mark = "*"
			}
			duration := shared.FormatDuration(curation.ParseDuration(video.DurationCode))
			r.writePlain("  [%s] %s - %s (%s, %d views)\n", mark, video.Title, video.Channel, duration, video.Views)
		}
	}

	r.writePlain("\n%d videos marked for export\n", marked.Len())
	return nil
}

// Search queries the YouTube proxy for videos on a topic.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	limit := int(cmd.Int("limit"))
	useJSON := cmd.Bool("json")

	if query == "" {
		return fmt.Errorf("%w: search query is required", shared.ErrMissingArgument)
	}

	if r.youtube == nil {
		return fmt.Errorf("%w: YouTube service not initialized", shared.ErrServiceUnavailable)
	}

	r.logger.Info("searching videos", "query", query, "limit", limit)

	videos, err := r.youtube.SearchVideos(ctx, query, limit)
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(videos, true)
	}

	r.writePlain("Found %d videos for %q:\n\n", len(videos), query)
	for i, video := range videos {
		duration := shared.FormatDuration(curation.ParseDuration(video.DurationCode))
		r.writePlain("%d. %s\n   %s • %s • %d views • %s\n", i+1, video.Title, video.Channel, duration, video.Views, video.URL())
	}

	return nil
}
