package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lectern-app/lectern/internal/curation"
	"github.com/lectern-app/lectern/internal/formatter"
	"github.com/lectern-app/lectern/internal/publish"
	"github.com/lectern-app/lectern/internal/shared"
	"github.com/lectern-app/lectern/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for reviewing and publishing a curation.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
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
	r.session.SetDurationThreshold(int(cmd.Int("min-duration")))
	r.session.SetSortCriterion(criterion)

	format, err := formatter.ParseFormat(r.config.Export.Format)
	if err != nil {
		format = formatter.FormatJSON
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/lectern-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	updates := make(chan publish.Update, 8)
	machine := publish.NewMachine(publish.Opts{
		Publisher: r.youtube,
		History:   r.historySink(),
		Logger:    r.logger,
		Updates:   updates,
	})

	model := ui.NewModel(ctx, ui.Opts{
		Session:      r.session,
		Machine:      machine,
		Publisher:    r.youtube,
		Ingestor:     r.backend,
		DocumentPath: docPath,
		PlaylistName: playlistName(cmd),
		ExportDir:    r.config.Export.Dir,
		ExportFormat: format,
		Updates:      updates,
	})

	p := tea.NewProgram(model)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
