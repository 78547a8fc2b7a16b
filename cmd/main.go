package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/log"
	"github.com/lectern-app/lectern/internal/services"
	"github.com/lectern-app/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	configPath := "config.toml"
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	backend := services.NewBackendService(config.Backend.BaseURL)
	youtube := services.NewYouTubeService(config.YouTube.ProxyURL, config.YouTube.Rate)
	if config.YouTube.AuthFile != "" {
		if err := youtube.Authenticate(config.YouTube.AuthFile); err != nil {
			logger.Warn("proxy auth file not usable, publishing disabled", "error", err)
		}
	}
	apiService := services.NewAPIService(config.YouTube.ProxyURL, nil)

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		Backend:    backend,
		YouTube:    youtube,
		API:        apiService,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:    "lectern",
		Usage:   "Curate YouTube playlists from course syllabi",
		Version: "0.3.0",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if cmd.Bool("verbose") {
				shared.SetLogLevel(logger, log.DebugLevel)
			}
			return ctx, nil
		},
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		if errors.Is(err, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		}
		logger.Fatalf("application error: %v", err)
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, curateCommand, searchCommand, exportCommand, publishCommand, historyCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}
