package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lectern-app/lectern/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupDatabase initializes the database and runs migrations.
func (r *Runner) SetupDatabase(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")

	var config *shared.Config
	if _, err := os.Stat(configPath); err == nil {
		if config, err = shared.LoadConfig(configPath); err != nil {
			r.logger.Warn("failed to load config, using defaults", "error", err)
			config = shared.DefaultConfig()
		}
	} else {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			r.logger.Warn("failed to create config file, using defaults", "error", err)
			config = shared.DefaultConfig()
		} else {
			r.logger.Info("config file created", "path", configPath)
			if config, err = shared.LoadConfig(configPath); err != nil {
				r.logger.Warn("failed to load created config, using defaults", "error", err)
				config = shared.DefaultConfig()
			}
		}
	}

	r.logger.Info("initializing database", "path", config.Database.Path)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to create database: %w", err)
	}
	defer db.Close()

	shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

	r.logger.Info("running database migrations")
	if err := shared.RunMigrations(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	r.logger.Infof("setup complete for database: %v", config.Database.Path)
	return nil
}

// AuthLogin registers a browser auth file for the proxy session.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path to auth file is required", shared.ErrMissingArgument)
	}

	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("%w: auth file not readable at %s", shared.ErrNotAuthenticated, path)
	}

	if err := r.youtube.Authenticate(path); err != nil {
		return fmt.Errorf("failed to register auth file: %w", err)
	}

	r.logger.Info("auth file registered", "path", path)

	r.writePlain("✓ Proxy session configured\n")
	r.writePlain("Auth file: %s\n\n", path)
	r.writePlain("Next steps:\n")
	r.writePlain("1. Update %s with: youtube.auth_file = %q\n", r.configPath, path)
	r.writePlain("2. Run 'lectern auth status' to verify the proxy session\n")

	return nil
}

// AuthStatus checks the proxy's authentication state via its health endpoint.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	r.logger.Info("checking proxy health")

	resp, err := r.api.Get(ctx, "/health")
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrServiceUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if r.youtube.Available() {
		r.writePlain("✓ Proxy reachable, publishing enabled\n")
	} else {
		r.writePlain("✓ Proxy reachable, no auth file configured (watch-queue fallback only)\n")
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}
	return nil
}
