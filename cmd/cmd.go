// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

func configFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
		Value:   "config.toml",
	}
}

func curationFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:  "min-duration",
			Usage: "Minimum video duration in seconds (videos at or under are dropped)",
			Value: 60,
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "Display order: relevance, views, likes, date, duration",
			Value:   "relevance",
		},
	}
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// authCommand handles proxy authentication operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage YouTube proxy authentication",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Register a browser auth file with the proxy session",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check current authentication state (calls /health)",
				Action: r.AuthStatus,
			},
		},
	}
}

// curateCommand runs the full pipeline headlessly and prints the curated set.
func curateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "curate",
		Usage: "Ingest a syllabus document and print the curated video set",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "document"},
		},
		Flags: append(curationFlags(),
			configFlag(),
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		),
		Action: r.Curate,
	}
}

// searchCommand queries the YouTube proxy directly.
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search YouTube for videos on a topic",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "query"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Usage:   "Maximum number of results",
				Value:   10,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Search,
	}
}

// exportCommand writes the auto-selected snapshot to disk.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Curate a document and write the marked set to a file",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "document"},
		},
		Flags: append(curationFlags(),
			configFlag(),
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Snapshot name (defaults to the document filename)",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown, text",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
			},
		),
		Action: r.Export,
	}
}

// publishCommand creates a playlist from the auto-selected marked set.
func publishCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "publish",
		Usage: "Curate a document and publish the marked set as a playlist",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "document"},
		},
		Flags: append(curationFlags(),
			configFlag(),
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name (defaults to the document filename)",
			},
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open a watch queue in the browser instead of creating a playlist",
			},
		),
		Action: r.Publish,
	}
}

// historyCommand browses stored publish snapshots.
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Browse published snapshot history",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List stored snapshots",
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:  "name",
						Usage: "Filter by snapshot name",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "show",
				Usage: "Show one snapshot's contents",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					configFlag(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: json, csv, markdown, text",
						Value:   "text",
					},
				},
				Action: r.HistoryShow,
			},
			{
				Name:  "delete",
				Usage: "Delete a stored snapshot",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  []cli.Flag{configFlag()},
				Action: r.HistoryDelete,
			},
		},
	}
}

// apiCommand handles direct proxy API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the YouTube proxy",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the proxy, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "path"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive curation.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for reviewing and publishing a curation",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "document"},
		},
		Flags: append(curationFlags(),
			configFlag(),
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Playlist name (defaults to the document filename)",
			},
		),
		Action: r.TUI,
	}
}
