// ABOUTME: Root CLI application and shared flag handling
// ABOUTME: Each command builds the reader from environment configuration plus flags

package main

import (
	"digests-reader/bootstrap"
	"digests-reader/pkg/config"
	"github.com/urfave/cli/v2"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "dev"

func rootApp() *cli.App {
	return &cli.App{
		Name:    "digests-reader",
		Usage:   "Pick an RSS/Atom source and read its feed",
		Version: version,
		Description: `A small feed reader. Pick one source from the catalog, or add your own,
		save it, and load its items from the terminal or over HTTP.

		Flags can generally be set via environment variables, e.g.:

		--catalog => CATALOG_PATH=sources.yaml
		--settings => SETTINGS_PATH=settings.db
		`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "catalog",
				Usage:   "Source catalog file (.json or .yaml). The bundled catalog is used when empty",
				EnvVars: []string{"CATALOG_PATH"},
			},
			&cli.StringFlag{
				Name:    "settings",
				Usage:   "SQLite file holding the saved source",
				EnvVars: []string{"SETTINGS_PATH"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},
		Commands: []*cli.Command{
			sourcesCmd(),
			selectCmd(),
			addCmd(),
			feedCmd(),
			readCmd(),
			resetCmd(),
			serveCmd(),
		},
		Action: func(ctx *cli.Context) error {
			// Show help if no command is specified
			return cli.ShowAppHelp(ctx)
		},
	}
}

// loadConfig reads the environment and applies global flag overrides
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return nil, err
	}

	if ctx.IsSet("catalog") {
		cfg.Feed.CatalogPath = ctx.String("catalog")
	}
	if ctx.IsSet("settings") {
		cfg.Settings.Path = ctx.String("settings")
	}
	if ctx.IsSet("log-level") {
		cfg.Log.Level = ctx.String("log-level")
	}

	return cfg, nil
}

// openApp builds the reader for one command. The caller must Close it.
func openApp(ctx *cli.Context) (*bootstrap.App, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}
