// Command weblog serves a weblog and manages its entry store.
//
// Usage:
//
//	weblog [--settings FILE] [serve]
//	weblog [--settings FILE] initdb
package main

import (
	"context"
	"fmt"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
	"github.com/xy-planning-network/weblog/config"
	"github.com/xy-planning-network/weblog/ranger"
	"github.com/xy-planning-network/weblog/store"
)

const initializedMsg = "Initialized the database."

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("settings"))
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	rng, err := ranger.New(cfg, ranger.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to configure weblog: %w", err)
	}

	return rng.Guide()
}

func initDB(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("settings"))
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	pool, err := store.Connect(&store.CxnConfig{URL: cfg.Database}, cfg.Environment)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer pool.Close()

	if err := pool.Initialize(ctx); err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}

	fmt.Fprintln(cmd.Root().Writer, initializedMsg)
	return nil
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:   "weblog",
		Usage:  "A minimal weblog: log in, post entries, look at cats",
		Action: serve,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "settings",
				Aliases: []string{"s"},
				Usage:   "Path to an optional YAML settings file",
				Sources: cli.EnvVars(config.SettingsEnvVar),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the web server until interrupted",
				Action: serve,
			},
			{
				Name:   "initdb",
				Usage:  "Drop and recreate the entries table",
				Action: initDB,
			},
		},
	}
}

func main() {
	if err := newCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
