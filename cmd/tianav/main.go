// tianav: TIA Portal project navigator
//
// An MCP server that lets an AI assistant browse a TIA Portal project
// view: devices, device groups, PLC software, program blocks and PLC data
// types, addressed by slash-separated paths.
//
// Usage:
//
//	tianav serve                          # Start MCP server (stdio transport)
//	tianav tree --snapshot plant.yaml     # Print the project tree
//	tianav import --file plant.yaml       # Store a snapshot in the catalog
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HendryAvila/tianav/internal/config"
	"github.com/HendryAvila/tianav/internal/logging"
	"github.com/HendryAvila/tianav/internal/server"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newCLI().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newCLI() *cli.App {
	return &cli.App{
		Name:    "tianav",
		Usage:   "TIA Portal project navigator for AI assistants (MCP)",
		Version: server.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config.yaml (default: <data dir>/config.yaml)",
				EnvVars: []string{"TIANAV_CONFIG"},
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory holding the snapshot catalog",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			treeCommand(),
			softwareTreeCommand(),
			importCommand(),
			snapshotsCommand(),
			versionCommand(),
		},
	}
}

// loadConfig resolves settings: defaults, then the config file, then
// TIANAV_* variables, then flags.
func loadConfig(c *cli.Context) (config.Config, error) {
	path := c.String("config")
	if path == "" {
		path = config.DefaultPath()
		if c.IsSet("data-dir") {
			path = filepath.Join(c.String("data-dir"), config.FileName)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.LookupEnv)

	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("data-dir") {
		cfg.DataDir = c.String("data-dir")
	}
	if c.IsSet("snapshot") {
		cfg.Snapshot = c.String("snapshot")
	}
	if c.IsSet("metrics-addr") {
		cfg.MetricsAddr = c.String("metrics-addr")
	}
	return cfg, cfg.Validate()
}

// newApp builds the shared dependencies for a command. The caller must
// Close the app.
func newApp(c *cli.Context) (*server.App, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	app, err := server.NewApp(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}
	return app, nil
}
