package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/HendryAvila/tianav/internal/server"
	"github.com/HendryAvila/tianav/internal/snapshot"
	"github.com/HendryAvila/tianav/internal/treeview"
	"github.com/HendryAvila/tianav/internal/updater"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/urfave/cli/v2"
)

// snapshotFlag names a catalog snapshot or a YAML file.
func snapshotFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "snapshot",
		Aliases:  []string{"s"},
		Usage:    "Catalog snapshot name, or a .yaml/.yml snapshot file",
		EnvVars:  []string{"TIANAV_SNAPSHOT"},
		Required: required,
	}
}

// =============================================================================
// SERVE COMMAND
// =============================================================================

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the MCP server (stdio transport)",
		Flags: []cli.Flag{
			snapshotFlag(false),
			&cli.StringFlag{
				Name:    "metrics-addr",
				Usage:   "Serve Prometheus metrics on this address (e.g. :9464)",
				EnvVars: []string{"TIANAV_METRICS_ADDR"},
			},
			&cli.BoolFlag{
				Name:    "update-check",
				Value:   true,
				Usage:   "Check GitHub for a newer release at startup",
				EnvVars: []string{"TIANAV_UPDATE_CHECK"},
			},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	app, err := newApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	s := server.New(app)

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if addr := app.Config.MetricsAddr; addr != "" {
		go func() {
			if err := app.Metrics.Serve(ctx, addr, app.Log); err != nil {
				app.Log.Warnw("metrics endpoint stopped", "addr", addr, "error", err)
			}
		}()
	}

	// Background version check. Logs go to stderr so they don't
	// interfere with MCP's stdio transport on stdout.
	if c.Bool("update-check") {
		go checkForUpdates(ctx, app)
	}

	return mcpserver.ServeStdio(s)
}

func checkForUpdates(ctx context.Context, app *server.App) {
	result, err := updater.CheckVersion(ctx, server.Version)
	if err != nil {
		app.Log.Debugw("update check failed", "error", err)
		return
	}
	if result.UpdateAvailable {
		app.Log.Infow("update available",
			"current", result.CurrentVersion,
			"latest", result.LatestVersion,
			"release", result.ReleaseURL,
		)
	}
}

// =============================================================================
// TREE COMMANDS
// =============================================================================

func treeCommand() *cli.Command {
	return &cli.Command{
		Name:   "tree",
		Usage:  "Print the project tree of a snapshot",
		Flags:  []cli.Flag{snapshotFlag(true)},
		Action: runTree,
	}
}

func runTree(c *cli.Context) error {
	app, err := openApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	p, err := app.Session.Project()
	if err != nil {
		return err
	}
	tree, err := treeview.RenderProjectTree(p, treeview.WithUngroupedName(app.Config.UngroupedGroupName))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.App.Writer, tree)
	return err
}

func softwareTreeCommand() *cli.Command {
	return &cli.Command{
		Name:  "software-tree",
		Usage: "Print the block and type tree of one PLC software",
		Flags: []cli.Flag{
			snapshotFlag(true),
			&cli.StringFlag{
				Name:     "path",
				Aliases:  []string{"p"},
				Usage:    "Software path, e.g. PLC_1 or Line A/PLC_A",
				Required: true,
			},
		},
		Action: runSoftwareTree,
	}
}

func runSoftwareTree(c *cli.Context) error {
	app, err := openApp(c)
	if err != nil {
		return err
	}
	defer app.Close()

	tree, err := treeview.RenderSoftwareTree(app.Nav, c.String("path"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(c.App.Writer, tree)
	return err
}

// openApp builds the app and opens the configured snapshot.
func openApp(c *cli.Context) (*server.App, error) {
	app, err := newApp(c)
	if err != nil {
		return nil, err
	}
	if _, err := app.Open(app.Config.Snapshot); err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// =============================================================================
// CATALOG COMMANDS
// =============================================================================

func importCommand() *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Store a YAML snapshot in the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "YAML snapshot file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Catalog name (default: the project name)",
			},
		},
		Action: runImport,
	}
}

var errNoCatalog = errors.New("snapshot catalog unavailable")

func runImport(c *cli.Context) error {
	app, err := newApp(c)
	if err != nil {
		return err
	}
	defer app.Close()
	if app.Catalog == nil {
		return errNoCatalog
	}

	file := c.String("file")
	doc, err := snapshot.Load(file)
	if err != nil {
		return err
	}
	name := c.String("name")
	if name == "" {
		name = doc.Name
	}
	snap, err := app.Catalog.Save(name, file, doc)
	if err != nil {
		return err
	}
	app.Log.Infow("snapshot imported", "name", snap.Name, "project", snap.Project, "nodes", snap.NodeCount)
	_, err = fmt.Fprintf(c.App.Writer, "Imported %s as %q (%d nodes)\n", snap.Project, snap.Name, snap.NodeCount)
	return err
}

func snapshotsCommand() *cli.Command {
	return &cli.Command{
		Name:   "snapshots",
		Usage:  "List the snapshots stored in the catalog",
		Action: runSnapshots,
	}
}

func runSnapshots(c *cli.Context) error {
	app, err := newApp(c)
	if err != nil {
		return err
	}
	defer app.Close()
	if app.Catalog == nil {
		return errNoCatalog
	}

	snaps, err := app.Catalog.List()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.App.Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPROJECT\tNODES\tIMPORTED")
	for _, s := range snaps {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", s.Name, s.Project, s.NodeCount, s.ImportedAt)
	}
	return w.Flush()
}

// =============================================================================
// VERSION COMMAND
// =============================================================================

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the version, optionally checking for a newer release",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Query GitHub for the latest release",
			},
		},
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "tianav v%s\n", server.Version)
			if !c.Bool("check") {
				return nil
			}
			ctx, cancel := context.WithTimeout(c.Context, 15*time.Second)
			defer cancel()
			result, err := updater.CheckVersion(ctx, server.Version)
			if err != nil {
				return err
			}
			if result.UpdateAvailable {
				fmt.Fprintf(c.App.Writer, "Update available: v%s (%s)\n", result.LatestVersion, result.ReleaseURL)
			} else {
				fmt.Fprintln(c.App.Writer, "Up to date.")
			}
			return nil
		},
	}
}
