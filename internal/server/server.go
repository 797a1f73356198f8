// Package server wires all components and creates the MCP server instance.
//
// This is the composition root: it creates the catalog, the session and
// the navigator, and injects them into the tools, prompts and resources.
// No navigation logic lives here.
package server

import (
	"context"
	"fmt"

	"github.com/HendryAvila/tianav/internal/catalog"
	"github.com/HendryAvila/tianav/internal/config"
	"github.com/HendryAvila/tianav/internal/metrics"
	"github.com/HendryAvila/tianav/internal/navigator"
	"github.com/HendryAvila/tianav/internal/portal"
	"github.com/HendryAvila/tianav/internal/prompts"
	"github.com/HendryAvila/tianav/internal/resources"
	"github.com/HendryAvila/tianav/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// Version is set at build time via ldflags.
var Version = "dev"

// App holds the shared dependencies of one tianav process.
type App struct {
	Config  config.Config
	Log     *zap.SugaredLogger
	Catalog *catalog.Store // nil when the catalog failed to open
	Session *portal.Session
	Nav     *navigator.Navigator
	Metrics *metrics.Registry
}

// NewApp creates the shared dependencies. The catalog is optional: if it
// cannot be opened the app still navigates projects opened from files.
//
// Close must be called on shutdown.
func NewApp(cfg config.Config, log *zap.SugaredLogger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	reg := metrics.NewRegistry()
	session := portal.New(log)
	nav := navigator.New(session,
		navigator.WithLogger(log),
		navigator.WithRecorder(reg),
	)
	session.OnChange(nav.InvalidateCache)
	session.OnChange(reg.CacheInvalidated)

	app := &App{
		Config:  cfg,
		Log:     log,
		Session: session,
		Nav:     nav,
		Metrics: reg,
	}

	store, err := catalog.New(catalog.Config{DataDir: cfg.DataDir})
	if err != nil {
		log.Warnw("snapshot catalog disabled", "data_dir", cfg.DataDir, "error", err)
	} else {
		app.Catalog = store
	}
	return app, nil
}

// Close closes the catalog.
func (a *App) Close() {
	a.Session.Close()
	if a.Catalog == nil {
		return
	}
	if err := a.Catalog.Close(); err != nil {
		a.Log.Warnw("catalog close", "error", err)
	}
}

// Open activates ref: a YAML file when it has a .yaml or .yml extension,
// otherwise a catalog snapshot name.
func (a *App) Open(ref string) (portal.Status, error) {
	if (config.Config{Snapshot: ref}).SnapshotIsFile() {
		return a.Session.OpenFile(ref)
	}
	if a.Catalog == nil {
		return portal.Status{}, fmt.Errorf("opening snapshot %q: catalog unavailable", ref)
	}
	return a.Session.OpenSnapshot(a.Catalog, ref)
}

// snapshotLoader returns the catalog as a loader, or a nil interface.
func (a *App) snapshotLoader() portal.SnapshotLoader {
	if a.Catalog == nil {
		return nil
	}
	return a.Catalog
}

type tool interface {
	Definition() mcp.Tool
	Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// New creates the MCP server with all tools, prompts and resources
// registered. If the config names a startup snapshot it is opened first;
// a failure there is logged and the server starts with no project.
func New(app *App) *server.MCPServer {
	if ref := app.Config.Snapshot; ref != "" {
		if _, err := app.Open(ref); err != nil {
			app.Log.Warnw("startup snapshot not opened", "snapshot", ref, "error", err)
		}
	}

	s := server.NewMCPServer(
		"tianav",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	add := func(t tool) {
		def := t.Definition()
		s.AddTool(def, app.Metrics.Instrument(def.Name, t.Handle))
	}

	ungrouped := app.Config.UngroupedGroupName

	// --- Session ---

	add(tools.NewOpenProjectTool(app.Session, app.snapshotLoader()))
	add(tools.NewCloseProjectTool(app.Session))
	add(tools.NewProjectStatusTool(app.Session, app.Nav))

	// --- Devices ---

	add(tools.NewListDevicesTool(app.Nav))
	add(tools.NewGetDeviceTool(app.Nav))
	add(tools.NewGetDeviceItemTool(app.Nav))

	// --- PLC software ---

	add(tools.NewGetSoftwareTool(app.Nav))
	add(tools.NewListBlocksTool(app.Nav))
	add(tools.NewGetBlockTool(app.Nav))
	add(tools.NewListTypesTool(app.Nav))
	add(tools.NewGetTypeTool(app.Nav))

	// --- Trees ---

	add(tools.NewProjectTreeTool(app.Session, ungrouped))
	add(tools.NewSoftwareTreeTool(app.Nav))

	// --- Catalog ---
	//
	// Registered only when the catalog opened.

	if app.Catalog != nil {
		add(tools.NewImportSnapshotTool(app.Catalog, app.Session, app.Log))
		add(tools.NewListSnapshotsTool(app.Catalog))
	}

	// --- Prompts ---

	explorePrompt := prompts.NewExplorePrompt()
	s.AddPrompt(explorePrompt.Definition(), explorePrompt.Handle)

	reviewPrompt := prompts.NewReviewSoftwarePrompt()
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Resources ---

	resourceHandler := resources.NewHandler(app.Session, ungrouped)
	s.AddResource(resourceHandler.TreeResource(), resourceHandler.HandleTree)
	s.AddResource(resourceHandler.StatusResource(), resourceHandler.HandleStatus)

	return s
}

// serverInstructions returns the system instructions that tell the AI
// how to use tianav.
func serverInstructions() string {
	return `You have access to tianav, a read-only navigator for TIA Portal engineering projects.

## GETTING STARTED

1. Call tia_project_status. If no project is open, call tia_list_snapshots and
   open one with tia_open_project (or pass a YAML snapshot 'file').
2. Call tia_project_tree. Every path the other tools accept can be read off it.

## PATHS

Paths are slash-separated names. Empty segments are ignored.

- Device path: device groups, then the device name ("Line A/Cell 1/PLC_A1").
  Devices of the ungrouped devices group are addressed by name alone.
- Software path: the device item that holds the PLC software. Both
  "<item>" and "<device>/<item>" work, prefixed by any device groups
  ("PLC_1", "PC-System_1/Software PLC_1").
- Block and type paths: groups below the program root, then the name
  ("Motors/Conveyors/FC_Belt"). The root group never appears in a path.

## PATTERNS

The last segment of a block or type path, and every list pattern, is a
case-insensitive regular expression when it contains one of . ^ $ * + ? ( [ { \ |
Otherwise it must match a name exactly, ignoring case. A name with a
metacharacter, such as "Motor(1)", is treated as a pattern; escape it
("Motor\(1\)") to match literally. A closing ")" alone stays literal.

tia_get_block and tia_get_type report an invalid pattern as an error.
tia_list_blocks, tia_list_types and tia_list_devices list nothing instead.

## TOOLS

| Tool | Use it to |
|------|-----------|
| tia_open_project / tia_close_project | switch the active project |
| tia_project_status | see what is open |
| tia_list_devices, tia_get_device, tia_get_device_item | inspect hardware |
| tia_get_software, tia_software_tree | inspect one PLC program |
| tia_list_blocks, tia_get_block | find program blocks |
| tia_list_types, tia_get_type | find PLC data types |
| tia_import_snapshot, tia_list_snapshots | manage stored snapshots |

Quote paths exactly as the tools print them.`
}
