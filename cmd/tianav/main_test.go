package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HendryAvila/tianav/internal/snapshot/snapshottest"
)

// run executes the CLI with args and returns stdout.
func run(t *testing.T, dataDir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newCLI()
	app.Writer = &out
	app.ErrWriter = &out
	err := app.Run(append([]string{"tianav", "--data-dir", dataDir, "--log-level", "error"}, args...))
	return out.String(), err
}

func writePlant(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plant.yaml")
	if err := os.WriteFile(path, []byte(snapshottest.PlantYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestTree_File(t *testing.T) {
	out, err := run(t, t.TempDir(), "tree", "--snapshot", writePlant(t))
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if !strings.HasPrefix(out, "Plant\n├── Devices\n") {
		t.Errorf("unexpected tree:\n%s", out)
	}
}

func TestSoftwareTree_File(t *testing.T) {
	out, err := run(t, t.TempDir(), "software-tree", "--snapshot", writePlant(t), "--path", "Line A/Cell 1/PLC_A1")
	if err != nil {
		t.Fatalf("software-tree: %v", err)
	}
	if want := "Line A/Cell 1/PLC_A1\n├── Program blocks\n└── PLC data types\n"; out != want {
		t.Errorf("got:\n%s\nwant:\n%s", out, want)
	}
}

func TestImportThenTreeBySnapshotName(t *testing.T) {
	dataDir := t.TempDir()

	out, err := run(t, dataDir, "import", "--file", writePlant(t), "--name", "plant")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if !strings.Contains(out, `Imported Plant as "plant"`) {
		t.Errorf("import output: %s", out)
	}

	out, err = run(t, dataDir, "snapshots")
	if err != nil {
		t.Fatalf("snapshots: %v", err)
	}
	if !strings.Contains(out, "NAME") || !strings.Contains(out, "plant") {
		t.Errorf("snapshots output: %s", out)
	}

	out, err = run(t, dataDir, "tree", "--snapshot", "plant")
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if !strings.Contains(out, "└── UngroupedDevicesGroup\n") {
		t.Errorf("tree from catalog:\n%s", out)
	}
}

func TestTree_UnknownSnapshot(t *testing.T) {
	if _, err := run(t, t.TempDir(), "tree", "--snapshot", "missing"); err == nil {
		t.Error("expected error for unknown snapshot")
	}
}

func TestInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	app := newCLI()
	app.Writer = &out
	err := app.Run([]string{"tianav", "--data-dir", t.TempDir(), "--log-level", "loud", "snapshots"})
	if err == nil || !strings.Contains(err.Error(), "log_level") {
		t.Errorf("err = %v, want log_level validation error", err)
	}
}

func TestConfigFileIsRead(t *testing.T) {
	dataDir := t.TempDir()
	cfg := "ungrouped_group_name: Loose\n"
	if err := os.WriteFile(filepath.Join(dataDir, "config.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(t.TempDir(), "p.yaml")
	if err := os.WriteFile(file, []byte("name: P\nungrouped:\n  devices: [{name: D1}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, dataDir, "tree", "--snapshot", file)
	if err != nil {
		t.Fatalf("tree: %v", err)
	}
	if out != "P\n└── Loose\n    └── D1\n" {
		t.Errorf("got %q", out)
	}
}
