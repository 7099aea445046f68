package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/pders01/diagen/internal/config"
	"github.com/pders01/diagen/internal/testutil"
	"github.com/pders01/diagen/internal/workspace"
)

// configureTestPipeline points viper at a temp workspace, the mock model
// provider, and a fake markup interpreter.
func configureTestPipeline(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	interp := testutil.WriteScript(t, t.TempDir(), "mmdc.sh", `printf 'SVG' > "$2"`)

	viper.Set("workspace.dir", filepath.Join(t.TempDir(), "workspace"))
	viper.Set("llm.provider", "mock")
	viper.Set("render.markup.interpreter", interp)
	viper.Set("render.markup.args", []string{"{source}", "{artifact}"})
}

func TestNewStagesGeneratedDiagram(t *testing.T) {
	configureTestPipeline(t)

	newStyle = "flowchart"
	newQuality = "standard"
	newName = ""
	newShowRaw = false

	if err := runNew(nil, []string{"request", "response", "flow"}); err != nil {
		t.Fatalf("new command failed: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("load settings: %v", err)
	}
	store := newStore(cfg)

	d, err := store.Load()
	if err != nil {
		t.Fatalf("nothing staged: %v", err)
	}
	if d.Name != "mock-diagram" {
		t.Errorf("name = %q, want %q", d.Name, "mock-diagram")
	}
	if d.Style != "flowchart" || d.Quality != "standard" {
		t.Errorf("preset tags not recorded: %+v", d)
	}

	artifact, err := store.ArtifactBytes()
	if err != nil {
		t.Fatalf("artifact missing: %v", err)
	}
	if string(artifact) != "SVG" {
		t.Errorf("artifact = %q, want %q", artifact, "SVG")
	}
}

func TestNewNameOverride(t *testing.T) {
	configureTestPipeline(t)

	newStyle = "flowchart"
	newQuality = "draft"
	newName = "My Override!"
	newShowRaw = false
	defer func() { newName = "" }()

	if err := runNew(nil, []string{"anything"}); err != nil {
		t.Fatalf("new command failed: %v", err)
	}

	cfg, _ := config.Load()
	d, err := newStore(cfg).Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if d.Name != "my-override" {
		t.Errorf("name = %q, want %q", d.Name, "my-override")
	}
}

func TestPublishLocalAndPurge(t *testing.T) {
	configureTestPipeline(t)
	outDir := filepath.Join(t.TempDir(), "out")
	viper.Set("publish.local.dir", outDir)

	newStyle = "flowchart"
	newQuality = "standard"
	newName = ""
	if err := runNew(nil, []string{"request flow"}); err != nil {
		t.Fatalf("new command failed: %v", err)
	}

	if err := runPublish(nil, []string{"local"}); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	published := filepath.Join(outDir, "mock-diagram.svg")
	if data, err := os.ReadFile(published); err != nil || string(data) != "SVG" {
		t.Errorf("published artifact wrong: %q, %v", data, err)
	}

	if err := runPurge(nil, nil); err != nil {
		t.Fatalf("purge failed: %v", err)
	}

	cfg, _ := config.Load()
	if _, err := newStore(cfg).Load(); !errors.Is(err, workspace.ErrNotFound) {
		t.Errorf("workspace not purged: %v", err)
	}

	// Purge again: idempotent.
	if err := runPurge(nil, nil); err != nil {
		t.Errorf("second purge failed: %v", err)
	}
}
