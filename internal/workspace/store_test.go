package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/pders01/diagen/internal/models"
	"github.com/pders01/diagen/internal/render"
	"github.com/pders01/diagen/internal/testutil"
)

func testDiagram() models.Diagram {
	return models.Diagram{
		Name:        "web-stack",
		Title:       "Web Stack",
		Description: "three tier web stack",
		SourceCode:  "print(1)\n",
		OutputKind:  models.KindProgram,
	}
}

// newStore returns a store whose program renderer is a fake interpreter
// running the given script body.
func newStore(t *testing.T, scriptBody string) *Store {
	t.Helper()

	interp := testutil.WriteScript(t, t.TempDir(), "interp.sh", scriptBody)
	r := &render.Renderer{Interpreter: interp, Args: []string{"{source}", "{artifact}"}}
	dir := filepath.Join(t.TempDir(), "workspace")
	return New(dir, map[models.OutputKind]*render.Renderer{models.KindProgram: r})
}

func TestStageAndArtifactBytes(t *testing.T) {
	s := newStore(t, `printf 'PNG' > "$2"`)

	if err := s.Stage(testDiagram()); err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	data, err := s.ArtifactBytes()
	if err != nil {
		t.Fatalf("artifact bytes failed: %v", err)
	}
	if len(data) == 0 {
		t.Error("artifact is empty")
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got != testDiagram() {
		t.Errorf("load mismatch:\ngot:  %+v\nwant: %+v", got, testDiagram())
	}
}

func TestLoadNotFound(t *testing.T) {
	s := newStore(t, `exit 0`)

	if _, err := s.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("load err = %v, want ErrNotFound", err)
	}
	if _, err := s.ArtifactBytes(); !errors.Is(err, ErrNotFound) {
		t.Errorf("artifact err = %v, want ErrNotFound", err)
	}
}

func TestStageOverwritesPrevious(t *testing.T) {
	s := newStore(t, `printf 'PNG' > "$2"`)

	first := testDiagram()
	if err := s.Stage(first); err != nil {
		t.Fatalf("first stage failed: %v", err)
	}

	second := first
	second.Name = "updated"
	second.SourceCode = "print(2)\n"
	if err := s.Stage(second); err != nil {
		t.Fatalf("second stage failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.Name != "updated" {
		t.Errorf("name = %q, want %q", got.Name, "updated")
	}

	source, err := os.ReadFile(s.SourcePath(got))
	if err != nil {
		t.Fatalf("failed to read source: %v", err)
	}
	if string(source) != "print(2)\n" {
		t.Errorf("source = %q, want overwritten content", source)
	}
}

func TestStageRenderFailureKeepsSpecAndSource(t *testing.T) {
	s := newStore(t, `echo "boom" >&2; exit 1`)

	err := s.Stage(testDiagram())
	if !errors.Is(err, render.ErrInterpreterFailed) {
		t.Fatalf("stage err = %v, want ErrInterpreterFailed", err)
	}

	// Spec and source stay persisted so the user can edit and regenerate.
	d, err := s.Load()
	if err != nil {
		t.Fatalf("load after failed stage: %v", err)
	}
	if _, err := os.Stat(s.SourcePath(d)); err != nil {
		t.Errorf("source missing after failed stage: %v", err)
	}
	if _, err := s.ArtifactBytes(); !errors.Is(err, ErrNotFound) {
		t.Errorf("artifact err = %v, want ErrNotFound", err)
	}
}

func TestRegenerateAfterHandEdit(t *testing.T) {
	s := newStore(t, `cat "$1" > "$2"`)

	if err := s.Stage(testDiagram()); err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	// Hand-edit the staged source between stage and regenerate.
	d, _ := s.Load()
	if err := os.WriteFile(s.SourcePath(d), []byte("edited\n"), 0644); err != nil {
		t.Fatalf("failed to edit source: %v", err)
	}

	if err := s.Regenerate(); err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}

	data, err := s.ArtifactBytes()
	if err != nil {
		t.Fatalf("artifact bytes failed: %v", err)
	}
	if string(data) != "edited\n" {
		t.Errorf("artifact = %q, want regenerated content", data)
	}

	// The persisted spec record is untouched by regenerate.
	got, err := s.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.SourceCode != testDiagram().SourceCode {
		t.Errorf("spec record changed by regenerate")
	}
}

func TestFailedRegenerateDoesNotCorruptSpec(t *testing.T) {
	s := newStore(t, `printf 'PNG' > "$2"`)

	if err := s.Stage(testDiagram()); err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	// Swap the renderer for a failing one, as if the hand-edit broke it.
	failing := testutil.WriteScript(t, t.TempDir(), "fail.sh", `exit 1`)
	s.Renderers[models.KindProgram] = &render.Renderer{Interpreter: failing, Args: []string{"{source}", "{artifact}"}}

	if err := s.Regenerate(); !errors.Is(err, render.ErrInterpreterFailed) {
		t.Fatalf("regenerate err = %v, want ErrInterpreterFailed", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("load after failed regenerate: %v", err)
	}
	if got != testDiagram() {
		t.Errorf("spec corrupted by failed regenerate: %+v", got)
	}

	// Prior artifact is still readable.
	if _, err := s.ArtifactBytes(); err != nil {
		t.Errorf("prior artifact lost: %v", err)
	}
}

func TestPurgeIdempotent(t *testing.T) {
	s := newStore(t, `printf 'PNG' > "$2"`)

	if err := s.Stage(testDiagram()); err != nil {
		t.Fatalf("stage failed: %v", err)
	}

	if err := s.Purge(); err != nil {
		t.Fatalf("purge failed: %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrNotFound) {
		t.Errorf("load after purge = %v, want ErrNotFound", err)
	}

	// Second purge on a missing directory is a no-op.
	if err := s.Purge(); err != nil {
		t.Errorf("second purge failed: %v", err)
	}
}
