// Package workspace manages the single-item staging area on disk: the
// current diagram specification, its staged source file, and the rendered
// artifact, all under one fixed directory with fixed filenames.
package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pders01/diagen/internal/models"
	"github.com/pders01/diagen/internal/render"
)

// ErrNotFound signals that nothing has been staged (or the requested
// file was purged).
var ErrNotFound = errors.New("nothing staged in workspace")

const specFile = "spec.json"

// Store is the on-disk workspace. It holds at most one current diagram;
// Stage is the only spec mutator, Regenerate the only artifact-only one.
type Store struct {
	Dir       string
	Renderers map[models.OutputKind]*render.Renderer
}

// New creates a store rooted at dir. The directory is created lazily on
// first Stage.
func New(dir string, renderers map[models.OutputKind]*render.Renderer) *Store {
	return &Store{Dir: dir, Renderers: renderers}
}

// Stage persists the diagram as current, writes its source file, and
// renders the artifact. The spec and source are persisted even when
// rendering fails, so the user can hand-edit and regenerate; a prior
// artifact is left untouched on failure.
func (s *Store) Stage(d models.Diagram) error {
	if !d.OutputKind.Valid() {
		return fmt.Errorf("invalid output kind %q", d.OutputKind)
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create workspace: %w", err)
	}

	// Exactly one source/artifact at a time: drop files of the other kind.
	s.removeOtherKind(d.OutputKind)

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode spec: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.Dir, specFile), data, 0644); err != nil {
		return fmt.Errorf("failed to write spec: %w", err)
	}

	if err := os.WriteFile(s.SourcePath(d), []byte(d.SourceCode), 0644); err != nil {
		return fmt.Errorf("failed to write source: %w", err)
	}

	return s.renderCurrent(d)
}

// Load returns the current diagram specification.
func (s *Store) Load() (models.Diagram, error) {
	data, err := os.ReadFile(filepath.Join(s.Dir, specFile))
	if err != nil {
		if os.IsNotExist(err) {
			return models.Diagram{}, ErrNotFound
		}
		return models.Diagram{}, fmt.Errorf("failed to read spec: %w", err)
	}

	var d models.Diagram
	if err := json.Unmarshal(data, &d); err != nil {
		return models.Diagram{}, fmt.Errorf("failed to decode spec: %w", err)
	}
	return d, nil
}

// ArtifactBytes returns the rendered artifact's content.
func (s *Store) ArtifactBytes() ([]byte, error) {
	d, err := s.Load()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.ArtifactPath(d))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return data, nil
}

// Regenerate re-renders the staged source file, which may have been
// hand-edited since Stage. Only the artifact is replaced; the persisted
// spec record stays as-is.
func (s *Store) Regenerate() error {
	d, err := s.Load()
	if err != nil {
		return err
	}

	if _, err := os.Stat(s.SourcePath(d)); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to stat source: %w", err)
	}

	return s.renderCurrent(d)
}

// Purge deletes the whole workspace directory. Idempotent.
func (s *Store) Purge() error {
	if err := os.RemoveAll(s.Dir); err != nil {
		return fmt.Errorf("failed to purge workspace: %w", err)
	}
	return nil
}

// SourcePath returns the staged source file path for the diagram.
func (s *Store) SourcePath(d models.Diagram) string {
	return filepath.Join(s.Dir, d.SourceFile())
}

// ArtifactPath returns the rendered artifact path for the diagram.
func (s *Store) ArtifactPath(d models.Diagram) string {
	return filepath.Join(s.Dir, d.ArtifactFile())
}

func (s *Store) renderCurrent(d models.Diagram) error {
	r, ok := s.Renderers[d.OutputKind]
	if !ok {
		return fmt.Errorf("no renderer configured for kind %q", d.OutputKind)
	}
	return r.Render(s.SourcePath(d), s.ArtifactPath(d))
}

func (s *Store) removeOtherKind(keep models.OutputKind) {
	for _, kind := range []models.OutputKind{models.KindProgram, models.KindMarkup} {
		if kind == keep {
			continue
		}
		os.Remove(filepath.Join(s.Dir, "source."+kind.SourceExt()))
		os.Remove(filepath.Join(s.Dir, "artifact."+kind.ArtifactExt()))
	}
}
