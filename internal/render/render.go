// Package render runs the external diagram interpreter against a staged
// source file and maps the outcome to a small set of error kinds.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

var (
	ErrInterpreterNotFound = errors.New("diagram interpreter not found")
	ErrInterpreterFailed   = errors.New("diagram interpreter failed")
	ErrArtifactMissing     = errors.New("interpreter exited cleanly but produced no artifact")
)

// InterpreterError carries the interpreter's captured stderr so the user
// can hand-edit the source and regenerate.
type InterpreterError struct {
	ExitCode int
	Stderr   string
}

func (e *InterpreterError) Error() string {
	return fmt.Sprintf("interpreter exited with code %d: %s", e.ExitCode, strings.TrimSpace(e.Stderr))
}

func (e *InterpreterError) Unwrap() error {
	return ErrInterpreterFailed
}

// Renderer invokes one configured interpreter command. Args may contain
// the placeholders {source} and {artifact}, which are substituted with
// the respective file paths per invocation.
type Renderer struct {
	Interpreter string
	Args        []string
}

// Render runs the interpreter in the source file's directory and verifies
// the artifact exists afterward. Success requires both a zero exit code
// and the artifact file being present. No retries.
func (r *Renderer) Render(sourcePath, artifactPath string) error {
	args := make([]string, 0, len(r.Args))
	for _, a := range r.Args {
		a = strings.ReplaceAll(a, "{source}", sourcePath)
		a = strings.ReplaceAll(a, "{artifact}", artifactPath)
		args = append(args, a)
	}

	cmd := exec.Command(r.Interpreter, args...)
	cmd.Dir = filepath.Dir(sourcePath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &InterpreterError{ExitCode: exitErr.ExitCode(), Stderr: stderr.String()}
		}
		return fmt.Errorf("%w: %s: %v", ErrInterpreterNotFound, r.Interpreter, err)
	}

	if _, err := os.Stat(artifactPath); err != nil {
		return fmt.Errorf("%w: expected %s", ErrArtifactMissing, artifactPath)
	}
	return nil
}
