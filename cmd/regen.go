package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pders01/diagen/internal/config"
	"github.com/pders01/diagen/internal/render"
	"github.com/pders01/diagen/internal/workspace"
)

var regenCmd = &cobra.Command{
	Use:   "regen",
	Short: "Re-render the staged source",
	Long: `Re-render the diagram artifact from the staged source file.

The source may have been hand-edited since it was staged; only the
artifact is replaced, the staged specification stays as-is.`,
	RunE: runRegen,
}

func init() {
	rootCmd.AddCommand(regenCmd)
}

func runRegen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	store := newStore(cfg)

	d, err := store.Load()
	if errors.Is(err, workspace.ErrNotFound) {
		return fmt.Errorf("nothing staged yet (run: diagen new <description>)")
	}
	if err != nil {
		return err
	}

	fmt.Printf("Rendering %s...\n", store.SourcePath(d))
	if err := store.Regenerate(); err != nil {
		var ierr *render.InterpreterError
		if errors.As(err, &ierr) {
			fmt.Fprintln(os.Stderr, "Rendering failed; interpreter output:")
			fmt.Fprintln(os.Stderr, ierr.Stderr)
			fmt.Fprintf(os.Stderr, "Edit %s and run: diagen regen\n", store.SourcePath(d))
		}
		return err
	}

	fmt.Printf("✓ Artifact updated: %s\n", store.ArtifactPath(d))
	return nil
}
