package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pders01/diagen/internal/catalog"
	"github.com/pders01/diagen/internal/config"
	"github.com/pders01/diagen/internal/llm"
	"github.com/pders01/diagen/internal/models"
	"github.com/pders01/diagen/internal/recovery"
	"github.com/pders01/diagen/internal/render"
	"github.com/pders01/diagen/internal/sanitize"
)

var (
	newStyle   string
	newQuality string
	newName    string
	newShowRaw bool
)

var newCmd = &cobra.Command{
	Use:   "new <description>",
	Short: "Generate and stage a new diagram",
	Long: `Generate a diagram from a plain-text description.

The configured model produces a diagram specification, which is recovered
from the raw response, sanitized, and staged in the workspace. The staged
source is rendered immediately; on interpreter failure the source stays
staged so it can be hand-edited and re-rendered with:
  diagen regen`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVar(&newStyle, "style", catalog.DefaultStyle, "Diagram style preset")
	newCmd.Flags().StringVar(&newQuality, "quality", catalog.DefaultQuality, "Output quality preset")
	newCmd.Flags().StringVar(&newName, "name", "", "Override the diagram name slug")
	newCmd.Flags().BoolVar(&newShowRaw, "show-raw", false, "Print the raw model response")
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	style, err := catalog.LookupStyle(newStyle)
	if err != nil {
		return err
	}
	quality, err := catalog.LookupQuality(newQuality)
	if err != nil {
		return err
	}

	client, err := llm.New(cfg.LLM)
	if err != nil {
		return err
	}

	description := strings.Join(args, " ")
	system, user := catalog.BuildPrompt(description, style, quality)

	fmt.Printf("Generating %s diagram (%s quality)...\n", style.Name, quality.Name)
	raw, err := client.Generate(context.Background(), system, user)
	if err != nil {
		return fmt.Errorf("model call failed: %w", err)
	}

	if newShowRaw {
		fmt.Println(raw)
	}

	d, err := recovery.Recover(raw)
	if err != nil {
		// Terminal: hand the raw response to the user for manual correction.
		fmt.Fprintln(os.Stderr, "Could not recover a diagram specification from the model response.")
		fmt.Fprintln(os.Stderr, "Raw response:")
		fmt.Fprintln(os.Stderr, raw)
		return err
	}

	if newName != "" {
		d.Name = models.Slugify(newName)
	}
	d.Style = style.Name
	d.Quality = quality.Name
	d.OutputKind = style.Kind
	d.SourceCode = sanitize.Source(d.SourceCode)

	store := newStore(cfg)
	if err := store.Stage(d); err != nil {
		var ierr *render.InterpreterError
		if errors.As(err, &ierr) {
			fmt.Fprintln(os.Stderr, "Rendering failed; interpreter output:")
			fmt.Fprintln(os.Stderr, ierr.Stderr)
			fmt.Fprintf(os.Stderr, "The source stays staged at %s — edit it and run: diagen regen\n", store.SourcePath(d))
		}
		return err
	}

	fmt.Printf("\n✓ Staged diagram: %s\n", d.Name)
	fmt.Printf("  Source:   %s\n", store.SourcePath(d))
	fmt.Printf("  Artifact: %s\n", store.ArtifactPath(d))
	return nil
}
