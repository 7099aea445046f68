package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/pders01/diagen/internal/config"
	"github.com/pders01/diagen/internal/workspace"
)

var (
	showJSON   bool
	showToon   bool
	showSource bool
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the currently staged diagram",
	RunE:  runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")
	showCmd.Flags().BoolVar(&showToon, "toon", false, "Output as Toon")
	showCmd.Flags().BoolVar(&showSource, "source", false, "Print the staged source code")
}

func runShow(cmd *cobra.Command, args []string) error {
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

	if showSource {
		source, err := os.ReadFile(store.SourcePath(d))
		if err != nil {
			return fmt.Errorf("failed to read staged source: %w", err)
		}
		fmt.Print(string(source))
		return nil
	}

	// Output JSON if requested
	if showJSON {
		output, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	// Output Toon if requested
	if showToon {
		output, err := gotoon.Encode(d)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Printf("Name:        %s\n", d.Name)
	fmt.Printf("Title:       %s\n", d.Title)
	fmt.Printf("Style:       %s (%s)\n", d.Style, d.OutputKind)
	fmt.Printf("Quality:     %s\n", d.Quality)
	fmt.Printf("Description: %s\n", d.Description)
	fmt.Printf("Source:      %s\n", store.SourcePath(d))

	if _, err := os.Stat(store.ArtifactPath(d)); err == nil {
		fmt.Printf("Artifact:    %s\n", store.ArtifactPath(d))
	} else {
		fmt.Println("Artifact:    (not rendered — run: diagen regen)")
	}
	return nil
}
