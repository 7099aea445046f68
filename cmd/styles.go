package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/alpkeskin/gotoon"
	"github.com/spf13/cobra"

	"github.com/pders01/diagen/internal/catalog"
)

var (
	stylesJSON bool
	stylesToon bool
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List style and quality presets",
	RunE:  runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)

	stylesCmd.Flags().BoolVar(&stylesJSON, "json", false, "Output as JSON")
	stylesCmd.Flags().BoolVar(&stylesToon, "toon", false, "Output as Toon")
}

type presetListing struct {
	Styles    []catalog.Style   `json:"styles"`
	Qualities []catalog.Quality `json:"qualities"`
}

func runStyles(cmd *cobra.Command, args []string) error {
	listing := presetListing{
		Styles:    catalog.Styles(),
		Qualities: catalog.Qualities(),
	}

	// Output JSON if requested
	if stylesJSON {
		output, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		fmt.Println(string(output))
		return nil
	}

	// Output Toon if requested
	if stylesToon {
		output, err := gotoon.Encode(listing)
		if err != nil {
			return fmt.Errorf("failed to encode Toon: %w", err)
		}
		fmt.Println(output)
		return nil
	}

	fmt.Println("Styles:")
	for _, s := range listing.Styles {
		marker := " "
		if s.Name == catalog.DefaultStyle {
			marker = "*"
		}
		fmt.Printf("  %s %-12s %-8s %s\n", marker, s.Name, s.Kind, s.Summary)
	}

	fmt.Println("\nQualities:")
	for _, q := range listing.Qualities {
		marker := " "
		if q.Name == catalog.DefaultQuality {
			marker = "*"
		}
		fmt.Printf("  %s %-12s %s\n", marker, q.Name, q.Summary)
	}

	fmt.Println("\n(* = default)")
	return nil
}
