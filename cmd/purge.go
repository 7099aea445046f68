package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/diagen/internal/config"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete the workspace",
	Long: `Delete the workspace directory including the staged specification,
source file, and rendered artifact. Idempotent.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}

func runPurge(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	store := newStore(cfg)
	if err := store.Purge(); err != nil {
		return err
	}

	fmt.Printf("✓ Workspace purged: %s\n", store.Dir)
	return nil
}
