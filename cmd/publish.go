package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pders01/diagen/internal/config"
	"github.com/pders01/diagen/internal/models"
	"github.com/pders01/diagen/internal/publish"
	"github.com/pders01/diagen/internal/workspace"
)

var publishCmd = &cobra.Command{
	Use:   "publish [local|github|gitea|all]",
	Short: "Publish the rendered artifact",
	Long: `Publish the current diagram artifact to one target, or to every
configured target with "all" (the default).

Git-backed targets are idempotent: publishing identical bytes twice
commits once and reports the second publish as a no-op.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPublish,
}

func init() {
	rootCmd.AddCommand(publishCmd)
}

func runPublish(cmd *cobra.Command, args []string) error {
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

	artifact, err := store.ArtifactBytes()
	if errors.Is(err, workspace.ErrNotFound) {
		return fmt.Errorf("no rendered artifact (run: diagen regen)")
	}
	if err != nil {
		return err
	}

	target := "all"
	if len(args) > 0 {
		target = args[0]
	}

	p := publish.New(cfg.Publish)

	if target == "all" {
		results, err := p.PublishAll(d, artifact)
		for _, res := range results {
			printResult(res)
		}
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("no publish targets configured")
		}
		return nil
	}

	res, err := p.Publish(d, artifact, models.TargetKind(target))
	if err != nil {
		return fmt.Errorf("target %s: %w", target, err)
	}
	printResult(res)
	return nil
}

func printResult(res models.PublishResult) {
	if res.Committed {
		fmt.Printf("✓ %s: %s\n", res.Target, res.Locator)
	} else {
		fmt.Printf("- %s: %s (unchanged, commit skipped)\n", res.Target, res.Locator)
	}
}
