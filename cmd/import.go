package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// newImportCmd creates the 'import' subcommand: one full import run over the
// configured sources, summary printed as JSON.
func newImportCmd() *cobra.Command {
	var categoryID int64

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Runs one nominee import over the configured sources",
		Long: `Fetches every configured source, extracts nominee candidates, resolves
their categories, and inserts anything not already stored. The run's
summary is printed as JSON. Use --category to pin every candidate to one
category id; feed sources require it.`,

		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := appFrom(cmd.Context())
			if err != nil {
				return err
			}
			if len(a.cfg.Sources) == 0 {
				return fmt.Errorf("no sources configured")
			}

			target, err := findTarget(cmd.Context(), a.store, categoryID)
			if err != nil {
				return err
			}

			summary, err := a.engine.Run(cmd.Context(), a.cfg.Sources, target)
			if err != nil {
				return fmt.Errorf("run import: %w", err)
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(summary); err != nil {
				return fmt.Errorf("encode summary: %w", err)
			}

			a.logger.Info("import command finished",
				zap.Int("imported", summary.TotalImported),
				zap.Int("skipped", len(summary.SkippedSources)))
			return nil
		},
	}

	cmd.Flags().Int64Var(&categoryID, "category", 0, "pin all candidates to this category id")
	return cmd
}
