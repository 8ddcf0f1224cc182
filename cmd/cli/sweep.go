package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Mark reviews stuck in analyzing as failed",
	Long: `Run one stale review sweep. Reviews still analyzing after review.stale_after
are marked failed. They are never resumed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := context.Background()

		a, cleanup, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		n, err := a.Sweeper.Sweep(ctx)
		if err != nil {
			return fmt.Errorf("sweep failed: %w", err)
		}
		if n == 0 {
			successColor.Fprintln(cmd.OutOrStdout(), "✅ No stale reviews.")
			return nil
		}
		warnColor.Fprintf(cmd.OutOrStdout(), "Marked %d stale review(s) as failed.\n", n)
		return nil
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.AddCommand(sweepCmd)
}
