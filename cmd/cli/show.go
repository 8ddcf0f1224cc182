package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sevigo/code-critic/internal/storage"
)

var showOutput string

var showCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Print a stored review and its issues",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		a, cleanup, err := initApp(ctx)
		if err != nil {
			return err
		}
		defer cleanup()

		review, issues, err := a.Report(ctx, args[0])
		if errors.Is(err, storage.ErrReviewNotFound) {
			return fmt.Errorf("no review with session id %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to load review: %w", err)
		}
		return writeReport(cmd.OutOrStdout(), showOutput, review, issues)
	},
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	showCmd.Flags().StringVarP(&showOutput, "output", "o", outputText, "output format: text, json or yaml")
	rootCmd.AddCommand(showCmd)
}
