// Sort and dedup commands for the trialcheck CLI.
package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/p829911/optuna/pkg/types"
)

func newSortCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "sort <file>",
		Short: "Order trials by number, keeping the input order of equal numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trials, err := readTrials(args[0])
			if err != nil {
				return err
			}
			types.SortTrials(trials)
			return a.writeTrials(out, trials)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result to this file instead of stdout")
	return cmd
}

func newDedupCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "dedup <file>",
		Short: "Drop trials structurally equal to an earlier trial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trials, err := readTrials(args[0])
			if err != nil {
				return err
			}
			kept := types.DedupTrials(trials)
			if removed := len(trials) - len(kept); removed > 0 {
				a.logger.Info("duplicates removed", slog.Int("removed", removed), slog.Int("kept", len(kept)))
			}
			return a.writeTrials(out, kept)
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result to this file instead of stdout")
	return cmd
}
