// Summary command for the trialcheck CLI.
package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/p829911/optuna/internal/logging"
	"github.com/p829911/optuna/pkg/types"
)

func newSummaryCmd(a *app) *cobra.Command {
	var (
		studyName string
		direction string
		studyID   int
	)
	cmd := &cobra.Command{
		Use:   "summary <file>",
		Short: "Print a legacy StudySummary for a snapshot",
		Long: "Build the deprecated StudySummary from a snapshot. A deprecation\n" +
			"notice is logged at WARN level every time.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := types.ParseStudyDirection(direction)
			if err != nil {
				return userError(fmt.Errorf("--direction %q: %w", direction, err))
			}
			trials, err := readTrials(args[0])
			if err != nil {
				return err
			}

			best, _ := types.BestTrial(trials, dir)
			s := types.NewStudySummary( //nolint:staticcheck // the command exists to expose it
				logging.NewSlogSink(a.logger),
				studyName, dir, best, nil, nil,
				len(trials), earliestStart(trials), studyID,
			)
			return a.printJSON(s)
		},
	}
	cmd.Flags().StringVar(&studyName, "study-name", "", "study name to report")
	cmd.Flags().StringVar(&direction, "direction", string(types.StudyDirectionMinimize), "NOT_SET, MINIMIZE or MAXIMIZE")
	cmd.Flags().IntVar(&studyID, "study-id", 0, "study id to report")
	_ = cmd.MarkFlagRequired("study-name")
	return cmd
}

// earliestStart returns the first start time among trials, or nil.
func earliestStart(trials []types.FrozenTrial) *time.Time {
	var first *time.Time
	for i := range trials {
		s := trials[i].DatetimeStart
		if s != nil && (first == nil || s.Before(*first)) {
			first = s
		}
	}
	return first
}
