// Validate command for the trialcheck CLI.
package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/p829911/optuna/internal/config"
)

// validateResult is the JSON report for one line.
type validateResult struct {
	Line   int    `json:"line"`
	Number *int   `json:"number,omitempty"`
	Valid  bool   `json:"valid"`
	Error  string `json:"error,omitempty"`
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>",
		Short: "Check every trial in a snapshot for consistency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := readEntries(args[0])
			if err != nil {
				return err
			}

			results := make([]validateResult, 0, len(entries))
			invalid := 0
			for _, e := range entries {
				r := validateResult{Line: e.Line}
				err := e.Err
				if err == nil {
					n := e.Trial.Number
					r.Number = &n
					err = e.Trial.Validate()
				}
				if err != nil {
					invalid++
					r.Error = err.Error()
					a.logger.Debug("invalid trial", slog.Int("line", e.Line), slog.Any("error", err))
				} else {
					r.Valid = true
				}
				results = append(results, r)
			}

			if a.cfg.Output == config.OutputJSON {
				if err := a.printJSON(results); err != nil {
					return err
				}
			} else {
				for _, r := range results {
					switch {
					case r.Valid:
						fmt.Fprintf(a.stdout, "line %d: trial %d: ok\n", r.Line, *r.Number)
					case r.Number != nil:
						fmt.Fprintf(a.stdout, "line %d: trial %d: %s\n", r.Line, *r.Number, r.Error)
					default:
						fmt.Fprintf(a.stdout, "line %d: %s\n", r.Line, r.Error)
					}
				}
				fmt.Fprintf(a.stdout, "%d trials, %d invalid\n", len(results), invalid)
			}

			if invalid > 0 {
				return userError(fmt.Errorf("%d of %d trials invalid", invalid, len(results)))
			}
			return nil
		},
	}
}
