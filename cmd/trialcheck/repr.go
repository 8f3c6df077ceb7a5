// Repr and eval commands for the trialcheck CLI.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/p829911/optuna/pkg/types"
)

func newReprCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repr <file>",
		Short: "Print the textual form of every trial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trials, err := readTrials(args[0])
			if err != nil {
				return err
			}
			for _, t := range trials {
				fmt.Fprintln(a.stdout, t.String())
			}
			return nil
		},
	}
}

func newEvalCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expression|->",
		Short: "Evaluate a textual trial, print it as JSON and validate it",
		Long:  "Evaluate the textual form printed by repr. Pass - to read it from stdin.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if src == "-" {
				data, err := io.ReadAll(a.stdin)
				if err != nil {
					return systemError(fmt.Errorf("read stdin: %w", err))
				}
				src = strings.TrimSpace(string(data))
			}

			t, err := types.ParseFrozenTrial(src)
			if err != nil {
				return userError(err)
			}
			if err := a.printJSON(t); err != nil {
				return err
			}
			if err := t.Validate(); err != nil {
				return userError(err)
			}
			return nil
		},
	}
}
