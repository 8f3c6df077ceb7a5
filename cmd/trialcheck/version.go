// Version command for the trialcheck CLI.
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the trialcheck release, overridable with -ldflags "-X main.Version=...".
var Version = "v0.1.0"

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the trialcheck version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.stdout, "trialcheck", Version)
		},
	}
}
