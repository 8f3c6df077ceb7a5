// Root command for the trialcheck CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/p829911/optuna/internal/config"
	"github.com/p829911/optuna/internal/logging"
	"github.com/p829911/optuna/internal/paths"
)

// app carries global flag values, loaded configuration and I/O streams for
// one command invocation.
type app struct {
	configDir string
	logLevel  string
	output    string

	cfg    config.Config
	logger *slog.Logger

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewRootCmd creates the top-level "trialcheck" command with global flags
// and all subcommands registered.
func NewRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	a := &app{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:     "trialcheck",
		Short:   "Inspect FrozenTrial snapshots",
		Long:    "trialcheck validates, sorts, deduplicates and renders FrozenTrial\nsnapshots stored one JSON object per line.",
		Version: Version,
		// Errors are printed once by run.
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: $XDG_CONFIG_HOME/trialcheck)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log_level from config.yaml")
	root.PersistentFlags().StringVar(&a.output, "output", "", "override output from config.yaml (text or json)")

	root.AddCommand(newVersionCmd(a))
	root.AddCommand(newValidateCmd(a))
	root.AddCommand(newSortCmd(a))
	root.AddCommand(newDedupCmd(a))
	root.AddCommand(newReprCmd(a))
	root.AddCommand(newEvalCmd(a))
	root.AddCommand(newSummaryCmd(a))

	return root
}

// setup resolves the config directory, loads config.yaml and builds the logger.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	dir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return systemError(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(dir)
	if err != nil {
		return systemError(err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.output != "" {
		cfg.Output = a.output
	}
	cfg = cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return userError(fmt.Errorf("config: %w", err))
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat, a.stderr)
	if err != nil {
		return userError(fmt.Errorf("config: %w", err))
	}
	a.cfg = cfg
	a.logger = logger.With(slog.String("command", cmd.Name()))
	a.logger.Debug("configuration loaded", slog.String("config_dir", dir))
	return nil
}
