// Shared helpers for trialcheck commands.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/p829911/optuna/internal/jsonl"
	"github.com/p829911/optuna/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// exitError attaches a process exit code to an error.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error   { return &exitError{code: exitUserError, err: err} }
func systemError(err error) error { return &exitError{code: exitSysError, err: err} }

// exitCode maps err to a process exit code. Errors without an attached code,
// such as cobra flag errors, are user errors.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// readEntries reads a snapshot file. A missing file is a user error; other
// I/O failures are system errors.
func readEntries(path string) ([]jsonl.Entry, error) {
	entries, err := jsonl.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, userError(err)
		}
		return nil, systemError(err)
	}
	return entries, nil
}

// readTrials reads a snapshot file that must decode completely.
func readTrials(path string) ([]types.FrozenTrial, error) {
	entries, err := readEntries(path)
	if err != nil {
		return nil, err
	}
	trials, err := jsonl.Trials(entries)
	if err != nil {
		return nil, userError(fmt.Errorf("%s: %w", path, err))
	}
	return trials, nil
}

// writeTrials writes trials to out, or to stdout when out is empty.
func (a *app) writeTrials(out string, trials []types.FrozenTrial) error {
	if out == "" {
		if err := jsonl.Write(a.stdout, trials); err != nil {
			return systemError(err)
		}
		return nil
	}
	if err := jsonl.WriteFile(out, trials); err != nil {
		return systemError(err)
	}
	a.logger.Info("snapshot written", slog.String("path", out), slog.Int("trials", len(trials)))
	return nil
}

// printJSON writes v as indented JSON to stdout.
func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return systemError(fmt.Errorf("encode output: %w", err))
	}
	return nil
}
