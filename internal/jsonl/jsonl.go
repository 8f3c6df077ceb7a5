// Package jsonl reads and writes FrozenTrial snapshots as JSON Lines, one
// trial per line.
package jsonl

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/p829911/optuna/pkg/types"
)

// maxLineSize bounds a single encoded trial.
const maxLineSize = 16 << 20

// Entry is one non-empty line of a snapshot. Err is set when the line does
// not decode into a trial; Trial is then the zero value.
type Entry struct {
	Line  int
	Trial types.FrozenTrial
	Err   error
}

// Read decodes every non-empty line of r. Malformed lines are returned as
// entries carrying Err rather than skipped. The error result covers I/O only.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	n := 0
	for scanner.Scan() {
		n++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		e := Entry{Line: n}
		if err := json.Unmarshal(line, &e.Trial); err != nil {
			e.Trial = types.FrozenTrial{}
			e.Err = fmt.Errorf("line %d: %w", n, err)
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning line %d: %w", n+1, err)
	}
	return entries, nil
}

// ReadFile opens path and reads it with Read.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Trials returns the decoded trials of entries, or the first decode error.
func Trials(entries []Entry) ([]types.FrozenTrial, error) {
	trials := make([]types.FrozenTrial, 0, len(entries))
	for _, e := range entries {
		if e.Err != nil {
			return nil, e.Err
		}
		trials = append(trials, e.Trial)
	}
	return trials, nil
}

// Write encodes trials to w, one per line.
func Write(w io.Writer, trials []types.FrozenTrial) error {
	bw := bufio.NewWriter(w)
	for i := range trials {
		data, err := json.Marshal(trials[i])
		if err != nil {
			return fmt.Errorf("encoding trial %d: %w", trials[i].Number, err)
		}
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	return nil
}

// WriteFile atomically replaces path with trials using the temp-file,
// fsync, rename pattern. On failure path is left untouched.
func WriteFile(path string, trials []types.FrozenTrial) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if err := Write(tmp, trials); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
