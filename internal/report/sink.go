// Package report aggregates execution results: per-package log files, the
// interactive progress counter and the error/warning totals that decide
// the process exit status.
package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/colcon-contrib/coltidy/internal/model"
)

// Sink appends finished results to one log file per package under a fixed
// directory. Workers call Write concurrently, the mutex guarantees each
// entry lands as one uninterrupted open/write/close cycle. All methods are
// no-ops on a nil Sink, so callers without an output directory just pass
// nil around.
type Sink struct {
	dir   string
	all   bool
	runID string

	mu   sync.Mutex
	seen map[string]bool
}

// NewSink returns a sink writing below dir, or nil when dir is empty.
// When all is false only results with output are recorded. The runID is
// written once per package log, at the first append of the run.
func NewSink(dir string, all bool, runID string) *Sink {
	if dir == "" {
		return nil
	}
	return &Sink{
		dir:   dir,
		all:   all,
		runID: runID,
		seen:  make(map[string]bool),
	}
}

func (s *Sink) Write(res model.ExecutionResult) error {
	if s == nil {
		return nil
	}
	if !s.all && !res.HasOutput() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, res.Package+".log")
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening log %s: %w", path, err)
	}
	defer func() {
		_ = f.Close() // ignoring close error for CLI tool
	}()

	if !s.seen[res.Package] {
		s.seen[res.Package] = true
		if s.runID != "" {
			if _, err := fmt.Fprintf(f, "run: %s\n", s.runID); err != nil {
				return fmt.Errorf("writing log %s: %w", path, err)
			}
		}
	}
	if _, err := f.WriteString(res.Report()); err != nil {
		return fmt.Errorf("writing log %s: %w", path, err)
	}
	return nil
}
