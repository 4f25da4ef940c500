package report

import (
	"fmt"
	"io"

	"github.com/colcon-contrib/coltidy/internal/model"
)

// Counts are accumulated error/warning totals for one package.
type Counts struct {
	Errors   int
	Warnings int
}

// Summary drains results in completion order and keeps per-package and
// global totals. It is driven by the single consumer of the dispatch
// iterator, which is why plain ints suffice. Warnings go to out, the final
// error total to errOut, mirroring where clang-tidy users expect them.
type Summary struct {
	all    bool
	out    io.Writer
	errOut io.Writer

	perPackage    map[string]Counts
	totalErrors   int
	totalWarnings int
}

func NewSummary(out, errOut io.Writer, all bool) *Summary {
	return &Summary{
		all:        all,
		out:        out,
		errOut:     errOut,
		perPackage: make(map[string]Counts),
	}
}

// Add folds one result into the totals, echoes its output when it has any
// (or always, with all set) and prints the one-line package summary when
// something was found.
func (s *Summary) Add(res model.ExecutionResult) {
	counts := s.perPackage[res.Package]
	counts.Errors += res.Errors
	counts.Warnings += res.Warnings
	s.perPackage[res.Package] = counts
	s.totalErrors += res.Errors
	s.totalWarnings += res.Warnings

	if s.all || res.HasOutput() {
		fmt.Fprint(s.out, res.Report())
	}
	if s.all || res.Errors > 0 || res.Warnings > 0 {
		fmt.Fprintf(s.out, "%s: %d errors, %d warnings\n", res.Package, res.Errors, res.Warnings)
	}
}

// Totals returns the global error and warning counts seen so far.
func (s *Summary) Totals() (errors, warnings int) {
	return s.totalErrors, s.totalWarnings
}

// Package returns the accumulated counts for one package.
func (s *Summary) Package(name string) Counts {
	return s.perPackage[name]
}

// Flush prints the grand totals.
func (s *Summary) Flush() {
	if s.totalWarnings > 0 {
		fmt.Fprintf(s.out, "Total warnings encountered: %d\n", s.totalWarnings)
	}
	if s.totalErrors > 0 {
		fmt.Fprintf(s.errOut, "Total errors encountered: %d\n", s.totalErrors)
	}
}

// Err returns ErrAnalysisErrors iff any error was counted. Warnings alone
// never fail a run.
func (s *Summary) Err() error {
	if s.totalErrors > 0 {
		return fmt.Errorf("%d errors: %w", s.totalErrors, model.ErrAnalysisErrors)
	}
	return nil
}
