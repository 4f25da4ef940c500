package model

import (
	"fmt"
	"strings"
)

// Markers clang-tidy embeds in its diagnostics. Counting them is a plain
// substring scan of the captured stdout, which can miscount if a quoted
// source line happens to contain one of the markers. That is a known
// limitation shared with every wrapper of clang-tidy's text output.
const (
	errorMarker   = "error: "
	warningMarker = "warning: "
)

// Invocation is one fully built clang-tidy command targeting one file.
type Invocation struct {
	Package string
	File    string
	Argv    []string
}

// ExecutionResult is the outcome of one invocation. Error and warning
// counts are derived once at construction and never change.
type ExecutionResult struct {
	Package  string
	File     string
	Argv     []string
	Stdout   string
	Stderr   string
	ExitCode int
	Errors   int
	Warnings int
}

// NewExecutionResult captures the output of a finished invocation. A
// non-zero exit code is normal here, clang-tidy exits non-zero whenever it
// finds something.
func NewExecutionResult(inv Invocation, stdout, stderr string, exitCode int) ExecutionResult {
	return ExecutionResult{
		Package:  inv.Package,
		File:     inv.File,
		Argv:     inv.Argv,
		Stdout:   stdout,
		Stderr:   stderr,
		ExitCode: exitCode,
		Errors:   strings.Count(stdout, errorMarker),
		Warnings: strings.Count(stdout, warningMarker),
	}
}

// NewLaunchFailure synthesizes a result for an invocation whose process
// could not be started at all (binary missing, permission denied). The
// failure lands in the stderr stream so it shows up in logs and summaries
// like any other diagnostic, without aborting the run.
func NewLaunchFailure(inv Invocation, err error) ExecutionResult {
	return ExecutionResult{
		Package:  inv.Package,
		File:     inv.File,
		Argv:     inv.Argv,
		Stderr:   err.Error(),
		ExitCode: 1,
	}
}

// HasOutput reports whether the invocation produced any text at all.
func (r ExecutionResult) HasOutput() bool {
	return len(r.Stdout) > 0 || len(r.Stderr) > 0
}

// Report renders the result the way it is echoed to the terminal and
// appended to package logs.
func (r ExecutionResult) Report() string {
	return fmt.Sprintf("Command: %s\n%s\n%s\n", strings.Join(r.Argv, " "), r.Stderr, r.Stdout)
}
