package tidy

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"

	"github.com/colcon-contrib/coltidy/internal/log"
	"github.com/colcon-contrib/coltidy/internal/model"
)

// Run executes one invocation to completion and captures its streams. A
// non-zero exit code is not a failure, clang-tidy exits non-zero whenever
// it reports issues. Only a process that could not be started at all turns
// into a synthetic failed result, so one broken invocation never takes the
// run down with it.
func Run(ctx context.Context, inv model.Invocation) model.ExecutionResult {
	ctx = log.ContextAttrs(ctx,
		slog.String("package", inv.Package),
		slog.String("file", inv.File),
	)
	slog.DebugContext(ctx, "running clang-tidy")

	cmd := exec.CommandContext(ctx, inv.Argv[0], inv.Argv[1:]...) //#nosec G204 -- argv is built internally from discovered paths
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exitCode := 0
	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			slog.DebugContext(ctx, "launching clang-tidy failed", "error", err)
			return model.NewLaunchFailure(inv, err)
		}
		exitCode = exitErr.ExitCode()
	}

	return model.NewExecutionResult(inv, stdout.String(), stderr.String(), exitCode)
}
