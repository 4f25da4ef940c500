package service

import (
	"context"
	"fmt"
	"io"
	"iter"
	"log/slog"

	"github.com/colcon-contrib/coltidy/internal/log"
	"github.com/colcon-contrib/coltidy/internal/model"
	"github.com/colcon-contrib/coltidy/internal/parallel"
	"github.com/colcon-contrib/coltidy/internal/report"
	"github.com/colcon-contrib/coltidy/internal/tidy"
	"github.com/colcon-contrib/coltidy/internal/workspace"

	"github.com/google/uuid"
)

// Run executes one full analysis run: load the workspace, narrow the
// package set, fan clang-tidy out over all files with at most cfg.Jobs
// concurrent processes, and aggregate the results. Returns
// ErrAnalysisErrors iff any error diagnostic was counted; warnings alone
// succeed. Human-readable output goes to stdout, the progress counter and
// the final error total to stderr.
func Run(ctx context.Context, cfg model.Config, stdout, stderr io.Writer) error {
	runID := uuid.NewString()
	ctx = log.ContextAttrs(ctx, slog.String("run", runID))

	pkgs, err := selectPackages(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Processing %d package(s)\n", len(pkgs))

	opts := tidy.OptionsFromConfig(cfg)
	var invocations []model.Invocation
	for _, pkg := range pkgs {
		for _, file := range pkg.Files {
			invocations = append(invocations, tidy.NewInvocation(opts, pkg, file))
		}
	}
	slog.InfoContext(ctx, "dispatching",
		"packages", len(pkgs),
		"files", len(invocations),
		"jobs", cfg.Jobs,
	)

	sink := report.NewSink(cfg.OutputDir, cfg.OutputAll, runID)
	progress := report.NewProgress(stderr, len(invocations))
	summary := report.NewSummary(stdout, stderr, cfg.OutputAll)

	// The log append happens worker-side so an entry lands as soon as its
	// invocation completes; the sink serializes the writes.
	work := func(ctx context.Context, inv model.Invocation) (model.ExecutionResult, error) {
		res := tidy.Run(ctx, inv)
		if err := sink.Write(res); err != nil {
			slog.WarnContext(ctx, "writing package log failed", "error", err)
		}
		return res, nil
	}

	dispatcher := parallel.NewMap(ctx, cfg.Jobs, work)
	for res, err := range dispatcher.Iter(all(invocations)) {
		if err != nil {
			continue
		}
		progress.Step()
		summary.Add(res)
	}
	progress.Finish()
	summary.Flush()

	if err := ctx.Err(); err != nil {
		return err
	}
	return summary.Err()
}

// List prints the names of the packages a run with this configuration
// would process, one per line.
func List(ctx context.Context, cfg model.Config, out io.Writer) error {
	pkgs, err := selectPackages(ctx, cfg)
	if err != nil {
		return err
	}
	for _, pkg := range pkgs {
		fmt.Fprintln(out, pkg.Name)
	}
	return nil
}

func selectPackages(ctx context.Context, cfg model.Config) ([]model.Package, error) {
	pkgs, err := workspace.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pkgs, err = workspace.Select(pkgs, cfg.Packages)
	if err != nil {
		return nil, err
	}
	return workspace.FilterBase(pkgs, cfg.BasePath)
}

func all(invs []model.Invocation) iter.Seq2[model.Invocation, error] {
	return func(yield func(model.Invocation, error) bool) {
		for _, inv := range invs {
			if !yield(inv, nil) {
				return
			}
		}
	}
}
