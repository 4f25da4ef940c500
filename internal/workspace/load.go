package workspace

import (
	"context"
	"log/slog"

	"github.com/colcon-contrib/coltidy/internal/log"
	"github.com/colcon-contrib/coltidy/internal/model"
)

// Load runs the full discovery pipeline: find packages, enumerate their
// sources and, when the build filter is on, intersect with the compiled
// files. Packages left with zero files are dropped here and never show up
// in selection or reports. A package with a missing compile commands
// manifest is dropped with an error log while the rest of the workspace
// proceeds; only an absent install directory is fatal.
func Load(ctx context.Context, cfg model.Config) ([]model.Package, error) {
	pkgs, err := Discover(cfg.InstallDir)
	if err != nil {
		return nil, err
	}

	loaded := make([]model.Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		pctx := log.ContextAttrs(ctx, slog.String("package", pkg.Name))

		files, err := Sources(pkg.Root, cfg.Extensions, cfg.ExcludeDir)
		if err != nil {
			slog.WarnContext(pctx, "enumerating sources failed, skipping package", "error", err)
			continue
		}
		if len(files) == 0 {
			continue
		}

		if cfg.BuildFilter {
			files, err = FilterBuilt(files, cfg.BuildDir, pkg.Name)
			if err != nil {
				slog.ErrorContext(pctx, "build filter failed, skipping package", "error", err)
				continue
			}
			if len(files) == 0 {
				continue
			}
		}

		pkg.Files = files
		loaded = append(loaded, pkg)
		slog.DebugContext(pctx, "package loaded", "files", len(files))
	}
	return loaded, nil
}
