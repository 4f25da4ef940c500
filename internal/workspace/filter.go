package workspace

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/colcon-contrib/coltidy/internal/model"
)

// Select keeps only the packages whose name appears in names. Naming a
// package that was not discovered is a usage error, reported before any
// work is dispatched. An empty names list keeps everything.
func Select(pkgs []model.Package, names []string) ([]model.Package, error) {
	if len(names) == 0 {
		return pkgs, nil
	}

	known := make(map[string]struct{}, len(pkgs))
	for _, pkg := range pkgs {
		known[pkg.Name] = struct{}{}
	}
	want := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := known[name]; !ok {
			return nil, fmt.Errorf("%s: %w", name, model.ErrUnknownPackage)
		}
		want[name] = struct{}{}
	}

	kept := make([]model.Package, 0, len(want))
	for _, pkg := range pkgs {
		if _, ok := want[pkg.Name]; ok {
			kept = append(kept, pkg)
		}
	}
	return kept, nil
}

// FilterBase keeps only the packages whose root lies under base (or is
// base itself). The base is resolved to an absolute path first. An empty
// base keeps everything. Select and FilterBase are both pure subset
// filters on independent attributes, so they commute.
func FilterBase(pkgs []model.Package, base string) ([]model.Package, error) {
	if base == "" {
		return pkgs, nil
	}

	abs, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("resolving base path %s: %w", base, err)
	}

	kept := make([]model.Package, 0, len(pkgs))
	for _, pkg := range pkgs {
		if isDescendant(abs, pkg.Root) {
			kept = append(kept, pkg)
		}
	}
	return kept, nil
}

func isDescendant(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
