// Package workspace discovers packages in a compiled colcon workspace and
// resolves the source files to analyze for each of them.
package workspace

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/colcon-contrib/coltidy/internal/model"
)

// Discover scans the immediate entries of installDir and returns every one
// that carries a package manifest at share/<name>/package.xml. Entries
// without a manifest are not packages and are skipped silently. Returned
// packages are ordered by name and carry no files yet.
func Discover(installDir string) ([]model.Package, error) {
	entries, err := os.ReadDir(installDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w, run coltidy from the workspace root", installDir, model.ErrWorkspaceNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", installDir, err)
	}

	var pkgs []model.Package
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		manifest := filepath.Join(installDir, name, "share", name, "package.xml")
		info, err := os.Stat(manifest)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		root, err := filepath.Abs(filepath.Dir(manifest))
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", manifest, err)
		}
		pkgs = append(pkgs, model.Package{Name: name, Root: root})
	}
	return pkgs, nil
}
