package workspace

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"
	"strings"
)

// Sources walks the package tree rooted at root and collects every file
// whose extension matches the allow-list, case-insensitively. Directories
// named like excludeDir (again case-insensitively) are pruned before
// descent, so nothing below them is ever visited. The result follows
// fs.WalkDir's lexical order and is therefore stable across runs.
func Sources(root string, extensions []string, excludeDir string) ([]string, error) {
	allowed := make([]string, len(extensions))
	for i, ext := range extensions {
		allowed[i] = strings.ToLower(ext)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.EqualFold(d.Name(), excludeDir) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if slices.Contains(allowed, strings.ToLower(filepath.Ext(d.Name()))) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return files, nil
}
