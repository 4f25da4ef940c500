package workspace

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/colcon-contrib/coltidy/internal/model"
)

// compileCommand is the single field we need from a compile_commands.json
// entry. Everything else (directory, command, arguments) is ignored.
type compileCommand struct {
	File string `json:"file"`
}

// FilterBuilt keeps only the files that appear in the package's
// compile_commands.json, preserving their order. Paths on both sides are
// resolved to absolute form before comparison. A package that reaches this
// stage without a manifest yields ErrManifestMissing.
func FilterBuilt(files []string, buildDir, pkg string) ([]string, error) {
	path := filepath.Join(buildDir, pkg, "compile_commands.json")
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, model.ErrManifestMissing)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cmds []compileCommand
	if err := json.Unmarshal(b, &cmds); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	built := make(map[string]struct{}, len(cmds))
	for _, cmd := range cmds {
		abs, err := filepath.Abs(cmd.File)
		if err != nil {
			continue
		}
		built[abs] = struct{}{}
	}

	kept := make([]string, 0, len(files))
	for _, file := range files {
		abs, err := filepath.Abs(file)
		if err != nil {
			continue
		}
		if _, ok := built[abs]; ok {
			kept = append(kept, file)
		}
	}
	return kept, nil
}
