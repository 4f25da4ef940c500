package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates path (and any missing parents) with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// addPackage creates the install-side manifest for a package and returns
// its root, i.e. install/<name>/share/<name>.
func addPackage(t *testing.T, installDir, name string) string {
	t.Helper()
	root := filepath.Join(installDir, name, "share", name)
	writeFile(t, filepath.Join(root, "package.xml"), "<package/>\n")
	abs, err := filepath.Abs(root)
	require.NoError(t, err)
	return abs
}
