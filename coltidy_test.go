package coltidy_test

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var (
	coltidyPath string

	// tmpDir is a function used to create a tempdir
	// -test.keepdir flag says test to use os.MkdirTemp
	// default is t.TempDir, which will be cleaned up
	tmpDir func(t *testing.T) string
)

func TestMain(m *testing.M) {
	var keepTestDir bool
	flag.BoolVar(&keepTestDir, "test.keepdir", false, "use os.MkdirTemp instead of t.TempDir to keep test artifacts")
	flag.Parse()

	if testing.Short() {
		slog.Warn("integration tests with -short are ignored")
		os.Exit(0)
	}

	if !keepTestDir {
		tmpDir = func(t *testing.T) string {
			t.Helper()
			return t.TempDir()
		}
	} else {
		tmpDir = func(t *testing.T) string {
			t.Helper()
			dir, err := os.MkdirTemp("", t.Name()+"*")
			require.NoError(t, err)
			_, err = fmt.Fprintf(t.Output(), "TEMPDIR %s: -test.keepdir used, so it won't be automatically deleted", dir)
			require.NoError(t, err)
			return dir
		}
	}

	if !isExecutable("coltidy-ci") {
		slog.Error("cannot locate coltidy-ci binary: run go build -race -cover -covermode=atomic -o coltidy-ci ./cmd/coltidy/ first")
		os.Exit(1)
	}

	var err error
	coltidyPath, err = filepath.Abs("coltidy-ci")
	if err != nil {
		slog.Error("can't get abspath for coltidy-ci", "error", err)
		os.Exit(1)
	}
	coverDir, err := filepath.Abs("coverage")
	if err != nil {
		slog.Error("can't get value for GOCOVERDIR for coltidy-ci", "error", err)
		os.Exit(1)
	}
	err = rmRfMkdirp(coverDir)
	if err != nil {
		slog.Error("can't reset GOCOVERDIR for coltidy-ci", "error", err, "coverdir", coverDir)
		os.Exit(1)
	}
	err = os.Setenv("GOCOVERDIR", coverDir)
	if err != nil {
		slog.Error("can't set GOCOVERDIR env variable", "error", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func TestColtidyRun(t *testing.T) {
	ws := makeWorkspace(t)
	stub := makeStub(t, ws, `echo "stub.cpp:1:1: warning: stub finding"`)

	stdout, stderr, err := coltidy(t, ws, "run", "--tidy-cmd", stub, "-j", "2", "--output-dir", "logs")
	if err != nil {
		t.Logf("%s", stderr)
	}
	require.NoError(t, err)
	require.Contains(t, stdout, "Processing 1 package(s)")
	require.Contains(t, stdout, "Total warnings encountered: 2")

	log, err := os.ReadFile(filepath.Join(ws, "logs", "alpha.log"))
	require.NoError(t, err)
	require.Equal(t, 2, strings.Count(string(log), "Command: "))
}

func TestColtidyRun_Errors(t *testing.T) {
	ws := makeWorkspace(t)
	stub := makeStub(t, ws, `echo "stub.cpp:1:1: error: stub finding"; exit 1`)

	stdout, stderr, err := coltidy(t, ws, "run", "--tidy-cmd", stub, "-j", "2")
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.ExitCode())
	require.Contains(t, stderr, "Total errors encountered: 2")
	require.Contains(t, stdout, "alpha: 1 errors, 0 warnings")
}

func TestColtidyRun_NoWorkspace(t *testing.T) {
	dir := tmpDir(t)

	_, stderr, err := coltidy(t, dir, "run")
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	require.Equal(t, 1, exitErr.ExitCode())
	require.Contains(t, stderr, "workspace not found")
}

func TestColtidyList(t *testing.T) {
	ws := makeWorkspace(t)

	stdout, stderr, err := coltidy(t, ws, "list")
	if err != nil {
		t.Logf("%s", stderr)
	}
	require.NoError(t, err)
	require.Equal(t, "alpha\n", stdout)
}

// makeWorkspace lays out a compiled workspace with package alpha (two
// compiled files, one more hidden in a test directory) and package beta
// (nothing to analyze).
func makeWorkspace(t *testing.T) string {
	t.Helper()
	dir := tmpDir(t)

	alphaRoot := filepath.Join(dir, "install", "alpha", "share", "alpha")
	creat(t, filepath.Join(alphaRoot, "package.xml"), "<package/>\n")
	one := filepath.Join(alphaRoot, "src", "one.cpp")
	two := filepath.Join(alphaRoot, "src", "two.cpp")
	creat(t, one, "// c++\n")
	creat(t, two, "// c++\n")
	creat(t, filepath.Join(alphaRoot, "test", "three.cpp"), "// c++\n")

	type entry struct {
		File string `json:"file"`
	}
	b, err := json.Marshal([]entry{{File: one}, {File: two}})
	require.NoError(t, err)
	creat(t, filepath.Join(dir, "build", "alpha", "compile_commands.json"), string(b))

	betaRoot := filepath.Join(dir, "install", "beta", "share", "beta")
	creat(t, filepath.Join(betaRoot, "package.xml"), "<package/>\n")

	return dir
}

func makeStub(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "stub-tidy")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755))
	return path
}

func coltidy(t *testing.T, workDir string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(t.Context(), 60*time.Second)
	t.Cleanup(cancel)

	var outBuf, errBuf bytes.Buffer
	cmd := exec.CommandContext(ctx, coltidyPath, args...)
	cmd.Dir = workDir
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf
	err = cmd.Run()
	return outBuf.String(), errBuf.String(), err
}

func creat(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, f.Close())
	}()
	_, err = f.WriteString(content)
	require.NoError(t, err)
	err = f.Sync()
	require.NoError(t, err)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().Perm()&0111 != 0
}

func rmRfMkdirp(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}
