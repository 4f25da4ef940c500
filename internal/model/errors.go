package model

import (
	"errors"
)

var (
	// ErrWorkspaceNotFound means the install directory is absent, so there
	// is no workspace to scan at all.
	ErrWorkspaceNotFound = errors.New("workspace not found")
	// ErrManifestMissing means a package reached the build filter stage but
	// has no compile_commands.json.
	ErrManifestMissing = errors.New("compile commands manifest missing")
	// ErrUnknownPackage means a package was selected by name but was not
	// discovered in the workspace.
	ErrUnknownPackage = errors.New("unknown package")
	// ErrAnalysisErrors means clang-tidy reported at least one error across
	// the whole run.
	ErrAnalysisErrors = errors.New("analysis reported errors")
)
