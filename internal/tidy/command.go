// Package tidy builds and runs clang-tidy invocations. clang-tidy itself
// is a black box here: coltidy only shapes its argument vector and reads
// back text and an exit code.
package tidy

import (
	"path/filepath"

	"github.com/colcon-contrib/coltidy/internal/model"
)

// Options are the clang-tidy knobs coltidy forwards. Zero values mean the
// corresponding flag is not emitted at all.
type Options struct {
	Cmd         string
	BuildDir    string
	Config      string
	ConfigFile  string
	FixErrors   bool
	ExportFixes string
	UseColor    bool
}

// OptionsFromConfig picks the clang-tidy forwarding knobs out of a run
// configuration.
func OptionsFromConfig(cfg model.Config) Options {
	return Options{
		Cmd:         cfg.TidyCmd,
		BuildDir:    cfg.BuildDir,
		Config:      cfg.TidyConfig,
		ConfigFile:  cfg.TidyConfigFile,
		FixErrors:   cfg.FixErrors,
		ExportFixes: cfg.ExportFixes,
		UseColor:    cfg.UseColor,
	}
}

// NewInvocation builds the full clang-tidy command for one file of one
// package. The vector is deterministic: same inputs, same argv. The
// compilation database comes from the package's build directory and the
// header filter is scoped to the package root, so diagnostics from foreign
// headers are suppressed. The target file is always last.
func NewInvocation(opts Options, pkg model.Package, file string) model.Invocation {
	argv := []string{
		opts.Cmd,
		"-p", filepath.Join(opts.BuildDir, pkg.Name),
		"--header-filter=" + pkg.Root + "/.*",
	}
	if opts.Config != "" {
		argv = append(argv, "--config="+opts.Config)
	}
	if opts.ConfigFile != "" {
		argv = append(argv, "--config-file="+opts.ConfigFile)
	}
	if opts.FixErrors {
		argv = append(argv, "--fix-errors")
	}
	if opts.ExportFixes != "" {
		argv = append(argv, "--export-fixes="+opts.ExportFixes)
	}
	if opts.UseColor {
		argv = append(argv, "--use-color")
	}
	argv = append(argv, file)

	return model.Invocation{
		Package: pkg.Name,
		File:    file,
		Argv:    argv,
	}
}
