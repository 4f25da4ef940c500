package model

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Config carries everything a single coltidy run needs. The yaml-tagged
// fields can come from a coltidy.yaml file, the rest only from flags.
// Flags always win over file values.
type Config struct {
	InstallDir  string   `yaml:"install_dir"`
	BuildDir    string   `yaml:"build_dir"`
	Extensions  []string `yaml:"extensions"`
	ExcludeDir  string   `yaml:"exclude_dir"`
	TidyCmd     string   `yaml:"tidy_cmd"`
	Jobs        int      `yaml:"jobs"`
	BuildFilter bool     `yaml:"build_filter"`
	OutputDir   string   `yaml:"output_dir"`
	OutputAll   bool     `yaml:"output_all"`
	UseColor    bool     `yaml:"use_color"`
	Verbose     bool     `yaml:"verbose"`

	TidyConfig     string   `yaml:"-"`
	TidyConfigFile string   `yaml:"-"`
	FixErrors      bool     `yaml:"-"`
	ExportFixes    string   `yaml:"-"`
	Packages       []string `yaml:"-"`
	BasePath       string   `yaml:"-"`
}

// DefaultConfig returns the configuration of a plain `coltidy run` executed
// in a workspace root: serial execution, build filter on, colcon's standard
// install/ and build/ directories.
func DefaultConfig() Config {
	return Config{
		InstallDir:  "install",
		BuildDir:    "build",
		Extensions:  []string{".c", ".cc", ".cpp", ".cxx", ".h", ".hh", ".hpp", ".hxx"},
		ExcludeDir:  "test",
		TidyCmd:     "clang-tidy",
		Jobs:        1,
		BuildFilter: true,
	}
}

// LoadConfig decodes YAML from r on top of the defaults, so absent keys
// keep their default values.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.InstallDir == "" {
		return fmt.Errorf("install_dir must not be empty")
	}
	if c.BuildDir == "" {
		return fmt.Errorf("build_dir must not be empty")
	}
	if c.TidyCmd == "" {
		return fmt.Errorf("tidy_cmd must not be empty")
	}
	if c.Jobs < 1 {
		return fmt.Errorf("jobs must be at least 1, got %d", c.Jobs)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extensions must not be empty")
	}
	if c.TidyConfig != "" && c.TidyConfigFile != "" {
		return fmt.Errorf("tidy config string and tidy config file are mutually exclusive")
	}
	return nil
}
