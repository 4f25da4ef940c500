package model_test

import (
	"strings"
	"testing"

	"github.com/colcon-contrib/coltidy/internal/model"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()
	cfg := model.DefaultConfig()
	require.Equal(t, "install", cfg.InstallDir)
	require.Equal(t, "build", cfg.BuildDir)
	require.Equal(t, "clang-tidy", cfg.TidyCmd)
	require.Equal(t, "test", cfg.ExcludeDir)
	require.Equal(t, 1, cfg.Jobs)
	require.True(t, cfg.BuildFilter)
	require.Contains(t, cfg.Extensions, ".cpp")
	require.Contains(t, cfg.Extensions, ".hpp")
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()
	yml := `
tidy_cmd: clang-tidy-18
jobs: 8
build_filter: false
output_dir: tidy-logs
extensions: [".cpp", ".hpp"]
`
	cfg, err := model.LoadConfig(strings.NewReader(yml))
	require.NoError(t, err)
	require.Equal(t, "clang-tidy-18", cfg.TidyCmd)
	require.Equal(t, 8, cfg.Jobs)
	require.False(t, cfg.BuildFilter)
	require.Equal(t, "tidy-logs", cfg.OutputDir)
	require.Equal(t, []string{".cpp", ".hpp"}, cfg.Extensions)
	// untouched keys keep their defaults
	require.Equal(t, "install", cfg.InstallDir)
	require.Equal(t, "build", cfg.BuildDir)
}

func TestLoadConfig_Fail(t *testing.T) {
	t.Parallel()

	var testCases = []struct {
		scenario string
		yml      string
	}{
		{"unknown key", "no_such_key: true\n"},
		{"zero jobs", "jobs: 0\n"},
		{"empty tidy cmd", "tidy_cmd: \"\"\n"},
		{"empty install dir", "install_dir: \"\"\n"},
	}

	for _, tt := range testCases {
		t.Run(tt.scenario, func(t *testing.T) {
			t.Parallel()
			_, err := model.LoadConfig(strings.NewReader(tt.yml))
			require.Error(t, err)
		})
	}
}

func TestConfigValidate_MutuallyExclusive(t *testing.T) {
	t.Parallel()
	cfg := model.DefaultConfig()
	cfg.TidyConfig = "{Checks: '*'}"
	cfg.TidyConfigFile = ".clang-tidy"
	require.Error(t, cfg.Validate())
}
