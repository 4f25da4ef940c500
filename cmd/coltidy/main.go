package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/colcon-contrib/coltidy/internal/log"
	"github.com/colcon-contrib/coltidy/internal/model"
	"github.com/colcon-contrib/coltidy/internal/service"

	"github.com/spf13/cobra"
)

var (
	configPath string // coltidy config file used (if loaded)
	config     model.Config

	flagConfigFilePath string // value of --config flag
	flagVerbose        bool   // value of --verbose flag

	flagTidyCmd        string
	flagTidyConfig     string
	flagTidyConfigFile string
	flagJobs           int
	flagExportFixes    string
	flagFixErrors      bool
	flagPackages       []string
	flagBasePath       string
	flagOutputDir      string
	flagUseColor       bool
	flagOutputAll      bool
	flagNoBuildFilter  bool
)

func main() {
	// root flags
	rootCmd.PersistentFlags().StringVar(&flagConfigFilePath, "config", "", "Config file to load - default is coltidy.yaml in the current directory")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "verbose logging")

	runCmd.Flags().StringVar(&flagTidyCmd, "tidy-cmd", "", "clang-tidy command to use")
	runCmd.Flags().StringVar(&flagTidyConfig, "tidy-config", "", "clang-tidy configuration string")
	runCmd.Flags().StringVar(&flagTidyConfigFile, "tidy-config-file", "", "path to a clang-tidy configuration file")
	runCmd.Flags().IntVarP(&flagJobs, "jobs", "j", 1, "number of clang-tidy processes to run in parallel")
	runCmd.Flags().StringVar(&flagExportFixes, "export-fixes", "", "path to export the recorded fixes to")
	runCmd.Flags().BoolVar(&flagFixErrors, "fix-errors", false, "apply the suggested fixes in place")
	runCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", "directory where per-package logs are stored")
	runCmd.Flags().BoolVar(&flagUseColor, "use-color", false, "force colored diagnostics")
	runCmd.Flags().BoolVar(&flagOutputAll, "output-all", false, "show output even for clean files")
	runCmd.Flags().BoolVar(&flagNoBuildFilter, "no-build-filter", false, "analyze all discovered files, not only the compiled ones")
	runCmd.MarkFlagsMutuallyExclusive("tidy-config", "tidy-config-file")
	addSelectionFlags(runCmd)
	addSelectionFlags(listCmd)

	// never print messages
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	// load the config, setup logging
	rootCmd.PersistentPreRunE = initColtidy

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("coltidy failed", "err", err)
		os.Exit(1)
	}
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&flagPackages, "packages-select", nil, "only process the named packages")
	cmd.Flags().StringVar(&flagBasePath, "base-path", "", "only process packages below this directory")
}

var rootCmd = &cobra.Command{
	Use:   "coltidy",
	Short: "Run clang-tidy over the packages of a compiled colcon workspace",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "run discovers the workspace packages and runs clang-tidy on their sources",
	RunE:  doRun,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "list prints the packages a run would process, one per line",
	RunE:  doList,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "version provides the version of coltidy",
	Run: func(cmd *cobra.Command, args []string) {
		info, ok := debug.ReadBuildInfo()
		if !ok {
			fmt.Println("coltidy: version info not available")
			return
		}

		if configPath != "" {
			fmt.Printf("config:  %s\n", configPath)
		}
		fmt.Printf("coltidy: %s\n", info.Main.Version)
		fmt.Printf("go:      %s\n", info.GoVersion)
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				fmt.Printf("commit:  %s\n", s.Value)
			case "vcs.time":
				fmt.Printf("date:    %s\n", s.Value)
			case "vcs.modified":
				fmt.Printf("dirty:   %s\n", s.Value)
			}
		}
	},
}

func doRun(cmd *cobra.Command, _ []string) error {
	applyRunFlags(cmd)
	if err := config.Validate(); err != nil {
		return err
	}

	attrs := slog.Group("coltidy",
		slog.String("cmd", "run"),
		slog.Int("pid", os.Getpid()),
	)
	ctx := log.ContextAttrs(cmd.Context(), attrs)
	return service.Run(ctx, config, os.Stdout, os.Stderr)
}

func doList(cmd *cobra.Command, _ []string) error {
	config.Packages = flagPackages
	config.BasePath = flagBasePath

	attrs := slog.Group("coltidy",
		slog.String("cmd", "list"),
		slog.Int("pid", os.Getpid()),
	)
	ctx := log.ContextAttrs(cmd.Context(), attrs)
	return service.List(ctx, config, os.Stdout)
}

func initColtidy(cmd *cobra.Command, _ []string) error {
	if envConfig, ok := os.LookupEnv("COLTIDYCONFIG"); ok {
		configPath = envConfig
	} else if flagConfigFilePath != "" {
		configPath = flagConfigFilePath
	} else if exists("coltidy.yaml") {
		configPath = "coltidy.yaml"
	}

	if configPath == "" {
		config = model.DefaultConfig()
	} else {
		f, err := os.Open(configPath)
		if err != nil {
			return fmt.Errorf("opening config file: %w", err)
		}
		defer func() {
			_ = f.Close()
		}()
		config, err = model.LoadConfig(f)
		if err != nil {
			return fmt.Errorf("parsing config %s: %w", configPath, err)
		}
	}

	// --verbose has a precedence over config file
	if flagVerbose {
		config.Verbose = true
	}
	slog.SetDefault(log.New(config.Verbose))

	slog.Debug("coltidy starting", "configPath", configPath)
	return nil
}

// applyRunFlags overlays the run flags onto the file config. Only flags
// the user actually set may override file values.
func applyRunFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("tidy-cmd") {
		config.TidyCmd = flagTidyCmd
	}
	if flags.Changed("jobs") {
		config.Jobs = flagJobs
	}
	if flags.Changed("output-dir") {
		config.OutputDir = flagOutputDir
	}
	if flags.Changed("use-color") {
		config.UseColor = flagUseColor
	}
	if flags.Changed("output-all") {
		config.OutputAll = flagOutputAll
	}
	if flagNoBuildFilter {
		config.BuildFilter = false
	}
	config.TidyConfig = flagTidyConfig
	config.TidyConfigFile = flagTidyConfigFile
	config.FixErrors = flagFixErrors
	config.ExportFixes = flagExportFixes
	config.Packages = flagPackages
	config.BasePath = flagBasePath
}

func exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
