package cmd

import (
	"fmt"
	"os"

	"github.com/MehmetMelik/steq/packages/core/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var (
	// logger is replaced in PersistentPreRunE. Commands invoked directly
	// (tests) log nowhere.
	logger = zap.NewNop()

	// cfg is the file configuration merged with global flag overrides.
	cfg = config.DefaultConfig()

	configFlag  string
	verboseFlag bool
	noColorFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "steq",
	Short: "Resolve and export HTTP requests as shell snippets.",
	Long: `steq works with saved HTTP request documents. It fills in {{variable}}
placeholders from environment files, .env files and the process environment,
and renders the result as a curl, wget, fetch or HTTPie snippet.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.LoadConfig(configFlag)
		if err != nil {
			return withExitCode(ExitConfigError, err)
		}
		cfg = loaded.Merge(globalOverrides(cmd))

		zc := zap.NewProductionConfig()
		if cfg.GetVerbose() {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		l, err := zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		logger.Debug("configuration loaded",
			zap.String("config", configFlag),
			zap.String("defaultFormat", cfg.DefaultFormat),
			zap.Bool("noColor", cfg.GetNoColor()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the root command and exits with the code mapped from its error.
func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", getEnvString("STEQ_CONFIG", ""), "Path to config file (env: STEQ_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", getEnvBool("STEQ_VERBOSE", false), "Verbose output and debug logging (env: STEQ_VERBOSE)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", getEnvBool("STEQ_NO_COLOR", false), "Disable colored output (env: STEQ_NO_COLOR)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(varsCmd)
	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// globalOverrides returns the persistent flags that were given explicitly,
// on the command line or through their environment variable.
func globalOverrides(cmd *cobra.Command) *config.Config {
	o := &config.Config{}
	if flagSet(cmd, "verbose", "STEQ_VERBOSE") {
		o.Verbose = config.BoolPtr(verboseFlag)
	}
	if flagSet(cmd, "no-color", "STEQ_NO_COLOR") {
		o.NoColor = config.BoolPtr(noColorFlag)
	}
	return o
}

// flagSet reports whether a flag was changed on the command line or has its
// environment variable set.
func flagSet(cmd *cobra.Command, name, envKey string) bool {
	if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
		return true
	}
	return os.Getenv(envKey) != ""
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
