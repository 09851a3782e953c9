package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/backdrop/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	seed       uint64

	// Loaded in PersistentPreRunE
	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "backdrop",
	Short: "Procedural background animations",
	Long: `backdrop renders decorative particle scenes: converging spear streams,
a rippling neural cloud, circuit-board traces and falling glyph rain.

Scenes run in a window (run), in the terminal (term), or under a script
that jumps the clock and writes screenshots (capture).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("seed") {
			cfg.Seed = seed
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}
		logger, err = newLogger(cfg.Logging, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newLogger builds a production or development zap logger at the configured
// level. verbose forces debug.
func newLogger(lc config.LoggingConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if lc.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "backdrop.yaml", "Config file (missing file uses defaults)")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "Generation seed (0 = random layout)")

	captureCmd.Flags().StringVar(&scriptPath, "script", "", "Script file (JSON or YAML, required)")
	captureCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Play the script without opening a window")
	_ = captureCmd.MarkFlagRequired("script")

	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(termCmd)
	rootCmd.AddCommand(captureCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
