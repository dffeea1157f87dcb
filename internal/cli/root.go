package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aryankumar/batchrun/internal/config"
)

var (
	cfgFile string
)

// Execute runs the root command with the provided context
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// newRootCmd creates the root command
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "batchrun",
		Short: "Batchrun - concurrent job batches with collect-all and fail-fast policies",
		Long: `Batchrun runs a batch of independent jobs concurrently and reports their
results in submission order.

With the collect-all policy every job runs to completion and every outcome is
reported. With the fail-fast policy the first failure found in submission order
cancels the remaining jobs and stops the batch.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.batchrun.yaml or $HOME/.batchrun.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "output format (text, table, json, yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output with debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	rootCmd.PersistentFlags().IntP("limit", "p", 0, "maximum number of jobs running at once (0 means no bound)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newJobsCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// loadConfig reads the config file and environment, with explicitly set flags
// of cmd taking precedence
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	mgr := config.NewManager(cfgFile)
	if err := mgr.BindFlags(cmd.Flags()); err != nil {
		return nil, err
	}

	cfg, err := mgr.Load()
	if err != nil {
		return nil, err
	}

	slog.Debug("loaded configuration",
		"file", mgr.ConfigPath(),
		"policy", cfg.Defaults.Policy,
		"limit", cfg.Defaults.Limit,
		"jobs", len(cfg.JobSpecs()))
	return cfg, nil
}

// setupLogging configures structured logging with slog
func setupLogging(cmd *cobra.Command) {
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logLevel := slog.LevelWarn
	if verbose {
		logLevel = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	var handler slog.Handler
	if noColor {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	slog.SetDefault(slog.New(handler))

	if verbose {
		slog.Debug("verbose logging enabled")
	}
}
