package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/aryankumar/batchrun/internal/config"
	"github.com/aryankumar/batchrun/internal/executor"
	"github.com/aryankumar/batchrun/internal/jobs"
	"github.com/aryankumar/batchrun/internal/metrics"
	"github.com/aryankumar/batchrun/internal/output"
)

type runOptions struct {
	metricsFile string
	progress    bool
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the configured jobs as a batch",
		Long: `Run the configured jobs concurrently under the selected policy.

With --policy both (the default) the jobs run once with collect-all and then
again with fail-fast. Jobs come from the config file, or the built-in sample
jobs when none are configured.`,
		Example: `  # Run the sample jobs with both policies
  batchrun run

  # Reproduce a run
  batchrun run --seed 42

  # Fail fast with at most two jobs at a time
  batchrun run --policy fail-fast -p 2

  # Write Prometheus metrics for the node exporter textfile collector
  batchrun run -o json --metrics-file /var/lib/node_exporter/batchrun.prom`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatches(cmd, opts)
		},
	}

	cmd.Flags().String("policy", config.PolicyBoth, "completion policy (collect-all, fail-fast, both)")
	cmd.Flags().Uint64("seed", 0, "seed for the simulated jobs (0 picks a random seed)")
	cmd.Flags().StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics in text format to this file")
	cmd.Flags().BoolVar(&opts.progress, "progress", false, "print each result to stderr as it is joined")

	return cmd
}

func runBatches(cmd *cobra.Command, opts *runOptions) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := slog.Default()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	policies, err := config.ResolvePolicies(cfg.Defaults.Policy)
	if err != nil {
		return err
	}

	format, err := output.ParseFormat(cfg.Defaults.OutputFormat)
	if err != nil {
		return err
	}

	recorder, err := metrics.NewRecorder(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	specs := cfg.JobSpecs()
	builder := jobs.NewBuilder(cfg.Seed)

	reports := make([]output.Report, 0, len(policies))
	for _, policy := range policies {
		execOpts := []executor.Option{
			executor.WithLogger(logger),
			executor.WithLimit(cfg.Defaults.Limit),
			executor.WithObserver(recorder),
		}
		if opts.progress {
			execOpts = append(execOpts, executor.WithProgress(progressPrinter(cmd.ErrOrStderr(), policy)))
		}

		start := time.Now()
		results, err := executor.Run(ctx, policy, builder.Build(specs), execOpts...)
		reports = append(reports, output.NewReport(policy, results, err, time.Since(start)))

		if ctx.Err() != nil {
			break
		}
	}

	formatter := output.NewFormatter(format, output.WithNoColor(cfg.Defaults.NoColor))
	if err := formatter.FormatReports(cmd.OutOrStdout(), reports); err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if opts.metricsFile != "" {
		if err := recorder.WriteTextfile(opts.metricsFile); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		logger.Debug("wrote metrics", "file", opts.metricsFile)
	}

	if ctx.Err() != nil {
		return context.Cause(ctx)
	}
	return nil
}

// progressPrinter reports each joined result as "[policy i/n] job ok|failed: err"
func progressPrinter(w io.Writer, policy executor.Policy) func(executor.Progress) {
	return func(p executor.Progress) {
		if p.Err != nil {
			fmt.Fprintf(w, "[%s %d/%d] %s failed: %v\n", policy, p.Index+1, p.Total, p.JobName, p.Err)
			return
		}
		fmt.Fprintf(w, "[%s %d/%d] %s ok\n", policy, p.Index+1, p.Total, p.JobName)
	}
}
