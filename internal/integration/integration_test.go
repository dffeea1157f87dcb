package integration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/aryankumar/batchrun/internal/config"
	"github.com/aryankumar/batchrun/internal/executor"
	"github.com/aryankumar/batchrun/internal/jobs"
	"github.com/aryankumar/batchrun/internal/metrics"
	"github.com/aryankumar/batchrun/internal/output"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createTestConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "batchrun.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const workflowConfig = `
seed: 11
defaults:
  policy: both
  limit: 2
jobs:
  - name: Billing
    minDelay: 5ms
    maxDelay: 20ms
  - name: Fraud
    minDelay: 5ms
    maxDelay: 20ms
    failureRate: 1
  - name: Limits
    minDelay: 5ms
    maxDelay: 20ms
  - name: KYC
    minDelay: 5ms
    maxDelay: 20ms
`

// TestFullWorkflow runs config loading, job building, both executors,
// metrics, tracing and output together
func TestFullWorkflow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	cfg, err := config.NewManager(createTestConfig(t, workflowConfig)).Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	policies, err := config.ResolvePolicies(cfg.Defaults.Policy)
	if err != nil {
		t.Fatalf("failed to resolve policies: %v", err)
	}

	recorder, err := metrics.NewRecorder(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("failed to create recorder: %v", err)
	}

	sr := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr)).Tracer("integration")

	builder := jobs.NewBuilder(cfg.Seed)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reports []output.Report
	for _, policy := range policies {
		start := time.Now()
		results, err := executor.Run(ctx, policy, builder.Build(cfg.JobSpecs()),
			executor.WithLogger(quietLogger()),
			executor.WithLimit(cfg.Defaults.Limit),
			executor.WithObserver(recorder),
			executor.WithTracer(tracer),
		)
		reports = append(reports, output.NewReport(policy, results, err, time.Since(start)))
	}

	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}

	collect := reports[0]
	if collect.Summary != (executor.Summary{Total: 4, Successful: 3, Failed: 1}) {
		t.Errorf("collect-all summary = %+v", collect.Summary)
	}
	if collect.Results[1].Job != "Fraud" || collect.Results[1].Status != output.StatusFailure {
		t.Errorf("expected Fraud to fail at index 1, got %+v", collect.Results[1])
	}

	failFast := reports[1]
	if failFast.Stopped == nil || failFast.Stopped.Job != "Fraud" {
		t.Fatalf("expected fail-fast to stop on Fraud, got %+v", failFast.Stopped)
	}

	// Two batch spans, four collect-all job spans, and at least the two fail-fast
	// jobs joined before the abort
	if got := len(sr.Ended()); got < 8 {
		t.Errorf("expected at least 8 spans, got %d", got)
	}

	if got := jobCount(t, recorder, "collect-all", "Fraud", "failure"); got != 1 {
		t.Errorf("collect-all Fraud failures = %v, want 1", got)
	}

	var buf bytes.Buffer
	if err := output.NewFormatter(output.FormatText, output.WithNoColor(true)).FormatReports(&buf, reports); err != nil {
		t.Fatalf("failed to format reports: %v", err)
	}
	want := "=== COLLECT ALL ===\n" +
		"SUCCESS Billing\n" +
		"FAILURE Fraud -> Fraud failed\n" +
		"SUCCESS Limits\n" +
		"SUCCESS KYC\n" +
		"\n" +
		"=== FAIL FAST ===\n" +
		"Stopped: fail-fast on Fraud: Fraud failed\n"
	if buf.String() != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

// jobCount reads batchrun_jobs_total for one label set from the registry
func jobCount(t *testing.T, r *metrics.Recorder, policy, job, status string) float64 {
	t.Helper()

	families, err := r.Registry().Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	var total float64
	for _, mf := range families {
		if mf.GetName() != "batchrun_jobs_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := map[string]string{}
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if labels["policy"] == policy && labels["job"] == job && labels["status"] == status {
				total += m.GetCounter().GetValue()
			}
		}
	}
	return total
}

// TestContextCancellation cancels the parent context while a batch is running
func TestContextCancellation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	specs := []jobs.Spec{
		{Name: "slow-1", MinDelay: 10 * time.Second, MaxDelay: 10 * time.Second},
		{Name: "slow-2", MinDelay: 10 * time.Second, MaxDelay: 10 * time.Second},
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(50*time.Millisecond, cancel)

	start := time.Now()
	results := executor.NewCollectAll[string](executor.WithLogger(quietLogger())).
		Execute(ctx, jobs.NewBuilder(1).Build(specs))

	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancellation was not honored, took %v", elapsed)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	for _, r := range results {
		if r.IsSuccess() {
			t.Errorf("expected %s to fail after cancellation", r.JobName())
		}
	}
}

// TestConcurrentBatches runs several batches on one executor at once
func TestConcurrentBatches(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	recorder, err := metrics.NewRecorder(nil)
	if err != nil {
		t.Fatalf("failed to create recorder: %v", err)
	}

	exec := executor.NewFailFast[string](
		executor.WithLogger(quietLogger()),
		executor.WithObserver(recorder),
	)

	specs := []jobs.Spec{
		{Name: "a", MaxDelay: 5 * time.Millisecond, Value: "a"},
		{Name: "b", MaxDelay: 5 * time.Millisecond, Value: "b"},
		{Name: "c", MaxDelay: 5 * time.Millisecond, Value: "c"},
	}

	const batches = 20
	var wg sync.WaitGroup
	errs := make(chan error, batches)

	for i := 0; i < batches; i++ {
		wg.Add(1)
		go func(seed uint64) {
			defer wg.Done()

			results, err := exec.Execute(context.Background(), jobs.NewBuilder(seed).Build(specs))
			if err != nil {
				errs <- err
				return
			}
			if got := executor.Values(results); len(got) != 3 || got[0] != "a" || got[2] != "c" {
				errs <- errors.New("results out of order")
			}
		}(uint64(i + 1))
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("batch failed: %v", err)
	}

	got, err := testutil.GatherAndCount(recorder.Registry(), "batchrun_jobs_total")
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3 job series, got %d", got)
	}
}
