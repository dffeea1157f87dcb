package executor_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aryankumar/batchrun/internal/executor"
)

func fixed(name string, fail bool) executor.Job[string] {
	return executor.NewJob(name, func(ctx context.Context) (string, error) {
		if fail {
			return "", fmt.Errorf("%s failed", name)
		}
		return "OK", nil
	})
}

func report(r executor.Result[string]) {
	executor.Match(r,
		func(s executor.Success[string]) any {
			fmt.Println("SUCCESS", s.JobName())
			return nil
		},
		func(f executor.Failure[string]) any {
			fmt.Println("FAILURE", f.JobName(), "->", f.Err())
			return nil
		},
	)
}

// Example_collectAll runs every job and reports every outcome
func Example_collectAll() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jobs := []executor.Job[string]{fixed("Billing", false), fixed("Fraud", true), fixed("Limits", false)}

	results := executor.NewCollectAll[string](executor.WithLogger(logger)).Execute(context.Background(), jobs)
	for _, r := range results {
		report(r)
	}
	fmt.Println(executor.Summarize(results))

	// Output:
	// SUCCESS Billing
	// FAILURE Fraud -> Fraud failed
	// SUCCESS Limits
	// Total: 3, Successful: 2, Failed: 1
}

// Example_failFast stops the batch at the first failure in submission order
func Example_failFast() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jobs := []executor.Job[string]{fixed("Billing", false), fixed("Fraud", true), fixed("Limits", false)}

	_, err := executor.NewFailFast[string](executor.WithLogger(logger)).Execute(context.Background(), jobs)

	var aborted *executor.BatchAbortedError
	if errors.As(err, &aborted) {
		fmt.Println("Stopped:", aborted)
		fmt.Println("Index:", aborted.Index)
	}

	// Output:
	// Stopped: fail-fast on Fraud: Fraud failed
	// Index: 1
}
