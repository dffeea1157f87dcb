package executor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func succeeds(name string) Job[string] {
	return JobFunc[string](func(ctx context.Context) Result[string] {
		return NewSuccess(name, name+"-ok")
	})
}

func fails(name string) Job[string] {
	return JobFunc[string](func(ctx context.Context) Result[string] {
		return NewFailure[string](name, errors.New(name+" failed"))
	})
}

func after(d time.Duration, job Job[string]) Job[string] {
	return JobFunc[string](func(ctx context.Context) Result[string] {
		time.Sleep(d)
		return job.Execute(ctx)
	})
}

// blocksUntilCancelled signals started and then waits for ctx, reporting the cause
func blocksUntilCancelled(name string, started chan<- struct{}, cause chan<- error) Job[string] {
	return JobFunc[string](func(ctx context.Context) Result[string] {
		if started != nil {
			close(started)
		}
		<-ctx.Done()
		if cause != nil {
			cause <- context.Cause(ctx)
		}
		return NewFailure[string](name, ctx.Err())
	})
}

type recordedJob struct {
	policy Policy
	name   string
	err    error
}

type recordingObserver struct {
	mu      sync.Mutex
	jobs    []recordedJob
	batches int
	aborted bool
	size    int
}

func (o *recordingObserver) ObserveJob(policy Policy, jobName string, err error, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.jobs = append(o.jobs, recordedJob{policy: policy, name: jobName, err: err})
}

func (o *recordingObserver) ObserveBatch(_ Policy, size int, aborted bool, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.batches++
	o.size = size
	o.aborted = aborted
}

// outcome renders a result for comparisons
func outcome[T any](r Result[T]) string {
	return Match(r,
		func(s Success[T]) string { return "ok:" + s.JobName() },
		func(f Failure[T]) string { return "fail:" + f.JobName() },
	)
}

func outcomes[T any](results []Result[T]) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = outcome[T](r)
	}
	return out
}
