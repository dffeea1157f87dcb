// Package executor runs batches of independent jobs concurrently under one of two
// completion policies.
//
// # Results
//
// Every job produces exactly one Result, which is either a Success carrying a
// value or a Failure carrying an error. Both variants carry the job name:
//
//	for _, r := range results {
//	    executor.Match(r,
//	        func(s executor.Success[string]) any { fmt.Println("SUCCESS", s.JobName()); return nil },
//	        func(f executor.Failure[string]) any { fmt.Println("FAILURE", f.JobName(), f.Err()); return nil },
//	    )
//	}
//
// # Jobs
//
// A Job must never let a fault escape. NewJob wraps a plain function so that
// returned errors and panics become Failures:
//
//	job := executor.NewJob("billing", func(ctx context.Context) (string, error) {
//	    return charge(ctx)
//	})
//
// # Policies
//
// CollectAll runs every job and returns one Result per job, in submission order.
// It never returns an error.
//
// FailFast returns all results when every job succeeds. On the first Failure
// found while joining in submission order it cancels the remaining jobs and
// returns a *BatchAbortedError instead. A failure at a later index is only
// noticed after all earlier jobs have been joined.
//
// # Concurrency
//
// Each job runs on its own goroutine. WithLimit sets an explicit bound on jobs
// in flight. Every Execute call owns its goroutines: on return all of them have
// exited. Cancellation is cooperative through the ctx passed to Job.Execute.
// Jobs that ignore it run to completion and delay the return of Execute.
//
// # Observability
//
// Executors log through log/slog (WithLogger), open OpenTelemetry spans for
// batches and jobs (WithTracer), and report measurements to an Observer
// (WithObserver). WithProgress receives every joined result in order.
package executor
