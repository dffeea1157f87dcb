package executor

import (
	"context"
	"runtime/debug"
)

// Job is a unit of work that always produces exactly one Result.
// Implementations must not let faults escape: errors and panics are reported
// as a Failure carrying the job's name.
//
// ctx is cancelled when the job's batch is aborted. Long-running jobs should
// check ctx.Done() at safe points and return early.
type Job[T any] interface {
	Execute(ctx context.Context) Result[T]
}

// JobFunc adapts an ordinary function to the Job interface
type JobFunc[T any] func(ctx context.Context) Result[T]

// Execute calls f(ctx)
func (f JobFunc[T]) Execute(ctx context.Context) Result[T] {
	return f(ctx)
}

// NamedJob is a Job built by NewJob
type NamedJob[T any] struct {
	name string
	fn   func(ctx context.Context) (T, error)
}

// NewJob wraps fn as a total Job: a returned error becomes a Failure, and a panic
// is recovered into a Failure carrying a *PanicError.
func NewJob[T any](name string, fn func(ctx context.Context) (T, error)) *NamedJob[T] {
	return &NamedJob[T]{name: nameOrUnknown(name), fn: fn}
}

// Name returns the job name used in its results
func (j *NamedJob[T]) Name() string {
	return j.name
}

// Execute runs the wrapped function
func (j *NamedJob[T]) Execute(ctx context.Context) (result Result[T]) {
	defer func() {
		if r := recover(); r != nil {
			result = NewFailure[T](j.name, &PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	value, err := j.fn(ctx)
	if err != nil {
		return NewFailure[T](j.name, err)
	}
	return NewSuccess(j.name, value)
}
