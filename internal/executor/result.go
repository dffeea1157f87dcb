package executor

import "fmt"

// UnknownJob is the job name used when the originating job cannot be identified,
// e.g. when a task's outcome could not be retrieved at all.
const UnknownJob = "unknown"

// Result is the outcome of running a single job.
// It is a closed sum type: the only implementations are Success and Failure.
type Result[T any] interface {
	// JobName returns the name of the job that produced this result
	JobName() string

	// Err returns the failure detail, or nil for a Success
	Err() error

	// IsSuccess reports whether the result is a Success
	IsSuccess() bool

	sealed()
}

// Success is the Result of a job that completed normally
type Success[T any] struct {
	jobName string
	value   T
}

// Failure is the Result of a job whose own logic failed, or of a task whose
// outcome could not be obtained
type Failure[T any] struct {
	jobName string
	err     error
}

// NewSuccess creates a Success result. An empty job name is replaced with UnknownJob.
func NewSuccess[T any](jobName string, value T) Success[T] {
	return Success[T]{jobName: nameOrUnknown(jobName), value: value}
}

// NewFailure creates a Failure result. An empty job name is replaced with UnknownJob
// and a nil error with ErrUnspecified.
func NewFailure[T any](jobName string, err error) Failure[T] {
	if err == nil {
		err = ErrUnspecified
	}
	return Failure[T]{jobName: nameOrUnknown(jobName), err: err}
}

// JobName returns the name of the job that produced this result
func (s Success[T]) JobName() string { return nameOrUnknown(s.jobName) }

// Value returns the value produced by the job
func (s Success[T]) Value() T { return s.value }

// Err always returns nil for a Success
func (s Success[T]) Err() error { return nil }

// IsSuccess always returns true for a Success
func (s Success[T]) IsSuccess() bool { return true }

func (s Success[T]) sealed() {}

// String returns a human-readable representation of the result
func (s Success[T]) String() string {
	return fmt.Sprintf("Success(%s: %v)", s.JobName(), s.value)
}

// JobName returns the name of the job that produced this result
func (f Failure[T]) JobName() string { return nameOrUnknown(f.jobName) }

// Err returns the failure detail, never nil
func (f Failure[T]) Err() error {
	if f.err == nil {
		return ErrUnspecified
	}
	return f.err
}

// IsSuccess always returns false for a Failure
func (f Failure[T]) IsSuccess() bool { return false }

func (f Failure[T]) sealed() {}

// String returns a human-readable representation of the result
func (f Failure[T]) String() string {
	return fmt.Sprintf("Failure(%s: %v)", f.JobName(), f.Err())
}

// Match consumes r exhaustively, calling onSuccess or onFailure depending on its variant.
// It panics if r is nil or a pointer to a variant. Results returned by the
// executors are always one of the two values.
func Match[T, R any](r Result[T], onSuccess func(Success[T]) R, onFailure func(Failure[T]) R) R {
	switch v := r.(type) {
	case Success[T]:
		return onSuccess(v)
	case Failure[T]:
		return onFailure(v)
	default:
		panic(fmt.Sprintf("executor: unexpected result %T", r))
	}
}

func nameOrUnknown(name string) string {
	if name == "" {
		return UnknownJob
	}
	return name
}
