package executor

import (
	"errors"
	"fmt"
)

var (
	// ErrBatchAborted matches any *BatchAbortedError via errors.Is
	ErrBatchAborted = errors.New("batch aborted")

	// ErrNilJob indicates a nil Job was submitted
	ErrNilJob = errors.New("nil job")

	// ErrNilResult indicates a job returned a nil Result
	ErrNilResult = errors.New("job returned nil result")

	// ErrInvalidResult indicates a job returned a Result that is neither a
	// Success nor a Failure value, such as a pointer to one
	ErrInvalidResult = errors.New("job returned invalid result")

	// ErrNotStarted indicates a job was skipped because its batch was cancelled first
	ErrNotStarted = errors.New("job not started")

	// ErrUnspecified is used when a Failure is constructed without an error
	ErrUnspecified = errors.New("unspecified failure")
)

// FaultError is an infrastructure fault: the outcome of the task at Index could
// not be obtained, as opposed to the job's own logic failing
type FaultError struct {
	Index int
	Err   error
}

// Error implements the error interface
func (e *FaultError) Error() string {
	return fmt.Sprintf("task %d: %v", e.Index, e.Err)
}

// Unwrap returns the wrapped error for errors.Is/As compatibility
func (e *FaultError) Unwrap() error {
	return e.Err
}

// PanicError carries a value recovered from a panicking job
type PanicError struct {
	Value any
	Stack []byte
}

// Error implements the error interface
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// BatchAbortedError is the only error returned by FailFast.Execute.
// It identifies the job whose failure stopped the batch.
type BatchAbortedError struct {
	// BatchID identifies the aborted Execute call
	BatchID string

	// JobName is the failing job, or UnknownJob for infrastructure faults
	JobName string

	// Index is the failing job's position in the submitted batch
	Index int

	// Cause is the failure detail
	Cause error
}

// Error implements the error interface
func (e *BatchAbortedError) Error() string {
	return fmt.Sprintf("fail-fast on %s: %v", e.JobName, e.Cause)
}

// Unwrap returns the cause for errors.Is/As compatibility
func (e *BatchAbortedError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrBatchAborted
func (e *BatchAbortedError) Is(target error) bool {
	return target == ErrBatchAborted
}

// IsFault reports whether err is an infrastructure fault rather than a job failure
func IsFault(err error) bool {
	var fault *FaultError
	return errors.As(err, &fault)
}
