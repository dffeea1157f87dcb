package executor

import (
	"fmt"
	"strings"
)

// CountSuccessful returns the number of successful results
func CountSuccessful[T any](results []Result[T]) int {
	count := 0
	for _, r := range results {
		if r.IsSuccess() {
			count++
		}
	}
	return count
}

// CountFailed returns the number of failed results
func CountFailed[T any](results []Result[T]) int {
	return len(results) - CountSuccessful(results)
}

// FilterSuccessful returns only the successful results
func FilterSuccessful[T any](results []Result[T]) []Success[T] {
	filtered := make([]Success[T], 0, len(results))
	for _, r := range results {
		if s, ok := r.(Success[T]); ok {
			filtered = append(filtered, s)
		}
	}
	return filtered
}

// FilterFailed returns only the failed results
func FilterFailed[T any](results []Result[T]) []Failure[T] {
	filtered := make([]Failure[T], 0, len(results))
	for _, r := range results {
		if f, ok := r.(Failure[T]); ok {
			filtered = append(filtered, f)
		}
	}
	return filtered
}

// Values extracts the values of successful results, in order
func Values[T any](results []Result[T]) []T {
	values := make([]T, 0, len(results))
	for _, s := range FilterSuccessful(results) {
		values = append(values, s.Value())
	}
	return values
}

// Errors extracts all errors from failed results
func Errors[T any](results []Result[T]) []error {
	errs := make([]error, 0)
	for _, f := range FilterFailed(results) {
		errs = append(errs, f.Err())
	}
	return errs
}

// JobNames returns the job name of every result, in order
func JobNames[T any](results []Result[T]) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.JobName()
	}
	return names
}

// HasErrors returns true if any result is a Failure
func HasErrors[T any](results []Result[T]) bool {
	return CountFailed(results) > 0
}

// AllSuccessful returns true if every result is a Success
func AllSuccessful[T any](results []Result[T]) bool {
	return !HasErrors(results)
}

// SuccessRate returns the success rate as a percentage (0.0 to 100.0)
func SuccessRate[T any](results []Result[T]) float64 {
	if len(results) == 0 {
		return 0.0
	}
	return float64(CountSuccessful(results)) / float64(len(results)) * 100.0
}

// Summary provides a summary of execution results
type Summary struct {
	Total      int `json:"total" yaml:"total"`
	Successful int `json:"successful" yaml:"successful"`
	Failed     int `json:"failed" yaml:"failed"`
}

// Summarize creates a summary of the results
func Summarize[T any](results []Result[T]) Summary {
	successful := CountSuccessful(results)
	return Summary{
		Total:      len(results),
		Successful: successful,
		Failed:     len(results) - successful,
	}
}

// String returns a human-readable string representation of the summary
func (s Summary) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total: %d, ", s.Total))
	sb.WriteString(fmt.Sprintf("Successful: %d, ", s.Successful))
	sb.WriteString(fmt.Sprintf("Failed: %d", s.Failed))

	return sb.String()
}
