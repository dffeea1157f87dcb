package executor

import "context"

// FailFast runs a batch concurrently and aborts it on the first failure found
// while joining results in submission order.
//
// Joining follows submission order, not completion order: a fast failure at a
// later index is only noticed once every earlier job has been joined, and the
// error always blames the lowest-indexed failure among those joined.
type FailFast[T any] struct {
	opts options
}

// NewFailFast creates a fail-fast executor
func NewFailFast[T any](opts ...Option) *FailFast[T] {
	return &FailFast[T]{opts: newOptions(opts)}
}

// Execute submits all jobs concurrently and joins them in submission order.
// If every job succeeds it returns all results in order. Otherwise it cancels the
// outstanding jobs and returns a *BatchAbortedError with no results. Cancellation
// is cooperative: Execute returns once every started job has returned.
func (e *FailFast[T]) Execute(ctx context.Context, jobs []Job[T]) ([]Result[T], error) {
	s := newScope[T](ctx, PolicyFailFast, len(jobs), &e.opts)
	defer s.close()

	tasks := s.submit(jobs)

	results := make([]Result[T], 0, len(jobs))
	for _, t := range tasks {
		result := s.join(t)

		err := Match(result,
			func(Success[T]) error {
				results = append(results, result)
				return nil
			},
			func(f Failure[T]) error {
				return s.abort(t.index, f)
			},
		)
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
