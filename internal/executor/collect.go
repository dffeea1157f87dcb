package executor

import "context"

// CollectAll runs every job in a batch to completion and reports every outcome.
// One job's failure never affects another.
type CollectAll[T any] struct {
	opts options
}

// NewCollectAll creates a collect-all executor
func NewCollectAll[T any](opts ...Option) *CollectAll[T] {
	return &CollectAll[T]{opts: newOptions(opts)}
}

// Execute submits all jobs concurrently and joins them in submission order.
// The returned slice has one Result per job, at the job's index. Execute never
// fails: a task whose outcome cannot be obtained yields a Failure named UnknownJob.
func (e *CollectAll[T]) Execute(ctx context.Context, jobs []Job[T]) []Result[T] {
	s := newScope[T](ctx, PolicyCollectAll, len(jobs), &e.opts)
	defer s.close()

	tasks := s.submit(jobs)

	results := make([]Result[T], 0, len(jobs))
	for _, t := range tasks {
		results = append(results, s.join(t))
	}

	return results
}
