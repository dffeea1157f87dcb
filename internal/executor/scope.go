package executor

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// scope owns every goroutine spawned by one Execute call.
// It is acquired on entry and released by close on every exit path.
type scope[T any] struct {
	ctx    context.Context
	cancel context.CancelCauseFunc
	group  errgroup.Group
	span   trace.Span

	opts    *options
	logger  *slog.Logger
	policy  Policy
	batchID string
	total   int
	begun   time.Time

	// Closed once every task has been handed to group, nil without a limit
	submitted chan struct{}

	// Updated only by the joining goroutine
	succeeded int
	failed    int
	aborted   *BatchAbortedError
}

// task is the handle of one submitted job
type task[T any] struct {
	index  int
	done   chan struct{}
	result Result[T]
	fault  error
}

func newScope[T any](parent context.Context, policy Policy, total int, opts *options) *scope[T] {
	batchID := uuid.NewString()

	ctx, span := opts.tracer.Start(parent, "batchrun.batch",
		trace.WithAttributes(
			attribute.String("batchrun.batch.id", batchID),
			attribute.String("batchrun.policy", string(policy)),
			attribute.Int("batchrun.batch.size", total),
			attribute.Int("batchrun.limit", opts.limit),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	ctx, cancel := context.WithCancelCause(ctx)

	s := &scope[T]{
		ctx:     ctx,
		cancel:  cancel,
		span:    span,
		opts:    opts,
		logger:  opts.logger.With("batch_id", batchID, "policy", string(policy)),
		policy:  policy,
		batchID: batchID,
		total:   total,
		begun:   time.Now(),
	}
	if opts.limit > 0 {
		s.group.SetLimit(opts.limit)
	}

	s.logger.Info("starting batch", "jobs", total, "limit", opts.limit)
	return s
}

// submit creates one task per job, in order, and starts them. Without a limit
// every task starts before submit returns. With a limit, tasks are started by a
// submitter goroutine as slots free up, so the caller can join and abort while
// later tasks are still queued.
func (s *scope[T]) submit(jobs []Job[T]) []*task[T] {
	tasks := make([]*task[T], len(jobs))
	for i := range jobs {
		tasks[i] = &task[T]{index: i, done: make(chan struct{})}
	}

	if s.opts.limit <= 0 {
		for i, job := range jobs {
			s.start(tasks[i], job)
		}
		return tasks
	}

	s.submitted = make(chan struct{})
	go func() {
		defer close(s.submitted)
		for i, job := range jobs {
			s.start(tasks[i], job)
		}
	}()
	return tasks
}

// start hands t to the group, blocking while the group is at its limit
func (s *scope[T]) start(t *task[T], job Job[T]) {
	if job == nil {
		t.fault = ErrNilJob
		close(t.done)
		return
	}

	s.group.Go(func() error {
		s.run(t, job)
		return nil
	})
	s.logger.Debug("task submitted", "index", t.index)
}

// run executes a job on a task goroutine
func (s *scope[T]) run(t *task[T], job Job[T]) {
	defer close(t.done)

	if s.ctx.Err() != nil {
		t.fault = fmt.Errorf("%w: %w", ErrNotStarted, context.Cause(s.ctx))
		return
	}

	ctx, span := s.opts.tracer.Start(s.ctx, "batchrun.job",
		trace.WithAttributes(
			attribute.String("batchrun.batch.id", s.batchID),
			attribute.Int("batchrun.job.index", t.index),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			t.fault = &PanicError{Value: r, Stack: debug.Stack()}
		}
		s.finishTask(span, t, time.Since(start))
	}()

	t.result, t.fault = normalize[T](job.Execute(ctx))
}

// normalize accepts only the two Result variants, rebuilt through their
// constructors so zero-value names and errors are filled in
func normalize[T any](r Result[T]) (Result[T], error) {
	switch v := r.(type) {
	case nil:
		return nil, ErrNilResult
	case Success[T]:
		return NewSuccess(v.jobName, v.value), nil
	case Failure[T]:
		return NewFailure[T](v.jobName, v.err), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidResult, r)
	}
}

func (s *scope[T]) finishTask(span trace.Span, t *task[T], elapsed time.Duration) {
	defer span.End()

	var (
		name = UnknownJob
		err  error
	)
	if t.fault != nil {
		err = &FaultError{Index: t.index, Err: t.fault}
	} else {
		name, err = t.result.JobName(), t.result.Err()
	}

	span.SetAttributes(attribute.String("batchrun.job.name", name))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	s.opts.observer.ObserveJob(s.policy, name, err, elapsed)
	s.logger.Debug("task finished",
		"index", t.index,
		"job", name,
		"success", err == nil,
		"duration", elapsed)
}

// join waits for t in the calling goroutine. An outcome that cannot be obtained
// is returned as a Failure named UnknownJob carrying a *FaultError.
func (s *scope[T]) join(t *task[T]) Result[T] {
	result, err := t.await(s.ctx)
	if err != nil {
		s.logger.Warn("task outcome unavailable", "index", t.index, "error", err)
		result = NewFailure[T](UnknownJob, err)
	}

	if result.IsSuccess() {
		s.succeeded++
	} else {
		s.failed++
	}

	if s.opts.progress != nil {
		s.opts.progress(Progress{
			Index:   t.index,
			Total:   s.total,
			JobName: result.JobName(),
			Err:     result.Err(),
		})
	}

	return result
}

// abort cancels all outstanding tasks with the returned error as cause
func (s *scope[T]) abort(index int, failure Failure[T]) *BatchAbortedError {
	err := &BatchAbortedError{
		BatchID: s.batchID,
		JobName: failure.JobName(),
		Index:   index,
		Cause:   failure.Err(),
	}
	s.aborted = err
	s.cancel(err)

	s.logger.Warn("aborting batch", "index", index, "job", err.JobName, "error", err.Cause)
	return err
}

// close cancels the scope and waits for every task goroutine to return.
// Jobs that ignore cancellation delay close until they finish.
func (s *scope[T]) close() {
	s.cancel(context.Canceled)
	if s.submitted != nil {
		<-s.submitted
	}
	_ = s.group.Wait()

	elapsed := time.Since(s.begun)
	aborted := s.aborted != nil

	s.span.SetAttributes(
		attribute.Int("batchrun.batch.succeeded", s.succeeded),
		attribute.Int("batchrun.batch.failed", s.failed),
		attribute.Bool("batchrun.batch.aborted", aborted),
	)
	if aborted {
		s.span.RecordError(s.aborted)
		s.span.SetStatus(codes.Error, s.aborted.Error())
	} else {
		s.span.SetStatus(codes.Ok, "")
	}
	s.span.End()

	s.opts.observer.ObserveBatch(s.policy, s.total, aborted, elapsed)
	s.logger.Info("batch completed",
		"total", s.total,
		"successful", s.succeeded,
		"failed", s.failed,
		"aborted", aborted,
		"duration", elapsed)
}

// await blocks until the task is done or ctx is cancelled.
// A finished task is preferred over a cancelled context.
func (t *task[T]) await(ctx context.Context) (Result[T], error) {
	select {
	case <-t.done:
	default:
		select {
		case <-t.done:
		case <-ctx.Done():
			return nil, &FaultError{Index: t.index, Err: context.Cause(ctx)}
		}
	}

	if t.fault != nil {
		return nil, &FaultError{Index: t.index, Err: t.fault}
	}
	return t.result, nil
}
