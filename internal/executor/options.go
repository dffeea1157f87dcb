package executor

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation scope name for executor spans
const tracerName = "github.com/aryankumar/batchrun/internal/executor"

// Progress describes one result as it is joined by an executor
type Progress struct {
	// Index is the job's position in the submitted batch
	Index int

	// Total is the batch size
	Total int

	// JobName is the name carried by the joined result
	JobName string

	// Err is the failure detail, nil for a success
	Err error
}

// Observer receives execution measurements.
// ObserveJob is called from task goroutines and must be safe for concurrent use.
type Observer interface {
	// ObserveJob is called once for every job that was started
	ObserveJob(policy Policy, jobName string, err error, elapsed time.Duration)

	// ObserveBatch is called once per Execute call, after all tasks have been drained
	ObserveBatch(policy Policy, size int, aborted bool, elapsed time.Duration)
}

// Option configures an executor
type Option func(*options)

type options struct {
	logger   *slog.Logger
	limit    int
	tracer   trace.Tracer
	observer Observer
	progress func(Progress)
}

// WithLogger sets the logger used for batch and task events
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLimit bounds the number of jobs running at once.
// Zero or a negative value means one goroutine per job with no bound.
func WithLimit(limit int) Option {
	return func(o *options) {
		o.limit = limit
	}
}

// WithTracer sets the tracer used for batch and job spans.
// By default the global OTel TracerProvider is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) {
		o.tracer = tracer
	}
}

// WithObserver registers an Observer for job and batch measurements
func WithObserver(observer Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithProgress registers a callback invoked on the calling goroutine for every
// joined result, in submission order
func WithProgress(fn func(Progress)) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func newOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.tracer == nil {
		o.tracer = otel.Tracer(tracerName)
	}
	if o.observer == nil {
		o.observer = nopObserver{}
	}
	if o.limit < 0 {
		o.limit = 0
	}

	return o
}

type nopObserver struct{}

func (nopObserver) ObserveJob(Policy, string, error, time.Duration)  {}
func (nopObserver) ObserveBatch(Policy, int, bool, time.Duration) {}
