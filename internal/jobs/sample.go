package jobs

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/aryankumar/batchrun/internal/executor"
)

// ErrSimulated matches every simulated job failure via errors.Is
var ErrSimulated = errors.New("simulated failure")

// Spec describes a simulated job
type Spec struct {
	Name        string
	MinDelay    time.Duration
	MaxDelay    time.Duration
	FailureRate float64
	Value       string
}

// Defaults returns the built-in sample jobs
func Defaults() []Spec {
	names := []string{"Billing", "Fraud", "Limits", "KYC"}

	specs := make([]Spec, len(names))
	for i, name := range names {
		specs[i] = Spec{
			Name:        name,
			MinDelay:    300 * time.Millisecond,
			MaxDelay:    800 * time.Millisecond,
			FailureRate: 0.5,
			Value:       "OK",
		}
	}
	return specs
}

// FailureError is returned by a simulated job that was drawn to fail
type FailureError struct {
	Job string
}

// Error implements the error interface
func (e *FailureError) Error() string {
	return e.Job + " failed"
}

// Is reports whether target is ErrSimulated
func (e *FailureError) Is(target error) bool {
	return target == ErrSimulated
}

// Simulated is a job with a predetermined delay and outcome
type Simulated struct {
	name  string
	value string
	delay time.Duration
	fail  bool
}

var _ executor.Job[string] = (*Simulated)(nil)

// Name returns the job name
func (s *Simulated) Name() string { return s.name }

// Delay returns how long the job sleeps before reporting
func (s *Simulated) Delay() time.Duration { return s.delay }

// WillFail reports whether the job was drawn to fail
func (s *Simulated) WillFail() bool { return s.fail }

// Execute sleeps for the job's delay and reports its outcome.
// If ctx is cancelled first, the job stops early and reports a Failure.
func (s *Simulated) Execute(ctx context.Context) executor.Result[string] {
	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return executor.NewFailure[string](s.name, fmt.Errorf("%s interrupted: %w", s.name, context.Cause(ctx)))
	case <-timer.C:
	}

	if s.fail {
		return executor.NewFailure[string](s.name, &FailureError{Job: s.name})
	}
	return executor.NewSuccess(s.name, s.value)
}

// Builder draws delays and outcomes for simulated jobs from a seeded source.
// A Builder is not safe for concurrent use.
type Builder struct {
	rng *rand.Rand
}

// NewBuilder creates a Builder. A zero seed picks a random one.
func NewBuilder(seed uint64) *Builder {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &Builder{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Job draws a simulated job from spec
func (b *Builder) Job(spec Spec) *Simulated {
	delay := spec.MinDelay
	if spread := spec.MaxDelay - spec.MinDelay; spread > 0 {
		delay += time.Duration(b.rng.Int64N(int64(spread) + 1))
	}

	return &Simulated{
		name:  spec.Name,
		value: spec.Value,
		delay: delay,
		fail:  b.rng.Float64() < spec.FailureRate,
	}
}

// Build draws one job per spec, in order
func (b *Builder) Build(specs []Spec) []executor.Job[string] {
	built := make([]executor.Job[string], len(specs))
	for i, spec := range specs {
		built[i] = b.Job(spec)
	}
	return built
}
