// Package metrics records executor measurements as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aryankumar/batchrun/internal/executor"
)

const namespace = "batchrun"

// Recorder is an executor.Observer backed by a Prometheus registry
type Recorder struct {
	registry *prometheus.Registry

	jobs          *prometheus.CounterVec
	jobDuration   *prometheus.HistogramVec
	batches       *prometheus.CounterVec
	batchDuration *prometheus.HistogramVec
	batchSize     *prometheus.GaugeVec
}

var _ executor.Observer = (*Recorder)(nil)

// NewRecorder creates a Recorder and registers its collectors with reg.
// A nil reg gets a fresh registry.
func NewRecorder(reg *prometheus.Registry) (*Recorder, error) {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r := &Recorder{
		registry: reg,
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Number of jobs executed, by policy, job name and status.",
		}, []string{"policy", "job", "status"}),
		jobDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Job execution time in seconds.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"policy", "status"}),
		batches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "batches_total",
			Help:      "Number of batches executed, by policy and outcome.",
		}, []string{"policy", "outcome"}),
		batchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Batch wall-clock time in seconds, including draining cancelled jobs.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"policy"}),
		batchSize: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_batch_size",
			Help:      "Number of jobs in the most recent batch.",
		}, []string{"policy"}),
	}

	for _, c := range []prometheus.Collector{r.jobs, r.jobDuration, r.batches, r.batchDuration, r.batchSize} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register collector: %w", err)
		}
	}

	return r, nil
}

// ObserveJob implements executor.Observer
func (r *Recorder) ObserveJob(policy executor.Policy, jobName string, err error, elapsed time.Duration) {
	status := statusOf(err)
	r.jobs.WithLabelValues(string(policy), jobName, status).Inc()
	r.jobDuration.WithLabelValues(string(policy), status).Observe(elapsed.Seconds())
}

// ObserveBatch implements executor.Observer
func (r *Recorder) ObserveBatch(policy executor.Policy, size int, aborted bool, elapsed time.Duration) {
	outcome := "completed"
	if aborted {
		outcome = "aborted"
	}
	r.batches.WithLabelValues(string(policy), outcome).Inc()
	r.batchDuration.WithLabelValues(string(policy)).Observe(elapsed.Seconds())
	r.batchSize.WithLabelValues(string(policy)).Set(float64(size))
}

// Registry returns the registry holding the recorder's collectors
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all metrics to path in the Prometheus text format,
// suitable for the node exporter textfile collector
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case executor.IsFault(err):
		return "fault"
	default:
		return "failure"
	}
}
