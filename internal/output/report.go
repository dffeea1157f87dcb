package output

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aryankumar/batchrun/internal/executor"
)

// Status is the outcome of one entry
type Status string

const (
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Entry is the type-erased view of one executor.Result
type Entry struct {
	Index  int    `json:"index" yaml:"index"`
	Job    string `json:"job" yaml:"job"`
	Status Status `json:"status" yaml:"status"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Abort describes why a fail-fast batch stopped
type Abort struct {
	BatchID string `json:"batchId,omitempty" yaml:"batchId,omitempty"`
	Job     string `json:"job,omitempty" yaml:"job,omitempty"`
	Index   int    `json:"index" yaml:"index"`
	Message string `json:"message" yaml:"message"`
}

// Report is the outcome of one batch
type Report struct {
	Policy   executor.Policy  `json:"policy" yaml:"policy"`
	Results  []Entry          `json:"results" yaml:"results"`
	Summary  executor.Summary `json:"summary" yaml:"summary"`
	Stopped  *Abort           `json:"stopped,omitempty" yaml:"stopped,omitempty"`
	Duration string           `json:"duration" yaml:"duration"`
}

// NewEntry converts a result at index into an Entry
func NewEntry[T any](index int, r executor.Result[T]) Entry {
	return executor.Match(r,
		func(s executor.Success[T]) Entry {
			return Entry{
				Index:  index,
				Job:    s.JobName(),
				Status: StatusSuccess,
				Value:  fmt.Sprint(s.Value()),
			}
		},
		func(f executor.Failure[T]) Entry {
			return Entry{
				Index:  index,
				Job:    f.JobName(),
				Status: StatusFailure,
				Error:  f.Err().Error(),
			}
		},
	)
}

// NewReport builds the report of a batch run with policy.
// A non-nil err means the batch was stopped and results are ignored.
func NewReport[T any](policy executor.Policy, results []executor.Result[T], err error, elapsed time.Duration) Report {
	report := Report{
		Policy:   policy,
		Results:  []Entry{},
		Duration: elapsed.Round(time.Millisecond).String(),
	}

	if err != nil {
		report.Stopped = newAbort(err)
		return report
	}

	for i, r := range results {
		report.Results = append(report.Results, NewEntry[T](i, r))
	}
	report.Summary = executor.Summarize(results)
	return report
}

func newAbort(err error) *Abort {
	abort := &Abort{Index: -1, Message: err.Error()}

	var aborted *executor.BatchAbortedError
	if errors.As(err, &aborted) {
		abort.BatchID = aborted.BatchID
		abort.Job = aborted.JobName
		abort.Index = aborted.Index
	}
	return abort
}

// Title returns the banner printed above the report in text output
func (r Report) Title() string {
	return "=== " + strings.ToUpper(strings.ReplaceAll(string(r.Policy), "-", " ")) + " ==="
}
