package output

import (
	"errors"
	"time"

	"github.com/aryankumar/batchrun/internal/executor"
)

func collectAllReport() Report {
	results := []executor.Result[string]{
		executor.NewSuccess("Billing", "OK"),
		executor.NewFailure[string]("Fraud", errors.New("Fraud failed")),
		executor.NewSuccess("Limits", "OK"),
	}
	return NewReport(executor.PolicyCollectAll, results, nil, 812*time.Millisecond)
}

func failFastReport() Report {
	err := &executor.BatchAbortedError{
		BatchID: "b-1",
		JobName: "Fraud",
		Index:   1,
		Cause:   errors.New("Fraud failed"),
	}
	return NewReport[string](executor.PolicyFailFast, nil, err, 400*time.Millisecond)
}
