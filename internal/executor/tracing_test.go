package executor

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func setupTestTracer() (*tracetest.SpanRecorder, trace.Tracer) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	return sr, tp.Tracer("test")
}

func spanAttr(span sdktrace.ReadOnlySpan, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTracing_CollectAllSpans(t *testing.T) {
	sr, tracer := setupTestTracer()

	exec := NewCollectAll[string](WithLogger(quietLogger()), WithTracer(tracer))
	exec.Execute(context.Background(), []Job[string]{succeeds("A"), fails("B")})

	spans := sr.Ended()
	if len(spans) != 3 {
		t.Fatalf("expected 3 spans (1 batch + 2 jobs), got %d", len(spans))
	}

	var batch sdktrace.ReadOnlySpan
	jobStatus := map[string]codes.Code{}
	for _, s := range spans {
		switch s.Name() {
		case "batchrun.batch":
			batch = s
		case "batchrun.job":
			name, ok := spanAttr(s, "batchrun.job.name")
			if !ok {
				t.Fatal("job span missing batchrun.job.name")
			}
			jobStatus[name.AsString()] = s.Status().Code
		default:
			t.Errorf("unexpected span %q", s.Name())
		}
	}

	if batch == nil {
		t.Fatal("batch span not recorded")
	}
	if v, _ := spanAttr(batch, "batchrun.policy"); v.AsString() != string(PolicyCollectAll) {
		t.Errorf("batchrun.policy = %q, want %q", v.AsString(), PolicyCollectAll)
	}
	if batch.Status().Code != codes.Ok {
		t.Errorf("batch status = %v, want Ok", batch.Status().Code)
	}
	if jobStatus["A"] != codes.Ok {
		t.Errorf("job A status = %v, want Ok", jobStatus["A"])
	}
	if jobStatus["B"] != codes.Error {
		t.Errorf("job B status = %v, want Error", jobStatus["B"])
	}

	for _, s := range spans {
		if s.Name() == "batchrun.job" && s.Parent().SpanID() != batch.SpanContext().SpanID() {
			t.Error("job span is not a child of the batch span")
		}
	}
}

func TestTracing_FailFastAbortMarksBatch(t *testing.T) {
	sr, tracer := setupTestTracer()

	exec := NewFailFast[string](WithLogger(quietLogger()), WithTracer(tracer))
	if _, err := exec.Execute(context.Background(), []Job[string]{fails("A")}); err == nil {
		t.Fatal("expected error")
	}

	for _, s := range sr.Ended() {
		if s.Name() != "batchrun.batch" {
			continue
		}
		if s.Status().Code != codes.Error {
			t.Errorf("batch status = %v, want Error", s.Status().Code)
		}
		if v, _ := spanAttr(s, "batchrun.batch.aborted"); !v.AsBool() {
			t.Error("batchrun.batch.aborted not set")
		}
		return
	}
	t.Fatal("batch span not recorded")
}
