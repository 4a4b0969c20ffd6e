package operations

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

type telemetry struct {
	spans  *tracetest.SpanRecorder
	reader *sdkmetric.ManualReader
	tracer *OperationTracer
}

func newTelemetry(t *testing.T) *telemetry {
	t.Helper()
	spans := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	tracer, err := NewOperationTracer(tp.Tracer(TracerName), mp.Meter(TracerName))
	require.NoError(t, err)
	return &telemetry{spans: spans, reader: reader, tracer: tracer}
}

func (tm *telemetry) metric(t *testing.T, name string) (metricdata.Aggregation, bool) {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, tm.reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				return m.Data, true
			}
		}
	}
	return nil, false
}

func (tm *telemetry) counter(t *testing.T, name string) int64 {
	t.Helper()
	data, ok := tm.metric(t, name)
	if !ok {
		return 0
	}
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "%s is not an int64 sum", name)
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func newTestManager(t *testing.T, steps ...Step) (*Manager, *telemetry) {
	t.Helper()
	tm := newTelemetry(t)
	registry := NewRegistry()
	for _, s := range steps {
		require.NoError(t, registry.Register(s))
	}
	m, err := NewManager(registry, tm.tracer, nil)
	require.NoError(t, err)
	return m, tm
}

func TestManager_ExecuteRunsStepsInOrder(t *testing.T) {
	var order []string
	record := func(id string) func(context.Context, *OperationState) error {
		return func(context.Context, *OperationState) error {
			order = append(order, id)
			return nil
		}
	}

	compose := newFakeStep("compose", "chart")
	compose.run = record("compose")
	chart := newFakeStep("chart", "load")
	chart.run = record("chart")
	load := newFakeStep("load")
	load.run = record("load")

	m, tm := newTestManager(t, compose, chart, load)
	state := NewOperationState("run-1", time.Now())

	require.NoError(t, m.Execute(context.Background(), state))

	assert.Equal(t, []string{"load", "chart", "compose"}, order)
	assert.Equal(t, OperationStatusCompleted, state.GetStatus())
	for _, id := range order {
		assert.Equal(t, StepStatusCompleted, state.GetStage(id).GetStatus())
	}

	spans := tm.spans.Ended()
	require.Len(t, spans, 4)
	assert.Equal(t, "operation.step.load", spans[0].Name())
	assert.Equal(t, "operation.execute", spans[3].Name())
	assert.Equal(t, codes.Ok, spans[3].Status().Code)

	assert.Equal(t, int64(1), tm.counter(t, "pipeline_runs_total"))
	assert.Zero(t, tm.counter(t, "pipeline_step_errors_total"))

	data, ok := tm.metric(t, "pipeline_step_duration_seconds")
	require.True(t, ok)
	hist, ok := data.(metricdata.Histogram[float64])
	require.True(t, ok)
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	assert.Equal(t, uint64(3), count)
}

func TestManager_ExecuteFailsFast(t *testing.T) {
	cause := stderrors.New("boom")
	ran := map[string]bool{}

	steps := []*fakeStep{
		newFakeStep("load"),
		newFakeStep("derive", "load"),
		newFakeStep("chart_a", "derive"),
		newFakeStep("chart_b", "derive"),
		newFakeStep("compose", "chart_a", "chart_b"),
	}
	for _, s := range steps {
		id := s.ID()
		s.run = func(context.Context, *OperationState) error {
			ran[id] = true
			if id == "chart_a" {
				return cause
			}
			return nil
		}
	}

	m, tm := newTestManager(t, steps[0], steps[1], steps[2], steps[3], steps[4])
	state := NewOperationState("run-2", time.Now())

	err := m.Execute(context.Background(), state)
	require.Error(t, err)

	var opErr *OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, ErrorTypeExecution, opErr.Type)
	assert.Equal(t, "chart_a", opErr.Step)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "chart_a", FailedStep(err))

	assert.True(t, ran["derive"])
	assert.False(t, ran["chart_b"], "later steps do not run")
	assert.False(t, ran["compose"])

	assert.Equal(t, OperationStatusFailed, state.GetStatus())
	assert.Equal(t, StepStatusFailed, state.GetStage("chart_a").GetStatus())
	assert.Equal(t, StepStatusSkipped, state.GetStage("chart_b").GetStatus())
	assert.Equal(t, StepStatusSkipped, state.GetStage("compose").GetStatus())
	assert.Equal(t, StepStatusCompleted, state.GetStage("derive").GetStatus())

	assert.Equal(t, int64(1), tm.counter(t, "pipeline_step_errors_total"))

	var failedSpan sdktrace.ReadOnlySpan
	for _, s := range tm.spans.Ended() {
		if s.Name() == "operation.step.chart_a" {
			failedSpan = s
		}
	}
	require.NotNil(t, failedSpan)
	assert.Equal(t, codes.Error, failedSpan.Status().Code)
}

func TestManager_ExecuteCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	first := newFakeStep("first")
	first.run = func(context.Context, *OperationState) error {
		cancel()
		return nil
	}
	second := newFakeStep("second", "first")
	second.run = func(context.Context, *OperationState) error {
		t.Fatal("second step must not run after cancellation")
		return nil
	}

	m, _ := newTestManager(t, first, second)
	state := NewOperationState("run-3", time.Now())

	err := m.Execute(ctx, state)
	require.Error(t, err)
	assert.Equal(t, ErrorTypeCancellation, GetErrorType(err))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, StepStatusCompleted, state.GetStage("first").GetStatus())
	assert.Equal(t, StepStatusSkipped, state.GetStage("second").GetStatus())
}

func TestManager_ExecuteInvalidGraph(t *testing.T) {
	m, _ := newTestManager(t, newFakeStep("a", "missing"))
	state := NewOperationState("run-4", time.Now())

	err := m.Execute(context.Background(), state)
	require.Error(t, err)
	assert.Equal(t, ErrorTypeFatal, GetErrorType(err))
	assert.Equal(t, OperationStatusFailed, state.GetStatus())
}

func TestManager_StepReadsAndWritesState(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var seen time.Time

	step := newFakeStep("only")
	step.run = func(_ context.Context, state *OperationState) error {
		seen = state.Now
		state.TotalRows = 7
		return nil
	}

	registry := NewRegistry()
	require.NoError(t, registry.Register(step))
	m, err := NewManager(registry, nil, nil)
	require.NoError(t, err)

	state := NewOperationState("run-5", now)
	require.NoError(t, m.Execute(context.Background(), state))
	assert.Equal(t, now, seen)
	assert.Equal(t, 7, state.TotalRows)
	assert.Equal(t, 1, m.GetRegistry().Count())
}

func TestOperationError(t *testing.T) {
	cause := stderrors.New("disk full")

	tests := []struct {
		name string
		err  *OperationError
		want string
	}{
		{"execution", NewExecutionError("compose", cause), "[execution] compose: Step execution failed: disk full"},
		{"cancellation", NewCancellationError("load", nil), "[cancellation] load: operation was cancelled"},
		{"fatal", NewFatalError("bad graph", nil), "[fatal] bad graph"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}

	assert.Equal(t, ErrorTypeExecution, GetErrorType(cause))
	assert.Empty(t, GetErrorType(nil))
	assert.Empty(t, FailedStep(cause))

	var nilErr *OperationError
	assert.Equal(t, "unknown operation error", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}
