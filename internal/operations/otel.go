package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"cricketcli/internal/infrastructure"
)

const (
	TracerName = "cricketcli.operation"
)

// OperationTracer provides OpenTelemetry instrumentation for pipeline runs
type OperationTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewOperationTracer creates a tracer recording spans on tracer and pipeline
// metrics on meter. Nil arguments fall back to no-op implementations.
func NewOperationTracer(tracer trace.Tracer, meter metric.Meter) (*OperationTracer, error) {
	if tracer == nil {
		tracer = tracenoop.NewTracerProvider().Tracer(TracerName)
	}
	if meter == nil {
		meter = metricnoop.NewMeterProvider().Meter(TracerName)
	}

	metrics, err := infrastructure.CreatePipelineMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline metrics: %w", err)
	}

	return &OperationTracer{tracer: tracer, metrics: metrics}, nil
}

// NewOperationTracerFromProviders creates a tracer from initialized providers
func NewOperationTracerFromProviders(providers *infrastructure.OTelProviders) (*OperationTracer, error) {
	if providers == nil {
		return NewOperationTracer(nil, nil)
	}
	return NewOperationTracer(providers.Tracer, providers.Meter)
}

// TraceOperationExecution creates a span for the entire run
func (pt *OperationTracer) TraceOperationExecution(ctx context.Context, operationID string, stepCount int) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.execute",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.Int("operation.steps", stepCount),
		),
	)
}

// TraceStageExecution creates a span for one step
func (pt *OperationTracer) TraceStageExecution(ctx context.Context, operationID, stepID string) (context.Context, trace.Span) {
	return pt.tracer.Start(ctx, "operation.step."+stepID,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", operationID),
			attribute.String("step.id", stepID),
		),
	)
}

// RecordStageCompletion records the step outcome on its span and metrics
func (pt *OperationTracer) RecordStageCompletion(ctx context.Context, span trace.Span, stepID string, duration time.Duration, err error) {
	status := "completed"
	if err != nil {
		status = "failed"
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		pt.metrics.StepErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("step", stepID)))
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.SetAttributes(
		attribute.String("step.status", status),
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)

	pt.metrics.StepDuration.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("step", stepID),
			attribute.String("status", status),
		),
	)
}

// RecordOperationCompletion records the run outcome and row counts
func (pt *OperationTracer) RecordOperationCompletion(ctx context.Context, span trace.Span, state *OperationState, err error) {
	status := string(state.GetStatus())

	span.SetAttributes(
		attribute.String("operation.status", status),
		attribute.Float64("operation.duration_seconds", state.Duration().Seconds()),
		attribute.Int("operation.records", len(state.Records)),
		attribute.Int("operation.dropped_rows", state.DroppedRows),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	pt.metrics.RunsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
	if n := len(state.Records); n > 0 {
		pt.metrics.RecordsProcessed.Add(ctx, int64(n))
	}
	if state.DroppedRows > 0 {
		pt.metrics.RecordsDropped.Add(ctx, int64(state.DroppedRows))
	}
}
