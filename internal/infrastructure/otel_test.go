package infrastructure

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"cricketcli/internal/config"
)

func TestInitializeOTel_NoTracing(t *testing.T) {
	providers, err := InitializeOTel(OTelConfigFrom(config.TelemetryConfig{TraceExporter: "none"}), nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	assert.Nil(t, providers.TracerProvider)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)
	require.NotNil(t, providers.Registry)

	_, span := providers.Tracer.Start(context.Background(), "noop")
	assert.False(t, span.IsRecording())
	span.End()
}

func TestInitializeOTel_StdoutTracing(t *testing.T) {
	var buf bytes.Buffer
	cfg := OTelConfigFrom(config.TelemetryConfig{TraceExporter: "stdout"})
	cfg.TraceWriter = &buf

	providers, err := InitializeOTel(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, providers.TracerProvider)

	ctx, span := providers.Tracer.Start(context.Background(), "pipeline.test")
	AddSpanEvent(ctx, "checkpoint", attribute.Int("records", 3))
	RecordError(ctx, assert.AnError)
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	assert.Contains(t, buf.String(), "pipeline.test")
	assert.Contains(t, buf.String(), "checkpoint")
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	_, err := InitializeOTel(&OTelConfig{ServiceName: ServiceName, TraceExporter: "zipkin"}, nil)
	assert.Error(t, err)
}

func TestPipelineMetrics_WriteMetricsFile(t *testing.T) {
	providers, err := InitializeOTel(nil, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	metrics, err := CreatePipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RunsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "success")))
	metrics.RecordsProcessed.Add(ctx, 2)
	metrics.RecordsDropped.Add(ctx, 1)
	metrics.StepDuration.Record(ctx, 0.25, metric.WithAttributes(attribute.String("step", "load")))

	path := filepath.Join(t.TempDir(), "pipeline.prom")
	require.NoError(t, providers.WriteMetricsFile(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)
	for _, name := range []string{
		"pipeline_runs_total",
		"pipeline_records_processed_total",
		"pipeline_records_dropped_total",
		"pipeline_step_duration_seconds",
	} {
		assert.True(t, strings.Contains(text, name), "missing metric %s", name)
	}
}

func TestWriteMetricsFile_EmptyPathIsNoop(t *testing.T) {
	providers, err := InitializeOTel(nil, nil)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	assert.NoError(t, providers.WriteMetricsFile(""))
}
