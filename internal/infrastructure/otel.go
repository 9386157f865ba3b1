package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"custclean/internal/config"
	"custclean/pkg/contracts/domain"
)

const (
	ServiceName = "custclean"
	MeterName   = "custclean"
)

// Telemetry holds the tracer and the run counters. Metrics are collected into a
// private Prometheus registry and written to a textfile at the end of the run.
type Telemetry struct {
	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	registry       *prometheus.Registry
	tracer         trace.Tracer
	logger         *slog.Logger

	rowsLoaded   metric.Int64Counter
	rowsWritten  metric.Int64Counter
	rowsDropped  metric.Int64Counter
	cellsChanged metric.Int64Counter
	runDuration  metric.Float64Histogram
	runtime      *RuntimeMetrics
}

// InitializeTelemetry sets up tracing (when enabled) and the metric instruments.
// traceOut receives stdout-exported spans; nil means os.Stderr.
func InitializeTelemetry(cfg config.TelemetryConfig, logger *slog.Logger, traceOut io.Writer) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}
	t := &Telemetry{logger: logger}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
	)

	if err := t.initializeTracing(cfg, res, traceOut); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := t.initializeMetrics(res); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", t.tracerProvider != nil),
		slog.String("metrics_textfile", cfg.MetricsTextfile))

	return t, nil
}

// initializeTracing sets up the tracer provider or a no-op tracer
func (t *Telemetry) initializeTracing(cfg config.TelemetryConfig, res *resource.Resource, out io.Writer) error {
	if !cfg.TracingEnabled || cfg.TraceExporter == "none" {
		t.tracer = noop.NewTracerProvider().Tracer(MeterName)
		return nil
	}

	switch cfg.TraceExporter {
	case "stdout", "":
		if out == nil {
			out = os.Stderr
		}
		exporter, err := stdouttrace.New(
			stdouttrace.WithWriter(out),
			stdouttrace.WithPrettyPrint(),
		)
		if err != nil {
			return fmt.Errorf("failed to create trace exporter: %w", err)
		}
		// Batch job: export synchronously so no span is lost at exit.
		t.tracerProvider = sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(exporter),
			sdktrace.WithResource(res),
		)
	default:
		return fmt.Errorf("unsupported trace exporter: %s", cfg.TraceExporter)
	}

	t.tracer = t.tracerProvider.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

// initializeMetrics creates the meter provider backed by a Prometheus registry
func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	t.registry = prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(t.registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	t.meterProvider = sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)
	meter := t.meterProvider.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))

	if t.rowsLoaded, err = meter.Int64Counter("custclean.rows.loaded",
		metric.WithDescription("Rows read from the input file")); err != nil {
		return err
	}
	if t.rowsWritten, err = meter.Int64Counter("custclean.rows.written",
		metric.WithDescription("Rows written to the spreadsheet")); err != nil {
		return err
	}
	if t.rowsDropped, err = meter.Int64Counter("custclean.rows.dropped",
		metric.WithDescription("Rows dropped as duplicates")); err != nil {
		return err
	}
	if t.cellsChanged, err = meter.Int64Counter("custclean.cells.changed",
		metric.WithDescription("Cells changed by a cleaning rule")); err != nil {
		return err
	}
	if t.runDuration, err = meter.Float64Histogram("custclean.run.duration",
		metric.WithDescription("Wall time of a cleaning run in seconds"),
		metric.WithUnit("s")); err != nil {
		return err
	}
	if t.runtime, err = NewRuntimeMetrics(meter, time.Now()); err != nil {
		return err
	}
	return nil
}

// Tracer returns the tracer used for pipeline spans
func (t *Telemetry) Tracer() trace.Tracer {
	return t.tracer
}

// RecordReport adds the counts of a finished run to the metric instruments
func (t *Telemetry) RecordReport(ctx context.Context, report *domain.CleaningReport) {
	if report == nil {
		return
	}
	t.rowsLoaded.Add(ctx, int64(report.RowsLoaded))
	t.rowsWritten.Add(ctx, int64(report.RowsWritten))
	t.rowsDropped.Add(ctx, int64(report.DuplicatesDropped))
	for _, cc := range report.ChangeCounts() {
		t.cellsChanged.Add(ctx, int64(cc.Count), metric.WithAttributes(
			attribute.String("column", cc.Column),
			attribute.String("operation", cc.Operation),
		))
	}
	if d := report.Duration(); d > 0 {
		t.runDuration.Record(ctx, d.Seconds())
	}
	t.logger.DebugContext(ctx, "Runtime snapshot", slog.Any("runtime", t.runtime.Collect(ctx)))
}

// WriteMetricsTextfile writes the collected metrics in Prometheus text format
func (t *Telemetry) WriteMetricsTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, t.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	t.logger.Info("Metrics written", slog.String("path", path))
	return nil
}

// Shutdown flushes and stops the providers
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var errs []error
	if t.tracerProvider != nil {
		if err := t.tracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider shutdown: %w", err))
		}
	}
	if t.meterProvider != nil {
		if err := t.meterProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter provider shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}
