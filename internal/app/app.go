package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"custclean/internal/audit"
	"custclean/internal/config"
	"custclean/internal/dataprocessing"
	apperrors "custclean/internal/errors"
	"custclean/internal/exporter"
	"custclean/internal/infrastructure"
	"custclean/internal/validation"
	"custclean/pkg/contracts/domain"
)

// Application represents one configured cleaning run
type Application struct {
	Config    *config.Config
	Paths     *config.Paths
	Logger    *slog.Logger
	Telemetry *infrastructure.Telemetry
	// Console receives the human-readable progress output
	Console io.Writer

	traceOut io.Writer
}

// Option configures an Application
type Option func(*Application)

// WithConsole redirects the progress output (default os.Stdout)
func WithConsole(w io.Writer) Option {
	return func(a *Application) { a.Console = w }
}

// WithTraceOutput sends stdout-exported spans to w instead of os.Stderr
func WithTraceOutput(w io.Writer) Option {
	return func(a *Application) { a.traceOut = w }
}

// NewApplication resolves paths and sets up telemetry for cfg. A nil logger
// uses the global infrastructure logger.
func NewApplication(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Application, error) {
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	paths, err := config.GetPaths(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to get paths: %w", err)
	}
	paths.LogPathResolution(logger)

	a := &Application{
		Config:  cfg,
		Paths:   paths,
		Logger:  logger,
		Console: os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}

	tel, err := infrastructure.InitializeTelemetry(cfg.Telemetry, logger, a.traceOut)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	a.Telemetry = tel

	return a, nil
}

// Run executes the pipeline once and returns the cleaning report
func (a *Application) Run(ctx context.Context) (*domain.CleaningReport, error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)
	logger := a.Logger

	ctx, span := a.Telemetry.Tracer().Start(ctx, "run",
		trace.WithAttributes(
			attribute.String("run.id", runID),
			attribute.String("input.path", a.Paths.InputFile),
		))
	defer span.End()

	report, err := a.run(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.ErrorContext(ctx, "Run failed",
			slog.String("error_type", string(apperrors.TypeOf(err))),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.InfoContext(ctx, "Run complete",
		slog.String("output", report.OutputPath),
		slog.Int("rows_written", report.RowsWritten),
		slog.Duration("duration", report.Duration()))
	return report, nil
}

func (a *Application) run(ctx context.Context) (*domain.CleaningReport, error) {
	started := time.Now()
	out := a.Console

	a.Logger.InfoContext(ctx, "Run starting",
		slog.String("input", a.Paths.InputFile),
		slog.String("output", a.Paths.OutputFile))

	validator := validation.NewFileValidator(a.Logger)
	if err := validator.ValidateInputFile(a.Paths.InputFile); err != nil {
		return nil, fmt.Errorf("input check failed: %w", err)
	}
	if err := validator.ValidateOutputFile(a.Paths.OutputFile); err != nil {
		return nil, fmt.Errorf("output check failed: %w", err)
	}

	table, err := dataprocessing.LoadDelimited(a.Paths.InputFile, a.Config.DelimiterRune())
	if err != nil {
		return nil, fmt.Errorf("failed to load input: %w", err)
	}
	dataprocessing.NormalizeHeaders(table)

	dataprocessing.PrintColumns(out, table)
	fmt.Fprintln(out, "\nData Head (First few rows):")
	dataprocessing.PrintPreview(out, table, config.PreviewRows)
	dataprocessing.PrintMissingCounts(out, "\nMissing Data Check (Before):", table.MissingCounts())

	cleaner := dataprocessing.NewCleaner(a.Logger,
		dataprocessing.WithTracer(a.Telemetry.Tracer()),
		dataprocessing.WithNotices(out))
	report, err := cleaner.Clean(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("failed to clean data: %w", err)
	}
	report.StartedAt = started
	report.InputPath = a.Paths.InputFile
	report.OutputPath = a.Paths.OutputFile

	dataprocessing.PrintMissingCounts(out, "\nMissing Data Check (After):", report.MissingAfter)

	// The audit trail is staged before the workbook is written and committed
	// after it, so a failed run leaves neither behind.
	pending, closeAudit, err := a.stageAudit(ctx, report)
	if err != nil {
		return nil, err
	}
	defer closeAudit()

	writer := exporter.NewXLSXWriter(a.Logger, a.Config.Output.Sheet)
	if err := writer.Write(ctx, a.Paths.OutputFile, table); err != nil {
		a.discardAudit(pending)
		return nil, fmt.Errorf("failed to export data: %w", err)
	}

	if err := pending.Commit(); err != nil {
		if rmErr := os.Remove(a.Paths.OutputFile); rmErr != nil && !os.IsNotExist(rmErr) {
			a.Logger.Warn("Failed to remove output after audit failure",
				slog.String("output", a.Paths.OutputFile),
				slog.String("error", rmErr.Error()))
		}
		return nil, fmt.Errorf("failed to record audit trail: %w", err)
	}

	report.FinishedAt = time.Now()
	a.Telemetry.RecordReport(ctx, report)
	if err := a.Telemetry.WriteMetricsTextfile(a.Config.Telemetry.MetricsTextfile); err != nil {
		return nil, err
	}

	fmt.Fprintln(out)
	dataprocessing.PrintSummary(out, report)
	fmt.Fprintf(out, "\nData cleaning complete! File saved as '%s'.\n", a.Config.Output.Path)
	return report, nil
}

// stageAudit opens the audit store and stages the report's operations. The
// returned close func is always safe to call; a nil Pending means nothing to
// commit.
func (a *Application) stageAudit(ctx context.Context, report *domain.CleaningReport) (*audit.Pending, func(), error) {
	if !a.Config.Audit.Enabled() {
		return nil, func() {}, nil
	}
	store, err := audit.Open(ctx, a.Config.Audit.Driver, a.Config.Audit.DSN, a.Logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open audit store: %w", err)
	}
	closeStore := func() {
		if cerr := store.Close(); cerr != nil {
			a.Logger.Warn("Failed to close audit store", slog.String("error", cerr.Error()))
		}
	}

	pending, err := store.Stage(ctx, report.RunID, report.Operations)
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("failed to record audit trail: %w", err)
	}
	return pending, closeStore, nil
}

func (a *Application) discardAudit(pending *audit.Pending) {
	if err := pending.Rollback(); err != nil {
		a.Logger.Warn("Failed to discard audit trail", slog.String("error", err.Error()))
	}
}

// Shutdown flushes telemetry
func (a *Application) Shutdown(ctx context.Context) error {
	if a.Telemetry == nil {
		return nil
	}
	return a.Telemetry.Shutdown(ctx)
}
