package dataprocessing

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"custclean/internal/infrastructure"
	"custclean/pkg/contracts/domain"
)

// step is one entry of the fixed cleaning sequence
type step struct {
	name   string
	column string
	rule   Rule
	// notify reports an absent column on the notice writer
	notify bool
}

// cleaningSteps is the fixed rule order. Outlier clamps run after every fill
// so quartiles see the imputed columns.
var cleaningSteps = []step{
	{name: "age_fill", column: ColumnAge, notify: true, rule: chain(CoerceNumericRule, FillWithStatistic(domain.OpMedianFill, Median))},
	{name: "price_fill", column: ColumnPrice, notify: true, rule: chain(CoerceNumericRule, FillWithStatistic(domain.OpMeanFill, Mean))},
	{name: "name_fill", column: ColumnCustName, rule: FillConstant(UnknownPlaceholder)},
	{name: "agency_fill", column: ColumnAdvertisingAgency, rule: FillConstant(UnknownPlaceholder)},
	{name: "date_coercion", column: ColumnDatePurchased, rule: CoerceDateRule},
	{name: "rating_coercion", column: ColumnRatingOfProduct, rule: CoerceNumericRule},
	{name: "age_outliers", column: ColumnAge, rule: ClampOutliers(Median)},
	{name: "price_outliers", column: ColumnPrice, rule: ClampOutliers(Mean)},
	{name: "agency_normalize", column: ColumnAdvertisingAgency, rule: NormalizeTitleRule},
}

func chain(rules ...Rule) Rule {
	return func(t *domain.Table, col int) []domain.CleaningOperation {
		var ops []domain.CleaningOperation
		for _, r := range rules {
			ops = append(ops, r(t, col)...)
		}
		return ops
	}
}

// Cleaner applies the column repair rules and the duplicate drop to a table
type Cleaner struct {
	logger *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
	notices io.Writer
}

// CleanerOption configures a Cleaner
type CleanerOption func(*Cleaner)

// WithTracer sets the tracer used for per-step spans
func WithTracer(tracer trace.Tracer) CleanerOption {
	return func(c *Cleaner) {
		if tracer != nil {
			c.tracer = tracer
		}
	}
}

// WithClock overrides the time source stamped on operations
func WithClock(now func() time.Time) CleanerOption {
	return func(c *Cleaner) { c.now = now }
}

// WithNotices prints the missing Age and Price notices to w as the steps
// reach them
func WithNotices(w io.Writer) CleanerOption {
	return func(c *Cleaner) {
		if w != nil {
			c.notices = w
		}
	}
}

// NewCleaner creates a cleaner. A nil logger uses slog.Default.
func NewCleaner(logger *slog.Logger, opts ...CleanerOption) *Cleaner {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cleaner{
		logger: infrastructure.WithComponent(logger, "cleaner"),
		tracer:  otel.Tracer("custclean/dataprocessing"),
		now:     time.Now,
		notices: io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Clean repairs t in place and drops duplicate custID rows. The context is
// checked between steps; a cancelled context stops the run with its error.
func (c *Cleaner) Clean(ctx context.Context, t *domain.Table) (*domain.CleaningReport, error) {
	ctx, span := c.tracer.Start(ctx, "clean")
	defer span.End()

	report := &domain.CleaningReport{
		RunID:         infrastructure.GetTraceID(ctx),
		Columns:       append([]string(nil), t.Columns...),
		RowsLoaded:    t.Len(),
		MissingBefore: t.MissingCounts(),
		StartedAt:     c.now(),
	}

	skipped := make(map[string]bool)
	for _, s := range cleaningSteps {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "cancelled")
			return nil, fmt.Errorf("cleaning cancelled before %s: %w", s.name, err)
		}

		col := t.ColumnIndex(s.column)
		if col < 0 {
			if !skipped[s.column] {
				skipped[s.column] = true
				report.SkippedColumns = append(report.SkippedColumns, s.column)
				if s.notify {
					fmt.Fprintf(c.notices, "'%s' column not found.\n", s.column)
					c.logger.InfoContext(ctx, fmt.Sprintf("'%s' column not found", s.column))
				} else {
					c.logger.DebugContext(ctx, "Column absent, rule skipped",
						slog.String("column", s.column), slog.String("step", s.name))
				}
			}
			continue
		}

		report.Operations = append(report.Operations, c.runStep(ctx, s, t, col)...)
	}

	if err := ctx.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "cancelled")
		return nil, fmt.Errorf("cleaning cancelled before deduplication: %w", err)
	}
	dropped, ops := DropDuplicates(t, ColumnCustID)
	report.DuplicatesDropped = dropped
	report.Operations = append(report.Operations, ops...)
	if !t.HasColumn(ColumnCustID) && !skipped[ColumnCustID] {
		report.SkippedColumns = append(report.SkippedColumns, ColumnCustID)
	}

	report.RowsWritten = t.Len()
	report.MissingAfter = t.MissingCounts()
	report.FinishedAt = c.now()
	for i := range report.Operations {
		report.Operations[i].RunID = report.RunID
		report.Operations[i].CleanedAt = report.FinishedAt
	}

	span.SetAttributes(
		attribute.Int("rows.loaded", report.RowsLoaded),
		attribute.Int("rows.written", report.RowsWritten),
		attribute.Int("cells.changed", len(report.Operations)),
	)
	c.logger.InfoContext(ctx, "Cleaning complete",
		slog.Int("rows_loaded", report.RowsLoaded),
		slog.Int("rows_written", report.RowsWritten),
		slog.Int("duplicates_dropped", report.DuplicatesDropped),
		slog.Int("operations", len(report.Operations)))

	return report, nil
}

func (c *Cleaner) runStep(ctx context.Context, s step, t *domain.Table, col int) []domain.CleaningOperation {
	ctx, span := c.tracer.Start(ctx, "clean."+s.name,
		trace.WithAttributes(attribute.String("column", s.column)))
	defer span.End()

	ops := s.rule(t, col)
	span.SetAttributes(attribute.Int("cells.changed", len(ops)))
	c.logger.DebugContext(ctx, "Step applied",
		slog.String("step", s.name),
		slog.String("column", s.column),
		slog.Int("cells_changed", len(ops)))
	return ops
}
