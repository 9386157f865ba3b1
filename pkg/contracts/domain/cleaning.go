package domain

import (
	"sort"
	"time"
)

// Cleaning operation names recorded in the audit trail
const (
	OpNumericCoercion = "numeric_coercion"
	OpDateCoercion    = "date_coercion"
	OpMedianFill      = "median_fill"
	OpMeanFill        = "mean_fill"
	OpConstantFill    = "constant_fill"
	OpOutlierClamp    = "outlier_clamp"
	OpTextNormalize   = "text_normalize"
	OpDuplicateDrop   = "duplicate_drop"
)

// CleaningOperation represents a single change made to one cell (or, for
// duplicate drops, one row) of the record table.
type CleaningOperation struct {
	RunID         string    `json:"run_id"`
	ColumnName    string    `json:"column_name"`
	RowNumber     int       `json:"row_number"` // 1-based data row in input order
	OriginalValue *string   `json:"original_value,omitempty"`
	NewValue      *string   `json:"new_value,omitempty"`
	Operation     string    `json:"operation"`
	Reason        string    `json:"reason"`
	CleanedAt     time.Time `json:"cleaned_at"`
}

// NewCleaningOperation builds an operation from the cell values before and after.
// Missing values are recorded as nil.
func NewCleaningOperation(column string, rowNumber int, before, after Value, op, reason string) CleaningOperation {
	return CleaningOperation{
		ColumnName:    column,
		RowNumber:     rowNumber,
		OriginalValue: valuePtr(before),
		NewValue:      valuePtr(after),
		Operation:     op,
		Reason:        reason,
	}
}

func valuePtr(v Value) *string {
	if v.IsMissing() {
		return nil
	}
	s := v.String()
	return &s
}

// ChangeCount is the number of operations of one kind applied to one column
type ChangeCount struct {
	Column    string `json:"column"`
	Operation string `json:"operation"`
	Count     int    `json:"count"`
}

// CleaningReport summarizes one run of the cleaner
type CleaningReport struct {
	RunID             string              `json:"run_id"`
	InputPath         string              `json:"input_path,omitempty"`
	OutputPath        string              `json:"output_path,omitempty"`
	Columns           []string            `json:"columns"`
	RowsLoaded        int                 `json:"rows_loaded"`
	RowsWritten       int                 `json:"rows_written"`
	DuplicatesDropped int                 `json:"duplicates_dropped"`
	MissingBefore     []ColumnCount       `json:"missing_before"`
	MissingAfter      []ColumnCount       `json:"missing_after"`
	SkippedColumns    []string            `json:"skipped_columns,omitempty"`
	Operations        []CleaningOperation `json:"-"`
	StartedAt         time.Time           `json:"started_at"`
	FinishedAt        time.Time           `json:"finished_at"`
}

// ChangeCounts aggregates Operations by column and operation, sorted by column then operation
func (r *CleaningReport) ChangeCounts() []ChangeCount {
	type key struct{ col, op string }
	counts := make(map[key]int)
	for _, op := range r.Operations {
		counts[key{op.ColumnName, op.Operation}]++
	}
	out := make([]ChangeCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, ChangeCount{Column: k.col, Operation: k.op, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Column != out[j].Column {
			return out[i].Column < out[j].Column
		}
		return out[i].Operation < out[j].Operation
	})
	return out
}

// Duration returns how long the run took
func (r *CleaningReport) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
