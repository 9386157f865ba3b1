package dataprocessing

import (
	"fmt"

	"custclean/pkg/contracts/domain"
)

// Recognized column names
const (
	ColumnCustID            = "custID"
	ColumnAge               = "Age"
	ColumnPrice             = "Price"
	ColumnCustName          = "custName"
	ColumnAdvertisingAgency = "AdvertisingAgency"
	ColumnDatePurchased     = "DatePurchased"
	ColumnRatingOfProduct   = "RatingOfProduct"
)

// UnknownPlaceholder fills missing names and agencies
const UnknownPlaceholder = "Unknown"

// Rule repairs one column of a table in place and returns one operation per
// changed cell. Row numbers are 1-based positions in the table.
type Rule func(t *domain.Table, col int) []domain.CleaningOperation

func columnValues(t *domain.Table, col int) []domain.Value {
	out := make([]domain.Value, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[col]
	}
	return out
}

// CoerceNumericRule turns every cell into a number; unparseable cells become missing
func CoerceNumericRule(t *domain.Table, col int) []domain.CleaningOperation {
	var ops []domain.CleaningOperation
	name := t.Columns[col]
	for i, row := range t.Rows {
		before := row[col]
		after := CoerceNumeric(before)
		row[col] = after
		if after.IsMissing() && !before.IsMissing() {
			ops = append(ops, domain.NewCleaningOperation(name, i+1, before, after,
				domain.OpNumericCoercion, "not a number"))
		}
	}
	return ops
}

// CoerceDateRule turns every cell into a date; unparseable cells become missing
func CoerceDateRule(t *domain.Table, col int) []domain.CleaningOperation {
	var ops []domain.CleaningOperation
	name := t.Columns[col]
	for i, row := range t.Rows {
		before := row[col]
		after := CoerceDate(before)
		row[col] = after
		if after.IsMissing() && !before.IsMissing() {
			ops = append(ops, domain.NewCleaningOperation(name, i+1, before, after,
				domain.OpDateCoercion, "not a date"))
		}
	}
	return ops
}

// FillWithStatistic fills missing cells with a statistic of the present numbers.
// When the statistic is undefined (no present numbers) nothing changes.
func FillWithStatistic(op string, statistic func([]float64) (float64, bool)) Rule {
	return func(t *domain.Table, col int) []domain.CleaningOperation {
		fill, ok := statistic(PresentNumbers(columnValues(t, col)))
		if !ok {
			return nil
		}
		var ops []domain.CleaningOperation
		name := t.Columns[col]
		value := domain.Number(fill)
		for i, row := range t.Rows {
			if !row[col].IsMissing() {
				continue
			}
			row[col] = value
			ops = append(ops, domain.NewCleaningOperation(name, i+1, domain.Missing(), value, op, "missing value"))
		}
		return ops
	}
}

// FillConstant fills missing cells with a fixed text
func FillConstant(text string) Rule {
	return func(t *domain.Table, col int) []domain.CleaningOperation {
		var ops []domain.CleaningOperation
		name := t.Columns[col]
		value := domain.Text(text)
		for i, row := range t.Rows {
			if !row[col].IsMissing() {
				continue
			}
			row[col] = value
			ops = append(ops, domain.NewCleaningOperation(name, i+1, domain.Missing(), value,
				domain.OpConstantFill, "missing value"))
		}
		return ops
	}
}

// ClampOutliers replaces numbers outside the IQR fences with a statistic of the
// column. Fences and statistic are computed over the column as it is now.
func ClampOutliers(statistic func([]float64) (float64, bool)) Rule {
	return func(t *domain.Table, col int) []domain.CleaningOperation {
		xs := PresentNumbers(columnValues(t, col))
		bounds, ok := OutlierBounds(xs)
		if !ok {
			return nil
		}
		replacement, _ := statistic(xs)
		value := domain.Number(replacement)
		reason := fmt.Sprintf("outside [%g, %g]", bounds.Lower, bounds.Upper)

		var ops []domain.CleaningOperation
		name := t.Columns[col]
		for i, row := range t.Rows {
			v := row[col]
			if v.Kind != domain.KindNumber || bounds.Contains(v.Num) {
				continue
			}
			row[col] = value
			ops = append(ops, domain.NewCleaningOperation(name, i+1, v, value, domain.OpOutlierClamp, reason))
		}
		return ops
	}
}

// NormalizeTitleRule trims text cells and title-cases them. Numbers, dates and
// missing cells keep their kind, so an all-numeric column stays numeric.
func NormalizeTitleRule(t *domain.Table, col int) []domain.CleaningOperation {
	var ops []domain.CleaningOperation
	name := t.Columns[col]
	for i, row := range t.Rows {
		before := row[col]
		if before.Kind != domain.KindText {
			continue
		}
		after := domain.Text(TitleCase(NormalizeText(before.String())))
		if after.Equal(before) {
			continue
		}
		row[col] = after
		ops = append(ops, domain.NewCleaningOperation(name, i+1, before, after,
			domain.OpTextNormalize, "whitespace or case"))
	}
	return ops
}
