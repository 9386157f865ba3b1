package exporter

import (
	"github.com/xuri/excelize/v2"

	"custclean/pkg/contracts/domain"
)

// DateNumberFormat is the display format of date cells
const DateNumberFormat = "yyyy-mm-dd hh:mm:ss"

// defaultColumnWidth is wide enough for a formatted date
const defaultColumnWidth = 20

// cellValue maps a table value onto what the stream writer expects.
// Missing values map to nil, which leaves the cell empty.
func cellValue(v domain.Value, dateStyle int) interface{} {
	switch v.Kind {
	case domain.KindNumber:
		return v.Num
	case domain.KindText:
		return v.Str
	case domain.KindDate:
		return excelize.Cell{StyleID: dateStyle, Value: v.Time}
	default:
		return nil
	}
}

// headerRow converts column names to a stream writer row
func headerRow(columns []string) []interface{} {
	row := make([]interface{}, len(columns))
	for i, c := range columns {
		row[i] = c
	}
	return row
}
