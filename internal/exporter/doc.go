// Package exporter writes a cleaned record table to a spreadsheet.
//
// XLSXWriter produces a single-sheet .xlsx workbook: the header in row 1 and
// one row per record after it, with no index column. Numbers become numeric
// cells, dates become date-formatted cells and missing values stay empty.
// The destination is always overwritten.
//
// Example usage:
//
//	w := exporter.NewXLSXWriter(logger, "Sheet1")
//	if err := w.Write(ctx, "Cleaned_Customer_Data.xlsx", table); err != nil {
//	    return err
//	}
package exporter
