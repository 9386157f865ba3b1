package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"custclean/internal/errors"
	"custclean/internal/infrastructure"
	"custclean/pkg/contracts/domain"
)

const defaultSheet = "Sheet1"

// XLSXWriter exports a table to a single-sheet workbook
type XLSXWriter struct {
	logger *slog.Logger
	sheet  string
}

// NewXLSXWriter creates a writer for the named sheet. An empty sheet name
// uses "Sheet1"; a nil logger uses slog.Default.
func NewXLSXWriter(logger *slog.Logger, sheet string) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	if sheet == "" {
		sheet = defaultSheet
	}
	return &XLSXWriter{
		logger: infrastructure.WithComponent(logger, "exporter"),
		sheet:  sheet,
	}
}

// Write saves t to path, replacing any existing file. The parent directory is
// created when missing.
func (w *XLSXWriter) Write(ctx context.Context, path string, t *domain.Table) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("export cancelled: %w", err)
	}

	w.logger.InfoContext(ctx, "Writing spreadsheet",
		slog.String("path", path),
		slog.String("sheet", w.sheet),
		slog.Int("rows", t.Len()),
		slog.Int("columns", len(t.Columns)))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			w.logger.Warn("Failed to close workbook", slog.String("error", err.Error()))
		}
	}()

	if w.sheet != defaultSheet {
		if err := f.SetSheetName(defaultSheet, w.sheet); err != nil {
			return errors.NewExportError("failed to name sheet", err).WithContext("sheet", w.sheet)
		}
	}

	if err := w.writeRows(f, t); err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.NewExportError("failed to create output directory", err).WithContext("path", path)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return errors.NewExportError("failed to save spreadsheet", err).WithContext("path", path)
	}

	w.logger.DebugContext(ctx, "Spreadsheet saved", slog.String("path", path))
	return nil
}

func (w *XLSXWriter) writeRows(f *excelize.File, t *domain.Table) error {
	numFmt := DateNumberFormat
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return errors.NewExportError("failed to create date style", err)
	}

	sw, err := f.NewStreamWriter(w.sheet)
	if err != nil {
		return errors.NewExportError("failed to open stream writer", err)
	}

	if len(t.Columns) > 0 {
		if err := sw.SetColWidth(1, len(t.Columns), defaultColumnWidth); err != nil {
			return errors.NewExportError("failed to set column width", err)
		}
	}

	if err := sw.SetRow("A1", headerRow(t.Columns)); err != nil {
		return errors.NewExportError("failed to write header", err)
	}

	for i, row := range t.Rows {
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = cellValue(v, dateStyle)
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.NewExportError("failed to address row", err)
		}
		if err := sw.SetRow(cell, values); err != nil {
			return errors.NewExportError("failed to write row", err).WithContext("row", i+1)
		}
	}

	if err := sw.Flush(); err != nil {
		return errors.NewExportError("failed to flush rows", err)
	}
	return nil
}
