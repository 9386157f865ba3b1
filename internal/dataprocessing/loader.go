package dataprocessing

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"custclean/internal/errors"
	"custclean/pkg/contracts/domain"
)

// naTokens are the cell spellings read as the missing marker, in addition to
// the empty string. They match the usual dataframe defaults.
var naTokens = map[string]struct{}{
	"NA": {}, "N/A": {}, "n/a": {}, "NaN": {}, "nan": {}, "-NaN": {}, "-nan": {},
	"null": {}, "NULL": {}, "None": {}, "<NA>": {}, "#N/A": {}, "#N/A N/A": {},
	"#NA": {}, "1.#IND": {}, "1.#QNAN": {}, "-1.#IND": {}, "-1.#QNAN": {},
}

// LoadDelimited reads a delimited text file into a record table.
// The first row is the header.
func LoadDelimited(path string, delimiter rune) (*domain.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NewNotFoundError("input file", err).WithContext("path", path)
		}
		return nil, errors.NewStorageError("failed to open input file", err).WithContext("path", path)
	}
	defer f.Close()

	table, err := ReadDelimited(f, delimiter)
	if err != nil {
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			appErr.WithContext("path", path)
		}
		return nil, err
	}

	slog.Debug("Input loaded",
		slog.String("path", path),
		slog.Int("rows", table.Len()),
		slog.Int("columns", len(table.Columns)))

	return table, nil
}

// ReadDelimited parses delimited text from r. Empty cells and NA tokens become
// missing, columns whose present cells are all numeric become numbers, and
// everything else is text.
func ReadDelimited(r io.Reader, delimiter rune) (*domain.Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, errors.NewParsingError("input has no header row", nil)
	}
	if err != nil {
		return nil, errors.NewParsingError("failed to read header", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	table := domain.NewTable(uniqueHeader(header))

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewParsingError("failed to parse input", err)
		}

		row := make([]domain.Value, len(record))
		for i, cell := range record {
			row[i] = parseCell(cell)
		}
		if err := table.AppendRow(row); err != nil {
			return nil, errors.NewParsingError("malformed row", err)
		}
	}

	inferNumericColumns(table)
	return table, nil
}

func parseCell(s string) domain.Value {
	if s == "" {
		return domain.Missing()
	}
	if _, na := naTokens[s]; na {
		return domain.Missing()
	}
	return domain.Text(s)
}

// uniqueHeader names blank header cells "Unnamed: i" and suffixes repeated
// names with ".1", ".2", ... so every column stays addressable.
func uniqueHeader(header []string) []string {
	out := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	suffix := make(map[string]int)
	for i, name := range header {
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		for taken[candidate] {
			suffix[name]++
			candidate = fmt.Sprintf("%s.%d", name, suffix[name])
		}
		taken[candidate] = true
		out[i] = candidate
	}
	return out
}

// inferNumericColumns converts every column whose present cells all parse as
// numbers into a numeric column.
func inferNumericColumns(t *domain.Table) {
	for col := range t.Columns {
		present := 0
		numeric := true
		for _, row := range t.Rows {
			v := row[col]
			if v.IsMissing() {
				continue
			}
			present++
			if _, ok := ParseNumber(v.Str); !ok {
				numeric = false
				break
			}
		}
		if !numeric || present == 0 {
			continue
		}
		for _, row := range t.Rows {
			row[col] = CoerceNumeric(row[col])
		}
	}
}
