package dataprocessing

import (
	"math"
	"strconv"
	"strings"
	"time"

	"custclean/pkg/contracts/domain"
)

// dateLayouts are tried in order. Slash and dash dates are month-first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-1-2",
	"2006/1/2",
	"2006/1/2 15:04:05",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1-2-2006",
	"2.1.2006",
	"Jan 2 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 January 2006",
	"20060102",
}

// ParseNumber parses a finite decimal number. Surrounding whitespace is ignored.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if len(s) > 1 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// CoerceNumeric converts a cell to a number. Anything that is not a finite
// number becomes missing.
func CoerceNumeric(v domain.Value) domain.Value {
	switch v.Kind {
	case domain.KindNumber:
		return v
	case domain.KindText:
		if f, ok := ParseNumber(v.Str); ok {
			return domain.Number(f)
		}
	}
	return domain.Missing()
}

// ParseDate parses a calendar date (optionally with a clock time) in any of the
// accepted layouts. Offsets are dropped and the wall clock kept.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC), true
	}
	return time.Time{}, false
}

// CoerceDate converts a cell to a date. Unparseable cells become missing.
func CoerceDate(v domain.Value) domain.Value {
	switch v.Kind {
	case domain.KindDate:
		return v
	case domain.KindText:
		if t, ok := ParseDate(v.Str); ok {
			return domain.Date(t)
		}
	case domain.KindNumber:
		// compact dates such as 20240115 load as numbers
		if t, ok := ParseDate(v.String()); ok {
			return domain.Date(t)
		}
	}
	return domain.Missing()
}
