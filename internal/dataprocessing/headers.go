package dataprocessing

import (
	"strings"

	"custclean/pkg/contracts/domain"
)

// NormalizeHeaders trims surrounding whitespace from every column name
func NormalizeHeaders(t *domain.Table) {
	for i, name := range t.Columns {
		t.Columns[i] = strings.TrimSpace(name)
	}
}
