package dataprocessing

import (
	"strconv"

	"custclean/pkg/contracts/domain"
)

type dedupKey struct {
	kind domain.ValueKind
	text string
}

// DropDuplicates removes every row whose key cell repeats an earlier row's,
// keeping the first occurrence in order. Missing keys compare equal to each
// other. A table without the key column is left alone. One operation is
// returned per dropped row.
func DropDuplicates(t *domain.Table, key string) (int, []domain.CleaningOperation) {
	col := t.ColumnIndex(key)
	if col < 0 {
		return 0, nil
	}

	seen := make(map[dedupKey]int, len(t.Rows))
	kept := t.Rows[:0]
	var ops []domain.CleaningOperation
	for i, row := range t.Rows {
		v := row[col]
		k := dedupKey{kind: v.Kind, text: v.String()}
		if first, dup := seen[k]; dup {
			op := domain.NewCleaningOperation(key, i+1, v, domain.Missing(), domain.OpDuplicateDrop,
				"duplicate of row "+strconv.Itoa(first))
			ops = append(ops, op)
			continue
		}
		seen[k] = i + 1
		kept = append(kept, row)
	}
	for i := len(kept); i < len(t.Rows); i++ {
		t.Rows[i] = nil
	}
	t.Rows = kept
	return len(ops), ops
}
