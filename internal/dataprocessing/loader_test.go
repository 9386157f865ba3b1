package dataprocessing

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "custclean/internal/errors"
	"custclean/pkg/contracts/domain"
)

func TestReadDelimited(t *testing.T) {
	input := "custID,Age,Price,Notes\nC1,25,,hello\nC2,abc,10.5,\n"

	table, err := ReadDelimited(strings.NewReader(input), ',')
	require.NoError(t, err)

	assert.Equal(t, []string{"custID", "Age", "Price", "Notes"}, table.Columns)
	require.Equal(t, 2, table.Len())

	// Age holds "abc" so it stays text until the cleaner coerces it
	assert.Equal(t, domain.Text("25"), table.Rows[0][1])
	assert.Equal(t, domain.Text("abc"), table.Rows[1][1])

	// Price is numeric throughout
	assert.True(t, table.Rows[0][2].IsMissing())
	assert.Equal(t, domain.Number(10.5), table.Rows[1][2])

	assert.Equal(t, domain.Text("hello"), table.Rows[0][3])
	assert.True(t, table.Rows[1][3].IsMissing())
}

func TestReadDelimited_NATokens(t *testing.T) {
	table, err := ReadDelimited(strings.NewReader("a,b\nNA,x\nnull,y\nNaN,z\n#N/A,\n"), ',')
	require.NoError(t, err)

	for i, row := range table.Rows {
		assert.True(t, row[0].IsMissing(), "row %d", i+1)
	}
	assert.Equal(t, 1, table.MissingCounts()[1].Count)
}

func TestReadDelimited_RowShapes(t *testing.T) {
	t.Run("short row is padded", func(t *testing.T) {
		table, err := ReadDelimited(strings.NewReader("a,b\n1\n"), ',')
		require.NoError(t, err)
		assert.Equal(t, domain.Number(1), table.Rows[0][0])
		assert.True(t, table.Rows[0][1].IsMissing())
	})

	t.Run("long row is rejected", func(t *testing.T) {
		_, err := ReadDelimited(strings.NewReader("a\n1,2\n"), ',')
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})

	t.Run("unterminated quote is rejected", func(t *testing.T) {
		_, err := ReadDelimited(strings.NewReader("a\n\"open\n"), ',')
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
	})

	t.Run("empty input has no header", func(t *testing.T) {
		_, err := ReadDelimited(strings.NewReader(""), ',')
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no header row")
	})
}

func TestReadDelimited_Header(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"duplicate names", "a,a,b,a\n", []string{"a", "a.1", "b", "a.2"}},
		{"blank name", "a,,c\n", []string{"a", "Unnamed: 1", "c"}},
		{"byte order mark", "\ufeffcustID,Age\n", []string{"custID", "Age"}},
		{"whitespace kept", " Age ,Price\n", []string{" Age ", "Price"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := ReadDelimited(strings.NewReader(tt.input), ',')
			require.NoError(t, err)
			assert.Equal(t, tt.want, table.Columns)
			assert.Equal(t, 0, table.Len())
		})
	}
}

func TestReadDelimited_Delimiter(t *testing.T) {
	table, err := ReadDelimited(strings.NewReader("custID;Price\nC1;\"1,5\"\nC2;7\n"), ';')
	require.NoError(t, err)
	assert.Equal(t, []string{"custID", "Price"}, table.Columns)
	// "1,5" is not a number, so the column stays text
	assert.Equal(t, domain.Text("1,5"), table.Rows[0][1])
	assert.Equal(t, domain.Text("7"), table.Rows[1][1])
}

func TestLoadDelimited(t *testing.T) {
	dir := t.TempDir()

	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(dir, "dataset.txt")
		require.NoError(t, os.WriteFile(path, []byte("custID,Age\nC1,30\n"), 0644))

		table, err := LoadDelimited(path, ',')
		require.NoError(t, err)
		assert.Equal(t, domain.Number(30), table.Rows[0][1])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDelimited(filepath.Join(dir, "absent.txt"), ',')
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		_, err := LoadDelimited(path, ',')
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, path, appErr.Context["path"])
	})
}
