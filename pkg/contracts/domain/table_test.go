package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueConstructors(t *testing.T) {
	assert.True(t, Missing().IsMissing())
	assert.True(t, Number(math.NaN()).IsMissing())
	assert.True(t, Number(math.Inf(1)).IsMissing())
	assert.True(t, Date(time.Time{}).IsMissing())
	assert.Equal(t, KindNumber, Number(3).Kind)
	assert.Equal(t, KindText, Text("").Kind)
}

func TestValueString(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"missing", Missing(), "NaN"},
		{"integer number", Number(25), "25"},
		{"fraction", Number(12.5), "12.5"},
		{"text", Text("Acme"), "Acme"},
		{"date only", Date(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)), "2024-03-01"},
		{"date time", Date(time.Date(2024, 3, 1, 13, 5, 0, 0, time.UTC)), "2024-03-01 13:05:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.v.String())
		})
	}
}

func TestValueEqual(t *testing.T) {
	assert.True(t, Missing().Equal(Missing()))
	assert.True(t, Number(1).Equal(Number(1)))
	assert.False(t, Number(1).Equal(Text("1")))
	assert.False(t, Text("a").Equal(Text("b")))
}

func TestTableAppendRow(t *testing.T) {
	tbl := NewTable([]string{"a", "b", "c"})

	require.NoError(t, tbl.AppendRow([]Value{Text("x")}))
	assert.Len(t, tbl.Rows[0], 3)
	assert.True(t, tbl.Rows[0][2].IsMissing())

	err := tbl.AppendRow([]Value{Text("1"), Text("2"), Text("3"), Text("4")})
	assert.Error(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestTableColumnAccess(t *testing.T) {
	tbl := NewTable([]string{"custID", "Age"})
	require.NoError(t, tbl.AppendRow([]Value{Text("C1"), Number(30)}))
	require.NoError(t, tbl.AppendRow([]Value{Text("C2"), Missing()}))

	assert.Equal(t, 1, tbl.ColumnIndex("Age"))
	assert.Equal(t, -1, tbl.ColumnIndex("Price"))
	assert.False(t, tbl.HasColumn("Price"))

	ages, ok := tbl.Column("Age")
	require.True(t, ok)
	assert.Equal(t, []Value{Number(30), Missing()}, ages)

	ages[0] = Number(99)
	assert.Equal(t, Number(30), tbl.Rows[0][1], "Column must return a copy")

	_, ok = tbl.Column("Price")
	assert.False(t, ok)
}

func TestTableMissingCounts(t *testing.T) {
	tbl := NewTable([]string{"a", "b"})
	require.NoError(t, tbl.AppendRow([]Value{Missing(), Text("x")}))
	require.NoError(t, tbl.AppendRow([]Value{Missing(), Missing()}))

	assert.Equal(t, []ColumnCount{{Column: "a", Count: 2}, {Column: "b", Count: 1}}, tbl.MissingCounts())
}

func TestTableCloneAndHead(t *testing.T) {
	tbl := NewTable([]string{"a"})
	for i := 0; i < 7; i++ {
		require.NoError(t, tbl.AppendRow([]Value{Number(float64(i))}))
	}

	clone := tbl.Clone()
	clone.Rows[0][0] = Text("changed")
	assert.Equal(t, Number(0), tbl.Rows[0][0])

	assert.Equal(t, 5, tbl.Head(5).Len())
	assert.Equal(t, 7, tbl.Head(50).Len())

	records := tbl.Head(2).Records()
	assert.Equal(t, [][]string{{"a"}, {"0"}, {"1"}}, records)
}

func TestCleaningReportChangeCounts(t *testing.T) {
	r := &CleaningReport{
		Operations: []CleaningOperation{
			NewCleaningOperation("Price", 1, Missing(), Number(10), OpMeanFill, "missing"),
			NewCleaningOperation("Age", 2, Text("x"), Missing(), OpNumericCoercion, "unparseable"),
			NewCleaningOperation("Age", 3, Missing(), Number(30), OpMedianFill, "missing"),
			NewCleaningOperation("Age", 4, Missing(), Number(30), OpMedianFill, "missing"),
		},
	}

	assert.Equal(t, []ChangeCount{
		{Column: "Age", Operation: OpMedianFill, Count: 2},
		{Column: "Age", Operation: OpNumericCoercion, Count: 1},
		{Column: "Price", Operation: OpMeanFill, Count: 1},
	}, r.ChangeCounts())

	op := r.Operations[0]
	assert.Nil(t, op.OriginalValue)
	require.NotNil(t, op.NewValue)
	assert.Equal(t, "10", *op.NewValue)
}
