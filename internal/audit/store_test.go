package audit

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "custclean/internal/errors"
	"custclean/pkg/contracts/domain"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "audit.db")
	store, err := Open(context.Background(), DriverSQLite, dsn, nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRead(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ops := []domain.CleaningOperation{
		domain.NewCleaningOperation("Age", 2, domain.Missing(), domain.Number(28), domain.OpMedianFill, "missing value"),
		domain.NewCleaningOperation("Age", 5, domain.Number(200), domain.Number(28), domain.OpOutlierClamp, "outside [22, 34]"),
		domain.NewCleaningOperation("custID", 6, domain.Text("C1"), domain.Missing(), domain.OpDuplicateDrop, "duplicate of row 1"),
	}
	ops[2].RunID = "run-a"
	ops[2].CleanedAt = time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, "run-a", ops))

	got, err := store.Operations(ctx, "run-a")
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Equal(t, "run-a", got[0].RunID)
	assert.Equal(t, "Age", got[0].ColumnName)
	assert.Equal(t, 2, got[0].RowNumber)
	assert.Nil(t, got[0].OriginalValue)
	require.NotNil(t, got[0].NewValue)
	assert.Equal(t, "28", *got[0].NewValue)
	assert.Equal(t, domain.OpMedianFill, got[0].Operation)

	assert.Equal(t, "200", *got[1].OriginalValue)
	assert.Equal(t, "outside [22, 34]", got[1].Reason)

	assert.Equal(t, domain.OpDuplicateDrop, got[2].Operation)
	assert.Nil(t, got[2].NewValue)
}

func TestStore_RunsAreSeparate(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	op := domain.NewCleaningOperation("custName", 1, domain.Missing(), domain.Text("Unknown"), domain.OpConstantFill, "missing value")
	require.NoError(t, store.Record(ctx, "run-1", []domain.CleaningOperation{op}))
	require.NoError(t, store.Record(ctx, "run-2", []domain.CleaningOperation{op, op}))

	first, err := store.Operations(ctx, "run-1")
	require.NoError(t, err)
	assert.Len(t, first, 1)

	second, err := store.Operations(ctx, "run-2")
	require.NoError(t, err)
	assert.Len(t, second, 2)

	none, err := store.Operations(ctx, "run-3")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestStore_StageRollback(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ops := []domain.CleaningOperation{
		domain.NewCleaningOperation("Price", 3, domain.Missing(), domain.Number(105), domain.OpMeanFill, "missing value"),
	}
	pending, err := store.Stage(ctx, "run-r", ops)
	require.NoError(t, err)
	require.NotNil(t, pending)
	require.NoError(t, pending.Rollback())

	got, err := store.Operations(ctx, "run-r")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStore_StageCommit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	ops := []domain.CleaningOperation{
		domain.NewCleaningOperation("Price", 3, domain.Missing(), domain.Number(105), domain.OpMeanFill, "missing value"),
	}
	pending, err := store.Stage(ctx, "run-c", ops)
	require.NoError(t, err)
	require.NoError(t, pending.Commit())

	got, err := store.Operations(ctx, "run-c")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, domain.OpMeanFill, got[0].Operation)
}

func TestPending_NilIsNoop(t *testing.T) {
	store := openTestStore(t)
	pending, err := store.Stage(context.Background(), "run-empty", nil)
	require.NoError(t, err)
	assert.Nil(t, pending)
	assert.NoError(t, pending.Commit())
	assert.NoError(t, pending.Rollback())
}

func TestStore_RecordEmpty(t *testing.T) {
	store := openTestStore(t)
	assert.NoError(t, store.Record(context.Background(), "run-x", nil))
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "audit.db")
	ctx := context.Background()

	store, err := Open(ctx, DriverSQLite, dsn, nil)
	require.NoError(t, err)
	op := domain.NewCleaningOperation("Price", 3, domain.Missing(), domain.Number(15), domain.OpMeanFill, "missing value")
	require.NoError(t, store.Record(ctx, "run-keep", []domain.CleaningOperation{op}))
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, DriverSQLite, dsn, nil)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Operations(ctx, "run-keep")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "whatever", nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeConfig))
}

func TestOpen_Unreachable(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "missing-dir", "audit.db")
	_, err := Open(context.Background(), DriverSQLite, dsn, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeStorage))
}

func TestSchemaFor(t *testing.T) {
	s, err := schemaFor(DriverPostgres)
	require.NoError(t, err)
	assert.Contains(t, s, "BIGSERIAL")

	s, err = schemaFor(DriverSQLite)
	require.NoError(t, err)
	assert.Contains(t, s, "AUTOINCREMENT")
}
