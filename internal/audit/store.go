package audit

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"custclean/internal/errors"
	"custclean/internal/infrastructure"
	"custclean/pkg/contracts/domain"
)

const insertOperation = `
	INSERT INTO cleaning_operations
	(run_id, column_name, source_row, original_value, new_value, operation, reason, cleaned_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const selectOperations = `
	SELECT run_id, column_name, source_row, original_value, new_value, operation, reason
	FROM cleaning_operations
	WHERE run_id = ?
	ORDER BY id`

func init() {
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// operationRow is the database shape of a CleaningOperation
type operationRow struct {
	RunID         string         `db:"run_id"`
	ColumnName    string         `db:"column_name"`
	SourceRow     int            `db:"source_row"`
	OriginalValue sql.NullString `db:"original_value"`
	NewValue      sql.NullString `db:"new_value"`
	Operation     string         `db:"operation"`
	Reason        string         `db:"reason"`
}

func (r operationRow) toDomain() domain.CleaningOperation {
	op := domain.CleaningOperation{
		RunID:      r.RunID,
		ColumnName: r.ColumnName,
		RowNumber:  r.SourceRow,
		Operation:  r.Operation,
		Reason:     r.Reason,
	}
	if r.OriginalValue.Valid {
		v := r.OriginalValue.String
		op.OriginalValue = &v
	}
	if r.NewValue.Valid {
		v := r.NewValue.String
		op.NewValue = &v
	}
	return op
}

// Store records cleaning operations in a SQL database
type Store struct {
	db     *sqlx.DB
	driver string
	logger *slog.Logger
}

// Open connects to the database and creates the audit table if needed
func Open(ctx context.Context, driver, dsn string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := schemaFor(driver)
	if err != nil {
		return nil, errors.NewConfigError("invalid audit driver", err).WithContext("driver", driver)
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, errors.NewStorageError("failed to connect to audit database", err).WithContext("driver", driver)
	}
	if driver == DriverSQLite {
		// one writer; also keeps ":memory:" databases on a single connection
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, errors.NewStorageError("failed to create audit table", err).WithContext("driver", driver)
		}
	}

	logger.Debug("Audit store ready", slog.String("driver", driver), slog.String("table", TableName))
	return &Store{
		db:     db,
		driver: driver,
		logger: infrastructure.WithComponent(logger, "audit"),
	}, nil
}

// Pending holds staged operations inside an open transaction. Nothing is
// visible to readers until Commit. A nil Pending is a no-op.
type Pending struct {
	tx     *sqlx.Tx
	runID  string
	count  int
	logger *slog.Logger
}

// Stage inserts ops in a transaction that is left open. Operations without a
// run ID are stamped with runID, and without a timestamp with the current time.
func (s *Store) Stage(ctx context.Context, runID string, ops []domain.CleaningOperation) (_ *Pending, err error) {
	if len(ops) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.NewStorageError("failed to begin transaction", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				s.logger.Error("Failed to rollback transaction",
					slog.String("error", rbErr.Error()),
					slog.String("cause", err.Error()))
			}
		}
	}()

	stmt, err := tx.PreparexContext(ctx, tx.Rebind(insertOperation))
	if err != nil {
		return nil, errors.NewStorageError("failed to prepare insert", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, op := range ops {
		id := op.RunID
		if id == "" {
			id = runID
		}
		at := op.CleanedAt
		if at.IsZero() {
			at = now
		}
		if _, err = stmt.ExecContext(ctx,
			id,
			op.ColumnName,
			op.RowNumber,
			nullable(op.OriginalValue),
			nullable(op.NewValue),
			op.Operation,
			op.Reason,
			at,
		); err != nil {
			return nil, errors.NewStorageError("failed to insert cleaning operation", err).
				WithContext("column", op.ColumnName).
				WithContext("row", op.RowNumber)
		}
	}

	return &Pending{tx: tx, runID: runID, count: len(ops), logger: s.logger}, nil
}

// Commit makes the staged operations durable
func (p *Pending) Commit() error {
	if p == nil {
		return nil
	}
	if err := p.tx.Commit(); err != nil {
		return errors.NewStorageError("failed to commit transaction", err).WithContext("run_id", p.runID)
	}
	p.logger.Info("Recorded cleaning operations",
		slog.String("run_id", p.runID),
		slog.Int("count", p.count))
	return nil
}

// Rollback discards the staged operations
func (p *Pending) Rollback() error {
	if p == nil {
		return nil
	}
	if err := p.tx.Rollback(); err != nil {
		return errors.NewStorageError("failed to rollback transaction", err).WithContext("run_id", p.runID)
	}
	p.logger.Debug("Discarded staged cleaning operations", slog.String("run_id", p.runID))
	return nil
}

// Record inserts ops in one transaction and commits it
func (s *Store) Record(ctx context.Context, runID string, ops []domain.CleaningOperation) error {
	pending, err := s.Stage(ctx, runID, ops)
	if err != nil {
		return err
	}
	return pending.Commit()
}

// Operations returns the operations recorded for a run in insertion order
func (s *Store) Operations(ctx context.Context, runID string) ([]domain.CleaningOperation, error) {
	var rows []operationRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(selectOperations), runID); err != nil {
		return nil, errors.NewStorageError("failed to query cleaning operations", err).WithContext("run_id", runID)
	}
	ops := make([]domain.CleaningOperation, len(rows))
	for i, r := range rows {
		ops[i] = r.toDomain()
	}
	return ops, nil
}

// Close closes the database
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("failed to close audit database: %w", err)
	}
	return nil
}

func nullable(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
