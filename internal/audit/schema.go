package audit

import "fmt"

// TableName is the audit table
const TableName = "cleaning_operations"

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cleaning_operations (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id         TEXT NOT NULL,
	column_name    TEXT NOT NULL,
	source_row     INTEGER NOT NULL,
	original_value TEXT,
	new_value      TEXT,
	operation      TEXT NOT NULL,
	reason         TEXT NOT NULL,
	cleaned_at     TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cleaning_operations_run ON cleaning_operations (run_id);`

const postgresSchema = `
CREATE TABLE IF NOT EXISTS cleaning_operations (
	id             BIGSERIAL PRIMARY KEY,
	run_id         TEXT NOT NULL,
	column_name    TEXT NOT NULL,
	source_row     INTEGER NOT NULL,
	original_value TEXT,
	new_value      TEXT,
	operation      TEXT NOT NULL,
	reason         TEXT NOT NULL,
	cleaned_at     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_cleaning_operations_run ON cleaning_operations (run_id);`

func schemaFor(driver string) (string, error) {
	switch driver {
	case DriverSQLite:
		return sqliteSchema, nil
	case DriverPostgres:
		return postgresSchema, nil
	default:
		return "", fmt.Errorf("unsupported audit driver: %q", driver)
	}
}
