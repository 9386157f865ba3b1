// Package audit persists the cell-level changes of a cleaning run.
//
// Each domain.CleaningOperation becomes one row of the cleaning_operations
// table, written in a single transaction per run. SQLite (driver "sqlite")
// and PostgreSQL (driver "postgres") are supported; the table is created on
// first use.
package audit
