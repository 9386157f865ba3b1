// Package app wires the cleaning run together.
//
// An Application owns the configuration, the resolved paths, the logger and
// the telemetry providers. Run executes one pass of the pipeline:
//
//  1. Check the input and output locations, load the delimited input and
//     normalize its headers
//  2. Print the column list, a preview and the missing-value counts
//  3. Clean the table (repair rules, then duplicate removal)
//  4. Export the spreadsheet
//  5. Record the audit trail when a DSN is configured
//  6. Record metrics and write the metrics textfile when configured
//
// Any failure aborts the run; nothing after the failing step is executed.
package app
