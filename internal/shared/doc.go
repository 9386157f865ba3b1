// Package shared holds code used by tests across custclean packages.
//
// The testutil subpackage provides a capturing slog handler with assertion
// helpers and a fixture writer for input files:
//
//	logger, handler := testutil.NewTestLogger(t)
//	path := testutil.WriteFixture(t, t.TempDir(), "in.csv", "custID,Age\nC1,30\n")
//	...
//	testutil.AssertLogContains(t, handler, slog.LevelInfo, "'Price' column not found")
package shared
