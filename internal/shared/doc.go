// Package shared holds helpers used across the dashboard packages.
//
// The testutil subpackage provides:
//
//   - car fixtures and dataset file writers
//   - a buffered slog handler for asserting on log output
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    logger, logs := testutil.NewTestLogger(t)
//	    path := testutil.WriteCSV(t, testutil.SampleRows())
//	    // ...
//	    testutil.AssertLogContains(t, logs, slog.LevelInfo, "dataset loaded")
//	}
package shared
