// Package output provides formatters for validation and variable reports.
//
// Supported output formats:
//   - Console: Human-readable colored terminal output
//   - JSON: Machine-readable JSON output
//   - JUnit: JUnit XML format for CI integration
//
// Formatters accumulate results and write a summary when flushed.
package output
