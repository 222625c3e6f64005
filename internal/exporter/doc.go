// Package exporter renders dashboard datasets as delimited text.
//
// Two parts make up the package:
//
// CSVWriter: writes a Table to an io.Writer or a file. String fields are always
// quoted, numbers are written bare, and an optional UTF-8 BOM helps Excel pick
// the right encoding.
//
// Table builders: turn cars, chart arrays and comparisons into Tables, one per
// exportable Dataset.
//
// Example usage:
//
//	writer := exporter.NewCSVWriter(logger)
//	table := exporter.CarsTable(filtered)
//	err := writer.WriteFile("car_data.csv", table, exporter.WriteOptions{BOMPrefix: true})
package exporter
