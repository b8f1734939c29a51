// Package workbook reads roster snapshots from xlsx and csv files and writes
// reconciliation reports back out as xlsx.
//
// # Reading
//
// The first row of a sheet is the header. Header cells are trimmed, blank ones
// are named "Unnamed: N" and repeated names get ".1", ".2" suffixes. Cells
// stored as strings stay text even when they look numeric; numeric cells
// become numbers. Cells matching table.NullTokens and rows with no values are
// dropped.
//
// CSV exports from older payroll systems are often windows-1256 or utf-16.
// Options.Encoding accepts any WHATWG label.
//
// # Writing
//
// WriteReport creates the "Only Old", "Only New" and "Differences" sheets and,
// with SplitByField, one extra sheet per changed column.
package workbook
