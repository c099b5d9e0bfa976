// Package ingest turns loosely structured exported sales spreadsheets
// into typed records.
//
// The pipeline inside this package has three stages:
//
//  1. DecodeWorkbook: an XLSX stream becomes a RawGrid of tagged cells.
//  2. Locate: an unlabeled header row is found inside the grid by fuzzy
//     keyword scoring against the layout's canonical field names.
//  3. MapRows: data rows are validated against sentinel placeholders
//     and coerced into Records keyed by canonical field name.
//
// Four export layouts are supported (daily sales, hourly sales, and the
// two parallel per-product layouts); their HeaderSpecs live in specs.go.
// All stages are pure over their inputs: re-running a stage on the same
// grid yields identical output.
package ingest
