// Package audit wires roster loading, reconciliation and report export into a
// service shared by the CLI and the HTTP API.
//
// # Sources
//
// A snapshot is read from one of:
//   - a local file path (CLI only)
//   - storage://<object>, an object in the configured bucket
//   - db://<table>, a table in the configured database
//   - an uploaded file (HTTP only)
//
// Both sides of an audit are loaded concurrently before reconciliation.
//
// # Endpoints
//
//   - POST /audit/sheets: worksheet names of a workbook
//   - POST /audit/reconcile: JSON report
//   - POST /audit/export: xlsx report, or stored in the bucket with store=true
//   - GET /audit/snapshots: stored snapshots
//
// A missing join key column answers 422 with both tables' column lists so the
// caller can pick other key phrases.
package audit
