// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation for the audit endpoints.
//   - rayid: Tags every request with a RayID, stored in the context locals and
//     echoed in the X-Ray-ID response header for tracing.
//
// The start command registers rayid first so every log line carries the id.
package middleware
