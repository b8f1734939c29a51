// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// settings it reads: the HTTP port, the API key and the upload size limit.
//
// # Usage
//
// This package is primarily used by the core/config package to embed server settings
// and by the start command to size the Fiber body limit.
package server
