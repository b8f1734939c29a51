// Package config provides configuration management for the roster auditor.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, upload limit)
//   - Database: connection details for db:// sources
//   - Storage: S3/MinIO credentials and the snapshot bucket
//   - Log: Logging level and format
//   - Audit: key preset, excluded departments and diff options
//
// List values such as AUDIT_EXCLUDED_DEPARTMENTS are comma separated.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	policy, err := cfg.Audit.Policy()
package config
