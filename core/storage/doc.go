// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the auditor needs: reading roster snapshots, listing them and
// uploading exported reports. This abstraction supports both AWS S3 and
// self-hosted MinIO instances.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (as seen in core/storage/mocks).
//
// # Helpers
//
//   - EnsureBucket: Creates the configured bucket if needed.
//   - ReadObject: Downloads a snapshot into memory.
//   - WriteObject: Uploads a report.
//   - ListObjects: Lists snapshots under a prefix, filtered by extension.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	data, err := storage.ReadObject(ctx, client, config.Bucket, "snapshots/2024-06.xlsx")
package storage
