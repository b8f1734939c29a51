package storage

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds roster snapshots and exported reports.
	Bucket string `mapstructure:"bucket" default:"rosters"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// SnapshotPrefix is the key prefix under which roster snapshots are listed.
	SnapshotPrefix string `mapstructure:"snapshot_prefix" default:"snapshots/"`
	// ReportPrefix is the key prefix for exported reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/"`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
