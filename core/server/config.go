package server

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// MaxUploadMB caps the request body size, which bounds uploaded workbooks.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"32"`
	// ShutdownTimeoutSeconds bounds how long in-flight audits may finish on shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// BodyLimit returns the request body limit in bytes.
func (c Config) BodyLimit() int {
	if c.MaxUploadMB <= 0 {
		return DefaultMaxUploadMB << 20
	}
	return c.MaxUploadMB << 20
}

// DefaultMaxUploadMB applies when MaxUploadMB is unset.
const DefaultMaxUploadMB = 32
