package server_test

import (
	"testing"

	"roster-audit/core/server"

	"github.com/stretchr/testify/assert"
)

func TestConfig_BodyLimit(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"Configured", 8, 8 << 20},
		{"Zero", 0, server.DefaultMaxUploadMB << 20},
		{"Negative", -1, server.DefaultMaxUploadMB << 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := server.Config{MaxUploadMB: tt.limit}
			assert.Equal(t, tt.want, c.BodyLimit())
		})
	}
}
