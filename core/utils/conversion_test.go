package utils

import (
	"testing"
	"time"

	"roster-audit/core/table"

	"github.com/stretchr/testify/assert"
)

func TestToInt(t *testing.T) {
	assert.Equal(t, 4, ToInt("4"))
	assert.Equal(t, 4, ToInt(" 4 "))
	assert.Equal(t, 4, ToInt(int64(4)))
	assert.Equal(t, 4, ToInt(4.9))
	assert.Equal(t, 0, ToInt("four"))
	assert.Equal(t, 7, ToInt([]byte("7")))
}

func TestToBool(t *testing.T) {
	for _, v := range []any{true, 1, "1", "true", "TRUE", "on", "yes", []byte("true")} {
		assert.True(t, ToBool(v), "%v", v)
	}
	for _, v := range []any{false, 0, 2, "", "no", "off", nil} {
		assert.False(t, ToBool(v), "%v", v)
	}
}

func TestToValue(t *testing.T) {
	tests := []struct {
		name    string
		val     any
		numeric bool
		want    table.Value
	}{
		{"nil", nil, false, table.Null()},
		{"int64", int64(1001), false, table.Number(1001)},
		{"float", 5500.5, false, table.Number(5500.5)},
		{"decimal bytes", []byte("5000.00"), true, table.Number(5000)},
		{"varchar bytes", []byte("5000"), false, table.Text("5000")},
		{"string", "Ali", false, table.Text("Ali")},
		{"string keeps null word", "NULL", false, table.Text("NULL")},
		{"bad numeric", []byte("n/a"), true, table.Text("n/a")},
		{"bool", true, false, table.Text("TRUE")},
		{"date", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), false, table.Text("2024-06-01")},
		{"datetime", time.Date(2024, 6, 1, 8, 30, 0, 0, time.UTC), false, table.Text("2024-06-01 08:30:00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToValue(tt.val, tt.numeric))
		})
	}
}
