package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"roster-audit/core/table"
)

// ToInt converts various types to int using explicit type switching.
// It handles standard integer types, floats, strings, and byte slices.
func ToInt(val any) int {
	switch v := val.(type) {
	case int:
		return v
	case int64:
		return int(v)
	case int32:
		return int(v)
	case uint:
		return int(v)
	case uint64:
		return int(v)
	case uint32:
		return int(v)
	case float64:
		return int(v)
	case float32:
		return int(v)
	case string:
		i, _ := strconv.Atoi(strings.TrimSpace(v))
		return i
	case []byte:
		i, _ := strconv.Atoi(strings.TrimSpace(string(v)))
		return i
	default:
		i, _ := strconv.Atoi(ToString(v))
		return i
	}
}

// ToFloat converts numeric driver values to float64. The second result is
// false when val is not a number.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint8:
		return float64(v), true
	default:
		return 0, false
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true", "on").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, uint, uint64, uint32, float64, float32:
		return ToInt(v) == 1
	case string:
		s := strings.ToLower(strings.TrimSpace(v))
		return s == "1" || s == "true" || s == "on" || s == "yes"
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}

// ToValue converts a value scanned from a SQL driver into a cell value.
// Strings from numeric columns (MySQL returns DECIMAL as bytes) become
// numbers; strings from other columns stay text verbatim.
func ToValue(val any, numeric bool) table.Value {
	if val == nil {
		return table.Null()
	}
	if f, ok := ToFloat(val); ok {
		return table.Number(f)
	}

	switch v := val.(type) {
	case bool:
		if v {
			return table.Text("TRUE")
		}
		return table.Text("FALSE")
	case time.Time:
		if v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return table.Text(v.Format(time.DateOnly))
		}
		return table.Text(v.Format(time.DateTime))
	}

	s := ToString(val)
	if numeric {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return table.Number(f)
		}
	}
	return table.Text(s)
}
