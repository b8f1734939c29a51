package database

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"roster-audit/core/table"
	"roster-audit/core/utils"

	"gorm.io/gorm"
)

var (
	// ErrNoConnection is returned when a db:// source is used without a database.
	ErrNoConnection = errors.New("database is not connected")
	// ErrInvalidTableName is returned for names that are not plain identifiers.
	ErrInvalidTableName = errors.New("invalid table name")
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

var numericTypes = []string{"INT", "DECIMAL", "NUMERIC", "FLOAT", "DOUBLE", "REAL"}

// LoadTable reads every row of tableName into a table, keeping the column
// order reported by the driver. Rows whose values are all NULL are dropped.
func LoadTable(ctx context.Context, db *gorm.DB, tableName string) (*table.Table, error) {
	if db == nil {
		return nil, ErrNoConnection
	}
	if !tableNamePattern.MatchString(tableName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTableName, tableName)
	}

	rows, err := db.WithContext(ctx).Table(tableName).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", tableName, err)
	}
	defer rows.Close()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", tableName, err)
	}

	names := make([]string, len(types))
	numeric := make([]bool, len(types))
	for i, ct := range types {
		names[i] = ct.Name()
		numeric[i] = isNumericType(ct.DatabaseTypeName())
	}

	t, err := table.New("db://"+tableName, names)
	if err != nil {
		return nil, err
	}

	values := make([]any, len(names))
	dest := make([]any, len(names))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", tableName, err)
		}
		row := make(table.Row, len(names))
		for i, raw := range values {
			if v := utils.ToValue(raw, numeric[i]); !v.IsNull() {
				row[t.Columns[i]] = v
			}
		}
		if len(row) > 0 {
			t.Rows = append(t.Rows, row)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", tableName, err)
	}

	return t, nil
}

func isNumericType(name string) bool {
	name = strings.ToUpper(name)
	for _, n := range numericTypes {
		if strings.Contains(name, n) {
			return true
		}
	}
	return false
}
