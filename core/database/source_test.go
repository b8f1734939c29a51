package database

import (
	"context"
	"regexp"
	"testing"

	"roster-audit/core/table"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestLoadTable_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("employee_number").OfType("INT", int64(0)),
		sqlmock.NewColumn("name").OfType("VARCHAR", ""),
		sqlmock.NewColumn("salary").OfType("DECIMAL", []byte{}),
		sqlmock.NewColumn("badge").OfType("VARCHAR", ""),
	).
		AddRow(int64(1001), []byte("Ali"), []byte("5000.00"), []byte("0042")).
		AddRow(int64(1002), nil, []byte("5500.50"), nil).
		AddRow(nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `staff`")).WillReturnRows(rows)

	tbl, err := LoadTable(context.Background(), db, "staff")
	require.NoError(t, err)

	assert.Equal(t, "db://staff", tbl.Name)
	assert.Equal(t, []string{"employee_number", "name", "salary", "badge"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())

	assert.Equal(t, table.Number(1001), tbl.Rows[0].Get("employee_number"))
	assert.Equal(t, table.Text("Ali"), tbl.Rows[0].Get("name"))
	assert.Equal(t, table.Number(5000), tbl.Rows[0].Get("salary"))
	assert.Equal(t, table.Text("0042"), tbl.Rows[0].Get("badge"), "text columns are not parsed")
	assert.True(t, tbl.Rows[1].Get("name").IsNull())
	assert.Equal(t, table.Number(5500.5), tbl.Rows[1].Get("salary"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadTable_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `missing`")).WillReturnError(assert.AnError)

	_, err := LoadTable(context.Background(), db, "missing")
	assert.ErrorIs(t, err, assert.AnError)
}

func TestLoadTable_Validation(t *testing.T) {
	_, err := LoadTable(context.Background(), nil, "staff")
	assert.ErrorIs(t, err, ErrNoConnection)

	db, _ := setupMockDB(t)
	for _, name := range []string{"", "staff; DROP TABLE x", "`staff`", "1staff", "a.b.c"} {
		_, err := LoadTable(context.Background(), db, name)
		assert.ErrorIs(t, err, ErrInvalidTableName, name)
	}
}

func TestLoadTable_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)

	require.NoError(t, db.Exec("CREATE TABLE roster (id INTEGER, name TEXT, salary REAL)").Error)
	require.NoError(t, db.Exec("INSERT INTO roster VALUES (1, 'Sara', 4200.5), (2, NULL, NULL)").Error)

	tbl, err := LoadTable(context.Background(), db, "roster")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name", "salary"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, table.Number(1), tbl.Rows[0].Get("id"))
	assert.Equal(t, table.Text("Sara"), tbl.Rows[0].Get("name"))
	assert.Equal(t, table.Number(4200.5), tbl.Rows[0].Get("salary"))
	assert.Len(t, tbl.Rows[1], 1)
}
