package workbook

import (
	"bytes"
	"strings"
	"testing"

	"roster-audit/core/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func buildWorkbook(t *testing.T, sheets map[string][][]any, order ...string) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := row
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestFormatOf(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"roster.xlsx", FormatXLSX, false},
		{"ROSTER.XLSM", FormatXLSX, false},
		{"export.csv", FormatCSV, false},
		{"roster.xls", "", true},
		{"roster", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatOf(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadTable_XLSX(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"Staff": {
			{" employee number ", "name", "salary", "", "name", "active"},
			{1001, "Ali", 5000, "x", "dup", true},
			{"1002", "NULL", 5500.5, nil, nil, false},
			{nil, nil, nil, nil, nil, nil},
			{1003, "Omar", "n/a", nil, nil, nil, "overflow"},
		},
		"Other": {{"a"}, {1}},
	}, "Staff", "Other")

	tbl, err := ReadTable("roster.xlsx", data, "", Options{})
	require.NoError(t, err)

	assert.Equal(t, "roster.xlsx:Staff", tbl.Name)
	assert.Equal(t, []string{"employee number", "name", "salary", "Unnamed: 3", "name.1", "active", "Unnamed: 6"}, tbl.Columns)
	require.Equal(t, 3, tbl.Len(), "blank rows are skipped")

	first := tbl.Rows[0]
	assert.Equal(t, table.Number(1001), first.Get("employee number"))
	assert.Equal(t, table.Text("Ali"), first.Get("name"))
	assert.Equal(t, table.Number(5000), first.Get("salary"))
	assert.Equal(t, table.Text("x"), first.Get("Unnamed: 3"))
	assert.Equal(t, table.Text("dup"), first.Get("name.1"))
	assert.Equal(t, table.Text("TRUE"), first.Get("active"))

	second := tbl.Rows[1]
	assert.Equal(t, table.Text("1002"), second.Get("employee number"), "string cells stay text")
	assert.True(t, second.Get("name").IsNull())
	assert.Equal(t, table.Number(5500.5), second.Get("salary"))
	assert.Equal(t, table.Text("FALSE"), second.Get("active"))

	third := tbl.Rows[2]
	assert.Equal(t, table.Number(1003), third.Get("employee number"))
	assert.True(t, third.Get("salary").IsNull())
	assert.Equal(t, table.Text("overflow"), third.Get("Unnamed: 6"))
	assert.Len(t, third, 3)
}

func TestReadTable_RowWiderThanHeader(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"Staff": {
			{"employee number", "name"},
			{100, "Ali", "Finance-extra"},
			{101, "Sara"},
		},
	}, "Staff")

	tbl, err := ReadTable("roster.xlsx", data, "", Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"employee number", "name", "Unnamed: 2"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, table.Text("Finance-extra"), tbl.Rows[0].Get("Unnamed: 2"))
	assert.True(t, tbl.Rows[1].Get("Unnamed: 2").IsNull())
}

func TestReadTable_SheetSelection(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{
		"A": {{"id"}, {1}},
		"B": {{"id"}, {2}, {3}},
	}, "A", "B")

	tbl, err := ReadTable("r.xlsx", data, "B", Options{})
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())

	_, err = ReadTable("r.xlsx", data, "C", Options{})
	assert.ErrorIs(t, err, ErrSheetNotFound)

	names, err := SheetNames("r.xlsx", data)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, names)
}

func TestReadTable_EmptySheet(t *testing.T) {
	data := buildWorkbook(t, map[string][][]any{"Empty": nil}, "Empty")

	tbl, err := ReadTable("r.xlsx", data, "Empty", Options{})
	require.NoError(t, err)
	assert.Empty(t, tbl.Columns)
	assert.Equal(t, 0, tbl.Len())
}

func TestReadTable_CorruptWorkbook(t *testing.T) {
	_, err := ReadTable("r.xlsx", []byte("not a zip"), "", Options{})
	assert.Error(t, err)
}

func TestHeaderNames(t *testing.T) {
	got := headerNames([]string{"a", "a", "a.1", "", "a", " b "})
	assert.Equal(t, []string{"a", "a.1", "a.1.1", "Unnamed: 3", "a.2", "b"}, got)

	assert.Len(t, headerNames(strings.Fields("x y z")), 3)
}
