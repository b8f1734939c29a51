package workbook

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"roster-audit/core/table"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned when a charset name cannot be resolved.
var ErrUnknownEncoding = errors.New("unknown encoding")

// ReadCSV parses a delimited roster export. The first record is the header.
// Cells are typed with table.Parse, so numeric strings become numbers.
func ReadCSV(name string, r io.Reader, opts Options) (*table.Table, error) {
	dec, err := decoder(opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, dec))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	if opts.Delimiter != 0 {
		cr.Comma = opts.Delimiter
	}

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if len(records) == 0 {
		return table.New(name, nil)
	}
	columns := headerNames(paddedHeader(records))

	t, err := table.New(name, columns)
	if err != nil {
		return nil, err
	}

	for _, record := range records[1:] {
		row := make(table.Row, len(columns))
		for i, cell := range record {
			if v := table.Parse(cell); !v.IsNull() {
				row[columns[i]] = v
			}
		}
		if len(row) > 0 {
			t.Rows = append(t.Rows, row)
		}
	}

	return t, nil
}

// decoder resolves a charset name. A byte order mark always wins over the
// named encoding and is stripped from the stream.
func decoder(name string) (transform.Transformer, error) {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	}

	var enc encoding.Encoding
	switch strings.ToLower(name) {
	case "utf-16", "utf16":
		enc = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case "cp1256", "arabic":
		enc, _ = htmlindex.Get("windows-1256")
	default:
		var err error
		if enc, err = htmlindex.Get(name); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
		}
	}

	return unicode.BOMOverride(enc.NewDecoder()), nil
}
