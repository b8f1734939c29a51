package audit

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// SourceKind tells where a roster snapshot is read from.
type SourceKind string

const (
	SourceFile     SourceKind = "file"
	SourceStorage  SourceKind = "storage"
	SourceDatabase SourceKind = "db"
	SourceUpload   SourceKind = "upload"
)

const (
	storageScheme  = "storage://"
	databaseScheme = "db://"
)

// ErrEmptySource is returned when no source reference was given.
var ErrEmptySource = errors.New("empty source reference")

// Source identifies one snapshot: a local file, an object in the bucket,
// a SQL table or an uploaded file.
type Source struct {
	Kind SourceKind `json:"kind"`
	// Location is the file path, object key, table name or upload filename.
	Location string `json:"location"`
	// Sheet selects the worksheet; empty means the first one.
	Sheet string `json:"sheet,omitempty"`
	// Data holds the uploaded bytes for SourceUpload.
	Data []byte `json:"-"`
}

// ParseSource reads a source reference: "storage://<object>", "db://<table>"
// or a local path.
func ParseSource(ref, sheet string) (Source, error) {
	ref = strings.TrimSpace(ref)
	switch {
	case ref == "":
		return Source{}, ErrEmptySource
	case strings.HasPrefix(ref, storageScheme):
		key := strings.TrimPrefix(ref, storageScheme)
		if key == "" {
			return Source{}, fmt.Errorf("%w: %q", ErrEmptySource, ref)
		}
		return Source{Kind: SourceStorage, Location: key, Sheet: sheet}, nil
	case strings.HasPrefix(ref, databaseScheme):
		name := strings.TrimPrefix(ref, databaseScheme)
		if name == "" {
			return Source{}, fmt.Errorf("%w: %q", ErrEmptySource, ref)
		}
		return Source{Kind: SourceDatabase, Location: name}, nil
	default:
		return Source{Kind: SourceFile, Location: filepath.Clean(ref), Sheet: sheet}, nil
	}
}

// UploadSource wraps an uploaded file.
func UploadSource(filename string, data []byte, sheet string) Source {
	return Source{Kind: SourceUpload, Location: filepath.Base(filename), Sheet: sheet, Data: data}
}

// String renders the source the way it is referenced on the command line.
func (s Source) String() string {
	var ref string
	switch s.Kind {
	case SourceStorage:
		ref = storageScheme + s.Location
	case SourceDatabase:
		ref = databaseScheme + s.Location
	default:
		ref = s.Location
	}
	if s.Sheet != "" {
		ref += "#" + s.Sheet
	}
	return ref
}
