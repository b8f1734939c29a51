package audit_test

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"roster-audit/core/storage/mocks"
	"roster-audit/feature/audit"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

func newApp(t *testing.T, svc *audit.Service) *fiber.App {
	t.Helper()
	app := fiber.New()
	require.NoError(t, audit.NewFeature(svc, zap.NewNop()).Load(app))
	return app
}

// multipartRequest builds a form with files (field -> name:content) and values.
func multipartRequest(t *testing.T, target string, files map[string][2]string, values map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for field, file := range files {
		part, err := w.CreateFormFile(field, file[0])
		require.NoError(t, err)
		_, err = part.Write([]byte(file[1]))
		require.NoError(t, err)
	}
	for k, v := range values {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

var rosterFiles = map[string][2]string{
	"old": {"old.csv", oldRoster},
	"new": {"new.csv", newRoster},
}

func TestHandleReconcile(t *testing.T) {
	app := newApp(t, newService(t, nil, nil))

	resp, err := app.Test(multipartRequest(t, "/audit/reconcile", rosterFiles, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode(t, resp)
	assert.Equal(t, audit.StatusDifferences, out["status"])

	report := out["report"].(map[string]any)
	diffs := report["differences"].([]any)
	require.Len(t, diffs, 1)
	diff := diffs[0].(map[string]any)
	assert.Equal(t, "salary", diff["column"])
	assert.EqualValues(t, 5000, diff["old"])
	assert.EqualValues(t, 5500, diff["new"])
}

func TestHandleReconcile_FormOptions(t *testing.T) {
	app := newApp(t, newService(t, nil, nil))

	req := multipartRequest(t, "/audit/reconcile", rosterFiles, map[string]string{
		"one_sided_nulls": "true",
		"phrases":         "employee, number",
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	report := decode(t, resp)["report"].(map[string]any)
	assert.Len(t, report["differences"].([]any), 2)
}

func TestHandleReconcile_KeyNotFound(t *testing.T) {
	app := newApp(t, newService(t, nil, nil))

	req := multipartRequest(t, "/audit/reconcile", rosterFiles, map[string]string{"preset": "name-ar"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	out := decode(t, resp)
	assert.Contains(t, out["old_columns"], "employee number")
	assert.Contains(t, out["new_columns"], "salary")
}

func TestHandleReconcile_BadRequests(t *testing.T) {
	app := newApp(t, newService(t, nil, nil))

	tests := []struct {
		name   string
		files  map[string][2]string
		values map[string]string
		want   int
	}{
		{"MissingNew", map[string][2]string{"old": rosterFiles["old"]}, nil, fiber.StatusBadRequest},
		{"LocalPath", map[string][2]string{"old": rosterFiles["old"]}, map[string]string{"new_source": "/etc/passwd"}, fiber.StatusBadRequest},
		{"UnknownPreset", rosterFiles, map[string]string{"preset": "badge"}, fiber.StatusBadRequest},
		{"UnsupportedFormat", map[string][2]string{"old": {"old.pdf", "x"}, "new": rosterFiles["new"]}, nil, fiber.StatusBadRequest},
		{"UnknownEncoding", rosterFiles, map[string]string{"encoding": "klingon"}, fiber.StatusBadRequest},
		{"StorageDisabled", map[string][2]string{"old": rosterFiles["old"]}, map[string]string{"new_source": "storage://snapshots/new.csv"}, fiber.StatusServiceUnavailable},
		{"DatabaseDisabled", map[string][2]string{"old": rosterFiles["old"]}, map[string]string{"new_source": "db://staff"}, fiber.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(multipartRequest(t, "/audit/reconcile", tt.files, tt.values))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)
			assert.NotEmpty(t, decode(t, resp)["error"])
		})
	}
}

func TestHandleExport(t *testing.T) {
	app := newApp(t, newService(t, nil, nil))

	req := multipartRequest(t, "/audit/export", rosterFiles, map[string]string{"split_by_field": "1"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, audit.XLSXContentType, resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "roster-audit-")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Only Old", "Only New", "Differences", "salary"}, f.GetSheetList())
}

func TestHandleExport_Set(t *testing.T) {
	app := newApp(t, newService(t, nil, nil))

	req := multipartRequest(t, "/audit/export", rosterFiles, map[string]string{"set": "only_new"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "-only_new.xlsx")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Only New"}, f.GetSheetList())
	rows, err := f.GetRows("Only New")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"5", "Noor", "IT", "4000"}, rows[1])
}

func TestHandleExport_SetRejected(t *testing.T) {
	app := newApp(t, newService(t, nil, nil))

	tests := []struct {
		name   string
		values map[string]string
	}{
		{"UnknownSet", map[string]string{"set": "summary"}},
		{"SetWithStore", map[string]string{"set": "only_old", "store": "true"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(multipartRequest(t, "/audit/export", rosterFiles, tt.values))
			require.NoError(t, err)
			assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
			assert.NotEmpty(t, decode(t, resp)["error"])
		})
	}
}

func TestHandleExport_Store(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "rosters").Return(true, nil)
	client.On("PutObject", mock.Anything, "rosters", "reports/audit.xlsx", mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{Size: 42}, nil)

	app := newApp(t, newService(t, client, nil))

	req := multipartRequest(t, "/audit/export", rosterFiles, map[string]string{"store": "true", "name": "audit.xlsx"})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	out := decode(t, resp)
	obj := out["object"].(map[string]any)
	assert.Equal(t, "reports/audit.xlsx", obj["key"])
	client.AssertExpectations(t)
}

func TestHandleSheets(t *testing.T) {
	app := newApp(t, newService(t, nil, nil))

	files := map[string][2]string{"file": {"export.csv", "id\n1\n"}}
	resp, err := app.Test(multipartRequest(t, "/audit/sheets", files, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode(t, resp)
	assert.Equal(t, []any{"export"}, out["sheets"])
}

func TestHandleSnapshots(t *testing.T) {
	t.Run("Listed", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "rosters").Return(true, nil)
		ch := make(chan minio.ObjectInfo, 1)
		ch <- minio.ObjectInfo{Key: "snapshots/erp.xlsx", Size: 7}
		close(ch)
		client.On("ListObjects", mock.Anything, "rosters", mock.Anything).Return((<-chan minio.ObjectInfo)(ch))

		app := newApp(t, newService(t, client, nil))
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/audit/snapshots", nil))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)

		out := decode(t, resp)
		assert.EqualValues(t, 1, out["count"])
	})

	t.Run("StorageDisabled", func(t *testing.T) {
		app := newApp(t, newService(t, nil, nil))
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/audit/snapshots", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestSplitPhrases(t *testing.T) {
	assert.Equal(t, []string{"employee", "number"}, audit.SplitPhrases(" employee, number ,,"))
	assert.Nil(t, audit.SplitPhrases(""))
	assert.Equal(t, []string{"الرقم الوظيفي"}, audit.SplitPhrases(strings.TrimSpace(" الرقم الوظيفي ")))
}
