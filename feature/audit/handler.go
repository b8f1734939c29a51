package audit

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"unicode/utf8"

	"roster-audit/core/database"
	"roster-audit/core/logger"
	"roster-audit/core/reconcile"
	"roster-audit/core/table"
	"roster-audit/core/utils"
	"roster-audit/core/workbook"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var errBadRequest = errors.New("bad request")

// Handler handles HTTP requests for roster audits.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the audit routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/audit")
	group.Post("/sheets", h.HandleSheets)
	group.Post("/reconcile", h.HandleReconcile)
	group.Post("/export", h.HandleExport)
	group.Get("/snapshots", h.HandleSnapshots)
}

// HandleSheets lists the worksheets of an uploaded workbook or stored snapshot.
// @Summary List Sheets
// @Description Lists the worksheets of an uploaded workbook, or of a stored snapshot given as storage://<object>.
// @Tags audit
// @Accept multipart/form-data
// @Produce json
// @Param file formData file false "Workbook (.xlsx, .xlsm, .csv)"
// @Param source formData string false "Stored snapshot reference (storage://<object>)"
// @Success 200 {object} map[string]interface{} "Sheet names"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit/sheets [post]
func (h *Handler) HandleSheets(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	src, err := sourceFromForm(c, "file", "source", "")
	if err != nil {
		return h.fail(c, l, err)
	}

	sheets, err := h.service.Sheets(c.Context(), src)
	if err != nil {
		return h.fail(c, l, err)
	}

	return c.JSON(fiber.Map{"source": src.String(), "sheets": sheets})
}

// HandleReconcile compares two roster snapshots and returns the report as JSON.
// @Summary Reconcile Rosters
// @Description Compares the old and new roster snapshots. Each side is an uploaded file (old/new) or a reference (old_source/new_source) to storage://<object> or db://<table>.
// @Tags audit
// @Accept multipart/form-data
// @Produce json
// @Param old formData file false "Old roster"
// @Param new formData file false "New roster"
// @Param old_source formData string false "Old roster reference"
// @Param new_source formData string false "New roster reference"
// @Param old_sheet formData string false "Old worksheet (default: first)"
// @Param new_sheet formData string false "New worksheet (default: first)"
// @Param preset formData string false "Key preset (id, name, id-ar, name-ar)"
// @Param phrases formData string false "Comma separated key phrases, overrides preset"
// @Param one_sided_nulls formData bool false "Report a difference when only one side is empty"
// @Param encoding formData string false "CSV charset (e.g. windows-1256)"
// @Param delimiter formData string false "CSV field separator (default: comma)"
// @Success 200 {object} Result "Reconciliation result"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]interface{} "Join key column not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	req, err := h.request(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	l.Info("Reconciling rosters", zap.String("old", req.Old.String()), zap.String("new", req.New.String()))
	result, err := h.service.Run(c.Context(), req)
	if err != nil {
		return h.fail(c, l, err)
	}

	return c.JSON(result)
}

// HandleExport reconciles two snapshots and returns the report as a workbook.
// @Summary Export Reconciliation Report
// @Description Same inputs as /audit/reconcile. Returns an xlsx workbook, or stores it in the bucket when store is set. With set, only that section is returned as a single-sheet workbook.
// @Tags audit
// @Accept multipart/form-data
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce json
// @Param old formData file false "Old roster"
// @Param new formData file false "New roster"
// @Param old_source formData string false "Old roster reference"
// @Param new_source formData string false "New roster reference"
// @Param old_sheet formData string false "Old worksheet (default: first)"
// @Param new_sheet formData string false "New worksheet (default: first)"
// @Param preset formData string false "Key preset (id, name, id-ar, name-ar)"
// @Param phrases formData string false "Comma separated key phrases, overrides preset"
// @Param one_sided_nulls formData bool false "Report a difference when only one side is empty"
// @Param encoding formData string false "CSV charset (e.g. windows-1256)"
// @Param delimiter formData string false "CSV field separator (default: comma)"
// @Param set formData string false "Single section to export (only_old, only_new, differences)"
// @Param split_by_field formData bool false "Add one worksheet per changed column"
// @Param store formData bool false "Upload the full report to the bucket instead of returning it"
// @Param name formData string false "Object name of the stored report (default: timestamped)"
// @Success 200 {file} file "Report workbook"
// @Success 201 {object} map[string]interface{} "Stored report"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]interface{} "Join key column not found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit/export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	req, err := h.request(c)
	if err != nil {
		return h.fail(c, l, err)
	}

	var set workbook.Set
	if v := c.FormValue("set"); v != "" {
		if set, err = workbook.ParseSet(v); err != nil {
			return h.fail(c, l, err)
		}
	}
	store := utils.ToBool(c.FormValue("store"))
	if store && set != "" {
		return h.fail(c, l, fmt.Errorf("%w: set cannot be combined with store", errBadRequest))
	}

	result, err := h.service.Run(c.Context(), req)
	if err != nil {
		return h.fail(c, l, err)
	}

	split := utils.ToBool(c.FormValue("split_by_field"))
	if store {
		obj, err := h.service.Upload(c.Context(), result.Report, c.FormValue("name"), split)
		if err != nil {
			return h.fail(c, l, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"status":  result.Status,
			"message": result.Message,
			"object":  obj,
		})
	}

	var buf bytes.Buffer
	name := ReportName(timeNow())
	if set != "" {
		err = h.service.ExportSet(&buf, result.Report, set)
		name = SetName(timeNow(), set)
	} else {
		err = h.service.Export(&buf, result.Report, split)
	}
	if err != nil {
		return h.fail(c, l, err)
	}

	c.Attachment(name)
	c.Set(fiber.HeaderContentType, XLSXContentType)
	return c.Send(buf.Bytes())
}

// HandleSnapshots lists the roster snapshots stored in the bucket.
// @Summary List Snapshots
// @Description Lists the workbooks stored under the snapshot prefix, usable as storage://<key> sources.
// @Tags audit
// @Produce json
// @Success 200 {object} map[string]interface{} "Snapshots"
// @Failure 503 {object} map[string]string "Storage not configured"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /audit/snapshots [get]
func (h *Handler) HandleSnapshots(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	objs, err := h.service.ListSnapshots(c.Context())
	if err != nil {
		return h.fail(c, l, err)
	}

	return c.JSON(fiber.Map{"count": len(objs), "snapshots": objs})
}

func (h *Handler) request(c *fiber.Ctx) (Request, error) {
	oldSrc, err := sourceFromForm(c, "old", "old_source", c.FormValue("old_sheet"))
	if err != nil {
		return Request{}, err
	}
	newSrc, err := sourceFromForm(c, "new", "new_source", c.FormValue("new_sheet"))
	if err != nil {
		return Request{}, err
	}

	var oneSided *bool
	if v := c.FormValue("one_sided_nulls"); v != "" {
		b := utils.ToBool(v)
		oneSided = &b
	}
	policy, err := h.service.PolicyFor(c.FormValue("preset"), SplitPhrases(c.FormValue("phrases")), oneSided)
	if err != nil {
		return Request{}, err
	}

	decode := workbook.Options{Encoding: c.FormValue("encoding")}
	if d := c.FormValue("delimiter"); d != "" {
		r, _ := utf8.DecodeRuneInString(d)
		decode.Delimiter = r
	}

	return Request{Old: oldSrc, New: newSrc, Policy: policy, Decode: decode}, nil
}

// sourceFromForm reads one side of a request: an uploaded file under fileField
// or a storage:// or db:// reference under refField.
func sourceFromForm(c *fiber.Ctx, fileField, refField, sheet string) (Source, error) {
	if fh, err := c.FormFile(fileField); err == nil {
		data, err := readUpload(fh)
		if err != nil {
			return Source{}, err
		}
		return UploadSource(fh.Filename, data, sheet), nil
	}

	ref := c.FormValue(refField)
	if ref == "" {
		return Source{}, fmt.Errorf("%w: either %q file or %q reference is required", errBadRequest, fileField, refField)
	}
	src, err := ParseSource(ref, sheet)
	if err != nil {
		return Source{}, err
	}
	if src.Kind == SourceFile {
		return Source{}, fmt.Errorf("%w: local paths are not accepted, use storage:// or db://", errBadRequest)
	}
	return src, nil
}

func readUpload(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return io.ReadAll(f)
}

// fail maps service errors to HTTP responses.
func (h *Handler) fail(c *fiber.Ctx, l *zap.Logger, err error) error {
	var notFound *reconcile.KeyColumnNotFoundError
	switch {
	case errors.As(err, &notFound):
		l.Warn("Join key column not found", zap.Error(err))
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":       err.Error(),
			"phrases":     notFound.Phrases,
			"old_columns": notFound.OldColumns,
			"new_columns": notFound.NewColumns,
		})
	case isBadRequest(err):
		l.Warn("Rejected audit request", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, ErrStorageDisabled), errors.Is(err, database.ErrNoConnection):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	default:
		l.Error("Audit request failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
}

func isBadRequest(err error) bool {
	for _, target := range []error{
		errBadRequest,
		ErrEmptySource,
		ErrNoSheets,
		workbook.ErrSheetNotFound,
		workbook.ErrUnsupportedFormat,
		workbook.ErrUnknownEncoding,
		workbook.ErrUnknownSet,
		table.ErrDuplicateColumn,
		reconcile.ErrUnknownPreset,
		reconcile.ErrEmptyPhraseSet,
		database.ErrInvalidTableName,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// SplitPhrases splits a comma separated phrase list, dropping blanks.
func SplitPhrases(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
