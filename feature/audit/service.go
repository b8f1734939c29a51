package audit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"time"

	"roster-audit/core/database"
	"roster-audit/core/reconcile"
	"roster-audit/core/storage"
	"roster-audit/core/table"
	"roster-audit/core/workbook"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// XLSXContentType is the media type of exported reports.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var (
	// ErrStorageDisabled is returned for storage:// sources without a storage client.
	ErrStorageDisabled = errors.New("object storage is not configured")
	// ErrNoSheets is returned for database sources, which have no worksheets.
	ErrNoSheets = errors.New("source has no worksheets")
)

var timeNow = time.Now

// Status values of a Result.
const (
	StatusDifferences   = "differences"
	StatusNoDifferences = "no_differences"
)

// Request describes one audit run.
type Request struct {
	Old    Source
	New    Source
	Policy reconcile.Policy
	Decode workbook.Options
}

// Result wraps a report with a short human-readable outcome.
type Result struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Old     string            `json:"old"`
	New     string            `json:"new"`
	Report  *reconcile.Report `json:"report"`
}

// Service loads roster snapshots and reconciles them.
type Service struct {
	client  storage.Client
	storage storage.Config
	db      *gorm.DB
	config  reconcile.Config
	policy  reconcile.Policy
	logger  *zap.Logger
}

// NewService creates a new audit service. client and db may be nil, which
// disables storage:// and db:// sources respectively.
func NewService(client storage.Client, storageCfg storage.Config, db *gorm.DB, cfg reconcile.Config, logger *zap.Logger) (*Service, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	return &Service{
		client:  client,
		storage: storageCfg,
		db:      db,
		config:  cfg,
		policy:  policy,
		logger:  logger,
	}, nil
}

// Policy returns the configured reconciliation policy.
func (s *Service) Policy() reconcile.Policy {
	return s.policy
}

// PolicyFor derives a policy from the configured one. A non-empty phrase list
// wins over preset; oneSidedNulls overrides the configured flag when set.
func (s *Service) PolicyFor(preset string, phrases []string, oneSidedNulls *bool) (reconcile.Policy, error) {
	p := s.policy
	switch {
	case len(phrases) > 0:
		p.Key = reconcile.CustomKey(phrases)
	case preset != "":
		key, err := reconcile.LookupPreset(preset)
		if err != nil {
			return reconcile.Policy{}, err
		}
		p.Key = key
	}
	if oneSidedNulls != nil {
		p.Options.ReportOneSidedNulls = *oneSidedNulls
	}
	return p, nil
}

// Sheets lists the worksheets of a source.
func (s *Service) Sheets(ctx context.Context, src Source) ([]string, error) {
	if src.Kind == SourceDatabase {
		return nil, fmt.Errorf("%w: %s", ErrNoSheets, src)
	}
	data, err := s.read(ctx, src)
	if err != nil {
		return nil, err
	}
	return workbook.SheetNames(src.Location, data)
}

// Load reads a source into a table.
func (s *Service) Load(ctx context.Context, src Source, opts workbook.Options) (*table.Table, error) {
	if src.Kind == SourceDatabase {
		return database.LoadTable(ctx, s.db, src.Location)
	}
	data, err := s.read(ctx, src)
	if err != nil {
		return nil, err
	}
	t, err := workbook.ReadTable(src.Location, data, src.Sheet, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", src, err)
	}
	return t, nil
}

// Run loads both sources concurrently and reconciles them.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	var oldTbl, newTbl *table.Table
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := s.Load(gctx, req.Old, req.Decode)
		oldTbl = t
		return err
	})
	g.Go(func() error {
		t, err := s.Load(gctx, req.New, req.Decode)
		newTbl = t
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.logger.Debug("Loaded snapshots",
		zap.String("old", req.Old.String()),
		zap.Int("old_rows", oldTbl.Len()),
		zap.String("new", req.New.String()),
		zap.Int("new_rows", newTbl.Len()),
	)

	report, err := reconcile.Audit(oldTbl, newTbl, req.Policy)
	if err != nil {
		var notFound *reconcile.KeyColumnNotFoundError
		if errors.As(err, &notFound) {
			s.logger.Warn("Join key column not found",
				zap.Strings("phrases", notFound.Phrases),
				zap.Strings("old_columns", notFound.OldColumns),
				zap.Strings("new_columns", notFound.NewColumns),
			)
		}
		return nil, err
	}

	for _, w := range report.Warnings {
		s.logger.Warn("Reconciliation warning", zap.String("warning", w))
	}

	sum := report.Summary
	s.logger.Info("Reconciliation finished",
		zap.String("key_old", report.KeyOld),
		zap.String("key_new", report.KeyNew),
		zap.Int("only_old", sum.OnlyOld),
		zap.Int("only_new", sum.OnlyNew),
		zap.Int("matched", sum.Matched),
		zap.Int("differences", sum.Differences),
		zap.Duration("took", time.Since(start)),
	)

	return &Result{
		Status:  status(report),
		Message: Message(report),
		Old:     req.Old.String(),
		New:     req.New.String(),
		Report:  report,
	}, nil
}

// Export writes the report as an xlsx workbook.
func (s *Service) Export(w io.Writer, report *reconcile.Report, splitByField bool) error {
	opts := s.reportOptions()
	opts.SplitByField = splitByField
	return workbook.WriteReport(w, report, opts)
}

// ExportSet writes one section of the report as a single-sheet workbook.
func (s *Service) ExportSet(w io.Writer, report *reconcile.Report, set workbook.Set) error {
	return workbook.WriteSet(w, report, set, s.reportOptions())
}

// Upload exports the report into the bucket under the report prefix.
func (s *Service) Upload(ctx context.Context, report *reconcile.Report, name string, splitByField bool) (storage.Object, error) {
	if s.client == nil {
		return storage.Object{}, ErrStorageDisabled
	}

	var buf bytes.Buffer
	if err := s.Export(&buf, report, splitByField); err != nil {
		return storage.Object{}, err
	}

	if name == "" {
		name = ReportName(timeNow())
	}
	key := path.Join(s.storage.ReportPrefix, path.Base(name))

	if err := storage.EnsureBucket(ctx, s.client, s.storage.Bucket, s.storage.Region, s.logger); err != nil {
		return storage.Object{}, err
	}
	obj, err := storage.WriteObject(ctx, s.client, s.storage.Bucket, key, buf.Bytes(), XLSXContentType)
	if err != nil {
		return storage.Object{}, err
	}

	s.logger.Info("Uploaded report", zap.String("key", obj.Key), zap.Int64("size", obj.Size))
	return obj, nil
}

// ListSnapshots lists the workbooks stored under the snapshot prefix.
func (s *Service) ListSnapshots(ctx context.Context) ([]storage.Object, error) {
	if s.client == nil {
		return nil, ErrStorageDisabled
	}
	return storage.ListObjects(ctx, s.client, s.storage.Bucket, s.storage.SnapshotPrefix, ".xlsx", ".xlsm", ".csv")
}

func (s *Service) read(ctx context.Context, src Source) ([]byte, error) {
	switch src.Kind {
	case SourceUpload:
		return src.Data, nil
	case SourceStorage:
		if s.client == nil {
			return nil, ErrStorageDisabled
		}
		return storage.ReadObject(ctx, s.client, s.storage.Bucket, src.Location)
	case SourceFile:
		data, err := os.ReadFile(src.Location)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", src.Location, err)
		}
		return data, nil
	default:
		return nil, fmt.Errorf("unsupported source kind %q", src.Kind)
	}
}

func (s *Service) reportOptions() workbook.ReportOptions {
	return workbook.ReportOptions{
		NullSentinel:    s.config.NullSentinel,
		DepartmentLabel: s.departmentLabel(),
	}
}

func (s *Service) departmentLabel() string {
	if s.policy.Options.DepartmentColumn != "" {
		return s.policy.Options.DepartmentColumn
	}
	return s.policy.Exclusion.Column
}

// Message summarizes a report in one line.
func Message(report *reconcile.Report) string {
	if !report.HasDifferences() && len(report.OnlyOld) == 0 && len(report.OnlyNew) == 0 {
		return "No differences found between the two snapshots."
	}
	return fmt.Sprintf("Found %d field differences across %d columns; %d records only in old, %d only in new.",
		report.Summary.Differences, len(report.Summary.ChangedColumns), report.Summary.OnlyOld, report.Summary.OnlyNew)
}

// ReportName returns the default object name of an exported report.
func ReportName(t time.Time) string {
	return "roster-audit-" + t.UTC().Format("20060102-150405") + ".xlsx"
}

// SetName returns the default file name of one exported report section.
func SetName(t time.Time, set workbook.Set) string {
	return "roster-audit-" + t.UTC().Format("20060102-150405") + "-" + string(set) + ".xlsx"
}

func status(report *reconcile.Report) string {
	if report.HasDifferences() {
		return StatusDifferences
	}
	return StatusNoDifferences
}
