package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"roster-audit/core/reconcile"
	"roster-audit/core/workbook"
	"roster-audit/feature/audit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the reconcile command
	oldRef        string
	newRef        string
	oldSheet      string
	newSheet      string
	keyPreset     string
	keyPhrases    []string
	oneSidedNulls bool
	csvEncoding   string
	csvDelimiter  string
	jsonOutput    bool
	xlsxOutput    string
	onlyOldXLSX   string
	onlyNewXLSX   string
	diffsXLSX     string
	uploadReport  bool
	reportName    string
	splitByField  bool
)

// reconcileCmd compares two roster snapshots.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Compare the old and new roster snapshots",
	Long: `Reconcile two employee roster snapshots.

Each side is a local file (.xlsx, .xlsm, .csv), a stored snapshot
(storage://<object>) or a database table (db://<table>).

Reports employees present only in the old or only in the new roster, and every
field that differs for employees present in both.

Examples:
  # Join on the employee number (default preset)
  reconcile --old legacy.xlsx --new erp.xlsx

  # Pick sheets and key the join on the employee name
  reconcile --old legacy.xlsx --old-sheet Staff --new erp.xlsx --preset name

  # Compare a stored export against the HR database and keep the report
  reconcile --old storage://snapshots/legacy.xlsx --new db://employees --xlsx report.xlsx

  # Keep each section as its own workbook
  reconcile --old legacy.xlsx --new erp.xlsx --only-old-xlsx leavers.xlsx --only-new-xlsx joiners.xlsx

  # Arabic exports from older systems
  reconcile --old legacy.csv --new erp.csv --encoding windows-1256 --preset id-ar`,
	RunE: runReconcile,
}

func init() {
	f := reconcileCmd.Flags()
	f.StringVar(&oldRef, "old", "", "Old roster: file path, storage://<object> or db://<table>")
	f.StringVar(&newRef, "new", "", "New roster: file path, storage://<object> or db://<table>")
	f.StringVar(&oldSheet, "old-sheet", "", "Worksheet of the old roster (default: first)")
	f.StringVar(&newSheet, "new-sheet", "", "Worksheet of the new roster (default: first)")
	f.StringVar(&keyPreset, "preset", "", "Join key preset (id, name, id-ar, name-ar)")
	f.StringSliceVar(&keyPhrases, "phrases", nil, "Join key phrases, overrides --preset")
	f.BoolVar(&oneSidedNulls, "one-sided-nulls", false, "Report a difference when only one side is empty")
	f.StringVar(&csvEncoding, "encoding", "", "CSV charset (e.g. windows-1256, utf-16)")
	f.StringVar(&csvDelimiter, "delimiter", "", "CSV field separator (default: comma)")
	f.BoolVar(&jsonOutput, "json", false, "Print the full report as JSON to stdout")
	f.StringVar(&xlsxOutput, "xlsx", "", "Write the report workbook to this path")
	f.StringVar(&onlyOldXLSX, "only-old-xlsx", "", "Write the employees found only in the old roster to this path")
	f.StringVar(&onlyNewXLSX, "only-new-xlsx", "", "Write the employees found only in the new roster to this path")
	f.StringVar(&diffsXLSX, "differences-xlsx", "", "Write the field differences to this path")
	f.BoolVar(&uploadReport, "upload", false, "Upload the report workbook to the bucket")
	f.StringVar(&reportName, "name", "", "Object name of the uploaded report (default: timestamped)")
	f.BoolVar(&splitByField, "split-by-field", false, "Add one worksheet per changed column to the workbook")

	_ = reconcileCmd.MarkFlagRequired("old")
	_ = reconcileCmd.MarkFlagRequired("new")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := bootstrap()
	if err != nil {
		return err
	}
	defer l.Sync()

	oldSrc, err := audit.ParseSource(oldRef, oldSheet)
	if err != nil {
		return err
	}
	newSrc, err := audit.ParseSource(newRef, newSheet)
	if err != nil {
		return err
	}

	b := needs(oldSrc, newSrc)
	b.storage = b.storage || uploadReport

	svc, err := newService(cfg, l, b)
	if err != nil {
		return err
	}

	var oneSided *bool
	if cmd.Flags().Changed("one-sided-nulls") {
		oneSided = &oneSidedNulls
	}
	policy, err := svc.PolicyFor(keyPreset, keyPhrases, oneSided)
	if err != nil {
		return err
	}

	decode := workbook.Options{Encoding: csvEncoding}
	if csvDelimiter != "" {
		decode.Delimiter, _ = utf8.DecodeRuneInString(csvDelimiter)
	}

	result, err := svc.Run(ctx, audit.Request{Old: oldSrc, New: newSrc, Policy: policy, Decode: decode})
	if err != nil {
		return err
	}

	printReconcileReport(l, result.Report)
	l.Info(result.Message)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to write JSON report: %w", err)
		}
	}

	if xlsxOutput != "" {
		err := writeWorkbook(xlsxOutput, func(w io.Writer) error {
			return svc.Export(w, result.Report, splitByField)
		})
		if err != nil {
			return err
		}
		l.Info("Report written", zap.String("path", xlsxOutput))
	}

	for _, out := range []struct {
		set  workbook.Set
		path string
	}{
		{workbook.SetOnlyOld, onlyOldXLSX},
		{workbook.SetOnlyNew, onlyNewXLSX},
		{workbook.SetDifferences, diffsXLSX},
	} {
		set, path := out.set, out.path
		if path == "" {
			continue
		}
		err := writeWorkbook(path, func(w io.Writer) error {
			return svc.ExportSet(w, result.Report, set)
		})
		if err != nil {
			return err
		}
		l.Info("Report section written", zap.String("set", string(set)), zap.String("path", path))
	}

	if uploadReport {
		if _, err := svc.Upload(ctx, result.Report, reportName, splitByField); err != nil {
			return err
		}
	}

	return nil
}

func writeWorkbook(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}

// printReconcileReport prints a formatted reconciliation report using logger.
func printReconcileReport(l *zap.Logger, report *reconcile.Report) {
	s := report.Summary

	l.Info("Reconciliation report",
		zap.String("key_old", report.KeyOld),
		zap.String("key_new", report.KeyNew),
		zap.Int("old_rows", s.Old.Kept()),
		zap.Int("new_rows", s.New.Kept()),
		zap.Int("excluded_old", s.Old.Excluded),
		zap.Int("excluded_new", s.New.Excluded),
		zap.Int("only_old", s.OnlyOld),
		zap.Int("only_new", s.OnlyNew),
		zap.Int("matched", s.Matched),
		zap.Int("differences", s.Differences),
	)

	if len(s.ChangedColumns) > 0 {
		l.Info("Changed columns", zap.Strings("columns", s.ChangedColumns))
	}

	// Show a sample of differences (max 5 for logger)
	maxShow := min(5, len(report.Differences))
	for _, d := range report.Differences[:maxShow] {
		l.Info("Sample difference",
			zap.String("key", d.Key.String()),
			zap.String("department", d.Department.String()),
			zap.String("column", d.Column),
			zap.String("old", d.Old.String()),
			zap.String("new", d.New.String()),
		)
	}
	if len(report.Differences) > maxShow {
		l.Info("Additional differences not shown", zap.Int("count", len(report.Differences)-maxShow))
	}
}
