package pnlyzer

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ExportReport writes the report to w as an indented JSON document. Every
// section of the report uses ordered slices, so identical inputs produce a
// byte-for-byte identical document (in exact percentile mode). No figure
// is computed here; the export is a faithful serialization of the Report.
func ExportReport(w io.Writer, r *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("cannot encode report: %w", err)
	}
	return nil
}

// ExportReportFile writes the report to the named file, creating or
// truncating it.
func ExportReportFile(path string, r *Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create export file %q: %w", path, err)
	}
	defer f.Close()

	if err := ExportReport(f, r); err != nil {
		return fmt.Errorf("cannot export report to %q: %w", path, err)
	}
	return f.Close()
}
