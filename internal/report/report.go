package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/samber/lo"
)

// Title heads every generated report.
const Title = "QA Test Application - Test Report"

const fileTimeLayout = "2006-01-02_15-04-05"

// Report is everything the HTML template renders.
type Report struct {
	Title       string
	RunID       string
	GeneratedAt time.Time
	Rows        []Record
	Summary     Summary
}

// Summary counts outcomes for the header and the JSON summary line.
type Summary struct {
	RunID      string         `json:"run_id"`
	Report     string         `json:"report,omitempty"`
	URL        string         `json:"url,omitempty"`
	Total      int            `json:"total"`
	Passed     int            `json:"passed"`
	Failed     int            `json:"failed"`
	Skipped    int            `json:"skipped"`
	DurationMS int64          `json:"duration_ms"`
	ByCategory map[string]int `json:"by_category"`
}

// Build enriches records with category and description from docs and
// counts the results. Subtests inherit their parent's doc.
func Build(runID string, records []Record, docs DocIndex, now time.Time) Report {
	rows := lo.Map(records, func(r Record, _ int) Record {
		r.Category = OtherCategory
		if doc, ok := docs.Lookup(r.Package, r.Test); ok {
			r.Category = CategoryFor(doc.File)
			r.Doc = doc.Doc
			r.Description = FirstLine(doc.Doc)
		}
		return r
	})

	return Report{
		Title:       Title,
		RunID:       runID,
		GeneratedAt: now,
		Rows:        rows,
		Summary:     Summarize(runID, rows),
	}
}

// Summarize counts rows by outcome and category. Durations are summed over
// top-level tests only, since subtests run inside their parent.
func Summarize(runID string, rows []Record) Summary {
	topLevel := lo.Reject(rows, func(r Record, _ int) bool { return r.IsSubtest() })
	return Summary{
		RunID:   runID,
		Total:   len(rows),
		Passed:  lo.CountBy(rows, func(r Record) bool { return r.Outcome == Passed }),
		Failed:  lo.CountBy(rows, func(r Record) bool { return r.Outcome == Failed }),
		Skipped: lo.CountBy(rows, func(r Record) bool { return r.Outcome == Skipped }),
		DurationMS: lo.SumBy(topLevel, func(r Record) int64 {
			return r.Duration.Milliseconds()
		}),
		ByCategory: lo.CountValuesBy(rows, func(r Record) string { return r.Category }),
	}
}

// Path returns dir/report_YYYY-MM-DD_HH-MM-SS.html for the local time now.
func Path(dir string, now time.Time) string {
	return filepath.Join(dir, "report_"+now.Format(fileTimeLayout)+".html")
}

// PreparePath creates dir if needed and returns the timestamped report path.
func PreparePath(dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir %s: %w", dir, err)
	}
	return Path(dir, now), nil
}
