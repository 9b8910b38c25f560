// Package report turns a `go test -json` event stream into the suite's HTML
// report. Each test row carries a category derived from the file the test
// lives in and a description taken from the first line of its doc comment.
package report

import (
	"time"
)

// Outcome is a test's final state.
type Outcome string

const (
	Passed  Outcome = "Passed"
	Failed  Outcome = "Failed"
	Skipped Outcome = "Skipped"
)

// Record is one test or subtest as reported.
type Record struct {
	Package  string
	Test     string
	Outcome  Outcome
	Duration time.Duration
	Output   string

	Category    string
	Description string
	Doc         string
}

// IsSubtest reports whether the record is a t.Run case.
func (r Record) IsSubtest() bool {
	return parentTest(r.Test) != r.Test
}
