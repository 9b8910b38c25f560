package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuitang/qa-suite/internal/report"
)

const events = `{"Action":"run","Package":"example.com/qa/e2e","Test":"TestLoginValid"}
{"Action":"output","Package":"example.com/qa/e2e","Test":"TestLoginValid","Output":"=== RUN   TestLoginValid\n"}
{"Action":"pass","Package":"example.com/qa/e2e","Test":"TestLoginValid","Elapsed":1.5}
{"Action":"run","Package":"example.com/qa/e2e","Test":"TestUnknown"}
{"Action":"fail","Package":"example.com/qa/e2e","Test":"TestUnknown","Elapsed":0.1}
`

const loginSource = `package e2e

// TC-L01: Valid credentials redirect to the dashboard.
func TestLoginValid(t *testing.T) {}
`

func clearArchiveEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"REPORT_S3_BUCKET", "QA_BASE_URL", "QA_API_BASE_URL", "QA_REPORT_DIR"} {
		t.Setenv(key, "")
	}
}

// writeModule lays out a module example.com/qa with e2e/login_test.go and
// the saved event stream, returning the source dir and events file.
func writeModule(t *testing.T, tmp string) (src, in string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "go.mod"), []byte("module example.com/qa\n\ngo 1.25\n"), 0o644))
	src = filepath.Join(tmp, "e2e")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "login_test.go"), []byte(loginSource), 0o644))
	in = filepath.Join(tmp, "events.json")
	require.NoError(t, os.WriteFile(in, []byte(events), 0o644))
	return src, in
}

func TestRender_WritesReportAndSummary(t *testing.T) {
	clearArchiveEnv(t)
	tmp := t.TempDir()
	src, in := writeModule(t, tmp)
	outDir := filepath.Join(tmp, "reports")

	var stdout bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	err := app.Run([]string{"qareport", "render", "--in", in, "--src", src, "--report-dir", outDir, "--html", "ignored.html"})
	require.NoError(t, err)

	var summary report.Summary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	assert.Equal(t, 2, summary.Total)
	assert.Equal(t, 1, summary.Passed)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.ByCategory["Login"])
	assert.Equal(t, 1, summary.ByCategory["Other"])
	assert.Equal(t, outDir, filepath.Dir(summary.Report))
	assert.True(t, strings.HasPrefix(filepath.Base(summary.Report), "report_"))

	html, err := os.ReadFile(summary.Report)
	require.NoError(t, err)
	assert.Contains(t, string(html), "TC-L01: Valid credentials redirect to the dashboard.")
	assert.Contains(t, string(html), "QA Test Application - Test Report")
}

func TestRender_PublishWithoutBucketFails(t *testing.T) {
	clearArchiveEnv(t)
	tmp := t.TempDir()
	in := filepath.Join(tmp, "events.json")
	require.NoError(t, os.WriteFile(in, []byte(events), 0o644))

	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"qareport", "render", "--in", in, "--src", tmp, "--report-dir", tmp, "--publish"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REPORT_S3_BUCKET")
}

func TestRender_MissingEventsFile(t *testing.T) {
	clearArchiveEnv(t)
	app := newApp()
	app.Writer = &bytes.Buffer{}
	err := app.Run([]string{"qareport", "render", "--in", filepath.Join(t.TempDir(), "absent.json")})
	assert.Error(t, err)
}

func TestRender_WritesReportWithoutHTMLFlag(t *testing.T) {
	clearArchiveEnv(t)
	tmp := t.TempDir()
	src, in := writeModule(t, tmp)
	outDir := filepath.Join(tmp, "reports")

	var stdout bytes.Buffer
	app := newApp()
	app.Writer = &stdout
	require.NoError(t, app.Run([]string{"qareport", "render", "--in", in, "--src", src, "--report-dir", outDir}))

	var summary report.Summary
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &summary))
	_, err := os.Stat(summary.Report)
	assert.NoError(t, err)
}

func TestCollect_DrainsStreamAfterDecodeError(t *testing.T) {
	stream := strings.NewReader(`{"Action":` + "\n" + strings.Repeat(`{"Action":"output","Output":"x"}`+"\n", 10000))

	var echo bytes.Buffer
	collector, err := collect(stream, &echo)
	require.Error(t, err)
	assert.Nil(t, collector)
	assert.Zero(t, stream.Len(), "the remaining stream should be read to EOF")
}

func TestCollect_ReturnsRecords(t *testing.T) {
	collector, err := collect(strings.NewReader(events), nil)
	require.NoError(t, err)
	assert.Len(t, collector.Records(), 2)
}
