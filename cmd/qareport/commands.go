package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/kuitang/qa-suite/internal/archive"
	"github.com/kuitang/qa-suite/internal/config"
	"github.com/kuitang/qa-suite/internal/errs"
	"github.com/kuitang/qa-suite/internal/obs"
	"github.com/kuitang/qa-suite/internal/report"
)

func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "html",
			Usage: "write an HTML report (placed under the report dir with a timestamped name)",
		},
		&cli.StringSliceFlag{
			Name:  "src",
			Value: cli.NewStringSlice("./tests/e2e"),
			Usage: "test source dirs whose doc comments describe the tests; end with /... to recurse",
		},
		&cli.StringFlag{
			Name:  "report-dir",
			Usage: "override QA_REPORT_DIR",
		},
		&cli.BoolFlag{
			Name:  "publish",
			Usage: "upload the report to REPORT_S3_BUCKET",
		},
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:      "run",
		Usage:     "Run go test -json with the given arguments, echo its output and build the report",
		ArgsUsage: "-- [go test args]",
		Flags:     reportFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			runID := uuid.NewString()

			args := append([]string{"test", "-json"}, c.Args().Slice()...)
			cmd := exec.CommandContext(c.Context, "go", args...)
			cmd.Env = append(os.Environ(), config.RunIDEnv+"="+runID)
			cmd.Stderr = c.App.ErrWriter
			stdout, err := cmd.StdoutPipe()
			if err != nil {
				return fmt.Errorf("pipe go test output: %w", err)
			}

			obs.Pkg("qareport").Info("go_test_started", "run_id", runID, "args", args)
			if err := cmd.Start(); err != nil {
				return fmt.Errorf("start go test: %w", err)
			}

			collector, consumeErr := collect(stdout, c.App.Writer)
			waitErr := cmd.Wait()
			if consumeErr != nil {
				return consumeErr
			}

			if c.IsSet("html") {
				if err := writeReport(c, cfg, runID, collector.Records()); err != nil {
					return err
				}
			}

			var exitErr *exec.ExitError
			if errors.As(waitErr, &exitErr) {
				return cli.Exit("go test failed", exitErr.ExitCode())
			}
			return waitErr
		},
	}
}

// collect reads go test's event stream. After a decode failure the rest of
// the stream is discarded so go test never blocks on a full pipe.
func collect(stdout io.Reader, echo io.Writer) (*report.Collector, error) {
	var collector report.Collector
	if err := collector.Consume(stdout, echo); err != nil {
		_, _ = io.Copy(io.Discard, stdout)
		return nil, err
	}
	return &collector, nil
}

func renderCommand() *cli.Command {
	flags := append(reportFlags(), &cli.StringFlag{
		Name:  "in",
		Value: "-",
		Usage: "go test -json event file, or - for stdin",
	})
	return &cli.Command{
		Name:  "render",
		Usage: "Build the report from a saved go test -json stream (always written; --html is optional)",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}

			in := os.Stdin
			if name := c.String("in"); name != "-" {
				f, err := os.Open(name)
				if err != nil {
					return fmt.Errorf("open events: %w", err)
				}
				defer f.Close()
				in = f
			}

			records, err := report.ParseEvents(in)
			if err != nil {
				return err
			}
			return writeReport(c, cfg, uuid.NewString(), records)
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List archived reports",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "day", Usage: "UTC day as YYYY/MM/DD; empty lists everything"},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			arch, err := openArchive(c, cfg)
			if err != nil {
				return err
			}
			keys, err := arch.List(c.Context, c.String("day"))
			if err != nil {
				return err
			}
			for _, key := range keys {
				fmt.Fprintf(c.App.Writer, "%s\t%s\n", key, arch.PublicURL(key))
			}
			return nil
		},
	}
}

// writeReport renders records to a fresh timestamped file, optionally
// uploads it, and prints a one-line JSON summary.
func writeReport(c *cli.Context, cfg *config.Config, runID string, records []report.Record) error {
	docs, err := report.LoadDocs(c.StringSlice("src")...)
	if err != nil {
		return err
	}

	dir := cfg.ReportDir
	if c.IsSet("report-dir") {
		dir = c.String("report-dir")
	}
	now := time.Now()
	path, err := report.PreparePath(dir, now)
	if err != nil {
		return err
	}

	rep := report.Build(runID, records, docs, now)
	if err := report.WriteFile(path, rep); err != nil {
		return err
	}
	obs.Pkg("qareport").Info("report_written", "run_id", runID, "path", path, "tests", rep.Summary.Total)

	summary := rep.Summary
	summary.Report = path
	if c.Bool("publish") {
		arch, err := openArchive(c, cfg)
		if err != nil {
			return err
		}
		key, err := arch.PutReport(c.Context, runID, path, now)
		if err != nil {
			return err
		}
		summary.URL = arch.PublicURL(key)
	}

	return json.NewEncoder(c.App.Writer).Encode(summary)
}

func openArchive(c *cli.Context, cfg *config.Config) (*archive.Archive, error) {
	if !cfg.ArchiveEnabled() {
		return nil, errs.New(errs.FailedPrecondition, "REPORT_S3_BUCKET is not set")
	}
	return archive.New(c.Context, archive.OptionsFromConfig(cfg))
}
