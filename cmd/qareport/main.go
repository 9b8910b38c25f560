// Command qareport runs the QA suite and turns its `go test -json` stream
// into the HTML report:
//
//	qareport run --html report.html -- -tags e2e ./tests/e2e/...
//	qareport render --in events.json --html report.html
//	qareport list --day 2025/03/01
//
// run writes a report only when --html is given. render exists to produce
// one, so it always writes it and --html is optional there. Whatever path
// --html names, the report is written to
// <QA_REPORT_DIR>/report_<timestamp>.html so runs never overwrite each other.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kuitang/qa-suite/internal/obs"
)

var version = "0.1.0"

func newApp() *cli.App {
	return &cli.App{
		Name:    "qareport",
		Usage:   "Run the QA suite and build its HTML report",
		Version: version,
		Before: func(*cli.Context) error {
			obs.Init()
			return nil
		},
		Commands: []*cli.Command{
			runCommand(),
			renderCommand(),
			listCommand(),
		},
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
