// perfsum - performance run summarizer
//
// perfsum reads a pricing or fare display performance run (server metrics
// logs and Hammer harness output) and writes CSV reports for analysis in a
// spreadsheet.
package main

import (
	"os"

	"github.com/ccollicutt/perfsum/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
