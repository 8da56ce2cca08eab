package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/pnlyzer"
	"github.com/etnz/pnlyzer/renderer"
	"github.com/google/subcommands"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	auto        bool
	dir         string
	jsonFile    string
	jsonOnly    bool
	monthlyCSV  string
	percentiles string
	sampleLimit int
	progress    int
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "analyze PNL chunk files and display a report" }
func (*analyzeCmd) Usage() string {
	return `pnla analyze [-auto] [-C <dir>] [-json <file>] [files...]

  Merges the given CSV chunk files (or, with -auto, the chunk files
  discovered in the working directory) into one dataset and displays a
  statistical PNL report: totals, win rate, volatility, percentiles,
  time-bucketed trends, revenue breakdown by type and per-chunk
  contribution.

Usage Examples:
# Analyze explicit files, in that order.
$ pnla analyze chunk_1.csv chunk_2.csv

# Discover chunk files in ./exports and also export the report as JSON.
$ pnla analyze -auto -C exports -json report.json

# Export the month-by-type revenue matrix as CSV.
$ pnla analyze -auto -monthly-csv monthly.csv

`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.auto, "auto", false, "Discover chunk files by naming convention instead of naming them.")
	f.StringVar(&c.dir, "C", ".", "Directory to scan in -auto mode.")
	f.StringVar(&c.jsonFile, "json", "", "Also export the report as JSON to this file.")
	f.StringVar(&c.monthlyCSV, "monthly-csv", "", "Also export the month-by-type revenue matrix as CSV to this file.")
	f.BoolVar(&c.jsonOnly, "json-only", false, "Suppress the terminal report; requires -json.")
	f.StringVar(&c.percentiles, "percentiles", "", "Comma-separated percentile set, e.g. 10,25,50,75,90.")
	f.IntVar(&c.sampleLimit, "sample-limit", 0, "Switch to approximate percentiles past this many records (0 = exact).")
	f.IntVar(&c.progress, "progress", 100000, "Rows between progress messages; 0 disables them.")
}

func (c *analyzeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.jsonOnly && c.jsonFile == "" {
		fmt.Fprintln(os.Stderr, "Error: -json-only requires -json")
		return subcommands.ExitUsageError
	}
	pcts, err := parsePercentiles(c.percentiles)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	chunks, err := locateChunks(c.auto, c.dir, f.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	acc := pnlyzer.NewAccumulator(c.sampleLimit)
	loader := pnlyzer.Loader{ProgressEvery: c.progress}
	if c.progress > 0 {
		loader.Progress = func(rows int) {
			fmt.Fprintf(os.Stderr, "  processed %d rows...\n", rows)
		}
	}

	if err := loader.Load(ctx, chunks, acc); err != nil {
		var empty *pnlyzer.EmptyDatasetError
		if errors.As(err, &empty) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", empty)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Error loading chunks: %v\n", err)
		return subcommands.ExitFailure
	}

	report := pnlyzer.NewReport(acc, chunks, pnlyzer.ReportOptions{
		Percentiles: pcts,
		Samples:     loader.Samples,
	})

	if !c.jsonOnly {
		printMarkdown(renderer.ReportMarkdown(report))
	}

	if c.jsonFile != "" {
		// an export failure does not invalidate the report already shown
		if err := pnlyzer.ExportReportFile(c.jsonFile, report); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Report exported to %s\n", c.jsonFile)
	}

	if c.monthlyCSV != "" {
		if err := pnlyzer.ExportMonthlyCSVFile(c.monthlyCSV, pnlyzer.NewMonthlyMatrix(acc)); err != nil {
			fmt.Fprintf(os.Stderr, "Error exporting monthly report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(os.Stderr, "Monthly report exported to %s\n", c.monthlyCSV)
	}

	return subcommands.ExitSuccess
}

// locateChunks selects between the two discovery modes of the locator.
func locateChunks(auto bool, dir string, args []string) ([]*pnlyzer.Chunk, error) {
	if auto {
		if len(args) > 0 {
			return nil, fmt.Errorf("-auto and an explicit file list are mutually exclusive")
		}
		return pnlyzer.DiscoverChunks(dir)
	}
	return pnlyzer.ResolveChunks(args)
}

// parsePercentiles parses a comma-separated percentile list. An empty
// input selects the default set.
func parsePercentiles(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var pcts []int
	for _, field := range strings.Split(s, ",") {
		p, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, fmt.Errorf("invalid percentile %q", field)
		}
		if p < 1 || p > 99 {
			return nil, fmt.Errorf("percentile %d out of range [1,99]", p)
		}
		pcts = append(pcts, p)
	}
	return pcts, nil
}
