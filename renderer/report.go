// Package renderer converts a pnlyzer.Report into markdown suitable for
// the terminal (through glamour) or for a plain file.
package renderer

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/pnlyzer"
	md "github.com/nao1215/markdown"
)

// typeRowLimit caps the revenue breakdown table; datasets routinely carry
// hundreds of distinct type labels.
const typeRowLimit = 20

// qualityRowLimit caps the rejection samples shown on screen; the JSON
// export carries the full retained sample.
const qualityRowLimit = 5

// ReportMarkdown renders the full report as one markdown document.
func ReportMarkdown(r *pnlyzer.Report) string {
	var b strings.Builder
	b.WriteString(SummaryMarkdown(r))
	b.WriteString(ProfitLossMarkdown(r))
	b.WriteString(TimeMarkdown(r))
	b.WriteString(TypesMarkdown(r))
	b.WriteString(ChunksMarkdown(r))
	b.WriteString(QualityMarkdown(r))
	return b.String()
}

// SummaryMarkdown renders the headline statistics section.
func SummaryMarkdown(r *pnlyzer.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("PNL Analysis Report")
	doc.PlainText(fmt.Sprintf("%d records from %s to %s, total %s",
		r.Summary.Count, r.Summary.FirstDate, r.Summary.LastDate, pnlyzer.USD(r.Summary.TotalPNL)))

	doc.H2("Overall Statistics")
	rows := [][]string{
		{"Total PNL", pnlyzer.USD(r.Summary.TotalPNL)},
		{"Transactions", strconv.Itoa(r.Summary.Count)},
		{"Mean PNL", fmt.Sprintf("$%.6f", r.Summary.Mean)},
		{"Volatility", fmt.Sprintf("$%.6f", r.Summary.Volatility)},
		{"Minimum", fmt.Sprintf("$%.6f (%s)", r.Summary.Min.PNL, r.Summary.Min.Digest)},
		{"Maximum", fmt.Sprintf("$%.6f (%s)", r.Summary.Max.PNL, r.Summary.Max.Digest)},
	}
	for _, p := range r.Summary.Percentiles {
		rows = append(rows, []string{fmt.Sprintf("p%d", p.P), fmt.Sprintf("$%.6f", p.PNL)})
	}
	doc.Table(md.TableSet{Header: []string{"Metric", "Value"}, Rows: rows})
	if r.Summary.Approximate {
		doc.PlainText("Percentiles are approximate: the sample was bounded by the configured limit.")
	}

	return doc.String()
}

// ProfitLossMarkdown renders the win/loss/breakeven partition.
func ProfitLossMarkdown(r *pnlyzer.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	pl := r.ProfitLoss
	doc.H2("Profit / Loss Breakdown")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Wins", fmt.Sprintf("%d (%.2f%%)", pl.Wins, pl.WinRate*100)},
			{"Losses", strconv.Itoa(pl.Losses)},
			{"Breakeven", strconv.Itoa(pl.Breakeven)},
			{"Total Profit", pnlyzer.USD(pl.TotalProfit)},
			{"Total Loss", pnlyzer.USD(pl.TotalLoss)},
			{"Average Profit", fmt.Sprintf("$%.6f", pl.AvgProfit)},
			{"Average Loss", fmt.Sprintf("$%.6f", pl.AvgLoss)},
			{"Largest Profit", fmt.Sprintf("$%.6f", pl.LargestProfit)},
			{"Largest Loss", fmt.Sprintf("$%.6f", pl.LargestLoss)},
			{"Profit/Loss Ratio", fmt.Sprintf("%.2f", pl.Ratio)},
		},
	})

	return doc.String()
}

// TimeMarkdown renders the time-bucketed performance section.
func TimeMarkdown(r *pnlyzer.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	ta := r.Time
	doc.H2("Time-Based Performance")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Best Day", fmt.Sprintf("%s (%s)", ta.BestDay.Date, pnlyzer.SignedUSD(ta.BestDay.PNL))},
			{"Worst Day", fmt.Sprintf("%s (%s)", ta.WorstDay.Date, pnlyzer.SignedUSD(ta.WorstDay.PNL))},
			{"Average Daily", pnlyzer.USD(ta.AvgDaily)},
			{"Daily Volatility", pnlyzer.USD(ta.DailyVolatility)},
			{"Profitable Days", fmt.Sprintf("%d/%d (%s)", ta.ProfitableDays, ta.TotalDays, ta.ProfitableDayRate)},
			{"Best Hour", fmt.Sprintf("%02d:00 (avg %s)", ta.BestHour.Hour, pnlyzer.SignedUSD(ta.BestHour.Avg))},
			{"Worst Hour", fmt.Sprintf("%02d:00 (avg %s)", ta.WorstHour.Hour, pnlyzer.SignedUSD(ta.WorstHour.Avg))},
			{"Best Month", fmt.Sprintf("%s (%s)", ta.BestMonth.Month, pnlyzer.SignedUSD(ta.BestMonth.PNL))},
			{"Worst Month", fmt.Sprintf("%s (%s)", ta.WorstMonth.Month, pnlyzer.SignedUSD(ta.WorstMonth.PNL))},
		},
	})

	if len(ta.Months) > 1 {
		rows := make([][]string, 0, len(ta.Months))
		for _, m := range ta.Months {
			rows = append(rows, []string{m.Month, pnlyzer.SignedUSD(m.PNL)})
		}
		doc.H2("Monthly Breakdown")
		doc.Table(md.TableSet{Header: []string{"Month", "PNL"}, Rows: rows})
	}

	return doc.String()
}

// TypesMarkdown renders the revenue breakdown per transaction type,
// richest first, truncated to typeRowLimit rows.
func TypesMarkdown(r *pnlyzer.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Revenue Breakdown by Type")
	rows := make([][]string, 0, len(r.Types))
	for i, t := range r.Types {
		if i == typeRowLimit {
			break
		}
		rows = append(rows, []string{
			t.Type,
			pnlyzer.SignedUSD(t.PNL),
			strconv.Itoa(t.Count),
			fmt.Sprintf("$%.4f", t.Avg),
			t.Share.String(),
		})
	}
	doc.Table(md.TableSet{Header: []string{"Type", "Total PNL", "Count", "Avg", "Share"}, Rows: rows})
	if extra := len(r.Types) - typeRowLimit; extra > 0 {
		doc.PlainText(fmt.Sprintf("... and %d more transaction types", extra))
	}

	return doc.String()
}

// ChunksMarkdown renders the per-chunk contribution section.
func ChunksMarkdown(r *pnlyzer.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H2("Chunk Contribution")
	rows := make([][]string, 0, len(r.Chunks))
	for _, c := range r.Chunks {
		rows = append(rows, []string{
			strconv.Itoa(c.Seq),
			c.Path,
			strconv.Itoa(c.Rows),
			strconv.Itoa(c.Accepted),
			strconv.Itoa(c.Rejected),
			pnlyzer.SignedUSD(c.PNL),
		})
	}
	doc.Table(md.TableSet{Header: []string{"#", "File", "Rows", "Accepted", "Rejected", "PNL"}, Rows: rows})

	return doc.String()
}

// QualityMarkdown renders the data quality section; malformed rows are
// skipped during loading but always tallied here.
func QualityMarkdown(r *pnlyzer.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	q := r.Quality
	doc.H2("Data Quality")
	doc.PlainText(fmt.Sprintf("%d rows read, %d accepted, %d rejected", q.Rows, q.Accepted, q.Rejected))
	if len(q.Samples) > 0 {
		rows := make([][]string, 0, len(q.Samples))
		for i, s := range q.Samples {
			if i == qualityRowLimit {
				break
			}
			rows = append(rows, []string{s.Chunk, strconv.Itoa(s.Row), s.Cause})
		}
		doc.Table(md.TableSet{Header: []string{"Chunk", "Row", "Cause"}, Rows: rows})
		if extra := len(q.Samples) - qualityRowLimit; extra > 0 {
			doc.PlainText(fmt.Sprintf("... and %d more rejected rows", extra))
		}
	}

	return doc.String()
}
