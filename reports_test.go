package pnlyzer

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

// setupReport folds a small but varied dataset and builds its report.
func setupReport(t *testing.T) *Report {
	t.Helper()
	acc := NewAccumulator(0)
	rows := []struct{ ts, typ, pnl string }{
		{"2025-05-31 09:10:00", "Fee Revenue", "120.5"},
		{"2025-05-31 17:45:00", "Fee Revenue", "-20.5"},
		{"2025-06-01 09:05:00", "Staking Revenue", "75"},
		{"2025-06-01 22:00:00", "Referral Fee", "-5"},
		{"2025-06-02 09:00:00", "Fee Revenue", "10"},
		{"2025-06-02 13:30:00", "Staking Revenue", "0"},
		{"2025-06-03 09:00:00", "Fee Revenue", "-60"},
	}
	for _, row := range rows {
		acc.Add(rec(t, row.ts, row.typ, row.pnl))
	}

	chunks := []*Chunk{
		{Path: "chunk_1.csv", Seq: 1, Rows: 4, Accepted: 4, Rejected: 0, Sum: decimal.RequireFromString("170")},
		{Path: "chunk_2.csv", Seq: 2, Rows: 4, Accepted: 3, Rejected: 1, Sum: decimal.RequireFromString("-50")},
	}
	return NewReport(acc, chunks, ReportOptions{})
}

func TestReportTypeSharesSumToTotal(t *testing.T) {
	report := setupReport(t)

	var sum float64
	var share Percent
	for _, ts := range report.Types {
		sum += ts.PNL
		share += ts.Share
	}
	if math.Abs(sum-report.Summary.TotalPNL) > 1e-9 {
		t.Errorf("sum of per-type PNL = %v, want total %v", sum, report.Summary.TotalPNL)
	}
	if !share.Equal(100) {
		t.Errorf("type shares sum to %v, want 100%%", share)
	}
}

func TestReportTypesSortedByPNL(t *testing.T) {
	report := setupReport(t)
	for i := 1; i < len(report.Types); i++ {
		if report.Types[i].PNL > report.Types[i-1].PNL {
			t.Errorf("types out of order at %d: %v after %v", i, report.Types[i].PNL, report.Types[i-1].PNL)
		}
	}
}

func TestReportPercentilesMonotonic(t *testing.T) {
	report := setupReport(t)
	pcts := report.Summary.Percentiles
	if len(pcts) != len(DefaultPercentiles) {
		t.Fatalf("got %d percentiles, want %d", len(pcts), len(DefaultPercentiles))
	}
	for i := 1; i < len(pcts); i++ {
		if pcts[i].PNL < pcts[i-1].PNL {
			t.Errorf("p%d = %v < p%d = %v", pcts[i].P, pcts[i].PNL, pcts[i-1].P, pcts[i-1].PNL)
		}
	}
	if report.Summary.Approximate {
		t.Error("exact mode must not be flagged approximate")
	}
}

func TestReportCustomPercentiles(t *testing.T) {
	acc := NewAccumulator(0)
	for _, v := range []string{"1", "2", "3", "4"} {
		acc.Add(rec(t, "2025-06-01 10:00:00", "A", v))
	}
	report := NewReport(acc, nil, ReportOptions{Percentiles: []int{90, 50}})

	// the set is sorted before derivation
	if report.Summary.Percentiles[0].P != 50 || report.Summary.Percentiles[1].P != 90 {
		t.Fatalf("percentile set = %+v, want p50 then p90", report.Summary.Percentiles)
	}
	// nearest-rank over [1 2 3 4]: p50 -> index 2 -> 3, p90 -> index 3 -> 4
	if report.Summary.Percentiles[0].PNL != 3 || report.Summary.Percentiles[1].PNL != 4 {
		t.Errorf("percentiles = %+v, want 3 and 4", report.Summary.Percentiles)
	}
}

func TestReportBestWorstDay(t *testing.T) {
	report := setupReport(t)
	ta := report.Time

	// daily sums: 05-31=100, 06-01=70, 06-02=10, 06-03=-60
	if ta.BestDay.Date != "2025-05-31" || ta.BestDay.PNL != 100 {
		t.Errorf("best day = %s (%v), want 2025-05-31 (100)", ta.BestDay.Date, ta.BestDay.PNL)
	}
	if ta.WorstDay.Date != "2025-06-03" || ta.WorstDay.PNL != -60 {
		t.Errorf("worst day = %s (%v), want 2025-06-03 (-60)", ta.WorstDay.Date, ta.WorstDay.PNL)
	}
	if ta.TotalDays != 4 || ta.ProfitableDays != 3 {
		t.Errorf("profitable days = %d/%d, want 3/4", ta.ProfitableDays, ta.TotalDays)
	}
	if !ta.ProfitableDayRate.Equal(75) {
		t.Errorf("profitable day rate = %v, want 75%%", ta.ProfitableDayRate)
	}
}

func TestReportBestDayTieBreaksEarliest(t *testing.T) {
	acc := NewAccumulator(0)
	acc.Add(rec(t, "2025-06-02 10:00:00", "A", "50"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "50"))

	ta := NewReport(acc, nil, ReportOptions{}).Time
	if ta.BestDay.Date != "2025-06-01" {
		t.Errorf("best day = %s, want the earliest of the tied days", ta.BestDay.Date)
	}
	if ta.WorstDay.Date != "2025-06-01" {
		t.Errorf("worst day = %s, want the earliest of the tied days", ta.WorstDay.Date)
	}
}

func TestReportBestHourByAverage(t *testing.T) {
	report := setupReport(t)
	ta := report.Time

	// hour 9 carries 120.5+75+10-60 over 4 records (avg 36.375); hour 17
	// carries -20.5, hour 22 carries -5, hour 13 carries 0.
	if ta.BestHour.Hour != 9 {
		t.Errorf("best hour = %d, want 9", ta.BestHour.Hour)
	}
	if math.Abs(ta.BestHour.Avg-36.375) > 1e-9 {
		t.Errorf("best hour avg = %v, want 36.375", ta.BestHour.Avg)
	}
	if ta.WorstHour.Hour != 17 {
		t.Errorf("worst hour = %d, want 17", ta.WorstHour.Hour)
	}
	if len(ta.Hours) != 4 {
		t.Errorf("hourly breakdown has %d slots, want the 4 hours with records", len(ta.Hours))
	}
}

func TestReportMonths(t *testing.T) {
	report := setupReport(t)
	ta := report.Time

	if len(ta.Months) != 2 {
		t.Fatalf("got %d months, want 2", len(ta.Months))
	}
	if ta.Months[0].Month != "2025-05" || ta.Months[1].Month != "2025-06" {
		t.Errorf("months = %+v, want chronological 2025-05, 2025-06", ta.Months)
	}
	if ta.BestMonth.Month != "2025-05" || ta.WorstMonth.Month != "2025-06" {
		t.Errorf("best/worst month = %s/%s, want 2025-05/2025-06", ta.BestMonth.Month, ta.WorstMonth.Month)
	}
}

func TestReportQualityAggregates(t *testing.T) {
	report := setupReport(t)
	q := report.Quality
	if q.Rows != 8 || q.Accepted != 7 || q.Rejected != 1 {
		t.Errorf("quality = %d/%d/%d, want 8 rows, 7 accepted, 1 rejected", q.Rows, q.Accepted, q.Rejected)
	}
	if q.Accepted+q.Rejected != q.Rows {
		t.Errorf("accepted + rejected != rows")
	}
}

func TestReportChunkBreakdown(t *testing.T) {
	report := setupReport(t)
	if len(report.Chunks) != 2 {
		t.Fatalf("got %d chunk stats, want 2", len(report.Chunks))
	}
	c := report.Chunks[1]
	if c.Path != "chunk_2.csv" || c.Rejected != 1 || c.PNL != -50 {
		t.Errorf("second chunk stat = %+v", c)
	}
}

func TestReportDateRange(t *testing.T) {
	report := setupReport(t)
	if report.Summary.FirstDate != "2025-05-31" || report.Summary.LastDate != "2025-06-03" {
		t.Errorf("date range = %s..%s, want 2025-05-31..2025-06-03",
			report.Summary.FirstDate, report.Summary.LastDate)
	}
}
