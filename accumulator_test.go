package pnlyzer

import (
	"fmt"
	"math"
	"testing"
	"time"
)

// rec is a test helper building an accepted record.
func rec(t *testing.T, timestamp, typ, pnl string) Record {
	t.Helper()
	r, err := NewRecord("0xtest", timestamp, typ, pnl)
	if err != nil {
		t.Fatalf("NewRecord() failed: %v", err)
	}
	return r
}

func TestAccumulatorTwoRowScenario(t *testing.T) {
	// the canonical two-row dataset: PNL 100.0 and -40.0
	acc := NewAccumulator(0)
	acc.Add(rec(t, "2025-06-01 10:00:00", "Fee Revenue", "100.0"))
	acc.Add(rec(t, "2025-06-01 11:00:00", "Fee Revenue", "-40.0"))

	report := NewReport(acc, nil, ReportOptions{})

	if got := report.Summary.TotalPNL; got != 60.0 {
		t.Errorf("total = %v, want 60", got)
	}
	if got := report.ProfitLoss.WinRate; got != 0.5 {
		t.Errorf("win rate = %v, want 0.5", got)
	}
	// population standard deviation of {100, -40} is 70
	if got := report.Summary.Volatility; math.Abs(got-70.0) > 1e-9 {
		t.Errorf("volatility = %v, want 70", got)
	}
	if got := report.Summary.Mean; got != 30.0 {
		t.Errorf("mean = %v, want 30", got)
	}
}

func TestAccumulatorBreakevenPartition(t *testing.T) {
	acc := NewAccumulator(0)
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "1"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "2"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "-1"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "0"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "0.00"))

	report := NewReport(acc, nil, ReportOptions{})
	pl := report.ProfitLoss

	if pl.Wins != 2 || pl.Losses != 1 || pl.Breakeven != 2 {
		t.Errorf("partition = %d/%d/%d, want 2 wins, 1 loss, 2 breakeven", pl.Wins, pl.Losses, pl.Breakeven)
	}
	// breakeven records count toward the total but toward neither side
	if pl.Wins+pl.Losses+pl.Breakeven != acc.Count() {
		t.Errorf("partition does not cover all %d accepted records", acc.Count())
	}
	// win rate is over the nonzero population only
	if want := 2.0 / 3.0; math.Abs(pl.WinRate-want) > 1e-9 {
		t.Errorf("win rate = %v, want %v", pl.WinRate, want)
	}
	if pl.WinRate < 0 || pl.WinRate > 1 {
		t.Errorf("win rate %v out of [0,1]", pl.WinRate)
	}
}

func TestAccumulatorProfitLossTotals(t *testing.T) {
	acc := NewAccumulator(0)
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "10"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "30"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "-5"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "-15"))

	pl := NewReport(acc, nil, ReportOptions{}).ProfitLoss
	if pl.TotalProfit != 40 || pl.TotalLoss != -20 {
		t.Errorf("profit/loss = %v/%v, want 40/-20", pl.TotalProfit, pl.TotalLoss)
	}
	if pl.AvgProfit != 20 || pl.AvgLoss != -10 {
		t.Errorf("avg profit/loss = %v/%v, want 20/-10", pl.AvgProfit, pl.AvgLoss)
	}
	if pl.LargestProfit != 30 || pl.LargestLoss != -15 {
		t.Errorf("largest profit/loss = %v/%v, want 30/-15", pl.LargestProfit, pl.LargestLoss)
	}
	// |20 / -10|
	if pl.Ratio != 2 {
		t.Errorf("profit/loss ratio = %v, want 2", pl.Ratio)
	}
}

func TestProfitLossRatioEmptySide(t *testing.T) {
	acc := NewAccumulator(0)
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "10"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "A", "30"))

	pl := NewReport(acc, nil, ReportOptions{}).ProfitLoss
	if pl.Ratio != 0 {
		t.Errorf("profit/loss ratio with no losses = %v, want 0", pl.Ratio)
	}
}

func TestAccumulatorCaseSensitiveTypes(t *testing.T) {
	acc := NewAccumulator(0)
	acc.Add(rec(t, "2025-06-01 10:00:00", "Fee Revenue", "1"))
	acc.Add(rec(t, "2025-06-01 10:00:00", "fee revenue", "2"))

	types := NewReport(acc, nil, ReportOptions{}).Types
	if len(types) != 2 {
		t.Fatalf("got %d type buckets, want 2 (labels differing in case are distinct)", len(types))
	}
}

func TestAccumulatorDayAndHourBuckets(t *testing.T) {
	acc := NewAccumulator(0)
	// same hour of day on two different days
	acc.Add(rec(t, "2025-06-01 09:00:00", "A", "10"))
	acc.Add(rec(t, "2025-06-02 09:30:00", "A", "20"))
	acc.Add(rec(t, "2025-06-02 18:00:00", "A", "-5"))

	day := acc.days[NewDate(2025, time.June, 2)]
	if day == nil || day.count != 2 {
		t.Fatalf("day bucket for 2025-06-02 = %+v, want 2 records", day)
	}
	if day.min != -5 || day.max != 20 {
		t.Errorf("day min/max = %v/%v, want -5/20", day.min, day.max)
	}
	// hour 9 aggregates across both days
	if got := acc.hours[9].count; got != 2 {
		t.Errorf("hour 9 count = %d, want 2", got)
	}
	if got := acc.hours[9].sum.String(); got != "30" {
		t.Errorf("hour 9 sum = %s, want 30", got)
	}
}

func TestAccumulatorRunsAreIndependent(t *testing.T) {
	// two accumulators over the same data never share state
	a, b := NewAccumulator(0), NewAccumulator(0)
	for i := 0; i < 5; i++ {
		r := rec(t, "2025-06-01 10:00:00", "A", fmt.Sprintf("%d", i))
		a.Add(r)
		b.Add(r)
	}
	if a.Count() != b.Count() || !a.Total().Equal(b.Total()) {
		t.Errorf("independent runs diverged: %d/%s vs %d/%s",
			a.Count(), a.Total(), b.Count(), b.Total())
	}
	a.Add(rec(t, "2025-06-01 10:00:00", "A", "100"))
	if b.Count() != 5 {
		t.Errorf("mutating one accumulator changed the other")
	}
}
