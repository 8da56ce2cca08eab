package pnlyzer

import (
	"math"
	"sort"
)

// DefaultPercentiles is the percentile set reported when the caller does
// not pick one.
var DefaultPercentiles = []int{10, 25, 50, 75, 90}

// ReportOptions tunes report construction.
type ReportOptions struct {
	// Percentiles to report, each in [1,99]. Defaults to DefaultPercentiles.
	Percentiles []int
	// Samples are the rejected-row samples gathered by the loader for the
	// data quality section.
	Samples []RowError
}

// NewReport derives a Report from finalized accumulator state and the
// chunk list. It never re-reads raw records: every figure is computed from
// the accumulator's closed-form sub-totals, except percentiles which come
// from the retained sample. The accumulator must not be mutated afterwards.
func NewReport(acc *Accumulator, chunks []*Chunk, opts ReportOptions) *Report {
	r := &Report{
		Summary:    newSummary(acc, opts.Percentiles),
		ProfitLoss: newProfitLoss(acc),
		Time:       newTimeAnalysis(acc),
		Types:      newTypeStats(acc),
		Chunks:     newChunkStats(chunks),
	}
	for _, c := range chunks {
		r.Quality.Rows += c.Rows
		r.Quality.Accepted += c.Accepted
		r.Quality.Rejected += c.Rejected
	}
	r.Quality.Samples = opts.Samples
	return r
}

func newSummary(acc *Accumulator, pcts []int) Summary {
	s := Summary{
		TotalPNL:    acc.total.InexactFloat64(),
		Count:       acc.count,
		Approximate: acc.sample.approximate,
	}
	if acc.count == 0 {
		return s
	}
	mean := acc.sum / float64(acc.count)
	s.Mean = mean
	// population variance; clamp tiny negative float residue
	s.Volatility = math.Sqrt(math.Max(0, acc.sumSquares/float64(acc.count)-mean*mean))
	s.Min = Extreme{
		PNL:       acc.worst.PNL.InexactFloat64(),
		Digest:    acc.worst.Digest,
		Timestamp: acc.worst.Timestamp.Format(TimestampFormat),
	}
	s.Max = Extreme{
		PNL:       acc.best.PNL.InexactFloat64(),
		Digest:    acc.best.Digest,
		Timestamp: acc.best.Timestamp.Format(TimestampFormat),
	}
	s.FirstDate = DateOf(acc.first).String()
	s.LastDate = DateOf(acc.last).String()

	if len(pcts) == 0 {
		pcts = DefaultPercentiles
	}
	pcts = append([]int(nil), pcts...)
	sort.Ints(pcts)
	sample := acc.sample.sorted()
	for _, p := range pcts {
		s.Percentiles = append(s.Percentiles, Percentile{P: p, PNL: percentile(sample, p)})
	}
	return s
}

// percentile returns the nearest-rank order statistic: the value at index
// floor(p*n/100) of the ascending sample. Being order statistics over one
// sorted slice, reported percentiles are monotonically non-decreasing.
func percentile(sorted []float64, p int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	i := p * n / 100
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return sorted[i]
}

func newProfitLoss(acc *Accumulator) ProfitLoss {
	pl := ProfitLoss{
		Wins:      acc.wins,
		Losses:    acc.losses,
		Breakeven: acc.breakeven,
	}
	if nonzero := acc.wins + acc.losses; nonzero > 0 {
		pl.WinRate = float64(acc.wins) / float64(nonzero)
	}
	if acc.count == 0 {
		return pl
	}
	pl.TotalProfit = acc.profit.InexactFloat64()
	pl.TotalLoss = acc.loss.InexactFloat64()
	if acc.wins > 0 {
		pl.AvgProfit = pl.TotalProfit / float64(acc.wins)
		pl.LargestProfit = acc.best.PNL.InexactFloat64()
	}
	if acc.losses > 0 {
		pl.AvgLoss = pl.TotalLoss / float64(acc.losses)
		pl.LargestLoss = acc.worst.PNL.InexactFloat64()
	}
	if acc.wins > 0 && acc.losses > 0 {
		pl.Ratio = math.Abs(pl.AvgProfit / pl.AvgLoss)
	}
	return pl
}

func newTimeAnalysis(acc *Accumulator) TimeAnalysis {
	var ta TimeAnalysis

	// iterate days in date order so best/worst ties resolve to the
	// earliest date
	days := make([]Date, 0, len(acc.days))
	for day := range acc.days {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	var sum, sumSquares float64
	for i, day := range days {
		b := acc.days[day]
		stat := DayStat{Date: day.String(), PNL: b.sum.InexactFloat64(), Count: b.count, Min: b.min, Max: b.max}
		if i == 0 || stat.PNL > ta.BestDay.PNL {
			ta.BestDay = stat
		}
		if i == 0 || stat.PNL < ta.WorstDay.PNL {
			ta.WorstDay = stat
		}
		if stat.PNL > 0 {
			ta.ProfitableDays++
		}
		sum += stat.PNL
		sumSquares += stat.PNL * stat.PNL
	}
	ta.TotalDays = len(days)
	if n := float64(len(days)); n > 0 {
		mean := sum / n
		ta.AvgDaily = mean
		ta.DailyVolatility = math.Sqrt(math.Max(0, sumSquares/n-mean*mean))
		ta.ProfitableDayRate = percentOf(float64(ta.ProfitableDays), n)
	}

	for hour := range acc.hours {
		b := &acc.hours[hour]
		if b.count == 0 {
			continue
		}
		stat := HourStat{Hour: hour, PNL: b.sum.InexactFloat64(), Count: b.count, Avg: b.avg()}
		if len(ta.Hours) == 0 || stat.Avg > ta.BestHour.Avg {
			ta.BestHour = stat
		}
		if len(ta.Hours) == 0 || stat.Avg < ta.WorstHour.Avg {
			ta.WorstHour = stat
		}
		ta.Hours = append(ta.Hours, stat)
	}

	months := make([]string, 0, len(acc.months))
	for month := range acc.months {
		months = append(months, month)
	}
	sort.Strings(months)
	for i, month := range months {
		stat := MonthStat{Month: month, PNL: acc.months[month].InexactFloat64()}
		if i == 0 || stat.PNL > ta.BestMonth.PNL {
			ta.BestMonth = stat
		}
		if i == 0 || stat.PNL < ta.WorstMonth.PNL {
			ta.WorstMonth = stat
		}
		ta.Months = append(ta.Months, stat)
	}
	return ta
}

func newTypeStats(acc *Accumulator) []TypeStat {
	total := acc.total.InexactFloat64()
	stats := make([]TypeStat, 0, len(acc.types))
	for typ, b := range acc.types {
		stats = append(stats, TypeStat{
			Type:  typ,
			PNL:   b.sum.InexactFloat64(),
			Count: b.count,
			Avg:   b.avg(),
			Share: percentOf(b.sum.InexactFloat64(), total),
		})
	}
	// richest source first; name breaks ties so the order is stable
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].PNL != stats[j].PNL {
			return stats[i].PNL > stats[j].PNL
		}
		return stats[i].Type < stats[j].Type
	})
	return stats
}

func newChunkStats(chunks []*Chunk) []ChunkStat {
	stats := make([]ChunkStat, 0, len(chunks))
	for _, c := range chunks {
		stats = append(stats, ChunkStat{
			Path:     c.Path,
			Seq:      c.Seq,
			Rows:     c.Rows,
			Accepted: c.Accepted,
			Rejected: c.Rejected,
			PNL:      c.Sum.InexactFloat64(),
		})
	}
	return stats
}
