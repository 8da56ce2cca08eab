package pnlyzer

// This file declares the Report and its sections. A Report is a read-only
// view computed once from finalized Accumulator state plus the chunk list;
// it is never mutated after construction. Sections use slices rather than
// maps so the exported document is deterministic.

// Report is the full result of one analysis run.
type Report struct {
	Summary    Summary      `json:"summary"`
	ProfitLoss ProfitLoss   `json:"profit_loss"`
	Time       TimeAnalysis `json:"time_analysis"`
	Types      []TypeStat   `json:"type_breakdown"`
	Chunks     []ChunkStat  `json:"chunk_breakdown"`
	Quality    DataQuality  `json:"data_quality"`
}

// Summary holds the headline statistics of the dataset.
type Summary struct {
	TotalPNL   float64 `json:"total_pnl"`
	Count      int     `json:"count"` // accepted records
	Mean       float64 `json:"mean"`
	Volatility float64 `json:"volatility"` // population standard deviation
	Min        Extreme `json:"min"`
	Max        Extreme `json:"max"`
	FirstDate  string  `json:"first_date"`
	LastDate   string  `json:"last_date"`

	// Percentiles are order statistics over the retained sample, in
	// ascending percentile order, hence monotonically non-decreasing.
	// When Approximate is true the sample was a bounded reservoir and the
	// values are estimates, not exact order statistics.
	Percentiles []Percentile `json:"percentiles"`
	Approximate bool         `json:"approximate_percentiles"`
}

// Extreme is a single best or worst transaction with its provenance.
type Extreme struct {
	PNL       float64 `json:"pnl"`
	Digest    string  `json:"digest"`
	Timestamp string  `json:"timestamp"`
}

// Percentile is one order statistic, e.g. {P: 50, PNL: 0.42}.
type Percentile struct {
	P   int     `json:"p"`
	PNL float64 `json:"pnl"`
}

// ProfitLoss partitions accepted records into wins (PNL > 0), losses
// (PNL < 0) and breakeven (PNL exactly 0). Breakeven records count toward
// the accepted total but toward neither wins nor losses, and the win rate
// divides wins by the nonzero population only.
type ProfitLoss struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Breakeven     int     `json:"breakeven"`
	WinRate       float64 `json:"win_rate"` // in [0,1]
	TotalProfit   float64 `json:"total_profit"`
	TotalLoss     float64 `json:"total_loss"`
	AvgProfit     float64 `json:"avg_profit"`
	AvgLoss       float64 `json:"avg_loss"`
	LargestProfit float64 `json:"largest_profit"`
	LargestLoss   float64 `json:"largest_loss"`

	// Ratio is the average profit over the absolute average loss, or 0
	// when either side is empty.
	Ratio float64 `json:"profit_loss_ratio"`
}

// DayStat is the aggregate of one calendar day.
type DayStat struct {
	Date  string  `json:"date"`
	PNL   float64 `json:"pnl"`
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// HourStat is the aggregate of one hour-of-day (0-23), across all days.
type HourStat struct {
	Hour  int     `json:"hour"`
	PNL   float64 `json:"pnl"`
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
}

// MonthStat is the aggregate of one calendar month.
type MonthStat struct {
	Month string  `json:"month"` // e.g. "2025-06"
	PNL   float64 `json:"pnl"`
}

// TimeAnalysis holds the time-bucketed trends. Best/worst day rank days by
// their summed PNL with ties broken by earliest date; best/worst hour rank
// hours of the day by average PNL across the whole dataset.
type TimeAnalysis struct {
	BestDay           DayStat `json:"best_day"`
	WorstDay          DayStat `json:"worst_day"`
	AvgDaily          float64 `json:"avg_daily_pnl"`
	DailyVolatility   float64 `json:"daily_volatility"`
	ProfitableDays    int     `json:"profitable_days"`
	TotalDays         int     `json:"total_days"`
	ProfitableDayRate Percent `json:"profitable_day_rate"`

	BestHour  HourStat   `json:"best_hour"`
	WorstHour HourStat   `json:"worst_hour"`
	Hours     []HourStat `json:"hourly_breakdown"` // only hours with records, ascending

	BestMonth  MonthStat   `json:"best_month"`
	WorstMonth MonthStat   `json:"worst_month"`
	Months     []MonthStat `json:"monthly_breakdown"` // chronological
}

// TypeStat is the revenue breakdown of one transaction type. Types are
// raw, case-sensitive labels; Share is the type's percentage of the total
// PNL, and shares sum to 100% up to rounding.
type TypeStat struct {
	Type  string  `json:"type"`
	PNL   float64 `json:"pnl"`
	Count int     `json:"count"`
	Avg   float64 `json:"avg"`
	Share Percent `json:"share"`
}

// ChunkStat is the contribution of one source file.
type ChunkStat struct {
	Path     string  `json:"path"`
	Seq      int     `json:"seq"`
	Rows     int     `json:"rows"`
	Accepted int     `json:"accepted"`
	Rejected int     `json:"rejected"`
	PNL      float64 `json:"pnl"`
}

// DataQuality summarizes rejection accounting across the run. For every
// chunk and in aggregate, Accepted + Rejected == Rows.
type DataQuality struct {
	Rows     int        `json:"rows"`
	Accepted int        `json:"accepted"`
	Rejected int        `json:"rejected"`
	Samples  []RowError `json:"samples,omitempty"` // first few rejected rows
}
