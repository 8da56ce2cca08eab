package pnlyzer

import (
	"time"

	"github.com/shopspring/decimal"
)

// bucket is a sub-accumulator for one grouping key (a day, an hour of the
// day, or a transaction type).
type bucket struct {
	sum   decimal.Decimal
	count int
	min   float64
	max   float64
}

func (b *bucket) add(value decimal.Decimal) {
	f := value.InexactFloat64()
	if b.count == 0 || f < b.min {
		b.min = f
	}
	if b.count == 0 || f > b.max {
		b.max = f
	}
	b.sum = b.sum.Add(value)
	b.count++
}

// avg returns the mean of the bucket, or 0 for an empty bucket.
func (b *bucket) avg() float64 {
	if b.count == 0 {
		return 0
	}
	return b.sum.InexactFloat64() / float64(b.count)
}

// Accumulator holds the running statistics of a run. It is created empty,
// mutated once per accepted Record, and read-only once the stream ends.
// Each run owns its own Accumulator; there is no process-wide state, so
// concurrent runs (e.g. in tests) never interfere.
//
// Sums are kept in decimal so totals stay exact over millions of rows;
// order statistics and the volatility terms use float64, which is what the
// report publishes anyway.
type Accumulator struct {
	total      decimal.Decimal
	profit     decimal.Decimal // sum of positive PNL
	loss       decimal.Decimal // sum of negative PNL
	count      int
	wins       int
	losses     int
	breakeven  int
	sum        float64 // float mirror of total, for mean/stdev
	sumSquares float64

	best  Record
	worst Record
	first time.Time
	last  time.Time

	days       map[Date]*bucket
	hours      [24]bucket
	months     map[string]decimal.Decimal
	monthTypes map[string]map[string]decimal.Decimal
	types      map[string]*bucket

	sample *reservoir
}

// NewAccumulator returns an empty accumulator. sampleLimit bounds the
// percentile sample: zero keeps every accepted PNL value (exact
// percentiles), a positive value caps memory and switches to an
// approximate reservoir sample past that many records.
func NewAccumulator(sampleLimit int) *Accumulator {
	return &Accumulator{
		days:       make(map[Date]*bucket),
		months:     make(map[string]decimal.Decimal),
		monthTypes: make(map[string]map[string]decimal.Decimal),
		types:      make(map[string]*bucket),
		sample:     newReservoir(sampleLimit),
	}
}

// Add folds one accepted record into the running statistics. Amortized
// cost is constant per record.
func (a *Accumulator) Add(r Record) {
	f := r.PNL.InexactFloat64()

	a.total = a.total.Add(r.PNL)
	a.sum += f
	a.sumSquares += f * f
	a.sample.add(f)

	switch r.PNL.Sign() {
	case 1:
		a.wins++
		a.profit = a.profit.Add(r.PNL)
	case -1:
		a.losses++
		a.loss = a.loss.Add(r.PNL)
	default:
		a.breakeven++
	}

	if a.count == 0 || r.PNL.GreaterThan(a.best.PNL) {
		a.best = r
	}
	if a.count == 0 || r.PNL.LessThan(a.worst.PNL) {
		a.worst = r
	}
	if a.count == 0 || r.Timestamp.Before(a.first) {
		a.first = r.Timestamp
	}
	if a.count == 0 || r.Timestamp.After(a.last) {
		a.last = r.Timestamp
	}
	a.count++

	day := r.Day()
	b := a.days[day]
	if b == nil {
		b = &bucket{}
		a.days[day] = b
	}
	b.add(r.PNL)

	a.hours[r.Hour()].add(r.PNL)
	a.months[r.Month()] = a.months[r.Month()].Add(r.PNL)

	mt := a.monthTypes[r.Month()]
	if mt == nil {
		mt = make(map[string]decimal.Decimal)
		a.monthTypes[r.Month()] = mt
	}
	mt[r.Type] = mt[r.Type].Add(r.PNL)

	// type labels are case-sensitive: "Fee Revenue" and "fee revenue" are
	// distinct buckets, see the "quirks" topic
	t := a.types[r.Type]
	if t == nil {
		t = &bucket{}
		a.types[r.Type] = t
	}
	t.add(r.PNL)
}

// Count returns the number of accepted records folded so far.
func (a *Accumulator) Count() int { return a.count }

// Total returns the exact running total PNL.
func (a *Accumulator) Total() decimal.Decimal { return a.total }
