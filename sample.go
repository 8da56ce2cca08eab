package pnlyzer

import (
	"math/rand"
	"sort"
)

// reservoir retains PNL values for percentile computation. Below the limit
// it keeps every observed value, so percentiles are exact order statistics.
// Once the limit is exceeded it degrades to a uniform reservoir sample of
// fixed size, and percentiles become approximate. A limit of zero means
// unlimited: exact mode regardless of input size.
//
// The generator is seeded with a constant so that the same input always
// yields the same sample, keeping exports reproducible even in
// approximate mode.
type reservoir struct {
	limit       int
	seen        int
	values      []float64
	rng         *rand.Rand
	approximate bool
}

func newReservoir(limit int) *reservoir {
	return &reservoir{limit: limit, rng: rand.New(rand.NewSource(1))}
}

func (r *reservoir) add(v float64) {
	r.seen++
	if r.limit == 0 || len(r.values) < r.limit {
		r.values = append(r.values, v)
		return
	}
	r.approximate = true
	if j := r.rng.Intn(r.seen); j < r.limit {
		r.values[j] = v
	}
}

// sorted returns the retained values in ascending order. It sorts a copy,
// the reservoir itself stays untouched.
func (r *reservoir) sorted() []float64 {
	s := make([]float64, len(r.values))
	copy(s, r.values)
	sort.Float64s(s)
	return s
}
