package pnlyzer

import "fmt"

// Percent is a percentage value, where 12.34 means 12.34%.
type Percent float64

// percentOf returns the share of whole that part represents, as a Percent.
// A zero whole yields 0 rather than an infinity.
func percentOf(part, whole float64) Percent {
	if whole == 0 {
		return 0
	}
	return Percent(part / whole * 100)
}

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}
