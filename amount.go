package pnlyzer

import (
	"math"

	"github.com/Rhymond/go-money"
)

// USD formats an amount in US dollars for display, e.g. "$1,234.56".
// Arithmetic stays exact in decimal elsewhere; this is presentation only.
func USD(v float64) string {
	return money.New(int64(math.Round(v*100)), money.USD).Display()
}

// SignedUSD formats an amount with an explicit sign for gains, e.g.
// "+$12.00". Zero renders as "-", matching the tabular style of the
// rendered report.
func SignedUSD(v float64) string {
	switch {
	case v == 0:
		return "-"
	case v > 0:
		return "+" + USD(v)
	default:
		return "-" + USD(-v)
	}
}
