package pnlyzer

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TimestampFormat is the layout of the Timestamp column. Timestamps are
// kept in the timezone the source wrote them in; no conversion is applied.
const TimestampFormat = "2006-01-02 15:04:05"

// Record is one validated transaction row.
type Record struct {
	Digest    string          // opaque transaction identifier
	Timestamp time.Time       // parsed from TimestampFormat, source timezone
	Type      string          // raw category label, case-sensitive
	PNL       decimal.Decimal // signed amount in USD
	Chunk     int             // sequence index of the source chunk
}

// NewRecord builds a Record from raw CSV field values. A row whose
// timestamp or PNL does not parse is a rejected row and never enters
// aggregation.
func NewRecord(digest, timestamp, typ, pnl string) (Record, error) {
	ts, err := time.Parse(TimestampFormat, strings.TrimSpace(timestamp))
	if err != nil {
		return Record{}, fmt.Errorf("cannot parse timestamp %q: %w", timestamp, err)
	}
	value, err := parsePNL(pnl)
	if err != nil {
		return Record{}, err
	}
	return Record{
		Digest:    strings.TrimSpace(digest),
		Timestamp: ts,
		Type:      strings.TrimSpace(typ),
		PNL:       value,
	}, nil
}

// parsePNL parses a signed decimal amount. A single leading '$' (after the
// sign) and thousands-separator commas are tolerated and stripped; anything
// else that does not parse as a decimal rejects the row. See the "format"
// topic for the documented tolerance.
func parsePNL(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("empty PNL value")
	}
	sign := ""
	if s[0] == '+' || s[0] == '-' {
		sign, s = s[:1], s[1:]
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	value, err := decimal.NewFromString(sign + s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("cannot parse PNL value: %w", err)
	}
	return value, nil
}

// Day returns the calendar-date bucket key of the record.
func (r Record) Day() Date { return DateOf(r.Timestamp) }

// Hour returns the hour-of-day bucket key (0-23) of the record.
func (r Record) Hour() int { return r.Timestamp.Hour() }

// Month returns the calendar-month bucket key of the record, e.g. "2025-06".
func (r Record) Month() string { return r.Timestamp.Format("2006-01") }
