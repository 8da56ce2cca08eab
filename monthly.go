package pnlyzer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/shopspring/decimal"
)

// MonthlyMatrix is the month × type revenue matrix: one row per calendar
// month in chronological order, one column per transaction type observed
// in the dataset, a per-month total, and a final column-totals row. Cells
// are exact decimal sums; the matrix is read-only once built.
type MonthlyMatrix struct {
	Types  []string     // column labels, sorted
	Rows   []MonthlyRow // chronological
	Totals MonthlyRow   // column totals; Month is "Total"
}

// MonthlyRow is one month of the matrix. Cells aligns by index with the
// matrix Types.
type MonthlyRow struct {
	Month string
	Cells []decimal.Decimal
	Total decimal.Decimal
}

// NewMonthlyMatrix derives the matrix from finalized accumulator state.
// Like the report, it never re-reads raw records.
func NewMonthlyMatrix(acc *Accumulator) *MonthlyMatrix {
	m := &MonthlyMatrix{}
	for typ := range acc.types {
		m.Types = append(m.Types, typ)
	}
	sort.Strings(m.Types)

	months := make([]string, 0, len(acc.monthTypes))
	for month := range acc.monthTypes {
		months = append(months, month)
	}
	sort.Strings(months)

	m.Totals = MonthlyRow{Month: "Total", Cells: make([]decimal.Decimal, len(m.Types))}
	for _, month := range months {
		row := MonthlyRow{Month: month, Cells: make([]decimal.Decimal, len(m.Types))}
		for i, typ := range m.Types {
			v := acc.monthTypes[month][typ]
			row.Cells[i] = v
			row.Total = row.Total.Add(v)
			m.Totals.Cells[i] = m.Totals.Cells[i].Add(v)
		}
		m.Totals.Total = m.Totals.Total.Add(row.Total)
		m.Rows = append(m.Rows, row)
	}
	return m
}

// ExportMonthlyCSV writes the matrix to w as CSV: a Month column, one
// column per type, a "Total PNL" column, and a trailing "Total" row.
// Amounts carry two decimals.
func ExportMonthlyCSV(w io.Writer, m *MonthlyMatrix) error {
	cw := csv.NewWriter(w)
	header := make([]string, 0, len(m.Types)+2)
	header = append(header, "Month")
	header = append(header, m.Types...)
	header = append(header, "Total PNL")
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range m.Rows {
		if err := cw.Write(monthlyFields(row)); err != nil {
			return err
		}
	}
	if err := cw.Write(monthlyFields(m.Totals)); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

func monthlyFields(row MonthlyRow) []string {
	fields := make([]string, 0, len(row.Cells)+2)
	fields = append(fields, row.Month)
	for _, c := range row.Cells {
		fields = append(fields, c.StringFixed(2))
	}
	return append(fields, row.Total.StringFixed(2))
}

// ExportMonthlyCSVFile writes the matrix to the named file, creating or
// truncating it.
func ExportMonthlyCSVFile(path string, m *MonthlyMatrix) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create monthly report %q: %w", path, err)
	}
	defer f.Close()

	if err := ExportMonthlyCSV(f, m); err != nil {
		return fmt.Errorf("cannot export monthly report to %q: %w", path, err)
	}
	return f.Close()
}
