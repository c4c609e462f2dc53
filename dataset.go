package sidebot

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Column types, named the way dataframe libraries report them so the model
// sees a familiar schema.
const (
	TypeFloat  = "float64"
	TypeInt    = "int64"
	TypeString = "object"
)

// Column describes one dataset column.
type Column struct {
	Name string
	Type string
}

// Row is one record of the tips dataset. Percent is derived at load time.
type Row struct {
	TotalBill float64
	Tip       float64
	Sex       string
	Smoker    string
	Day       string
	Time      string
	Size      int
	Percent   float64
}

// Value returns the row's value for the named column formatted for display.
// Unknown columns yield "".
func (r Row) Value(column string) string {
	switch column {
	case "total_bill":
		return fmt.Sprintf("%.2f", r.TotalBill)
	case "tip":
		return fmt.Sprintf("%.2f", r.Tip)
	case "sex":
		return r.Sex
	case "smoker":
		return r.Smoker
	case "day":
		return r.Day
	case "time":
		return r.Time
	case "size":
		return fmt.Sprintf("%d", r.Size)
	case "percent":
		return fmt.Sprintf("%.4f", r.Percent)
	default:
		return ""
	}
}

// DefaultColumns is the full tips schema including the derived percent column.
func DefaultColumns() []Column {
	return []Column{
		{Name: "total_bill", Type: TypeFloat},
		{Name: "tip", Type: TypeFloat},
		{Name: "sex", Type: TypeString},
		{Name: "smoker", Type: TypeString},
		{Name: "day", Type: TypeString},
		{Name: "time", Type: TypeString},
		{Name: "size", Type: TypeInt},
		{Name: "percent", Type: TypeFloat},
	}
}

// Dataset is the read-only tips table. It is built once by NewDataset and
// never mutated afterwards; accessors return copies.
type Dataset struct {
	columns []Column
	rows    []Row
}

// NewDataset validates rows, derives Percent for each, and returns the
// dataset. If columns is nil, DefaultColumns is used. A "percent" column is
// appended to columns when missing.
func NewDataset(columns []Column, rows []Row) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyDataset
	}
	if columns == nil {
		columns = DefaultColumns()
	}
	cols := make([]Column, 0, len(columns)+1)
	hasPercent := false
	for _, c := range columns {
		if c.Name == "percent" {
			hasPercent = true
		}
		cols = append(cols, c)
	}
	if !hasPercent {
		cols = append(cols, Column{Name: "percent", Type: TypeFloat})
	}

	out := make([]Row, len(rows))
	for i, r := range rows {
		if !finite(r.TotalBill) || r.TotalBill <= 0 {
			return nil, fmt.Errorf("row %d: total_bill must be positive, got %g: %w", i, r.TotalBill, ErrValidation)
		}
		if !finite(r.Tip) || r.Tip < 0 {
			return nil, fmt.Errorf("row %d: tip must be non-negative, got %g: %w", i, r.Tip, ErrValidation)
		}
		if strings.TrimSpace(r.Day) == "" {
			return nil, fmt.Errorf("row %d: day is required: %w", i, ErrValidation)
		}
		r.Percent = r.Tip / r.TotalBill
		out[i] = r
	}
	return &Dataset{columns: cols, rows: out}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Columns returns a copy of the column list.
func (d *Dataset) Columns() []Column {
	out := make([]Column, len(d.columns))
	copy(out, d.columns)
	return out
}

// Rows returns a copy of the rows.
func (d *Dataset) Rows() []Row {
	out := make([]Row, len(d.rows))
	copy(out, d.rows)
	return out
}

// Schema lists one "- name: type" line per column.
func (d *Dataset) Schema() string {
	lines := make([]string, len(d.columns))
	for i, c := range d.columns {
		lines[i] = fmt.Sprintf("- %s: %s", c.Name, c.Type)
	}
	return strings.Join(lines, "\n")
}

// Summary holds the dashboard's headline statistics.
type Summary struct {
	TotalTippers int
	AverageTip   float64 // mean of tip/total_bill, as a fraction
	AverageBill  float64
}

// Summary computes the headline statistics.
func (d *Dataset) Summary() Summary {
	var bill, pct float64
	for _, r := range d.rows {
		bill += r.TotalBill
		pct += r.Percent
	}
	n := float64(len(d.rows))
	return Summary{
		TotalTippers: len(d.rows),
		AverageTip:   pct / n,
		AverageBill:  bill / n,
	}
}

// TotalTippersText formats the row count with digit grouping.
func (s Summary) TotalTippersText() string {
	return message.NewPrinter(language.English).Sprintf("%d", s.TotalTippers)
}

// AverageTipText formats the average tip as a percentage with one decimal.
func (s Summary) AverageTipText() string { return fmt.Sprintf("%.1f%%", s.AverageTip*100) }

// AverageBillText formats the average bill in dollars with digit grouping.
func (s Summary) AverageBillText() string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", s.AverageBill)
}

// Point is one observation on the total bill vs. tip scatter plot.
type Point struct {
	X   float64 // total bill
	Y   float64 // tip
	Day string
}

// Points returns one scatter point per row, in row order.
func (d *Dataset) Points() []Point {
	out := make([]Point, len(d.rows))
	for i, r := range d.rows {
		out[i] = Point{X: r.TotalBill, Y: r.Tip, Day: r.Day}
	}
	return out
}

// PercentByDay returns the five-number summary of tip percent for each day,
// ordered by first appearance in the dataset.
func (d *Dataset) PercentByDay() []DayBox {
	var order []string
	groups := make(map[string][]float64)
	for _, r := range d.rows {
		if _, ok := groups[r.Day]; !ok {
			order = append(order, r.Day)
		}
		groups[r.Day] = append(groups[r.Day], r.Percent)
	}
	out := make([]DayBox, len(order))
	for i, day := range order {
		out[i] = newDayBox(day, groups[day])
	}
	return out
}
