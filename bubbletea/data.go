package bubbletea

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/fwojciec/sidebot"
	"github.com/mattn/go-runewidth"
)

const (
	maxColumnW = 16
	cellPad    = 2 // table cells are padded one space on each side
)

// dataView is what the data card shows: the dataset or a query result.
type dataView struct {
	title     string
	columns   []string
	rows      [][]string
	truncated bool
}

func datasetView(ds *sidebot.Dataset) dataView {
	cols := ds.Columns()
	v := dataView{title: "tips", columns: make([]string, len(cols))}
	for i, c := range cols {
		v.columns[i] = c.Name
	}
	for _, r := range ds.Rows() {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = r.Value(c.Name)
		}
		v.rows = append(v.rows, row)
	}
	return v
}

func queryView(query string, res sidebot.QueryResult) dataView {
	return dataView{title: query, columns: res.Columns, rows: res.Rows, truncated: res.Truncated}
}

// caption is the card title with the row count.
func (v dataView) caption() string {
	n := len(v.rows)
	switch {
	case v.truncated:
		return fmt.Sprintf("%s · first %d rows", v.title, n)
	case n == 1:
		return fmt.Sprintf("%s · 1 row", v.title)
	default:
		return fmt.Sprintf("%s · %d rows", v.title, n)
	}
}

// fitColumns sizes each column to its widest value, capped at maxColumnW,
// and keeps as many leading columns as fit in width.
func fitColumns(v dataView, width int) ([]table.Column, []table.Row) {
	var cols []table.Column
	used := 0
	for i, name := range v.columns {
		w := runewidth.StringWidth(name)
		for _, r := range v.rows {
			if i < len(r) {
				w = max(w, runewidth.StringWidth(r[i]))
			}
		}
		w = min(w, maxColumnW)
		if used+w+cellPad > width {
			break
		}
		used += w + cellPad
		cols = append(cols, table.Column{Title: name, Width: w})
	}

	rows := make([]table.Row, len(v.rows))
	for i, r := range v.rows {
		row := make(table.Row, len(cols))
		copy(row, r)
		rows[i] = row
	}
	return cols, rows
}
