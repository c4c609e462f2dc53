// Package csv loads the tips dataset from comma-separated files.
package csv

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fwojciec/sidebot"
)

//go:embed tips.csv
var sample string

// columnTypes lists the columns the loader understands. Other columns in a
// file are skipped.
var columnTypes = map[string]string{
	"total_bill": sidebot.TypeFloat,
	"tip":        sidebot.TypeFloat,
	"sex":        sidebot.TypeString,
	"smoker":     sidebot.TypeString,
	"day":        sidebot.TypeString,
	"time":       sidebot.TypeString,
	"size":       sidebot.TypeInt,
}

var required = []string{"total_bill", "tip", "day"}

// Sample returns the embedded sample of the tips dataset.
func Sample() (*sidebot.Dataset, error) {
	return Parse(strings.NewReader(sample))
}

// Load reads the dataset from the CSV file at path.
func Load(path string) (*sidebot.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()
	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return ds, nil
}

// Parse reads a header line followed by data rows. The header must name
// total_bill, tip and day; columns appear in the dataset in header order.
func Parse(r io.Reader) (*sidebot.Dataset, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, sidebot.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int)
	var columns []sidebot.Column
	for i, name := range header {
		name = strings.TrimSpace(name)
		typ, ok := columnTypes[name]
		if !ok {
			continue
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("duplicate column %q: %w", name, sidebot.ErrValidation)
		}
		index[name] = i
		columns = append(columns, sidebot.Column{Name: name, Type: typ})
	}
	for _, name := range required {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("missing column %q: %w", name, sidebot.ErrValidation)
		}
	}

	var rows []sidebot.Row
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		row, err := parseRow(rec, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, row)
	}
	return sidebot.NewDataset(columns, rows)
}

func parseRow(rec []string, index map[string]int) (sidebot.Row, error) {
	field := func(name string) (string, bool) {
		i, ok := index[name]
		if !ok {
			return "", false
		}
		return strings.TrimSpace(rec[i]), true
	}

	var row sidebot.Row
	var err error
	if row.TotalBill, err = parseFloat(field("total_bill")); err != nil {
		return row, fmt.Errorf("total_bill: %w", err)
	}
	if row.Tip, err = parseFloat(field("tip")); err != nil {
		return row, fmt.Errorf("tip: %w", err)
	}
	row.Day, _ = field("day")
	row.Sex, _ = field("sex")
	row.Smoker, _ = field("smoker")
	row.Time, _ = field("time")
	if v, ok := field("size"); ok && v != "" {
		if row.Size, err = strconv.Atoi(v); err != nil {
			return row, fmt.Errorf("size: %w", err)
		}
	}
	return row, nil
}

func parseFloat(v string, _ bool) (float64, error) {
	return strconv.ParseFloat(v, 64)
}
