package sidebot

import (
	"math"
	"slices"
)

// DayBox is the five-number summary of tip percentages for one day.
type DayBox struct {
	Day    string
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

func newDayBox(day string, values []float64) DayBox {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return DayBox{
		Day:    day,
		N:      len(sorted),
		Min:    sorted[0],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// Quantile returns the q-th quantile of sorted using linear interpolation
// between closest ranks. sorted must be ascending and non-empty; q is
// clamped to [0, 1].
func Quantile(sorted []float64, q float64) float64 {
	q = math.Max(0, math.Min(1, q))
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
