package sidebot_test

import (
	"math"
	"testing"

	"github.com/fwojciec/sidebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// dummyRows is the five-row dataset used by the dashboard's dummy variant.
func dummyRows() []sidebot.Row {
	return []sidebot.Row{
		{TotalBill: 10, Tip: 1, Day: "Sun"},
		{TotalBill: 20, Tip: 3, Day: "Sun"},
		{TotalBill: 30, Tip: 5, Day: "Sat"},
		{TotalBill: 15, Tip: 2, Day: "Sat"},
		{TotalBill: 25, Tip: 4, Day: "Fri"},
	}
}

func newDummyDataset(t *testing.T) *sidebot.Dataset {
	t.Helper()
	ds, err := sidebot.NewDataset([]sidebot.Column{
		{Name: "total_bill", Type: sidebot.TypeFloat},
		{Name: "tip", Type: sidebot.TypeFloat},
		{Name: "day", Type: sidebot.TypeString},
	}, dummyRows())
	require.NoError(t, err)
	return ds
}

func TestNewDataset(t *testing.T) {
	t.Parallel()

	t.Run("derives percent", func(t *testing.T) {
		t.Parallel()
		ds := newDummyDataset(t)
		rows := ds.Rows()
		require.Len(t, rows, 5)
		assert.InDelta(t, 0.1, rows[0].Percent, 1e-9)
		assert.InDelta(t, 0.15, rows[1].Percent, 1e-9)
	})

	t.Run("appends percent column", func(t *testing.T) {
		t.Parallel()
		ds := newDummyDataset(t)
		cols := ds.Columns()
		require.Len(t, cols, 4)
		assert.Equal(t, sidebot.Column{Name: "percent", Type: sidebot.TypeFloat}, cols[3])
	})

	t.Run("nil columns uses defaults", func(t *testing.T) {
		t.Parallel()
		ds, err := sidebot.NewDataset(nil, dummyRows())
		require.NoError(t, err)
		assert.Equal(t, sidebot.DefaultColumns(), ds.Columns())
	})

	t.Run("empty rows", func(t *testing.T) {
		t.Parallel()
		_, err := sidebot.NewDataset(nil, nil)
		assert.ErrorIs(t, err, sidebot.ErrEmptyDataset)
	})

	t.Run("non-positive total bill", func(t *testing.T) {
		t.Parallel()
		_, err := sidebot.NewDataset(nil, []sidebot.Row{{TotalBill: 0, Tip: 1, Day: "Sun"}})
		require.Error(t, err)
		assert.ErrorIs(t, err, sidebot.ErrValidation)
		assert.Contains(t, err.Error(), "row 0: total_bill")
	})

	t.Run("negative tip", func(t *testing.T) {
		t.Parallel()
		_, err := sidebot.NewDataset(nil, []sidebot.Row{{TotalBill: 10, Tip: -1, Day: "Sun"}})
		assert.ErrorIs(t, err, sidebot.ErrValidation)
	})

	t.Run("non-finite values", func(t *testing.T) {
		t.Parallel()
		for _, r := range []sidebot.Row{
			{TotalBill: math.NaN(), Tip: 1, Day: "Sun"},
			{TotalBill: math.Inf(1), Tip: 1, Day: "Sun"},
			{TotalBill: math.Inf(-1), Tip: 1, Day: "Sun"},
			{TotalBill: 10, Tip: math.NaN(), Day: "Sun"},
			{TotalBill: 10, Tip: math.Inf(1), Day: "Sun"},
		} {
			_, err := sidebot.NewDataset(nil, []sidebot.Row{r})
			assert.ErrorIs(t, err, sidebot.ErrValidation, "row %+v", r)
		}
	})

	t.Run("missing day", func(t *testing.T) {
		t.Parallel()
		_, err := sidebot.NewDataset(nil, []sidebot.Row{{TotalBill: 10, Tip: 1}})
		assert.ErrorIs(t, err, sidebot.ErrValidation)
	})

	t.Run("input rows are not retained", func(t *testing.T) {
		t.Parallel()
		rows := dummyRows()
		ds, err := sidebot.NewDataset(nil, rows)
		require.NoError(t, err)
		rows[0].TotalBill = 999
		assert.InDelta(t, 10, ds.Rows()[0].TotalBill, 1e-9)
	})
}

func TestDataset_Summary(t *testing.T) {
	t.Parallel()
	s := newDummyDataset(t).Summary()

	assert.Equal(t, 5, s.TotalTippers)
	// (0.1 + 0.15 + 0.1667 + 0.1333 + 0.16) / 5
	assert.InDelta(t, 0.142, s.AverageTip, 1e-3)
	assert.InDelta(t, 20, s.AverageBill, 1e-9)

	assert.Equal(t, "5", s.TotalTippersText())
	assert.Equal(t, "14.2%", s.AverageTipText())
	assert.Equal(t, "$20.00", s.AverageBillText())
}

func TestSummary_GroupsDigits(t *testing.T) {
	t.Parallel()
	s := sidebot.Summary{TotalTippers: 12345, AverageTip: 0.15, AverageBill: 1234.5}

	assert.Equal(t, "12,345", s.TotalTippersText())
	assert.Equal(t, "15.0%", s.AverageTipText())
	assert.Equal(t, "$1,234.50", s.AverageBillText())
}

func TestDataset_Schema(t *testing.T) {
	t.Parallel()
	assert.Equal(t,
		"- total_bill: float64\n- tip: float64\n- day: object\n- percent: float64",
		newDummyDataset(t).Schema())
}

func TestDataset_Points(t *testing.T) {
	t.Parallel()
	pts := newDummyDataset(t).Points()
	require.Len(t, pts, 5)
	assert.Equal(t, sidebot.Point{X: 10, Y: 1, Day: "Sun"}, pts[0])
	assert.Equal(t, sidebot.Point{X: 25, Y: 4, Day: "Fri"}, pts[4])
}

func TestDataset_PercentByDay(t *testing.T) {
	t.Parallel()
	boxes := newDummyDataset(t).PercentByDay()
	require.Len(t, boxes, 3)

	assert.Equal(t, "Sun", boxes[0].Day)
	assert.Equal(t, "Sat", boxes[1].Day)
	assert.Equal(t, "Fri", boxes[2].Day)

	sun := boxes[0]
	assert.Equal(t, 2, sun.N)
	assert.InDelta(t, 0.10, sun.Min, 1e-9)
	assert.InDelta(t, 0.125, sun.Median, 1e-9)
	assert.InDelta(t, 0.15, sun.Max, 1e-9)

	fri := boxes[2]
	assert.Equal(t, 1, fri.N)
	assert.InDelta(t, 0.16, fri.Q1, 1e-9)
	assert.InDelta(t, 0.16, fri.Q3, 1e-9)
}

func TestRow_Value(t *testing.T) {
	t.Parallel()
	r := sidebot.Row{TotalBill: 16.99, Tip: 1.01, Sex: "Female", Smoker: "No", Day: "Sun", Time: "Dinner", Size: 2, Percent: 0.059447}
	assert.Equal(t, "16.99", r.Value("total_bill"))
	assert.Equal(t, "1.01", r.Value("tip"))
	assert.Equal(t, "Female", r.Value("sex"))
	assert.Equal(t, "No", r.Value("smoker"))
	assert.Equal(t, "Sun", r.Value("day"))
	assert.Equal(t, "Dinner", r.Value("time"))
	assert.Equal(t, "2", r.Value("size"))
	assert.Equal(t, "0.0594", r.Value("percent"))
	assert.Equal(t, "", r.Value("nope"))
}

func TestQuantile(t *testing.T) {
	t.Parallel()
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1, sidebot.Quantile(sorted, 0), 1e-9)
	assert.InDelta(t, 1.75, sidebot.Quantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 2.5, sidebot.Quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 4, sidebot.Quantile(sorted, 1), 1e-9)
	assert.InDelta(t, 4, sidebot.Quantile(sorted, 7), 1e-9)
	assert.InDelta(t, 5, sidebot.Quantile([]float64{5}, 0.5), 1e-9)
}
