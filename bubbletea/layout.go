package bubbletea

const (
	boxHeight  = 4 // value box including border
	cardChrome = 3 // card border plus title line
	chatChrome = 3 // chat title, status and input lines
	minChatW   = 32
	minDashW   = 24
	minTableH  = 4
	minChartH  = 5
)

// layout holds the sizes of each dashboard region for one terminal size.
// Widths and heights of cards are outer sizes unless named inner.
type layout struct {
	width, height int

	dashW  int // left column; 0 hides the dashboard
	chatW  int
	boxW   int
	tableH int // table height including its header
	chartH int // inner height of the chart cards

	scatterW, boxPlotW int // chart card widths; they sum to dashW
	viewH              int // chat viewport height
}

func newLayout(width, height int) layout {
	l := layout{width: width, height: height}

	l.chatW = max(width*2/5, minChatW)
	l.dashW = width - l.chatW
	if l.dashW < minDashW {
		l.dashW = 0
		l.chatW = width
	}

	body := max(height-boxHeight, 0)
	l.viewH = max(body-chatChrome, 1)
	l.boxW = width / 3

	if l.dashW > 0 {
		l.tableH = max(body/2-cardChrome, minTableH)
		l.chartH = max(body-(l.tableH+cardChrome)-cardChrome, minChartH)
		l.scatterW = l.dashW / 2
		l.boxPlotW = l.dashW - l.scatterW
	}
	return l
}
