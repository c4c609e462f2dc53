package bubbletea

import tea "github.com/charmbracelet/bubbletea"

// RenderContent exports renderContent for testing.
func RenderContent(m Model) string {
	return m.renderContent()
}

// DataCaption exports the data card caption for testing.
func DataCaption(m Model) string {
	return m.data.caption()
}

// Layout exports the computed region sizes for testing.
func Layout(m Model) (dashW, chatW, tableH, viewH int) {
	return m.layout.dashW, m.layout.chatW, m.layout.tableH, m.layout.viewH
}

// ChartWidths exports the chart card widths for testing.
func ChartWidths(m Model) (scatterW, boxPlotW int) {
	return m.layout.scatterW, m.layout.boxPlotW
}

// Sanitize exports sanitize for testing.
var Sanitize = sanitize

// ListenTranscript exports the model's transcript listener for testing.
func ListenTranscript(m Model) tea.Cmd {
	return listenTranscript(m.updates, m.done)
}
