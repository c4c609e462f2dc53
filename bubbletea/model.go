package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sidebot"
	"github.com/fwojciec/sidebot/command"
)

const queryTimeout = 10 * time.Second

var errNoDatabase = errors.New("sql: no database is loaded")

var _ tea.Model = Model{}

// Model is the Bubble Tea model for the dashboard.
type Model struct {
	// Input is the chat input. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable chat pane. Exported for test access.
	Viewport viewport.Model
	// Table shows the dataset or the last query result.
	Table table.Model

	session *sidebot.Session
	handler *sidebot.Handler
	querier sidebot.Querier
	theme   sidebot.Theme
	styles  Styles

	summary sidebot.Summary
	points  []sidebot.Point
	boxes   []sidebot.DayBox
	data    dataView
	blocks  []Block

	updates chan struct{}
	done    chan struct{} // closed by Close
	stop    func()

	layout  layout
	running bool
	cancel  context.CancelFunc
	status  string
	err     error
	ready   bool
}

// New creates the dashboard for session. Submitted chat text goes to
// handler, which must record into session's transcript. A nil querier
// disables /sql.
func New(session *sidebot.Session, handler *sidebot.Handler, querier sidebot.Querier, theme sidebot.Theme) Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about the tips data..."
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 0

	styles := NewStyles(theme)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ansiColor(theme.Border)).
		BorderBottom(true).
		Bold(true)
	ts.Selected = lipgloss.NewStyle()

	// Coalesce change signals: the model always renders the latest snapshot.
	updates := make(chan struct{}, 1)
	unsubscribe := session.Transcript.Subscribe(func([]sidebot.Turn) {
		select {
		case updates <- struct{}{}:
		default:
		}
	})
	done := make(chan struct{})
	var once sync.Once
	stop := func() {
		once.Do(func() {
			unsubscribe()
			close(done)
		})
	}

	m := Model{
		Input:   ti,
		Table:   table.New(table.WithFocused(false), table.WithStyles(ts)),
		session: session,
		handler: handler,
		querier: querier,
		theme:   theme,
		styles:  styles,
		summary: session.Dataset.Summary(),
		points:  session.Dataset.Points(),
		boxes:   session.Dataset.PercentByDay(),
		data:    datasetView(session.Dataset),
		updates: updates,
		done:    done,
		stop:    stop,
	}
	return m.syncTranscript()
}

// Running returns whether a reply is pending.
func (m Model) Running() bool { return m.running }

// Err returns the last command or submit error, if any.
func (m Model) Err() error { return m.err }

// Status returns the current status line notice.
func (m Model) Status() string { return m.status }

// Close stops listening to the transcript and releases a pending listener.
// It is safe to call more than once.
func (m Model) Close() {
	if m.stop != nil {
		m.stop()
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenTranscript(m.updates, m.done))
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TranscriptMsg:
		m = m.syncTranscript()
		return m, listenTranscript(m.updates, m.done)

	case ReplyMsg:
		m.running = false
		if m.cancel != nil {
			m.cancel()
			m.cancel = nil
		}
		m = m.syncTranscript()
		return m, m.Input.Focus()

	case QueryMsg:
		if msg.Err != nil {
			m.err = fmt.Errorf("sql: %w", msg.Err)
			return m, nil
		}
		m.data = queryView(msg.Query, msg.Result)
		m = m.refreshTable()
		m.status = m.data.caption()
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)

	if !m.running {
		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	top := m.valueBoxes()
	if m.layout.dashW == 0 {
		return lipgloss.JoinVertical(lipgloss.Left, top, m.chatView())
	}
	dash := lipgloss.JoinVertical(lipgloss.Left, m.dataCard(), m.chartCards())
	return lipgloss.JoinVertical(lipgloss.Left, top,
		lipgloss.JoinHorizontal(lipgloss.Top, dash, m.chatView()))
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) Model {
	m.layout = newLayout(msg.Width, msg.Height)
	if !m.ready {
		m.Viewport = viewport.New(m.layout.chatW, m.layout.viewH)
		m.ready = true
	} else {
		m.Viewport.Width = m.layout.chatW
		m.Viewport.Height = m.layout.viewH
	}
	m.Input.Width = max(m.layout.chatW-len(m.Input.Prompt)-1, 1)
	m = m.refreshTable()
	m.Viewport.SetContent(m.renderContent())
	m.Viewport.GotoBottom()
	return m
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.running {
			if m.cancel != nil {
				m.cancel()
			}
			return m, nil
		}
		return m, tea.Quit

	case tea.KeyEnter:
		if m.running {
			return m, nil
		}
		return m.submit(m.Input.Value())
	}

	// Only non-character keys scroll the chat pane so typing never does.
	if !m.running {
		var cmd tea.Cmd
		var cmds []tea.Cmd

		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}

		m.Input, cmd = m.Input.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)
	}
	return m, nil
}

// submit routes input to a slash command or to the handler. The user turn
// is recorded before this returns; the reply arrives later as a ReplyMsg.
func (m Model) submit(raw string) (tea.Model, tea.Cmd) {
	if command.IsCommand(raw) {
		m.Input.SetValue("")
		return m.runCommand(raw)
	}

	text, ok, err := m.handler.Begin(raw)
	if err != nil {
		m.err = err
		return m, nil
	}
	if !ok {
		return m, nil
	}

	m.Input.SetValue("")
	m.Input.Blur()
	m.err = nil
	m.status = ""

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.running = true
	m = m.syncTranscript()
	return m, reply(ctx, m.handler, text)
}

func (m Model) runCommand(raw string) (tea.Model, tea.Cmd) {
	m.err = nil
	m.status = ""

	cmd, err := command.Parse(raw)
	if err != nil {
		m.err = err
		return m, nil
	}
	switch cmd.Name {
	case command.Help:
		m.status = command.HelpText
	case command.Reset:
		m.data = datasetView(m.session.Dataset)
		m = m.refreshTable()
		m.status = m.data.caption()
	case command.SQL:
		if m.querier == nil {
			m.err = errNoDatabase
			return m, nil
		}
		return m, runQuery(m.querier, cmd.Arg)
	}
	return m, nil
}

// syncTranscript adds blocks for turns appended since the last sync and
// re-renders the chat pane.
func (m Model) syncTranscript() Model {
	turns := m.session.Transcript.Snapshot()
	for i := len(m.blocks); i < len(turns); i++ {
		m.blocks = append(m.blocks, NewBlock(turns[i], m.theme, m.styles))
	}
	if m.ready {
		m.Viewport.SetContent(m.renderContent())
		m.Viewport.GotoBottom()
	}
	return m
}

func (m Model) refreshTable() Model {
	w := max(m.layout.dashW-2, 0)
	cols, rows := fitColumns(m.data, w)
	// Rows are cleared first so they never outnumber the columns.
	m.Table.SetRows(nil)
	m.Table.SetColumns(cols)
	m.Table.SetRows(rows)
	m.Table.SetWidth(w)
	m.Table.SetHeight(m.layout.tableH)
	m.Table.GotoTop()
	return m
}

func (m Model) renderContent() string {
	if len(m.blocks) == 0 {
		return m.styles.Accent.Render(sidebot.WelcomeMessage)
	}
	views := make([]string, len(m.blocks))
	for i, b := range m.blocks {
		views[i] = b.View(m.Viewport.Width)
	}
	return strings.Join(views, "\n\n")
}

func (m Model) valueBoxes() string {
	w := max(m.layout.boxW-2, 1)
	box := func(title, value string) string {
		return m.styles.Card.Width(w).Render(
			m.styles.BoxTitle.Render(title) + "\n" + m.styles.BoxValue.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		box("Total tippers", m.summary.TotalTippersText()),
		box("Average tip", m.summary.AverageTipText()),
		box("Average bill", m.summary.AverageBillText()),
	)
}

func (m Model) dataCard() string {
	title := lipgloss.NewStyle().MaxWidth(m.layout.dashW - 2).Render(
		m.styles.Accent.Render(m.data.caption()))
	return m.styles.Card.Width(m.layout.dashW - 2).Render(title + "\n" + m.Table.View())
}

func (m Model) chartCards() string {
	card := func(w int, title, body string) string {
		return m.styles.Card.Width(w - 2).Height(m.layout.chartH).Render(
			m.styles.Accent.Render(title) + "\n" + body)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		card(m.layout.scatterW, "Total bill vs tip",
			Scatter(m.points, m.layout.scatterW-2, m.layout.chartH-1, m.theme)),
		card(m.layout.boxPlotW, "Tip percentages by day",
			BoxPlot(m.boxes, m.layout.boxPlotW-2, m.theme)),
	)
}

func (m Model) chatView() string {
	status := lipgloss.NewStyle().MaxWidth(m.layout.chatW).Render(m.statusLine())
	return lipgloss.NewStyle().Width(m.layout.chatW).Render(lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Accent.Render("Chat"),
		m.Viewport.View(),
		status,
		m.Input.View(),
	))
}

func (m Model) statusLine() string {
	switch {
	case m.err != nil:
		return m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	case m.running:
		return m.styles.Muted.Render("Waiting for Sidebot... Ctrl+C to cancel")
	case m.status != "":
		return m.styles.Muted.Render(m.status)
	default:
		return m.styles.Muted.Render("Enter to send, /help for commands, Ctrl+C to quit")
	}
}
