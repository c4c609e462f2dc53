// Package bubbletea provides the Sidebot dashboard as a Bubble Tea program:
// summary value boxes, a data card, two charts and a chat pane.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/sidebot"
)

// Run creates and runs the Bubble Tea program. It blocks until the program
// exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// TranscriptMsg signals that the session transcript has changed.
type TranscriptMsg struct{}

// ReplyMsg carries the assistant turn recorded for a submit.
type ReplyMsg struct {
	Turn sidebot.Turn
}

// QueryMsg carries the outcome of a /sql command.
type QueryMsg struct {
	Query  string
	Result sidebot.QueryResult
	Err    error
}

// listenTranscript waits for the next transcript change. It returns no
// message once done is closed.
func listenTranscript(updates, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-updates:
			return TranscriptMsg{}
		case <-done:
			return nil
		}
	}
}

// reply runs the blocking half of a submit off the update loop.
func reply(ctx context.Context, h *sidebot.Handler, text string) tea.Cmd {
	return func() tea.Msg {
		return ReplyMsg{Turn: h.Reply(ctx, text)}
	}
}

// runQuery runs a read-only query off the update loop.
func runQuery(q sidebot.Querier, query string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		res, err := q.Query(ctx, query)
		return QueryMsg{Query: query, Result: res, Err: err}
	}
}
