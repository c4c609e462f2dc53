package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/sidebot"
	bt "github.com/fwojciec/sidebot/bubbletea"
	"github.com/fwojciec/sidebot/mock"
	"github.com/stretchr/testify/require"
)

// newSession creates a session over a three-row dataset: average tip 13.3%,
// average bill $20.00.
func newSession(t *testing.T) *sidebot.Session {
	t.Helper()
	ds, err := sidebot.NewDataset(nil, []sidebot.Row{
		{TotalBill: 10, Tip: 1, Sex: "Female", Smoker: "No", Day: "Sun", Time: "Dinner", Size: 2},
		{TotalBill: 20, Tip: 4, Sex: "Male", Smoker: "Yes", Day: "Sat", Time: "Dinner", Size: 3},
		{TotalBill: 30, Tip: 3, Sex: "Male", Smoker: "No", Day: "Sun", Time: "Lunch", Size: 4},
	})
	require.NoError(t, err)
	return sidebot.NewSession(ds, sidebot.SystemPrompt(ds, ""))
}

// newModel creates a dashboard whose handler uses c. A nil c means no
// credential is configured.
func newModel(t *testing.T, c sidebot.Completer, q sidebot.Querier) (bt.Model, *sidebot.Session) {
	t.Helper()
	s := newSession(t)
	h := sidebot.NewHandler(s.Transcript, c, sidebot.WithSystemPrompt(s.SystemPrompt))
	m := bt.New(s, h, q, sidebot.DefaultTheme())
	t.Cleanup(m.Close)
	return m, s
}

// initModel creates a model and sends a WindowSizeMsg to lay it out.
func initModel(t *testing.T, c sidebot.Completer, q sidebot.Querier) (bt.Model, *sidebot.Session) {
	t.Helper()
	m, s := newModel(t, c, q)
	return updateModel(t, m, tea.WindowSizeMsg{Width: 120, Height: 40}), s
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// submit types text and presses Enter, returning the model and command.
func submit(t *testing.T, m bt.Model, text string) (bt.Model, tea.Cmd) {
	t.Helper()
	m.Input.SetValue(text)
	updated, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

// blocking is a completer that waits for its context to end.
func blocking() *mock.Completer {
	return &mock.Completer{
		CompleteFn: func(ctx context.Context, req sidebot.Request) (string, error) {
			<-ctx.Done()
			return "", ctx.Err()
		},
	}
}
