package sidebot_test

import (
	"sync"
	"testing"

	"github.com/fwojciec/sidebot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscript_Append(t *testing.T) {
	t.Parallel()

	t.Run("new transcript is empty", func(t *testing.T) {
		t.Parallel()
		tr := sidebot.NewTranscript()
		assert.Equal(t, 0, tr.Len())
		assert.Empty(t, tr.Snapshot())
	})

	t.Run("appends keep insertion order", func(t *testing.T) {
		t.Parallel()
		tr := sidebot.NewTranscript()
		tr.Append(sidebot.UserTurn("a"))
		tr.Append(sidebot.AssistantTurn("A"))
		tr.Append(sidebot.UserTurn("b"))

		assert.Equal(t, []string{"user:a", "assistant:A", "user:b"}, texts(tr.Snapshot()))
	})

	t.Run("zero value is usable", func(t *testing.T) {
		t.Parallel()
		var tr sidebot.Transcript
		tr.Append(sidebot.UserTurn("a"))
		assert.Equal(t, 1, tr.Len())
	})
}

func TestTranscript_Snapshot(t *testing.T) {
	t.Parallel()

	t.Run("snapshot is a copy", func(t *testing.T) {
		t.Parallel()
		tr := sidebot.NewTranscript()
		tr.Append(sidebot.UserTurn("a"))

		snap := tr.Snapshot()
		snap[0].Text = "changed"

		assert.Equal(t, "a", tr.Snapshot()[0].Text)
	})

	t.Run("concurrent appends are all recorded", func(t *testing.T) {
		t.Parallel()
		tr := sidebot.NewTranscript()
		var wg sync.WaitGroup
		for range 50 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				tr.Append(sidebot.UserTurn("x"))
				_ = tr.Snapshot()
			}()
		}
		wg.Wait()
		assert.Equal(t, 50, tr.Len())
	})
}

func TestTranscript_Subscribe(t *testing.T) {
	t.Parallel()

	t.Run("subscribers see the appended turn", func(t *testing.T) {
		t.Parallel()
		tr := sidebot.NewTranscript()
		var got []sidebot.Turn
		tr.Subscribe(func(turns []sidebot.Turn) { got = turns })

		tr.Append(sidebot.UserTurn("a"))

		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].Text)
	})

	t.Run("subscriber may read the store during notification", func(t *testing.T) {
		t.Parallel()
		tr := sidebot.NewTranscript()
		var lenAtNotify int
		tr.Subscribe(func([]sidebot.Turn) { lenAtNotify = tr.Len() })

		tr.Append(sidebot.UserTurn("a"))

		assert.Equal(t, 1, lenAtNotify)
	})

	t.Run("subscribers are called in registration order", func(t *testing.T) {
		t.Parallel()
		tr := sidebot.NewTranscript()
		var order []int
		tr.Subscribe(func([]sidebot.Turn) { order = append(order, 1) })
		tr.Subscribe(func([]sidebot.Turn) { order = append(order, 2) })

		tr.Append(sidebot.UserTurn("a"))

		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("unsubscribe stops notifications", func(t *testing.T) {
		t.Parallel()
		tr := sidebot.NewTranscript()
		calls := 0
		unsubscribe := tr.Subscribe(func([]sidebot.Turn) { calls++ })

		tr.Append(sidebot.UserTurn("a"))
		unsubscribe()
		unsubscribe()
		tr.Append(sidebot.UserTurn("b"))

		assert.Equal(t, 1, calls)
	})
}
