package sidebot

import "sync"

// Transcript is the append-only log of turns for one session. Turns are
// kept oldest first. Subscribers are called after every Append with the
// post-append snapshot, once the mutation is visible to Snapshot.
type Transcript struct {
	mu     sync.RWMutex
	turns  []Turn
	subs   map[int]func([]Turn)
	nextID int
}

// NewTranscript creates an empty Transcript.
func NewTranscript() *Transcript {
	return &Transcript{subs: make(map[int]func([]Turn))}
}

// Append adds turn to the end of the transcript and notifies subscribers.
func (t *Transcript) Append(turn Turn) {
	t.mu.Lock()
	t.turns = append(t.turns, turn)
	snap := t.snapshotLocked()
	subs := make([]func([]Turn), 0, len(t.subs))
	for id := 0; id < t.nextID; id++ {
		if fn, ok := t.subs[id]; ok {
			subs = append(subs, fn)
		}
	}
	t.mu.Unlock()

	// Notify outside the lock so subscribers may call Snapshot.
	for _, fn := range subs {
		fn(snap)
	}
}

// Snapshot returns a copy of the current turns.
func (t *Transcript) Snapshot() []Turn {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked()
}

// Len returns the number of turns.
func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.turns)
}

// Subscribe registers fn to be called after each Append. Subscribers are
// called in registration order. The returned function removes fn.
func (t *Transcript) Subscribe(fn func([]Turn)) (unsubscribe func()) {
	t.mu.Lock()
	if t.subs == nil {
		t.subs = make(map[int]func([]Turn))
	}
	id := t.nextID
	t.nextID++
	t.subs[id] = fn
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.subs, id)
			t.mu.Unlock()
		})
	}
}

func (t *Transcript) snapshotLocked() []Turn {
	out := make([]Turn, len(t.turns))
	copy(out, t.turns)
	return out
}
