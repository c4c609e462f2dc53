package sidebot

import (
	"time"

	"github.com/google/uuid"
)

// Session is one isolated dashboard instance: its dataset handle, the
// composed system prompt and its own transcript.
type Session struct {
	ID           string
	SystemPrompt string
	Dataset      *Dataset
	Transcript   *Transcript
	CreatedAt    time.Time
}

// NewSession creates a session over ds with an empty transcript.
func NewSession(ds *Dataset, systemPrompt string) *Session {
	return &Session{
		ID:           uuid.NewString(),
		SystemPrompt: systemPrompt,
		Dataset:      ds,
		Transcript:   NewTranscript(),
		CreatedAt:    time.Now(),
	}
}
