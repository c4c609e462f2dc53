// Package json writes session transcripts as JSON.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/sidebot"
)

// version is the current envelope format.
const version = 1

// envelope is the wire format of an exported transcript.
type envelope struct {
	Version      int       `json:"version"`
	ID           string    `json:"id"`
	SystemPrompt string    `json:"system_prompt"`
	CreatedAt    time.Time `json:"created_at"`
	ExportedAt   time.Time `json:"exported_at"`
	Turns        []turnDTO `json:"turns"`
}

type turnDTO struct {
	Speaker   string    `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalSession serializes the session's transcript as it is at the time
// of the call.
func MarshalSession(s *sidebot.Session) ([]byte, error) {
	turns := s.Transcript.Snapshot()
	env := envelope{
		Version:      version,
		ID:           s.ID,
		SystemPrompt: s.SystemPrompt,
		CreatedAt:    s.CreatedAt,
		ExportedAt:   time.Now(),
		Turns:        make([]turnDTO, len(turns)),
	}
	for i, t := range turns {
		if err := sidebot.ValidateTurn(t); err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
		env.Turns[i] = turnDTO{Speaker: string(t.Speaker), Text: t.Text, Timestamp: t.Timestamp}
	}
	return json.MarshalIndent(env, "", "  ")
}

// Save writes the session's transcript to path, creating parent directories
// as needed. The file is replaced atomically.
func Save(path string, s *sidebot.Session) error {
	data, err := MarshalSession(s)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
