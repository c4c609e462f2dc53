package sidebot

import (
	"fmt"
	"strings"
)

// Validate checks universal constraints on Request.
// Completer implementations may apply additional provider-specific validation.
func (r Request) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return fmt.Errorf("prompt must not be empty: %w", ErrValidation)
	}
	if r.Temperature != nil {
		if *r.Temperature < 0 || *r.Temperature > 2 {
			return fmt.Errorf("temperature must be in [0, 2], got %g: %w", *r.Temperature, ErrValidation)
		}
	}
	if r.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d: %w", r.MaxTokens, ErrValidation)
	}
	for i, t := range r.History {
		if err := ValidateTurn(t); err != nil {
			return fmt.Errorf("history turn %d: %w", i, err)
		}
	}
	return nil
}

// ValidateTurn checks that a turn has a known speaker and non-blank text.
func ValidateTurn(t Turn) error {
	switch t.Speaker {
	case SpeakerUser, SpeakerAssistant:
	default:
		return fmt.Errorf("unknown speaker %q: %w", t.Speaker, ErrValidation)
	}
	if strings.TrimSpace(t.Text) == "" {
		return fmt.Errorf("%s turn has empty text: %w", t.Speaker, ErrValidation)
	}
	return nil
}
