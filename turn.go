package sidebot

import "time"

// Turn is one message in a transcript.
type Turn struct {
	Speaker   Speaker
	Text      string
	Timestamp time.Time
}

// UserTurn returns a turn authored by the user.
func UserTurn(text string) Turn {
	return Turn{Speaker: SpeakerUser, Text: text, Timestamp: time.Now()}
}

// AssistantTurn returns a turn authored by the assistant.
func AssistantTurn(text string) Turn {
	return Turn{Speaker: SpeakerAssistant, Text: text, Timestamp: time.Now()}
}
