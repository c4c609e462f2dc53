package sidebot

// Speaker identifies who authored a turn.
type Speaker string

const (
	SpeakerUser      Speaker = "user"
	SpeakerAssistant Speaker = "assistant"
)

// Label returns the display label used in the chat pane.
func (s Speaker) Label() string {
	switch s {
	case SpeakerUser:
		return "User"
	case SpeakerAssistant:
		return "Sidebot"
	default:
		return string(s)
	}
}
