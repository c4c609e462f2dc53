// Package gemini implements [sidebot.Completer] for the Google Gemini API.
package gemini

const (
	defaultModel     = "gemini-1.5-flash"
	defaultMaxTokens = 2048
)
