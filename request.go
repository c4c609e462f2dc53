package sidebot

// Request carries one completion call: the system preamble, the prior turns
// of the conversation and the new user text. The completer uses its own
// defaults when fields are zero/nil.
type Request struct {
	Model        string // model ID, provider-specific; empty = provider default
	SystemPrompt string
	History      []Turn   // turns before Prompt, oldest first
	Prompt       string   // literal user text
	MaxTokens    int      // 0 = provider default
	Temperature  *float64 // nil = provider default
}
