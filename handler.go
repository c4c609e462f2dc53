package sidebot

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Fixed texts shown in the chat pane.
const (
	// WelcomeMessage is shown while the transcript is empty.
	WelcomeMessage = "Welcome to Sidebot!"

	// FallbackReply replaces an empty or whitespace-only completion.
	FallbackReply = "I didn't get a usable response; please rephrase."

	// NotConfiguredReply is the assistant turn recorded when no completion
	// service credential is configured.
	NotConfiguredReply = "Chat is unavailable: no API key is configured. Set GEMINI_API_KEY (or ANTHROPIC_API_KEY) and try again."

	// ErrorReplyPrefix starts the assistant turn recorded for a failed call.
	ErrorReplyPrefix = "Error: "
)

// DefaultTimeout bounds a single completion call.
const DefaultTimeout = 60 * time.Second

// State is the Handler's position in the submit state machine.
type State int

const (
	StateIdle          State = iota // Ready for a submit.
	StateValidating                 // Trimming and checking input.
	StateAwaitingReply              // User turn recorded, completion pending.
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAwaitingReply:
		return "awaiting_reply"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Handler turns submitted text into transcript turns. Each accepted submit
// appends exactly one user turn followed by exactly one assistant turn; blank
// submits change nothing. Faults from the completer never escape: they are
// recorded as assistant turns.
//
// The work is split in two so a UI can run the blocking half elsewhere:
// Begin validates and records the user turn, Reply calls the completer and
// records the answer. Submit does both.
type Handler struct {
	transcript   *Transcript
	systemPrompt string
	model        string
	maxTokens    int
	temperature  *float64
	timeout      time.Duration
	logger       *zap.Logger

	completer Completer

	mu      sync.Mutex
	state   State
	pending []Turn // history captured by Begin for the next Reply
}

// HandlerOption configures a [Handler].
type HandlerOption func(*Handler)

// WithSystemPrompt sets the system preamble sent with every call.
func WithSystemPrompt(prompt string) HandlerOption {
	return func(h *Handler) { h.systemPrompt = prompt }
}

// WithModel sets the model ID. Empty means the completer's default.
func WithModel(model string) HandlerOption {
	return func(h *Handler) { h.model = model }
}

// WithMaxTokens caps the reply length. Zero means the completer's default.
func WithMaxTokens(n int) HandlerOption {
	return func(h *Handler) { h.maxTokens = n }
}

// WithTemperature sets the sampling temperature. Nil means the completer's
// default.
func WithTemperature(t *float64) HandlerOption {
	return func(h *Handler) { h.temperature = t }
}

// WithTimeout bounds each completion call. Zero disables the bound.
func WithTimeout(d time.Duration) HandlerOption {
	return func(h *Handler) { h.timeout = d }
}

// WithLogger sets the logger. Default is a no-op logger.
func WithLogger(l *zap.Logger) HandlerOption {
	return func(h *Handler) { h.logger = l }
}

// NewHandler creates a Handler that records turns in t. A nil completer means
// no credential is configured; submits then record NotConfiguredReply.
func NewHandler(t *Transcript, c Completer, opts ...HandlerOption) *Handler {
	h := &Handler{
		transcript: t,
		completer:  c,
		timeout:    DefaultTimeout,
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

// State returns the current state.
func (h *Handler) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Submit runs the whole state machine for one submit event and returns once
// the assistant turn is recorded. The only error is ErrBusy.
func (h *Handler) Submit(ctx context.Context, raw string) error {
	text, ok, err := h.Begin(raw)
	if err != nil || !ok {
		return err
	}
	h.Reply(ctx, text)
	return nil
}

// Begin validates raw input. Blank input returns ok=false and leaves the
// transcript untouched. Otherwise the trimmed text is appended as a user
// turn, the handler waits for Reply, and the trimmed text is returned.
func (h *Handler) Begin(raw string) (text string, ok bool, err error) {
	h.mu.Lock()
	if h.state != StateIdle {
		h.mu.Unlock()
		return "", false, ErrBusy
	}
	h.state = StateValidating
	h.mu.Unlock()

	text = strings.TrimSpace(raw)
	if text == "" {
		h.logger.Debug("blank submit dropped")
		h.setState(StateIdle)
		return "", false, nil
	}

	h.mu.Lock()
	h.pending = h.transcript.Snapshot()
	h.state = StateAwaitingReply
	h.mu.Unlock()

	h.transcript.Append(UserTurn(text))
	return text, true, nil
}

// Reply calls the completer for text, appends the assistant turn and
// returns to idle. It must follow a successful Begin.
func (h *Handler) Reply(ctx context.Context, text string) Turn {
	h.mu.Lock()
	history := h.pending
	h.pending = nil
	h.mu.Unlock()

	turn := AssistantTurn(h.complete(ctx, h.completer, history, text))
	h.transcript.Append(turn)
	h.setState(StateIdle)
	return turn
}

func (h *Handler) complete(ctx context.Context, c Completer, history []Turn, text string) (reply string) {
	if c == nil {
		h.logger.Info("completion skipped", zap.Error(ErrNotConfigured))
		return NotConfiguredReply
	}

	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn("completion panicked", zap.Any("panic", r))
			reply = fmt.Sprintf("%s%v", ErrorReplyPrefix, r)
		}
	}()

	start := time.Now()
	out, err := c.Complete(ctx, Request{
		Model:        h.model,
		SystemPrompt: h.systemPrompt,
		History:      history,
		Prompt:       text,
		MaxTokens:    h.maxTokens,
		Temperature:  h.temperature,
	})
	if err != nil {
		h.logger.Warn("completion failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return ErrorReplyPrefix + err.Error()
	}
	h.logger.Info("completion",
		zap.Duration("duration", time.Since(start)),
		zap.Int("reply_len", len(out)))
	if strings.TrimSpace(out) == "" {
		return FallbackReply
	}
	return out
}

func (h *Handler) setState(s State) {
	h.mu.Lock()
	h.state = s
	h.mu.Unlock()
}
