package sidebot

import "context"

// Completer is a strategy pattern interface for LLM text-completion services.
// Complete blocks until the service replies, the context is done, or the
// call fails. An empty reply is not an error.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}
