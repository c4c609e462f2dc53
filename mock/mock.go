// Package mock provides test doubles for sidebot interfaces using function fields.
package mock

import (
	"context"
	"sync/atomic"

	"github.com/fwojciec/sidebot"
)

// Interface compliance checks.
var (
	_ sidebot.Completer = (*Completer)(nil)
	_ sidebot.Querier   = (*Querier)(nil)
)

// Completer is a test double for sidebot.Completer.
// Set CompleteFn before calling Complete. Calls counts invocations.
type Completer struct {
	CompleteFn func(ctx context.Context, req sidebot.Request) (string, error)

	calls atomic.Int64
}

// Complete delegates to CompleteFn.
func (c *Completer) Complete(ctx context.Context, req sidebot.Request) (string, error) {
	c.calls.Add(1)
	return c.CompleteFn(ctx, req)
}

// Calls returns how many times Complete was called.
func (c *Completer) Calls() int {
	return int(c.calls.Load())
}

// Replies returns a Completer that answers with replies in order, one per
// call, and then with the empty string.
func Replies(replies ...string) *Completer {
	var next atomic.Int64
	return &Completer{
		CompleteFn: func(ctx context.Context, req sidebot.Request) (string, error) {
			i := int(next.Add(1)) - 1
			if i < len(replies) {
				return replies[i], nil
			}
			return "", nil
		},
	}
}

// Querier is a test double for sidebot.Querier.
// Set QueryFn before calling Query.
type Querier struct {
	QueryFn func(ctx context.Context, query string) (sidebot.QueryResult, error)
}

// Query delegates to QueryFn.
func (q *Querier) Query(ctx context.Context, query string) (sidebot.QueryResult, error) {
	return q.QueryFn(ctx, query)
}
