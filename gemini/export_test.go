package gemini

import (
	"context"

	"google.golang.org/genai"
)

// NewWithGenerateFunc creates a Client that calls fn instead of the API.
func NewWithGenerateFunc(fn func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error), opts ...Option) *Client {
	return newClient(fn, opts...)
}
