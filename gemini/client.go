package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/sidebot"
	"google.golang.org/genai"
)

// Interface compliance check.
var _ sidebot.Completer = (*Client)(nil)

// generateFunc matches genai's Models.GenerateContent.
type generateFunc func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

// Client implements [sidebot.Completer] for the Google Gemini API.
type Client struct {
	generate generateFunc
	model    string
}

// Option configures a [Client].
type Option func(*Client)

// WithModel sets the model ID. Default is gemini-1.5-flash.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New creates a new Gemini [Client] with the given API key and options.
func New(ctx context.Context, apiKey string, opts ...Option) (*Client, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("gemini: %w", err)
	}
	return newClient(gc.Models.GenerateContent, opts...), nil
}

func newClient(generate generateFunc, opts ...Option) *Client {
	c := &Client{
		generate: generate,
		model:    defaultModel,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete sends the request's history and prompt to Gemini and returns the
// reply text. A reply with no text parts yields "" and a nil error.
func (c *Client) Complete(ctx context.Context, req sidebot.Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	model := req.Model
	if model == "" {
		model = c.model
	}

	contents := ConvertTurns(req.History)
	contents = append(contents, genai.NewContentFromText(req.Prompt, genai.RoleUser))

	resp, err := c.generate(ctx, model, contents, buildConfig(req))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	return ResponseText(resp)
}

func buildConfig(req sidebot.Request) *genai.GenerateContentConfig {
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	}

	if req.SystemPrompt != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt}},
		}
	}

	if req.Temperature != nil {
		temp := float32(*req.Temperature)
		config.Temperature = &temp
	}

	return config
}

// ConvertTurns converts transcript turns to genai Contents. Assistant turns
// use the "model" role.
// Exported for testing.
func ConvertTurns(turns []sidebot.Turn) []*genai.Content {
	result := make([]*genai.Content, 0, len(turns)+1)
	for _, t := range turns {
		var role genai.Role = genai.RoleUser
		if t.Speaker == sidebot.SpeakerAssistant {
			role = genai.RoleModel
		}
		result = append(result, genai.NewContentFromText(t.Text, role))
	}
	return result
}

// ResponseText joins the text parts of the first candidate, skipping thought
// parts. A prompt blocked by safety filters is reported as an error.
// Exported for testing.
func ResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", fmt.Errorf("gemini: nil response")
	}
	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
			if fb.BlockReasonMessage != "" {
				return "", fmt.Errorf("gemini: prompt blocked: %s: %s", fb.BlockReason, fb.BlockReasonMessage)
			}
			return "", fmt.Errorf("gemini: prompt blocked: %s", fb.BlockReason)
		}
		return "", nil
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return "", nil
	}
	var b strings.Builder
	for _, p := range cand.Content.Parts {
		if p == nil || p.Thought {
			continue
		}
		b.WriteString(p.Text)
	}
	return b.String(), nil
}
