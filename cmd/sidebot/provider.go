package main

import (
	"context"
	"fmt"

	"github.com/fwojciec/sidebot"
	"github.com/fwojciec/sidebot/anthropic"
	"github.com/fwojciec/sidebot/gemini"
)

// providerConfig is the outcome of provider selection. An empty key means
// chat runs unconfigured.
type providerConfig struct {
	name string
	key  string
}

// resolveConfig picks the provider and its key. Env var values are passed in;
// env is only read in main(). A missing key is not an error.
func resolveConfig(providerFlag, apiKeyFlag, anthropicEnvKey, geminiEnvKey string) (providerConfig, error) {
	provider := providerFlag
	if provider == "" {
		hasAnthropic := anthropicEnvKey != ""
		hasGemini := geminiEnvKey != ""
		switch {
		case hasAnthropic && hasGemini:
			return providerConfig{}, fmt.Errorf("multiple API keys found (ANTHROPIC_API_KEY, GEMINI_API_KEY): use -provider flag to select")
		case hasAnthropic:
			provider = "anthropic"
		default:
			provider = "gemini"
		}
	}

	key := apiKeyFlag
	switch provider {
	case "anthropic":
		if key == "" {
			key = anthropicEnvKey
		}
	case "gemini":
		if key == "" {
			key = geminiEnvKey
		}
	default:
		return providerConfig{}, fmt.Errorf("unknown provider %q: must be \"anthropic\" or \"gemini\"", provider)
	}
	return providerConfig{name: provider, key: key}, nil
}

// newCompleter builds the client for cfg. It returns nil when no key is
// configured so the handler can record the configuration message instead.
func newCompleter(ctx context.Context, cfg providerConfig) (sidebot.Completer, error) {
	if cfg.key == "" {
		return nil, nil
	}
	switch cfg.name {
	case "anthropic":
		return anthropic.New(cfg.key), nil
	case "gemini":
		client, err := gemini.New(ctx, cfg.key)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.name)
	}
}
