package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const defaultConfigPath = "sidebot.toml"

// config is the merged result of the config file and flags.
type config struct {
	Provider     string `toml:"provider"`
	Model        string `toml:"model"`
	Timeout      string `toml:"timeout"`
	Data         string `toml:"data"`
	SystemPrompt string `toml:"system_prompt"`
	Log          string `toml:"log"`
	Transcript   string `toml:"transcript"`

	MaxTokens   int      `toml:"max_tokens"`
	Temperature *float64 `toml:"temperature"`
}

// loadConfig decodes the TOML file at path. A missing default file yields an
// empty config; any other failure, including unknown keys, is an error.
func loadConfig(path string) (config, error) {
	var cfg config
	md, err := toml.DecodeFile(path, &cfg)
	switch {
	case err == nil:
	case errors.Is(err, os.ErrNotExist) && path == defaultConfigPath:
		return config{}, nil
	default:
		return config{}, fmt.Errorf("read config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return config{}, fmt.Errorf("read config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// merge overlays non-empty values from o onto c.
func (c config) merge(o config) config {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.Provider, o.Provider)
	set(&c.Model, o.Model)
	set(&c.Timeout, o.Timeout)
	set(&c.Data, o.Data)
	set(&c.SystemPrompt, o.SystemPrompt)
	set(&c.Log, o.Log)
	set(&c.Transcript, o.Transcript)
	if o.MaxTokens != 0 {
		c.MaxTokens = o.MaxTokens
	}
	if o.Temperature != nil {
		c.Temperature = o.Temperature
	}
	return c
}

// checkLimits rejects reply limits no provider accepts.
func (c config) checkLimits() error {
	if c.MaxTokens < 0 {
		return fmt.Errorf("max_tokens must be non-negative, got %d", c.MaxTokens)
	}
	if t := c.Temperature; t != nil && (*t < 0 || *t > 2) {
		return fmt.Errorf("temperature must be in [0, 2], got %g", *t)
	}
	return nil
}

// timeout parses the configured completion timeout; empty means def.
func (c config) timeout(def time.Duration) (time.Duration, error) {
	if c.Timeout == "" {
		return def, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("timeout must not be negative, got %s", d)
	}
	return d, nil
}
