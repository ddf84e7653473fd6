package config

import (
	"fmt"
	"strings"
)

// ApplyDefaults fills every unset field with its production default.
func (c *Config) ApplyDefaults() {
	if len(c.Ranker.EncyclopedicSources) == 0 {
		c.Ranker.EncyclopedicSources = []string{"wikipedia", "wikipédia", "britannica"}
	}
	if len(c.Ranker.EducationalSources) == 0 {
		c.Ranker.EducationalSources = []string{"wikidata", "khan", "brasil escola", "mundo educação", "scielo"}
	}
	if c.Ranker.MinBodyLength <= 0 {
		c.Ranker.MinBodyLength = 80
	}
	if c.Synth.MaxPrimaryChars <= 0 {
		c.Synth.MaxPrimaryChars = 800
	}
	if c.Synth.MaxSecondary <= 0 {
		c.Synth.MaxSecondary = 2
	}
	if c.Synth.MinSecondaryScore <= 0 {
		c.Synth.MinSecondaryScore = 3
	}
	if c.Synth.TokenEncoding == "" {
		c.Synth.TokenEncoding = "cl100k_base"
	}
	if c.Knowledge.MaxSnippets <= 0 {
		c.Knowledge.MaxSnippets = 2
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 5
	}
	if len(c.Search.Providers) == 0 {
		c.Search.Providers = []SearchProviderConfig{{Provider: "duckduckgo"}}
	}
	if c.Session.Provider == "" {
		c.Session.Provider = "memory"
	}
	if c.Session.TTLSeconds <= 0 {
		c.Session.TTLSeconds = 86400
	}
	if c.Session.MaxTurns <= 0 {
		c.Session.MaxTurns = 20
	}
	if c.Cache.Capacity <= 0 {
		c.Cache.Capacity = 512
	}
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 300
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate rejects values that would misbehave at runtime.
func (c *Config) Validate() error {
	for i, p := range c.Search.Providers {
		switch strings.ToLower(strings.TrimSpace(p.Provider)) {
		case "duckduckgo":
		case "bing":
			if p.Endpoint == "" {
				return fmt.Errorf("search provider %d: bing requires an endpoint", i)
			}
			if p.APIKey == "" {
				return fmt.Errorf("search provider %d: bing requires an api key", i)
			}
		default:
			return fmt.Errorf("search provider %d: unknown provider %q", i, p.Provider)
		}
	}
	switch strings.ToLower(strings.TrimSpace(c.LLM.Provider)) {
	case "", "none":
	case "openai":
		if c.LLM.APIKey == "" {
			return fmt.Errorf("llm: openai requires an api key")
		}
	default:
		return fmt.Errorf("llm: unknown provider %q", c.LLM.Provider)
	}
	switch strings.ToLower(strings.TrimSpace(c.Session.Provider)) {
	case "memory":
	case "redis":
		if c.Session.Redis.Addr == "" {
			return fmt.Errorf("session: redis requires an addr")
		}
	default:
		return fmt.Errorf("session: unknown provider %q", c.Session.Provider)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unknown level %q", c.LogLevel)
	}
	if c.Synth.MaxSecondary > 2 {
		return fmt.Errorf("synth: max_secondary is capped at 2")
	}
	return nil
}
