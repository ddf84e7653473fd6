package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 80, cfg.Ranker.MinBodyLength)
	assert.Contains(t, cfg.Ranker.EncyclopedicSources, "wikipedia")
	assert.Contains(t, cfg.Ranker.EducationalSources, "khan")
	assert.Equal(t, 800, cfg.Synth.MaxPrimaryChars)
	assert.Equal(t, 2, cfg.Synth.MaxSecondary)
	assert.Equal(t, "cl100k_base", cfg.Synth.TokenEncoding)
	assert.Equal(t, 2, cfg.Knowledge.MaxSnippets)
	assert.Equal(t, "memory", cfg.Session.Provider)
	assert.Equal(t, "info", cfg.LogLevel)
	require.Len(t, cfg.Search.Providers, 1)
	assert.Equal(t, "duckduckgo", cfg.Search.Providers[0].Provider)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tutor.yaml")
	body := `
ranker:
  min_body_length: 100
synth:
  max_primary_chars: 500
search:
  max_results: 3
  providers:
    - provider: duckduckgo
session:
  provider: memory
  max_turns: 10
log_level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Ranker.MinBodyLength)
	assert.Equal(t, 500, cfg.Synth.MaxPrimaryChars)
	assert.Equal(t, 3, cfg.Search.MaxResults)
	assert.Equal(t, 10, cfg.Session.MaxTurns)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched sections still get defaults.
	assert.Equal(t, 2, cfg.Knowledge.MaxSnippets)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown search provider", func(c *Config) {
			c.Search.Providers = []SearchProviderConfig{{Provider: "altavista"}}
		}},
		{"bing without endpoint", func(c *Config) {
			c.Search.Providers = []SearchProviderConfig{{Provider: "bing", APIKey: "k"}}
		}},
		{"bing without key", func(c *Config) {
			c.Search.Providers = []SearchProviderConfig{{Provider: "bing", Endpoint: "https://api.bing.microsoft.com/v7.0/search"}}
		}},
		{"openai without key", func(c *Config) {
			c.LLM.Provider = "openai"
		}},
		{"unknown llm provider", func(c *Config) {
			c.LLM.Provider = "hal9000"
		}},
		{"redis without addr", func(c *Config) {
			c.Session.Provider = "redis"
		}},
		{"unknown log level", func(c *Config) {
			c.LogLevel = "verbose"
		}},
		{"max_secondary above cap", func(c *Config) {
			c.Synth.MaxSecondary = 5
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := Default()
			c.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
