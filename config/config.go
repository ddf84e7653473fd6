// Package config defines the engine configuration and its YAML loading.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for the resolution engine and its
// caller-side collaborators.
type Config struct {
	Ranker    RankerConfig     `json:"ranker" yaml:"ranker"`
	Synth     SynthConfig      `json:"synth" yaml:"synth"`
	Knowledge KnowledgeConfig  `json:"knowledge" yaml:"knowledge"`
	Search    SearchConfig     `json:"search" yaml:"search"`
	LLM       LLMConfig        `json:"llm" yaml:"llm"`
	Session   SessionConfig    `json:"session" yaml:"session"`
	Cache     CacheConfig      `json:"cache" yaml:"cache"`
	HTTP      HTTPClientConfig `json:"http" yaml:"http"`
	LogLevel  string           `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// RankerConfig tunes candidate scoring. Source allowlists classify a
// candidate's source name; they are substring matches, case-insensitive.
type RankerConfig struct {
	// EncyclopedicSources earn the +3 source bonus (general references).
	EncyclopedicSources []string `json:"encyclopedic_sources,omitempty" yaml:"encyclopedic_sources,omitempty"`
	// EducationalSources earn the +2 source bonus (structured references).
	EducationalSources []string `json:"educational_sources,omitempty" yaml:"educational_sources,omitempty"`
	// MinBodyLength is the stub threshold; shorter bodies are penalized.
	MinBodyLength int `json:"min_body_length,omitempty" yaml:"min_body_length,omitempty"`
}

// SynthConfig tunes answer assembly.
type SynthConfig struct {
	// MaxPrimaryChars bounds the primary answer body before paragraph
	// filtering and truncation kick in.
	MaxPrimaryChars int `json:"max_primary_chars,omitempty" yaml:"max_primary_chars,omitempty"`
	// MaxSecondary is the number of rank 2..n results appended.
	MaxSecondary int `json:"max_secondary,omitempty" yaml:"max_secondary,omitempty"`
	// MinSecondaryScore is the score floor for secondary results.
	MinSecondaryScore int `json:"min_secondary_score,omitempty" yaml:"min_secondary_score,omitempty"`
	// TokenEncoding names the tiktoken encoding used for budget trims.
	TokenEncoding string `json:"token_encoding,omitempty" yaml:"token_encoding,omitempty"`
}

// KnowledgeConfig points at the local snippet corpus.
type KnowledgeConfig struct {
	// Path optionally overrides the embedded corpus with an external YAML file.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// MaxSnippets is the default sample size per topic.
	MaxSnippets int `json:"max_snippets,omitempty" yaml:"max_snippets,omitempty"`
}

// SearchProviderConfig configures one web search provider.
type SearchProviderConfig struct {
	Provider string `json:"provider" yaml:"provider"` // Available options: duckduckgo, bing
	Endpoint string `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// SearchConfig configures the caller-side search collaborators.
type SearchConfig struct {
	Providers  []SearchProviderConfig `json:"providers,omitempty" yaml:"providers,omitempty"`
	MaxResults int                    `json:"max_results,omitempty" yaml:"max_results,omitempty"`
}

// LLMConfig configures the optional generative collaborator.
type LLMConfig struct {
	Provider    string  `json:"provider,omitempty" yaml:"provider,omitempty"` // Available options: openai, none
	APIKey      string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	BaseURL     string  `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Model       string  `json:"model,omitempty" yaml:"model,omitempty"`
	Temperature float64 `json:"temperature,omitempty" yaml:"temperature,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// RedisConfig holds connection settings for the Redis-backed history store.
type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db,omitempty" yaml:"db,omitempty"`
}

// SessionConfig configures conversation history storage.
type SessionConfig struct {
	Provider   string      `json:"provider,omitempty" yaml:"provider,omitempty"` // Available options: memory, redis
	Redis      RedisConfig `json:"redis,omitempty" yaml:"redis,omitempty"`
	TTLSeconds int         `json:"ttl_seconds,omitempty" yaml:"ttl_seconds,omitempty"`
	MaxTurns   int         `json:"max_turns,omitempty" yaml:"max_turns,omitempty"`
}

// CacheConfig configures the facade's answer/result cache.
type CacheConfig struct {
	Capacity   int `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	TTLSeconds int `json:"ttl_seconds,omitempty" yaml:"ttl_seconds,omitempty"`
}

// HTTPClientConfig tunes outbound HTTP behavior for all collaborators.
type HTTPClientConfig struct {
	TimeoutMs              int      `json:"timeout_ms,omitempty" yaml:"timeout_ms,omitempty"`
	Retry                  int      `json:"retry,omitempty" yaml:"retry,omitempty"`
	BackoffMinMs           int      `json:"backoff_min_ms,omitempty" yaml:"backoff_min_ms,omitempty"`
	BackoffMaxMs           int      `json:"backoff_max_ms,omitempty" yaml:"backoff_max_ms,omitempty"`
	HostAllowlist          []string `json:"host_allowlist,omitempty" yaml:"host_allowlist,omitempty"`
	MaxConsecutiveFailures int      `json:"max_consecutive_failures,omitempty" yaml:"max_consecutive_failures,omitempty"`
	CircuitOpenSeconds     int      `json:"circuit_open_seconds,omitempty" yaml:"circuit_open_seconds,omitempty"`
}

// Load reads a YAML config file, applies defaults and validates.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a ready-to-use configuration without reading any file.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}
