// Package tutor is the client-facing facade over the resolution engine. It
// owns everything the stateless core refuses to do: session history, answer
// caching, web searches between the two resolver invocations, and the
// optional generative polish on last-resort fallbacks.
package tutor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/aprenda-ai/tutor/cache"
	"github.com/aprenda-ai/tutor/common/logger"
	"github.com/aprenda-ai/tutor/config"
	"github.com/aprenda-ai/tutor/knowledge"
	"github.com/aprenda-ai/tutor/llm"
	"github.com/aprenda-ai/tutor/rank"
	"github.com/aprenda-ai/tutor/resolver"
	"github.com/aprenda-ai/tutor/schema"
	"github.com/aprenda-ai/tutor/synth"
	"github.com/aprenda-ai/tutor/websearch"
)

// Client wires the engine to its collaborators and implements the two-phase
// resolve protocol: resolve, search on demand, resolve again with candidates.
type Client struct {
	config      *config.Config
	resolver    *resolver.Resolver
	searchers   []websearch.Searcher
	llmProvider llm.Provider
	answers     cache.AnswerCache
	results     cache.ResultCache
	sessions    SessionStore
	cacheTTL    time.Duration
}

// NewClient builds a Client from config. Config errors and unreachable
// collaborators fail construction; the engine itself cannot fail.
func NewClient(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	applyLogLevel(cfg.LogLevel)

	var store *knowledge.Store
	var err error
	if cfg.Knowledge.Path != "" {
		store, err = knowledge.NewStoreFromFile(cfg.Knowledge.Path)
	} else {
		store, err = knowledge.NewStore()
	}
	if err != nil {
		return nil, fmt.Errorf("load knowledge corpus: %w", err)
	}

	res := resolver.New(store, rank.New(cfg.Ranker), synth.New(cfg.Synth), cfg.Knowledge)

	llmProvider, err := llm.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("init llm provider: %w", err)
	}

	var sessions SessionStore
	switch cfg.Session.Provider {
	case "", "memory":
		sessions = NewMemSessionStore(cfg.Session.MaxTurns)
	case "redis":
		sessions, err = NewRedisSessionStore(cfg.Session)
		if err != nil {
			return nil, fmt.Errorf("init redis sessions: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported session provider: %s", cfg.Session.Provider)
	}

	ttl := time.Duration(cfg.Cache.TTLSeconds) * time.Second
	return &Client{
		config:      cfg,
		resolver:    res,
		searchers:   websearch.FromConfig(cfg.Search, &cfg.HTTP),
		llmProvider: llmProvider,
		answers:     cache.NewLRU(cfg.Cache.Capacity, ttl),
		results:     cache.NewResultLRU(cfg.Cache.Capacity, ttl),
		sessions:    sessions,
		cacheTTL:    ttl,
	}, nil
}

// Resolver exposes the underlying engine for callers that manage their own
// search loop.
func (c *Client) Resolver() *resolver.Resolver { return c.resolver }

// Sessions exposes the session store.
func (c *Client) Sessions() SessionStore { return c.sessions }

// Ask answers one query end to end. When the engine asks for a search, Ask
// runs the configured providers and re-invokes the engine with the merged
// candidates; the result is always a terminal outcome, never needs-search.
func (c *Client) Ask(ctx context.Context, query string, mode schema.Mode, student schema.StudentContext) schema.Outcome {
	key := cache.Key(query, mode, student)
	if out, ok := c.answers.Get(key); ok {
		logger.Debugf("client: cache hit for %q", query)
		return out
	}

	out := c.resolver.Resolve(ctx, resolver.Request{
		Query:   query,
		Mode:    mode,
		Context: student,
	})
	if out.Kind == schema.OutcomeNeedsSearch {
		rkey := cache.ResultKey(query)
		candidates, hit := c.results.Get(rkey)
		if !hit {
			candidates = websearch.SearchAll(ctx, c.searchers, query, c.config.Search.MaxResults)
			c.results.Set(rkey, candidates, c.cacheTTL)
		}
		if len(candidates) == 0 {
			// Nothing came back; re-resolving would just ask for a
			// search again.
			out = schema.Fallback(resolver.LastResort())
			c.answers.Set(key, out, c.cacheTTL)
			return out
		}
		out = c.resolver.Resolve(ctx, resolver.Request{
			Query:      query,
			Mode:       mode,
			Context:    student,
			Candidates: candidates,
		})
		if out.Kind == schema.OutcomeFallback {
			out = c.polishFallback(ctx, query, candidates, out)
		}
	}
	if resolver.CacheableStage(out.Stage) {
		c.answers.Set(key, out, c.cacheTTL)
	}
	return out
}

// Chat is Ask plus session bookkeeping: the student turn and the tutor turn
// are appended to the session history.
func (c *Client) Chat(ctx context.Context, sessionID, query string, mode schema.Mode, student schema.StudentContext) (schema.Outcome, error) {
	sess, ok := c.sessions.Get(sessionID)
	if !ok {
		return schema.Outcome{}, fmt.Errorf("unknown session: %s", sessionID)
	}
	c.sessions.AddMessage(sess.ID, ChatMessage{Role: "student", Content: query, Timestamp: time.Now()})
	out := c.Ask(ctx, query, mode, student)
	c.sessions.AddMessage(sess.ID, ChatMessage{Role: "tutor", Content: out.Text, Timestamp: time.Now()})
	return out, nil
}

// polishFallback gives the generative collaborator one chance to salvage an
// answer from raw candidates before the fixed fallback text ships. Any
// failure keeps the fixed text; generation is best effort only.
func (c *Client) polishFallback(ctx context.Context, query string, candidates []schema.CandidateResult, out schema.Outcome) schema.Outcome {
	if c.llmProvider == nil || len(candidates) == 0 {
		return out
	}
	snippets := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		if s := strings.TrimSpace(cand.Snippet); s != "" {
			snippets = append(snippets, s)
		}
	}
	if len(snippets) == 0 {
		return out
	}
	text, err := c.llmProvider.GenerateCompletion(ctx, llm.BuildAnswerPrompt(query, snippets))
	if err != nil {
		logger.Warnf("client: fallback polish failed: %v", err)
		return out
	}
	return schema.Answered(text)
}

func applyLogLevel(level string) {
	switch strings.ToLower(level) {
	case "debug":
		logger.SetLevel(zapcore.DebugLevel)
	case "warn":
		logger.SetLevel(zapcore.WarnLevel)
	case "error":
		logger.SetLevel(zapcore.ErrorLevel)
	default:
		logger.SetLevel(zapcore.InfoLevel)
	}
}
