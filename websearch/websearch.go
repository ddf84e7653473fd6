// Package websearch implements the caller-side search collaborators. The
// resolution engine never calls the network itself; when it returns a
// needs-search outcome, the client layer runs these providers and re-invokes
// the engine with the merged candidates.
package websearch

import (
	"context"
	"fmt"
	"time"

	"github.com/aprenda-ai/tutor/common/logger"
	"github.com/aprenda-ai/tutor/config"
	"github.com/aprenda-ai/tutor/metrics"
	"github.com/aprenda-ai/tutor/rank"
	"github.com/aprenda-ai/tutor/schema"
)

// Searcher is one web search backend.
type Searcher interface {
	Name() string
	Search(ctx context.Context, query string, max int) ([]schema.CandidateResult, error)
}

// FromConfig builds the configured providers. Unknown provider names are
// skipped with a warning so one bad entry does not disable search entirely.
func FromConfig(cfg config.SearchConfig, hcfg *config.HTTPClientConfig) []Searcher {
	out := make([]Searcher, 0, len(cfg.Providers))
	for _, p := range cfg.Providers {
		switch p.Provider {
		case "duckduckgo":
			out = append(out, NewDuckDuckGo(p, hcfg))
		case "bing":
			out = append(out, NewBing(p, hcfg))
		default:
			logger.Warnf("websearch: unknown provider %q, skipping", p.Provider)
		}
	}
	return out
}

// SearchAll queries every provider in order and merges the results, dropping
// duplicates by snippet prefix. Provider errors are logged and skipped; an
// empty merged list is a valid outcome the resolver turns into the last
// resort.
func SearchAll(ctx context.Context, searchers []Searcher, query string, max int) []schema.CandidateResult {
	if max <= 0 {
		max = 5
	}
	var merged []schema.CandidateResult
	for _, s := range searchers {
		start := time.Now()
		results, err := s.Search(ctx, query, max)
		metrics.ObserveSearch(s.Name(), start, len(results))
		if err != nil {
			logger.Warnf("websearch: %s failed: %v", s.Name(), err)
			continue
		}
		merged = append(merged, results...)
	}
	merged = rank.Dedup(merged)
	if len(merged) > max {
		merged = merged[:max]
	}
	logger.Infof("websearch: %d merged candidates for query: %s", len(merged), query)
	return merged
}

func statusError(provider string, code int) error {
	return fmt.Errorf("%s api returned status %d", provider, code)
}
