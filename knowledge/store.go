// Package knowledge holds the local snippet corpus and its relevance-biased
// sampling. The corpus is immutable after load: it is parsed once and
// dependency-injected into the resolver, never mutated at runtime.
package knowledge

import (
	_ "embed"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/aprenda-ai/tutor/schema"
	"gopkg.in/yaml.v3"
)

//go:embed corpus.yaml
var corpusYAML []byte

// Store is a read-only Topic → snippet pool mapping.
type Store struct {
	pools map[schema.Topic][]string
}

type corpusFile struct {
	Topics map[string][]string `yaml:"topics"`
}

// NewStore loads the embedded corpus.
func NewStore() (*Store, error) {
	return parse(corpusYAML)
}

// NewStoreFromFile loads a corpus from an external YAML file, replacing the
// embedded one entirely.
func NewStoreFromFile(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Store, error) {
	var cf corpusFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}
	pools := make(map[schema.Topic][]string, len(cf.Topics))
	for name, snippets := range cf.Topics {
		if len(snippets) == 0 {
			return nil, fmt.Errorf("corpus topic %q has an empty pool", name)
		}
		pools[schema.Topic(name)] = snippets
	}
	if len(pools) == 0 {
		return nil, fmt.Errorf("corpus has no topics")
	}
	return &Store{pools: pools}, nil
}

// Has reports whether the store carries a pool for the topic.
func (s *Store) Has(t schema.Topic) bool {
	_, ok := s.pools[t]
	return ok
}

// Topics lists the topics present in the corpus, in no particular order.
func (s *Store) Topics() []schema.Topic {
	out := make([]schema.Topic, 0, len(s.pools))
	for t := range s.pools {
		out = append(out, t)
	}
	return out
}

// Fetch returns up to max snippets for the topic. Snippets that share a
// content word (length > 3) with the query are preferred; when none match, a
// uniform sample of the full pool is drawn so generic queries still get
// content. rng is injected so tests can pin the sampling.
//
// If the topic exists the result is never empty.
func (s *Store) Fetch(t schema.Topic, query string, max int, rng *rand.Rand) []string {
	pool, ok := s.pools[t]
	if !ok {
		return nil
	}
	if max <= 0 {
		max = 1
	}

	words := contentWords(query)
	var matched []string
	for _, snippet := range pool {
		low := strings.ToLower(snippet)
		for _, w := range words {
			if strings.Contains(low, w) {
				matched = append(matched, snippet)
				break
			}
		}
	}
	if len(matched) > 0 {
		if len(matched) > max {
			matched = matched[:max]
		}
		return matched
	}
	return sample(pool, max, rng)
}

func contentWords(query string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.Trim(w, "?!.,;:\"'()")
		if len([]rune(w)) > 3 {
			out = append(out, w)
		}
	}
	return out
}

func sample(pool []string, max int, rng *rand.Rand) []string {
	if max >= len(pool) {
		out := make([]string, len(pool))
		copy(out, pool)
		return out
	}
	idx := rng.Perm(len(pool))[:max]
	out := make([]string, 0, max)
	for _, i := range idx {
		out = append(out, pool[i])
	}
	return out
}
