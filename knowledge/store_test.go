package knowledge

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/aprenda-ai/tutor/schema"
	"github.com/aprenda-ai/tutor/topic"
)

func mustStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore()
	if err != nil {
		t.Fatalf("load embedded corpus: %v", err)
	}
	return s
}

// Every topic the tagger can produce with a subject area must have a pool, so
// the local-knowledge stage never comes up empty for a tagged query.
func TestCorpusCoversTaggerTopics(t *testing.T) {
	s := mustStore(t)
	for _, p := range topic.Patterns() {
		if !s.Has(p.Topic) {
			t.Errorf("corpus missing pool for topic %s", p.Topic)
		}
	}
}

func TestFetchPrefersQueryMatches(t *testing.T) {
	s := mustStore(t)
	rng := rand.New(rand.NewSource(1))
	got := s.Fetch(schema.TopicBiology, "o que é mitose?", 2, rng)
	if len(got) == 0 {
		t.Fatal("expected snippets for biology")
	}
	for _, snippet := range got {
		if !strings.Contains(strings.ToLower(snippet), "mitose") {
			t.Errorf("expected mitose-related snippet, got %q", snippet)
		}
	}
}

func TestFetchNeverEmptyForKnownTopic(t *testing.T) {
	s := mustStore(t)
	rng := rand.New(rand.NewSource(7))
	for _, tp := range s.Topics() {
		if got := s.Fetch(tp, "zzz qqq www", 2, rng); len(got) == 0 {
			t.Errorf("Fetch(%s) returned no snippets", tp)
		}
	}
}

func TestFetchDeterministicWithSeed(t *testing.T) {
	s := mustStore(t)
	a := s.Fetch(schema.TopicHistory, "xxxx", 1, rand.New(rand.NewSource(42)))
	b := s.Fetch(schema.TopicHistory, "xxxx", 1, rand.New(rand.NewSource(42)))
	if len(a) != len(b) || a[0] != b[0] {
		t.Fatalf("same seed produced different samples: %v vs %v", a, b)
	}
}

func TestFetchUnknownTopic(t *testing.T) {
	s := mustStore(t)
	if got := s.Fetch(schema.Topic("astrology"), "q", 2, rand.New(rand.NewSource(1))); got != nil {
		t.Fatalf("expected nil for unknown topic, got %v", got)
	}
}

func TestParseRejectsEmptyPool(t *testing.T) {
	_, err := parse([]byte("topics:\n  biology: []\n"))
	if err == nil {
		t.Fatal("expected error for empty pool")
	}
	_, err = parse([]byte("topics: {}\n"))
	if err == nil {
		t.Fatal("expected error for empty corpus")
	}
}
