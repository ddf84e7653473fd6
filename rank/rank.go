// Package rank scores externally supplied candidate snippets against a query
// and returns them best-first. Candidates are untrusted: unscorable items
// score zero and are dropped, never turned into errors.
package rank

import (
	"sort"
	"strings"

	"github.com/aprenda-ai/tutor/config"
	"github.com/aprenda-ai/tutor/schema"
)

// Scoring weights. The source allowlists are configuration; the weights are
// fixed so that ranking stays comparable across deployments.
const (
	wordInBody     = 2
	wordInTitle    = 3
	stubPenalty    = -2
	encyclopedic   = 3
	educational    = 2
	subjectMissing = -5
)

// questionStems are stripped from the front of a query to derive its subject.
// Longer stems come first so "o que significa" wins over "o que".
var questionStems = []string{
	"me fale sobre", "me fala sobre", "fale sobre",
	"o que significa", "o que são", "o que sao", "o que é", "o que e",
	"quem foram", "quem foi", "quem são", "quem sao", "quem é", "quem e",
	"como funciona", "como funcionam", "como ocorre", "como acontece",
	"por que", "por quê", "porque", "quando", "onde fica", "onde",
	"explique", "explica", "defina", "define",
	"tell me about", "what does", "what is", "what are", "who was", "who were",
	"who is", "who are", "how does", "how do", "why", "when did", "when was",
	"where is", "where", "explain",
}

// Ranker scores candidates using the configured source allowlists.
type Ranker struct {
	cfg config.RankerConfig
}

// New builds a Ranker. A zero-value config gets the package defaults applied.
func New(cfg config.RankerConfig) *Ranker {
	c := config.Config{Ranker: cfg}
	c.ApplyDefaults()
	return &Ranker{cfg: c.Ranker}
}

// Rank scores every candidate and returns those with score > 0, sorted
// descending; candidates with equal scores keep their original order. The
// input slice is never mutated, so ranking twice yields identical output.
//
// An empty result means "no usable external answer"; callers route that to
// the last-resort fallback, not to an error path.
func (r *Ranker) Rank(query string, candidates []schema.CandidateResult) []schema.ScoredResult {
	if len(candidates) == 0 {
		return []schema.ScoredResult{}
	}

	words := queryWords(query)
	subject := QuerySubject(query)

	scored := make([]schema.ScoredResult, 0, len(candidates))
	for _, c := range candidates {
		s := r.score(c, words, subject)
		if s <= 0 {
			continue
		}
		scored = append(scored, schema.ScoredResult{CandidateResult: c, Score: s})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	return scored
}

func (r *Ranker) score(c schema.CandidateResult, words []string, subject string) int {
	body := strings.ToLower(c.Snippet)
	title := strings.ToLower(c.Title)

	score := 0
	for _, w := range words {
		if strings.Contains(body, w) {
			score += wordInBody
		}
		if strings.Contains(title, w) {
			score += wordInTitle
		}
	}
	if len([]rune(c.Snippet)) < r.cfg.MinBodyLength {
		score += stubPenalty
	}
	score += r.sourceBonus(c.Source)
	if subject != "" && !strings.Contains(title, subject) && !strings.Contains(body, subject) {
		score += subjectMissing
	}
	return score
}

func (r *Ranker) sourceBonus(source string) int {
	s := strings.ToLower(source)
	if s == "" {
		return 0
	}
	for _, name := range r.cfg.EncyclopedicSources {
		if strings.Contains(s, strings.ToLower(name)) {
			return encyclopedic
		}
	}
	for _, name := range r.cfg.EducationalSources {
		if strings.Contains(s, strings.ToLower(name)) {
			return educational
		}
	}
	return 0
}

// QuerySubject strips leading question stems ("what is", "quem foi", ...)
// and trailing punctuation, returning the lower-cased remainder. Empty when
// the query is nothing but a stem.
func QuerySubject(query string) string {
	q := strings.ToLower(strings.TrimSpace(query))
	for {
		stripped := false
		for _, stem := range questionStems {
			if strings.HasPrefix(q, stem+" ") {
				q = strings.TrimSpace(q[len(stem)+1:])
				stripped = true
				break
			}
			if q == stem {
				return ""
			}
		}
		if !stripped {
			break
		}
	}
	return strings.Trim(q, " ?!.")
}

func queryWords(query string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		w = strings.Trim(w, "?!.,;:\"'()")
		if len([]rune(w)) > 2 {
			out = append(out, w)
		}
	}
	return out
}
