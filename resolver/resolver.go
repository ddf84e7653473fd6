// Package resolver wires the resolution pipeline stages into a strict
// fallback chain. Stages are evaluated in order; the first one that applies
// produces the outcome and later stages are never consulted. The chain
// guarantees a non-empty answer: when nothing local applies it asks the
// caller for external candidates, and when even those are unusable it
// returns the fixed last-resort text.
package resolver

import (
	"context"
	"math/rand"
	"time"

	"github.com/aprenda-ai/tutor/common/logger"
	"github.com/aprenda-ai/tutor/config"
	"github.com/aprenda-ai/tutor/intent"
	"github.com/aprenda-ai/tutor/knowledge"
	"github.com/aprenda-ai/tutor/metrics"
	"github.com/aprenda-ai/tutor/rank"
	"github.com/aprenda-ai/tutor/schema"
	"github.com/aprenda-ai/tutor/synth"
	"github.com/aprenda-ai/tutor/topic"
)

// Request carries everything one resolution call needs. The engine reads it
// and never mutates it; there is no state across calls.
type Request struct {
	Query      string
	Mode       schema.Mode
	Context    schema.StudentContext
	Candidates []schema.CandidateResult

	// Now is the wall clock for conversational answers; zero means time.Now.
	Now time.Time
	// Rand drives knowledge-pool sampling; nil means a time-seeded source.
	Rand *rand.Rand
}

// Resolver is the response orchestrator. It is stateless and safe for
// concurrent use.
type Resolver struct {
	store       *knowledge.Store
	ranker      *rank.Ranker
	synthesizer *synth.Synthesizer
	maxSnippets int
}

// New builds a Resolver around a loaded knowledge store.
func New(store *knowledge.Store, ranker *rank.Ranker, synthesizer *synth.Synthesizer, kcfg config.KnowledgeConfig) *Resolver {
	maxSnippets := kcfg.MaxSnippets
	if maxSnippets <= 0 {
		maxSnippets = 2
	}
	return &Resolver{
		store:       store,
		ranker:      ranker,
		synthesizer: synthesizer,
		maxSnippets: maxSnippets,
	}
}

// stage is one link of the fallback chain. handled=false means "not my
// query, try the next stage".
type stage struct {
	name string
	run  func(r *Resolver, req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool)
}

const stageConversational = "conversational"

// stages in strict evaluation order.
var stages = []stage{
	{stageConversational, (*Resolver).conversationalStage},
	{"greeting_farewell", (*Resolver).greetingStage},
	{"math", (*Resolver).mathStage},
	{"context", (*Resolver).contextStage},
	{"mode", (*Resolver).modeStage},
	{"external", (*Resolver).externalStage},
	{"local_knowledge", (*Resolver).localKnowledgeStage},
	{"needs_search", (*Resolver).needsSearchStage},
	{"fallback", (*Resolver).fallbackStage},
}

// Resolve runs the fallback chain for one query. It never returns an empty
// Answered/Fallback text and never fails; unanswerable queries without
// candidates yield OutcomeNeedsSearch.
func (r *Resolver) Resolve(ctx context.Context, req Request) schema.Outcome {
	if err := ctx.Err(); err != nil {
		// A canceled caller still gets a well-formed outcome.
		return schema.Fallback(LastResort())
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	if req.Rand == nil {
		req.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	in := intent.Classify(req.Query)
	topics := topic.Tag(req.Query)
	logger.Debugf("resolver: intent=%s topics=%v candidates=%d", in, topics, len(req.Candidates))

	for _, st := range stages {
		out, handled := st.run(r, &req, in, topics)
		if !handled {
			continue
		}
		out.Stage = st.name
		metrics.IncStage(st.name)
		metrics.IncOutcome(out.Kind.String())
		return out
	}
	// Unreachable: the fallback stage always handles.
	metrics.IncOutcome(schema.OutcomeFallback.String())
	return schema.Fallback(LastResort())
}

// CacheableStage reports whether answers from the named stage may be reused
// for the same query, mode and student record. Clock and calendar answers go
// stale within the cache TTL and are never cached.
func CacheableStage(stage string) bool { return stage != stageConversational }

// RankAndSynthesize ranks external candidates and synthesizes the answer in
// one call. ok=false means no candidate was usable.
func (r *Resolver) RankAndSynthesize(query string, candidates []schema.CandidateResult, displayName string) (string, bool) {
	ranked := r.ranker.Rank(query, rank.Dedup(candidates))
	metrics.ObserveRanked(len(candidates), len(ranked))
	if len(ranked) == 0 {
		return "", false
	}
	return r.synthesizer.Synthesize(query, ranked, displayName, topic.Tag(query)), true
}

func (r *Resolver) externalStage(req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool) {
	if len(req.Candidates) == 0 {
		return schema.Outcome{}, false
	}
	text, ok := r.RankAndSynthesize(req.Query, req.Candidates, req.Context.DisplayName)
	if !ok {
		// No usable external answer; later stages decide between local
		// knowledge and the last resort.
		return schema.Outcome{}, false
	}
	return schema.Answered(text), true
}

func (r *Resolver) needsSearchStage(req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool) {
	if len(req.Candidates) > 0 {
		// The caller already searched; asking again would loop forever.
		return schema.Outcome{}, false
	}
	return schema.NeedsSearch(), true
}

func (r *Resolver) fallbackStage(req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool) {
	return schema.Fallback(LastResort()), true
}

// LastResort is the canned reply used when every stage came up empty. Callers
// that exhaust their own options (a search that found nothing, for example)
// reuse it so the student always sees the same terminal message.
func LastResort() string {
	return "Puxa, não consegui encontrar uma boa resposta para isso. " +
		"Tente reformular a pergunta, ou me peça algo como \"o que é mitose?\", " +
		"\"quanto é 15% de 80?\" ou \"me dê dicas de redação\"."
}
