// Package synth assembles one coherent answer from ranked external results:
// lead-in, primary body, optional secondary snippets, source attribution,
// interdisciplinary hint and a follow-up invitation.
//
// No step here may fail for well-formed ScoredResult input. Malformed fields
// (missing URL, empty source) degrade by omitting that sub-part.
package synth

import (
	"fmt"
	"strings"

	"github.com/aprenda-ai/tutor/config"
	"github.com/aprenda-ai/tutor/schema"
	"github.com/aprenda-ai/tutor/topic"
)

const (
	maxSources     = 3
	containKeyLen  = 60
	secondaryChars = 200
)

// Synthesizer turns ranked results into final answer text.
type Synthesizer struct {
	cfg  config.SynthConfig
	clip *truncator
}

// New builds a Synthesizer. A zero-value config gets package defaults.
func New(cfg config.SynthConfig) *Synthesizer {
	c := config.Config{Synth: cfg}
	c.ApplyDefaults()
	return &Synthesizer{cfg: c.Synth, clip: newTruncator(c.Synth.TokenEncoding)}
}

// Synthesize assembles the answer. ranked must be non-empty; the resolver
// checks the zero-usable-results case before calling here.
func (s *Synthesizer) Synthesize(query string, ranked []schema.ScoredResult, displayName string, topics []schema.Topic) string {
	var b strings.Builder

	b.WriteString(opening(query, displayName))
	b.WriteString("\n\n")

	primary := ranked[0]
	if title := strings.TrimSpace(primary.Title); title != "" {
		b.WriteString(title)
		b.WriteString("\n")
	}
	body := s.primaryBody(query, primary.Snippet)
	b.WriteString(body)

	for _, sec := range s.secondaries(ranked, body) {
		b.WriteString("\n\n")
		b.WriteString(sec)
	}

	if line := sourcesLine(ranked); line != "" {
		b.WriteString("\n\n")
		b.WriteString(line)
	}

	if hint := firstHint(topics); hint != "" {
		b.WriteString("\n\n")
		b.WriteString(hint)
	}

	b.WriteString("\n\nQuer que eu explique com mais detalhes, dê exemplos ou monte questões sobre isso?")
	return b.String()
}

// opening picks a lead-in phrase from the query's interrogative form.
func opening(query string, displayName string) string {
	name := ""
	if n := strings.TrimSpace(displayName); n != "" {
		name = ", " + n
	}
	q := strings.ToLower(query)
	switch {
	case containsAny(q, "quem foi", "quem é", "quem e", "quem são", "who was", "who is", "who are"):
		return fmt.Sprintf("Boa pergunta%s! Veja o que encontrei sobre essa pessoa:", name)
	case containsAny(q, "o que é", "o que e", "o que são", "o que significa", "what is", "what are"):
		return fmt.Sprintf("Ótima pergunta%s! Veja o que encontrei:", name)
	case containsAny(q, "como", "how"):
		return fmt.Sprintf("Vamos entender como isso funciona%s:", name)
	case containsAny(q, "onde", "where"):
		return fmt.Sprintf("Sobre onde isso acontece%s, encontrei o seguinte:", name)
	case containsAny(q, "quando", "when"):
		return fmt.Sprintf("Sobre quando isso aconteceu%s:", name)
	default:
		return fmt.Sprintf("Aqui está o que encontrei%s:", name)
	}
}

// primaryBody keeps the top result's body within budget. Long bodies are
// split on paragraph breaks and filtered to paragraphs that mention a query
// word, falling back to the first three paragraphs when none do.
func (s *Synthesizer) primaryBody(query string, snippet string) string {
	body := strings.TrimSpace(snippet)
	if body == "" {
		return "Não veio descrição nesse resultado, mas as fontes abaixo devem ajudar."
	}
	if len([]rune(body)) <= s.cfg.MaxPrimaryChars {
		return body
	}

	paras := splitParagraphs(body)
	words := queryWords(query)
	var kept []string
	for _, p := range paras {
		low := strings.ToLower(p)
		for _, w := range words {
			if strings.Contains(low, w) {
				kept = append(kept, p)
				break
			}
		}
	}
	if len(kept) == 0 {
		if len(paras) > 3 {
			paras = paras[:3]
		}
		kept = paras
	}
	return s.clip.Clip(strings.Join(kept, "\n\n"), s.cfg.MaxPrimaryChars)
}

// secondaries formats rank 2..n results that clear the score floor and are
// not already substantially contained in the primary body.
func (s *Synthesizer) secondaries(ranked []schema.ScoredResult, primaryBody string) []string {
	if len(ranked) < 2 {
		return nil
	}
	primaryLow := strings.ToLower(primaryBody)
	var out []string
	for _, r := range ranked[1:] {
		if len(out) >= s.cfg.MaxSecondary {
			break
		}
		if r.Score < s.cfg.MinSecondaryScore {
			continue
		}
		snippet := strings.TrimSpace(r.Snippet)
		if snippet == "" {
			continue
		}
		if containedIn(primaryLow, snippet) {
			continue
		}
		title := strings.TrimSpace(r.Title)
		if title == "" {
			title = strings.TrimSpace(r.Source)
		}
		trimmed := s.clip.Clip(snippet, secondaryChars)
		if title != "" {
			out = append(out, fmt.Sprintf("Também encontrei em %s: %s", title, trimmed))
		} else {
			out = append(out, "Também encontrei: "+trimmed)
		}
	}
	return out
}

// containedIn reports whether the snippet's opening already appears in the
// primary body, i.e. the secondary result would add nothing.
func containedIn(primaryLow string, snippet string) bool {
	key := strings.ToLower(strings.TrimSpace(snippet))
	r := []rune(key)
	if len(r) > containKeyLen {
		key = string(r[:containKeyLen])
	}
	return key != "" && strings.Contains(primaryLow, key)
}

// sourcesLine lists up to three distinct sources, with links where available.
func sourcesLine(ranked []schema.ScoredResult) string {
	seen := make(map[string]struct{})
	var parts []string
	for _, r := range ranked {
		if len(parts) >= maxSources {
			break
		}
		name := strings.TrimSpace(r.Source)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if url := strings.TrimSpace(r.URL); url != "" {
			parts = append(parts, fmt.Sprintf("%s (%s)", name, url))
		} else {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "Fontes: " + strings.Join(parts, ", ")
}

func firstHint(topics []schema.Topic) string {
	for _, t := range topics {
		if h := topic.Hint(t); h != "" {
			return h
		}
	}
	return ""
}

func splitParagraphs(text string) []string {
	sep := "\n\n"
	if !strings.Contains(text, sep) {
		sep = "\n"
	}
	var out []string
	for _, p := range strings.Split(text, sep) {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
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

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
