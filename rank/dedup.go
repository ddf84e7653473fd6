package rank

import (
	"strings"

	"github.com/aprenda-ai/tutor/schema"
)

// dedupKeyLen is the number of snippet characters that identify a duplicate.
const dedupKeyLen = 80

// Dedup merges candidate lists from multiple providers, dropping candidates
// whose snippet opens with the same ~80 characters (case-folded) as an
// earlier one, and candidates with empty snippets. Original order is
// preserved; the input is not mutated.
func Dedup(candidates []schema.CandidateResult) []schema.CandidateResult {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]schema.CandidateResult, 0, len(candidates))
	for _, c := range candidates {
		key := dedupKey(c.Snippet)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}

func dedupKey(snippet string) string {
	s := strings.ToLower(strings.TrimSpace(snippet))
	r := []rune(s)
	if len(r) > dedupKeyLen {
		r = r[:dedupKeyLen]
	}
	return string(r)
}
