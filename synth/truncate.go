package synth

import (
	"strings"
	"sync"

	"github.com/aprenda-ai/tutor/common/logger"
	"github.com/pkoukk/tiktoken-go"
)

// truncator clips text to a character budget, preferring token boundaries
// when a tiktoken encoding is available so words are not cut mid-token.
type truncator struct {
	encoding string
	once     sync.Once
	enc      *tiktoken.Tiktoken
}

func newTruncator(encoding string) *truncator {
	return &truncator{encoding: encoding}
}

func (t *truncator) load() *tiktoken.Tiktoken {
	t.once.Do(func() {
		enc, err := tiktoken.GetEncoding(t.encoding)
		if err != nil {
			// Offline or unknown encoding: fall back to rune clipping.
			logger.Warnf("synth: tiktoken encoding %q unavailable: %v", t.encoding, err)
			return
		}
		t.enc = enc
	})
	return t.enc
}

// Clip returns text unchanged when it fits maxChars runes, otherwise a
// truncated copy ending in an ellipsis.
func (t *truncator) Clip(text string, maxChars int) string {
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}
	if enc := t.load(); enc != nil {
		tokens := enc.Encode(text, nil, nil)
		// Walk the budget down until the decoded text fits.
		budget := maxChars / 3
		for budget > 0 {
			clipped := enc.Decode(tokens[:min(budget, len(tokens))])
			if len([]rune(clipped)) <= maxChars {
				return strings.TrimRight(clipped, " \n") + "…"
			}
			step := budget / 4
			if step == 0 {
				step = 1
			}
			budget -= step
		}
	}
	cut := string(runes[:maxChars])
	if i := strings.LastIndex(cut, " "); i > maxChars/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " \n") + "…"
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
