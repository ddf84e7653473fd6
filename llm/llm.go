// Package llm is the optional generative collaborator. The client layer may
// use it to polish a last-resort fallback; the resolution engine itself never
// depends on it.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aprenda-ai/tutor/config"
)

// Provider generates a completion for a prompt.
type Provider interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// NewProvider builds the configured provider. An empty or "none" provider
// yields nil, which callers treat as "generation disabled".
func NewProvider(cfg config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "none":
		return nil, nil
	case "openai":
		return newOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}

// ErrEmptyCompletion is returned when the backend answered with no choices.
var ErrEmptyCompletion = errors.New("llm returned empty completion")

// BuildAnswerPrompt asks the model to answer a study question in Portuguese
// using only the supplied snippets.
func BuildAnswerPrompt(query string, snippets []string) string {
	var b strings.Builder
	b.WriteString("Você é um assistente de estudos. Responda à pergunta do aluno em português, ")
	b.WriteString("de forma curta e didática, usando apenas o material abaixo. ")
	b.WriteString("Se o material não for suficiente, diga isso honestamente.\n\n")
	b.WriteString("Material:\n")
	for i, s := range snippets {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s)
	}
	fmt.Fprintf(&b, "\nPergunta: %s\n", query)
	return b.String()
}
