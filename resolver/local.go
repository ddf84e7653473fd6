package resolver

import (
	"fmt"
	"strings"

	"github.com/aprenda-ai/tutor/schema"
	"github.com/aprenda-ai/tutor/topic"
)

var followUps = []string{
	"Quer que eu aprofunde algum ponto?",
	"Posso montar questões sobre isso, é só pedir.",
	"Se quiser, explico de novo com outro exemplo.",
}

// localKnowledgeStage answers from the built-in snippet corpus when the query
// tagged at least one topic the store covers.
func (r *Resolver) localKnowledgeStage(req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool) {
	var covered []schema.Topic
	for _, t := range topics {
		if r.store.Has(t) {
			covered = append(covered, t)
		}
	}
	if len(covered) == 0 {
		return schema.Outcome{}, false
	}

	var b strings.Builder
	if req.Context.DisplayName != "" {
		fmt.Fprintf(&b, "Boa pergunta, %s! ", req.Context.DisplayName)
	} else {
		b.WriteString("Boa pergunta! ")
	}
	b.WriteString("Vamos lá:\n")
	for _, t := range covered {
		snippets := r.store.Fetch(t, req.Query, r.maxSnippets, req.Rand)
		for _, s := range snippets {
			fmt.Fprintf(&b, "\n%s\n", s)
		}
	}
	for _, t := range covered {
		if h := topic.Hint(t); h != "" {
			fmt.Fprintf(&b, "\n💡 %s\n", h)
			break
		}
	}
	b.WriteString("\n")
	b.WriteString(pick(req.Rand, followUps))
	return schema.Answered(b.String()), true
}
