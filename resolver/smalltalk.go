package resolver

import (
	"fmt"
	"strings"

	"github.com/aprenda-ai/tutor/mathexpr"
	"github.com/aprenda-ai/tutor/schema"
)

var monthNames = []string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

var weekdayNames = []string{
	"domingo", "segunda-feira", "terça-feira", "quarta-feira",
	"quinta-feira", "sexta-feira", "sábado",
}

// conversationalStage answers clock/calendar/identity questions from the
// request clock, never from the host machine.
func (r *Resolver) conversationalStage(req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool) {
	if in != schema.IntentConversational {
		return schema.Outcome{}, false
	}
	// Every case mirrors a trigger in the classifier's conversational
	// keyword list; a trigger without a case here would fall through to
	// the generic line below.
	q := strings.ToLower(req.Query)
	now := req.Now
	switch {
	case anyOf(q, "que horas", "what time"):
		return schema.Answered(fmt.Sprintf("Agora são %s.", now.Format("15:04"))), true
	case anyOf(q, "que dia", "dia de hoje", "data de hoje", "what day", "today's date"):
		return schema.Answered(fmt.Sprintf("Hoje é %s, %d de %s de %d.",
			weekdayNames[int(now.Weekday())], now.Day(), monthNames[int(now.Month())-1], now.Year())), true
	case anyOf(q, "que mês", "que mes", "what month"):
		return schema.Answered(fmt.Sprintf("Estamos em %s de %d.", monthNames[int(now.Month())-1], now.Year())), true
	case anyOf(q, "que ano", "what year"):
		return schema.Answered(fmt.Sprintf("Estamos em %d.", now.Year())), true
	case anyOf(q, "quem é você", "quem e voce", "seu nome", "o que você é", "who are you", "your name"):
		return schema.Answered("Eu sou seu assistente de estudos! Posso explicar matérias, resolver contas, montar planos de estudo e muito mais."), true
	}
	return schema.Answered("Estou por aqui para ajudar nos estudos. Pode perguntar!"), true
}

func anyOf(q string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// greetingStage handles greetings and farewells; a greeting folds in a short
// status line so the student sees pending work right away.
func (r *Resolver) greetingStage(req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool) {
	sc := req.Context
	name := sc.DisplayName
	switch in {
	case schema.IntentGreeting:
		var b strings.Builder
		if name != "" {
			fmt.Fprintf(&b, "Oi, %s! ", name)
		} else {
			b.WriteString("Oi! ")
		}
		b.WriteString("Que bom te ver por aqui.")
		if sc.StreakDays > 1 {
			fmt.Fprintf(&b, " Você está numa sequência de %d dias de estudo, continue assim!", sc.StreakDays)
		}
		if sc.PendingTasks > 0 {
			fmt.Fprintf(&b, " Você tem %s", plural(sc.PendingTasks, "tarefa pendente", "tarefas pendentes"))
			if sc.OverdueTasks > 0 {
				fmt.Fprintf(&b, " (%s!)", plural(sc.OverdueTasks, "atrasada", "atrasadas"))
			}
			b.WriteString(".")
		}
		b.WriteString(" Em que posso ajudar hoje?")
		return schema.Answered(b.String()), true
	case schema.IntentFarewell:
		if name != "" {
			return schema.Answered(fmt.Sprintf("Até logo, %s! Bons estudos e volte quando quiser.", name)), true
		}
		return schema.Answered("Até logo! Bons estudos e volte quando quiser."), true
	}
	return schema.Outcome{}, false
}

// mathStage evaluates arithmetic questions. A recognized-but-unevaluable
// expression falls through so later stages can still help.
func (r *Resolver) mathStage(req *Request, in schema.Intent, topics []schema.Topic) (schema.Outcome, bool) {
	if in != schema.IntentMathCalc {
		return schema.Outcome{}, false
	}
	result, ok := mathexpr.Eval(req.Query)
	if !ok {
		return schema.Outcome{}, false
	}
	return schema.Answered(result), true
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
