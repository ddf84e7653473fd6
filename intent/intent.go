// Package intent classifies a raw query into exactly one intent tag.
//
// Classification is an ordered list of named predicate rules; the first rule
// that matches wins and later rules are never consulted. The priority list is
// data (see Rules), so tests can enumerate and assert on the exact order.
package intent

import (
	"strings"

	"github.com/aprenda-ai/tutor/mathexpr"
	"github.com/aprenda-ai/tutor/schema"
)

// Rule is a named predicate bound to the intent it produces.
type Rule struct {
	Name   string
	Intent schema.Intent
	Match  func(q string) bool // q is trimmed and lower-cased
}

// Keyword tables are bilingual (Portuguese first, English second) because the
// host application serves both.
var (
	greetingPrefixes = []string{
		"oi", "olá", "ola", "opa", "e aí", "e ai", "eai", "bom dia", "boa tarde", "boa noite",
		"hello", "hi", "hey", "good morning", "good afternoon", "good evening",
	}
	farewellPrefixes = []string{
		"tchau", "adeus", "até mais", "ate mais", "até logo", "ate logo", "falou", "fui",
		"bye", "goodbye", "see you", "good night",
	}
	conversationalKeywords = []string{
		"que horas", "que dia é", "que dia e", "dia de hoje", "data de hoje", "que mês", "que mes",
		"que ano", "quem é você", "quem e voce", "qual é o seu nome", "qual seu nome", "o que você é",
		"what time", "what day", "what month", "what year", "today's date", "who are you", "your name",
	}
	exerciseKeywords = []string{
		"exercício", "exercicio", "exercícios", "exercicios", "questão", "questao", "questões",
		"questoes", "simulado", "quiz", "praticar", "me teste", "me pergunte",
		"practice", "test me", "quiz me",
	}
	progressKeywords = []string{
		"meu progresso", "meu desempenho", "minhas estatísticas", "minhas estatisticas",
		"meu xp", "meus pontos", "minha sequência", "minha sequencia", "minha ofensiva",
		"my progress", "my stats", "my streak", "my xp",
	}
	tasksKeywords = []string{
		"minhas tarefas", "meus afazeres", "minhas pendências", "minhas pendencias",
		"tarefas pendentes", "tarefas atrasadas", "o que falta fazer",
		"my tasks", "my to-do", "pending tasks", "overdue tasks",
	}
	studyPlanKeywords = []string{
		"plano de estudo", "plano de estudos", "cronograma", "organizar meus estudos",
		"montar um plano", "study plan", "study schedule",
	}
	weeklyReportKeywords = []string{
		"relatório da semana", "relatorio da semana", "resumo da semana", "minha semana",
		"relatório semanal", "relatorio semanal", "weekly report", "my week",
	}
	memorizeKeywords = []string{
		"memorizar", "decorar", "como lembrar", "não esquecer", "nao esquecer",
		"técnica de memorização", "tecnica de memorizacao",
		"memorize", "how to remember", "memorization",
	}
	compareKeywords = []string{
		"compare", "comparar", "comparação", "comparacao", "diferença entre", "diferenca entre",
		"difference between", "versus", " vs ",
	}
	summaryKeywords = []string{
		"resuma", "resumir", "resumo de", "resumo sobre", "faça um resumo", "faca um resumo",
		"síntese de", "sintese de", "summarize", "summary of",
	}
	tipsKeywords = []string{
		"dica", "dicas", "conselho", "conselhos", "como estudar", "como me organizar",
		"tips", "advice", "how to study",
	}
	motivationKeywords = []string{
		"motivação", "motivacao", "me motive", "desanimado", "desanimada", "desmotivado",
		"desmotivada", "sem vontade", "cansado de estudar", "cansada de estudar", "quero desistir",
		"motivation", "motivate me", "feeling down",
	}
	opinionKeywords = []string{
		"o que você acha", "o que voce acha", "na sua opinião", "na sua opiniao",
		"qual sua opinião", "qual sua opiniao", "você prefere", "voce prefere",
		"what do you think", "your opinion", "do you prefer",
	}
	creativeKeywords = []string{
		"crie", "invente", "escreva um", "escreva uma", "faça um poema", "faca um poema",
		"faça uma história", "faca uma historia", "imagine",
		"write a", "create a", "make up",
	}
	explainKeywords = []string{
		"o que é", "o que e", "o que são", "o que sao", "o que significa", "quem foi", "quem é",
		"quem e", "quem são", "quem sao", "como funciona", "como ocorre", "como acontece",
		"por que", "por quê", "porque", "quando", "onde", "explique", "explica", "defina",
		"me fale sobre", "me fala sobre", "fale sobre",
		"what is", "what are", "what does", "who was", "who is", "how does", "how do", "why",
		"when did", "when was", "where", "explain", "define", "tell me about",
	}
)

// Rules returns the fixed priority list, highest priority first. The returned
// slice is a copy; callers may not reorder classification by mutating it.
func Rules() []Rule {
	return []Rule{
		{Name: "greeting", Intent: schema.IntentGreeting, Match: opensWith(greetingPrefixes)},
		{Name: "farewell", Intent: schema.IntentFarewell, Match: opensWith(farewellPrefixes)},
		{Name: "conversational", Intent: schema.IntentConversational, Match: containsAny(conversationalKeywords)},
		{Name: "math_calc", Intent: schema.IntentMathCalc, Match: mathexpr.Recognizes},
		{Name: "exercise", Intent: schema.IntentExercise, Match: containsAny(exerciseKeywords)},
		{Name: "progress", Intent: schema.IntentProgress, Match: containsAny(progressKeywords)},
		{Name: "tasks", Intent: schema.IntentTasks, Match: containsAny(tasksKeywords)},
		{Name: "study_plan", Intent: schema.IntentStudyPlan, Match: containsAny(studyPlanKeywords)},
		{Name: "weekly_report", Intent: schema.IntentWeeklyReport, Match: containsAny(weeklyReportKeywords)},
		{Name: "memorize", Intent: schema.IntentMemorize, Match: containsAny(memorizeKeywords)},
		{Name: "compare", Intent: schema.IntentCompare, Match: containsAny(compareKeywords)},
		{Name: "summary", Intent: schema.IntentSummary, Match: containsAny(summaryKeywords)},
		{Name: "tips", Intent: schema.IntentTips, Match: containsAny(tipsKeywords)},
		{Name: "motivation", Intent: schema.IntentMotivation, Match: containsAny(motivationKeywords)},
		{Name: "opinion", Intent: schema.IntentOpinion, Match: containsAny(opinionKeywords)},
		{Name: "creative", Intent: schema.IntentCreative, Match: containsAny(creativeKeywords)},
		{Name: "explain", Intent: schema.IntentExplain, Match: containsAny(explainKeywords)},
	}
}

// Classify maps query text to exactly one intent. Empty or unmatched input
// resolves to IntentGeneral; it never fails.
//
// A query that opens with a greeting AND embeds a knowledge question (e.g.
// "Oi, o que é mitose?") classifies as greeting because greeting rules run
// first. Known trade-off of the fixed rule order.
func Classify(query string) schema.Intent {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return schema.IntentGeneral
	}
	for _, r := range Rules() {
		if r.Match(q) {
			return r.Intent
		}
	}
	return schema.IntentGeneral
}

func opensWith(prefixes []string) func(string) bool {
	return func(q string) bool {
		for _, p := range prefixes {
			if !strings.HasPrefix(q, p) {
				continue
			}
			// Prefix must end at a word boundary: "oi" must not match "oitocentos".
			rest := q[len(p):]
			if rest == "" || !isWordChar(rest[0]) {
				return true
			}
		}
		return false
	}
}

func containsAny(keywords []string) func(string) bool {
	return func(q string) bool {
		for _, kw := range keywords {
			if strings.Contains(q, kw) {
				return true
			}
		}
		return false
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b >= 0x80
}
