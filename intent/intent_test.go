package intent

import (
	"testing"

	"github.com/aprenda-ai/tutor/schema"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		query string
		want  schema.Intent
	}{
		{"Oi!", schema.IntentGreeting},
		{"olá, tudo bem?", schema.IntentGreeting},
		{"bom dia", schema.IntentGreeting},
		{"hey there", schema.IntentGreeting},
		{"tchau!", schema.IntentFarewell},
		{"até logo", schema.IntentFarewell},
		{"que horas são?", schema.IntentConversational},
		{"who are you?", schema.IntentConversational},
		{"2 + 2", schema.IntentMathCalc},
		{"quanto é 15% de 80?", schema.IntentMathCalc},
		{"raiz quadrada de 144", schema.IntentMathCalc},
		{"me pergunte algo de história", schema.IntentExercise},
		{"quero um simulado de química", schema.IntentExercise},
		{"como está meu progresso?", schema.IntentProgress},
		{"minhas tarefas pendentes", schema.IntentTasks},
		{"monte um plano de estudos pra mim", schema.IntentStudyPlan},
		{"resumo da semana", schema.IntentWeeklyReport},
		{"como decorar a tabela periódica?", schema.IntentMemorize},
		{"qual a diferença entre mitose e meiose?", schema.IntentCompare},
		{"faça um resumo de dom casmurro", schema.IntentSummary},
		{"me dê dicas de redação", schema.IntentTips},
		{"estou desanimado com os estudos", schema.IntentMotivation},
		{"o que você acha de estudar de madrugada?", schema.IntentOpinion},
		{"escreva um poema sobre o mar", schema.IntentCreative},
		{"O que é mitose?", schema.IntentExplain},
		{"Quem foi Kant?", schema.IntentExplain},
		{"explique fotossíntese", schema.IntentExplain},
		{"", schema.IntentGeneral},
		{"   ", schema.IntentGeneral},
		{"asdfghjkl", schema.IntentGeneral},
	}
	for _, c := range cases {
		if got := Classify(c.query); got != c.want {
			t.Errorf("Classify(%q) = %s, want %s", c.query, got, c.want)
		}
	}
}

// A greeting opening pre-empts an embedded knowledge question; the rule order
// is fixed and greeting runs first.
func TestClassifyGreetingPreemptsQuestion(t *testing.T) {
	if got := Classify("Oi, o que é mitose?"); got != schema.IntentGreeting {
		t.Fatalf("got %s, want greeting", got)
	}
}

// Greeting prefixes must end at a word boundary.
func TestClassifyPrefixBoundary(t *testing.T) {
	if got := Classify("oitocentos mais dez"); got == schema.IntentGreeting {
		t.Fatal("'oitocentos' must not match the 'oi' prefix")
	}
	if got := Classify("hiroshima e nagasaki"); got == schema.IntentGreeting {
		t.Fatal("'hiroshima' must not match the 'hi' prefix")
	}
}

func TestClassifyClosedSet(t *testing.T) {
	valid := make(map[schema.Intent]bool, len(schema.Intents))
	for _, in := range schema.Intents {
		valid[in] = true
	}
	queries := []string{
		"", "Oi!", "2 + 2", "o que é mitose?", "çãõ!!???", "1234567890",
		"quem foi Kant?", "xyz abc def", "\n\t", "versus",
	}
	for _, q := range queries {
		if got := Classify(q); !valid[got] {
			t.Errorf("Classify(%q) = %q, not in the closed intent set", q, got)
		}
	}
}

func TestRulesOrder(t *testing.T) {
	want := []string{
		"greeting", "farewell", "conversational", "math_calc", "exercise",
		"progress", "tasks", "study_plan", "weekly_report", "memorize",
		"compare", "summary", "tips", "motivation", "opinion", "creative",
		"explain",
	}
	rules := Rules()
	if len(rules) != len(want) {
		t.Fatalf("got %d rules, want %d", len(rules), len(want))
	}
	for i, r := range rules {
		if r.Name != want[i] {
			t.Errorf("rule %d: got %q, want %q", i, r.Name, want[i])
		}
	}
}

func TestRulesReturnsCopy(t *testing.T) {
	first := Rules()
	first[0].Intent = schema.IntentGeneral
	if Rules()[0].Intent != schema.IntentGreeting {
		t.Fatal("mutating the returned slice changed the rule table")
	}
}
