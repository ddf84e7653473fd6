// Package topic tags queries with zero or more subject-matter topics and
// derives a coarse subject area from them.
//
// Unlike intent classification this is multi-label: every pattern that
// matches contributes its topic. Tagging never invents a topic outside the
// fixed table.
package topic

import (
	"strings"

	"github.com/aprenda-ai/tutor/schema"
)

// Pattern binds a keyword set to the topic it tags.
type Pattern struct {
	Topic    schema.Topic
	Keywords []string
}

// patterns is the fixed tagging table. Order matters only for AreaOf, which
// resolves the area of the first matching topic.
var patterns = []Pattern{
	{schema.TopicBiology, []string{
		"biologia", "mitose", "meiose", "célula", "celula", "fotossíntese", "fotossintese",
		"dna", "genética", "genetica", "ecossistema", "evolução das espécies", "vírus", "virus",
		"bactéria", "bacteria", "biology", "cell", "photosynthesis", "genetics", "organism",
	}},
	{schema.TopicChemistry, []string{
		"química", "quimica", "átomo", "atomo", "molécula", "molecula", "tabela periódica",
		"tabela periodica", "reação química", "reacao quimica", "ligação iônica", "ligacao ionica",
		"chemistry", "atom", "molecule", "periodic table", "chemical reaction",
	}},
	{schema.TopicPhysics, []string{
		"física", "fisica", "velocidade média", "velocidade media", "força", "forca", "gravidade",
		"newton", "eletricidade", "termodinâmica", "termodinamica", "cinemática", "cinematica",
		"physics", "gravity", "electricity", "thermodynamics", "kinematics",
	}},
	{schema.TopicMath, []string{
		"matemática", "matematica", "equação", "equacao", "álgebra", "algebra", "geometria",
		"fração", "fracao", "trigonometria", "porcentagem", "função quadrática", "funcao quadratica",
		"math", "equation", "geometry", "fraction", "trigonometry",
	}},
	{schema.TopicHistory, []string{
		"história", "historia", "guerra mundial", "revolução", "revolucao", "império",
		"imperio", "brasil colônia", "brasil colonia", "escravidão", "escravidao", "ditadura",
		"history", "world war", "revolution", "empire",
	}},
	{schema.TopicGeography, []string{
		"geografia", "clima", "relevo", "continente", "urbanização", "urbanizacao",
		"globalização", "globalizacao", "placas tectônicas", "placas tectonicas",
		"geography", "climate", "continent", "tectonic",
	}},
	{schema.TopicLiterature, []string{
		"literatura", "romantismo", "modernismo", "machado de assis", "poesia", "soneto",
		"literature", "novel", "poetry",
	}},
	{schema.TopicGrammar, []string{
		"gramática", "gramatica", "ortografia", "sintaxe", "crase", "concordância",
		"concordancia", "substantivo", "pronome", "conjugação", "conjugacao",
		"grammar", "syntax", "spelling",
	}},
	{schema.TopicEnglish, []string{
		"inglês", "ingles", "phrasal verb", "vocabulary", "irregular verbs",
	}},
	{schema.TopicPhilosophy, []string{
		"filosofia", "sócrates", "socrates", "platão", "platao", "aristóteles", "aristoteles",
		"ética", "etica", "epistemologia", "philosophy", "ethics",
	}},
	{schema.TopicSociology, []string{
		"sociologia", "durkheim", "max weber", "movimentos sociais", "desigualdade social",
		"sociology", "social inequality",
	}},
	{schema.TopicArts, []string{
		"história da arte", "historia da arte", "pintura", "renascimento", "barroco",
		"impressionismo", "art history", "painting", "renaissance",
	}},
	{schema.TopicWriting, []string{
		"redação", "redacao", "dissertação", "dissertacao", "argumentação", "argumentacao",
		"texto dissertativo", "essay", "argumentative",
	}},
	{schema.TopicExamPrep, []string{
		"enem", "vestibular", "simulado do enem", "prova do enem", "fuvest",
	}},
}

// areas maps each topic to its coarse subject area. Topics without an entry
// have no area.
var areas = map[schema.Topic]schema.SubjectArea{
	schema.TopicBiology:    schema.AreaNature,
	schema.TopicChemistry:  schema.AreaNature,
	schema.TopicPhysics:    schema.AreaNature,
	schema.TopicMath:       schema.AreaExact,
	schema.TopicHistory:    schema.AreaHumanities,
	schema.TopicGeography:  schema.AreaHumanities,
	schema.TopicPhilosophy: schema.AreaHumanities,
	schema.TopicSociology:  schema.AreaHumanities,
	schema.TopicArts:       schema.AreaHumanities,
	schema.TopicLiterature: schema.AreaLanguages,
	schema.TopicGrammar:    schema.AreaLanguages,
	schema.TopicEnglish:    schema.AreaLanguages,
	schema.TopicWriting:    schema.AreaLanguages,
}

// hints suggests an adjacent subject for each topic, appended to synthesized
// answers as a follow-up nudge.
var hints = map[schema.Topic]string{
	schema.TopicBiology:    "Esse tema conversa bastante com química, principalmente bioquímica celular.",
	schema.TopicChemistry:  "Vale conectar com física: muita coisa aqui depende de modelos atômicos.",
	schema.TopicPhysics:    "A matemática por trás disso rende boas questões, especialmente funções.",
	schema.TopicMath:       "Esse conteúdo aparece muito em física e em questões de análise de gráficos.",
	schema.TopicHistory:    "Geografia e sociologia ajudam a entender o contexto desse período.",
	schema.TopicGeography:  "História explica como esses espaços se formaram; vale cruzar os dois.",
	schema.TopicLiterature: "O contexto histórico do movimento literário costuma cair junto em prova.",
	schema.TopicGrammar:    "Pratique aplicando em redações: gramática isolada fixa menos.",
	schema.TopicEnglish:    "Ler textos curtos sobre temas que você já estuda acelera o vocabulário.",
	schema.TopicPhilosophy: "Sociologia compartilha vários autores e conceitos com esse tema.",
	schema.TopicSociology:  "Filosofia e história dão a base teórica desses conceitos.",
	schema.TopicArts:       "Conecte com o período histórico do movimento: prova adora esse cruzamento.",
	schema.TopicWriting:    "Filosofia e sociologia rendem bons repertórios para a argumentação.",
	schema.TopicExamPrep:   "Revise os temas de maior peso primeiro e cronometre os simulados.",
}

// Tag returns the topics whose patterns match the query, in table order,
// without duplicates. An empty result is normal (e.g. pure greetings).
func Tag(query string) []schema.Topic {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}
	var out []schema.Topic
	for _, p := range patterns {
		for _, kw := range p.Keywords {
			if strings.Contains(q, kw) {
				out = append(out, p.Topic)
				break
			}
		}
	}
	return out
}

// AreaOf resolves the subject area of the first topic (in table order) that
// maps to one, and reports which topic matched. ok=false when no topic has
// an area.
func AreaOf(topics []schema.Topic) (schema.SubjectArea, schema.Topic, bool) {
	for _, t := range topics {
		if a, ok := areas[t]; ok {
			return a, t, true
		}
	}
	return "", "", false
}

// labels holds the Portuguese display names used in answer text.
var labels = map[schema.Topic]string{
	schema.TopicBiology:    "biologia",
	schema.TopicChemistry:  "química",
	schema.TopicPhysics:    "física",
	schema.TopicMath:       "matemática",
	schema.TopicHistory:    "história",
	schema.TopicGeography:  "geografia",
	schema.TopicLiterature: "literatura",
	schema.TopicGrammar:    "gramática",
	schema.TopicEnglish:    "inglês",
	schema.TopicPhilosophy: "filosofia",
	schema.TopicSociology:  "sociologia",
	schema.TopicArts:       "artes",
	schema.TopicWriting:    "redação",
	schema.TopicExamPrep:   "preparação para provas",
}

// Hint returns the interdisciplinary hint for a topic, or "" if none exists.
func Hint(t schema.Topic) string { return hints[t] }

// Label returns the Portuguese display name of a topic, falling back to the
// raw tag for unknown topics.
func Label(t schema.Topic) string {
	if l, ok := labels[t]; ok {
		return l
	}
	return string(t)
}

// Known reports whether t belongs to the closed topic set.
func Known(t schema.Topic) bool {
	for _, p := range patterns {
		if p.Topic == t {
			return true
		}
	}
	return false
}

// Patterns returns a copy of the tagging table for tests and tooling.
func Patterns() []Pattern {
	out := make([]Pattern, len(patterns))
	copy(out, patterns)
	return out
}
