package topic

import (
	"testing"

	"github.com/aprenda-ai/tutor/schema"
)

func TestTag(t *testing.T) {
	cases := []struct {
		query string
		want  []schema.Topic
	}{
		{"O que é mitose?", []schema.Topic{schema.TopicBiology}},
		{"explique fotossíntese", []schema.Topic{schema.TopicBiology}},
		{"como funciona a tabela periódica?", []schema.Topic{schema.TopicChemistry}},
		{"o que diz a segunda lei de newton?", []schema.Topic{schema.TopicPhysics}},
		{"me ajude com trigonometria", []schema.Topic{schema.TopicMath}},
		{"causas da segunda guerra mundial", []schema.Topic{schema.TopicHistory}},
		{"o que foi o romantismo?", []schema.Topic{schema.TopicLiterature}},
		{"quando usar crase?", []schema.Topic{schema.TopicGrammar}},
		{"quem foi aristóteles?", []schema.Topic{schema.TopicPhilosophy}},
		{"dicas de redação para o enem", []schema.Topic{schema.TopicWriting, schema.TopicExamPrep}},
		{"Quem foi Kant?", nil},
		{"Oi!", nil},
		{"", nil},
	}
	for _, c := range cases {
		got := Tag(c.query)
		if len(got) != len(c.want) {
			t.Errorf("Tag(%q) = %v, want %v", c.query, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("Tag(%q) = %v, want %v", c.query, got, c.want)
				break
			}
		}
	}
}

func TestTagNoDuplicates(t *testing.T) {
	// "célula" and "dna" both tag biology; the topic must appear once.
	got := Tag("qual a relação entre célula e dna?")
	seen := map[schema.Topic]bool{}
	for _, tp := range got {
		if seen[tp] {
			t.Fatalf("duplicate topic %s in %v", tp, got)
		}
		seen[tp] = true
	}
	if !seen[schema.TopicBiology] {
		t.Fatalf("expected biology in %v", got)
	}
}

func TestTagClosedSet(t *testing.T) {
	queries := []string{
		"mitose e tabela periódica", "história da arte no renascimento",
		"física quântica", "sociologia de durkheim", "xyz",
	}
	for _, q := range queries {
		for _, tp := range Tag(q) {
			if !Known(tp) {
				t.Errorf("Tag(%q) produced unknown topic %q", q, tp)
			}
		}
	}
}

func TestAreaOf(t *testing.T) {
	cases := []struct {
		topics      []schema.Topic
		want        schema.SubjectArea
		wantMatched schema.Topic
		ok          bool
	}{
		{[]schema.Topic{schema.TopicBiology}, schema.AreaNature, schema.TopicBiology, true},
		{[]schema.Topic{schema.TopicMath}, schema.AreaExact, schema.TopicMath, true},
		{[]schema.Topic{schema.TopicHistory, schema.TopicMath}, schema.AreaHumanities, schema.TopicHistory, true},
		// A leading area-less topic must not shadow the one that matched.
		{[]schema.Topic{schema.TopicExamPrep, schema.TopicChemistry}, schema.AreaNature, schema.TopicChemistry, true},
		{[]schema.Topic{schema.TopicExamPrep}, "", "", false},
		{nil, "", "", false},
	}
	for _, c := range cases {
		got, matched, ok := AreaOf(c.topics)
		if got != c.want || matched != c.wantMatched || ok != c.ok {
			t.Errorf("AreaOf(%v) = (%q, %q, %v), want (%q, %q, %v)",
				c.topics, got, matched, ok, c.want, c.wantMatched, c.ok)
		}
	}
}

func TestHintCoversAllTopics(t *testing.T) {
	for _, p := range Patterns() {
		if Hint(p.Topic) == "" {
			t.Errorf("topic %s has no hint", p.Topic)
		}
	}
}
