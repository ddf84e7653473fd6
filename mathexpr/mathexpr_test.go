package mathexpr

import "testing"

func TestEval(t *testing.T) {
	cases := []struct {
		query string
		want  string
	}{
		{"2 + 2", "4"},
		{"quanto é 2 + 2?", "4"},
		{"how much is 10 - 3", "7"},
		{"3 * (4 - 1)", "9"},
		{"10 / 4", "2.5"},
		{"2^10", "1024"},
		{"2 ^ 3 ^ 2", "512"}, // right-associative
		{"-5 + 3", "-2"},
		{"3,5 + 1,5", "5"},
		{"6 × 7", "42"},
		{"84 ÷ 2", "42"},
		{"raiz quadrada de 144", "12"},
		{"square root of 2", "1.4142135623730951"},
		{"fatorial de 5", "120"},
		{"6!", "720"},
		{"15% de 80", "12"},
		{"quanto é 50% de 90?", "45"},
		{"25 percent of 200", "50"},
		{"3 elevado a 4", "81"},
		{"2 to the power of 8", "256"},
	}
	for _, c := range cases {
		got, ok := Eval(c.query)
		if !ok {
			t.Errorf("Eval(%q): not evaluated", c.query)
			continue
		}
		if got != c.want {
			t.Errorf("Eval(%q) = %q, want %q", c.query, got, c.want)
		}
	}
}

func TestEvalRejects(t *testing.T) {
	cases := []string{
		"",
		"o que é mitose?",
		"2 +",
		"(2 + 3",
		"10 / 0",
		"raiz quadrada de banana",
		"fatorial de 200", // overflows float64
		"quanto é a vida?",
	}
	for _, q := range cases {
		if got, ok := Eval(q); ok {
			t.Errorf("Eval(%q) = %q, want rejection", q, got)
		}
	}
}

func TestRecognizes(t *testing.T) {
	yes := []string{
		"2 + 2", "quanto é 3 * 3", "raiz quadrada de 9", "5!", "10% de 50", "2^8",
	}
	no := []string{
		"o que é mitose", "oi", "", "quem foi kant", "quanto custa um livro",
	}
	for _, q := range yes {
		if !Recognizes(q) {
			t.Errorf("Recognizes(%q) = false, want true", q)
		}
	}
	for _, q := range no {
		if Recognizes(q) {
			t.Errorf("Recognizes(%q) = true, want false", q)
		}
	}
}
