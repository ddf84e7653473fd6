// Package mathexpr recognizes and evaluates the arithmetic queries the
// resolver answers locally: plain expressions ("2 + 2", "3*(4-1)^2") and the
// named patterns students actually type (square root, factorial, percentage,
// power), in Portuguese and English.
//
// Eval never returns an error value: malformed input yields ok=false and the
// caller falls through to later resolution stages.
package mathexpr

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	pureExprRe   = regexp.MustCompile(`^[0-9\s.,+\-*/^()×÷]+$`)
	hasDigitRe   = regexp.MustCompile(`[0-9]`)
	hasOperRe    = regexp.MustCompile(`[+\-*/^×÷]|\d\s*\(`)
	sqrtRe       = regexp.MustCompile(`(?:raiz(?: quadrada)? de|square root of|sqrt(?: of)?)\s*([0-9]+(?:[.,][0-9]+)?)`)
	factorialRe  = regexp.MustCompile(`(?:fatorial de|factorial of)\s*([0-9]+)|([0-9]+)\s*!`)
	percentRe    = regexp.MustCompile(`([0-9]+(?:[.,][0-9]+)?)\s*(?:%|por cento|percent)\s*(?:de|of)\s*([0-9]+(?:[.,][0-9]+)?)`)
	powerRe      = regexp.MustCompile(`([0-9]+(?:[.,][0-9]+)?)\s*(?:elevado a|to the power of|\^)\s*([0-9]+(?:[.,][0-9]+)?)`)
	howMuchStems = []string{"quanto é", "quanto e", "quanto da", "quanto dá", "how much is", "what is"}
)

// Recognizes reports whether the query looks like an arithmetic request.
// It accepts trimmed lower-case input (the classifier's normal form).
func Recognizes(q string) bool {
	if isPureExpression(q) {
		return true
	}
	if sqrtRe.MatchString(q) || factorialRe.MatchString(q) || percentRe.MatchString(q) || powerRe.MatchString(q) {
		return true
	}
	for _, stem := range howMuchStems {
		if strings.HasPrefix(q, stem) && isPureExpression(strings.TrimSpace(q[len(stem):])) {
			return true
		}
	}
	return false
}

// Eval evaluates the arithmetic request and formats the numeric result.
// ok=false means the input was recognized poorly or is malformed; the caller
// must fall through, never surface an error.
func Eval(query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}

	if m := sqrtRe.FindStringSubmatch(q); m != nil {
		n, err := parseNumber(m[1])
		if err != nil || n < 0 {
			return "", false
		}
		return formatNumber(math.Sqrt(n)), true
	}
	if m := factorialRe.FindStringSubmatch(q); m != nil {
		arg := m[1]
		if arg == "" {
			arg = m[2]
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 0 || n > 170 { // 171! overflows float64
			return "", false
		}
		f := 1.0
		for i := 2; i <= n; i++ {
			f *= float64(i)
		}
		return formatNumber(f), true
	}
	if m := percentRe.FindStringSubmatch(q); m != nil {
		p, err1 := parseNumber(m[1])
		base, err2 := parseNumber(m[2])
		if err1 != nil || err2 != nil {
			return "", false
		}
		return formatNumber(p / 100 * base), true
	}
	if m := powerRe.FindStringSubmatch(q); m != nil && !isPureExpression(q) {
		b, err1 := parseNumber(m[1])
		e, err2 := parseNumber(m[2])
		if err1 != nil || err2 != nil {
			return "", false
		}
		return formatNumber(math.Pow(b, e)), true
	}

	expr := q
	for _, stem := range howMuchStems {
		if strings.HasPrefix(expr, stem) {
			expr = strings.TrimSpace(expr[len(stem):])
			break
		}
	}
	expr = strings.TrimSuffix(expr, "?")
	if !isPureExpression(expr) {
		return "", false
	}
	v, ok := evalExpression(expr)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return "", false
	}
	return formatNumber(v), true
}

func isPureExpression(s string) bool {
	s = strings.TrimSuffix(strings.TrimSpace(s), "?")
	return s != "" && pureExprRe.MatchString(s) && hasDigitRe.MatchString(s) && hasOperRe.MatchString(s)
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ---- expression parser ----
//
// Recursive descent over: expr := term (('+'|'-') term)*
//                         term := power (('*'|'/') power)*
//                         power := unary ('^' power)?
//                         unary := '-'? atom
//                         atom := number | '(' expr ')'

type parser struct {
	input []rune
	pos   int
}

func evalExpression(s string) (float64, bool) {
	s = strings.NewReplacer("×", "*", "÷", "/", ",", ".").Replace(s)
	p := &parser{input: []rune(s)}
	v, ok := p.expr()
	if !ok {
		return 0, false
	}
	p.skipSpaces()
	if p.pos != len(p.input) {
		return 0, false
	}
	return v, true
}

func (p *parser) expr() (float64, bool) {
	v, ok := p.term()
	if !ok {
		return 0, false
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '+':
			p.pos++
			r, ok := p.term()
			if !ok {
				return 0, false
			}
			v += r
		case '-':
			p.pos++
			r, ok := p.term()
			if !ok {
				return 0, false
			}
			v -= r
		default:
			return v, true
		}
	}
}

func (p *parser) term() (float64, bool) {
	v, ok := p.power()
	if !ok {
		return 0, false
	}
	for {
		p.skipSpaces()
		switch p.peek() {
		case '*':
			p.pos++
			r, ok := p.power()
			if !ok {
				return 0, false
			}
			v *= r
		case '/':
			p.pos++
			r, ok := p.power()
			if !ok {
				return 0, false
			}
			if r == 0 {
				return 0, false
			}
			v /= r
		default:
			return v, true
		}
	}
}

func (p *parser) power() (float64, bool) {
	v, ok := p.unary()
	if !ok {
		return 0, false
	}
	p.skipSpaces()
	if p.peek() == '^' {
		p.pos++
		// Right-associative.
		r, ok := p.power()
		if !ok {
			return 0, false
		}
		return math.Pow(v, r), true
	}
	return v, true
}

func (p *parser) unary() (float64, bool) {
	p.skipSpaces()
	if p.peek() == '-' {
		p.pos++
		v, ok := p.unary()
		return -v, ok
	}
	return p.atom()
}

func (p *parser) atom() (float64, bool) {
	p.skipSpaces()
	if p.peek() == '(' {
		p.pos++
		v, ok := p.expr()
		if !ok {
			return 0, false
		}
		p.skipSpaces()
		if p.peek() != ')' {
			return 0, false
		}
		p.pos++
		return v, true
	}
	start := p.pos
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		if c >= '0' && c <= '9' || c == '.' {
			p.pos++
			continue
		}
		break
	}
	if p.pos == start {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(p.input[start:p.pos]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (p *parser) peek() rune {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) skipSpaces() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}
