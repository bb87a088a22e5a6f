package resolver

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// wordOperators maps spoken operator phrases to symbols. Multi-word phrases
// come first so "умножить на" never leaves a dangling "на" behind; the
// substitution must happen before the symbol scan, otherwise a substituted
// symbol would be scanned twice.
var wordOperators = []struct {
	word, symbol string
}{
	{"умножить на", "*"},
	{"разделить на", "/"},
	{"поделить на", "/"},
	{"умножить", "*"},
	{"разделить", "/"},
	{"плюс", "+"},
	{"минус", "-"},
}

var exprPattern = regexp.MustCompile(`(\d+(?:[.,]\d+)?)\s*([+\-*/])\s*(\d+(?:[.,]\d+)?)`)

const divisionByZero = "**Ошибка:** Деление на ноль невозможно"

// arithmeticStage answers queries that embed a single binary arithmetic
// expression, written with symbols or spoken Russian operator words.
// Chained expressions evaluate only the first operand pair; the remainder is
// ignored on purpose.
type arithmeticStage struct{}

func (s *arithmeticStage) Name() string { return "arithmetic" }

func (s *arithmeticStage) Resolve(_ context.Context, query string) (string, error) {
	expr := strings.ToLower(query)
	for _, op := range wordOperators {
		expr = strings.ReplaceAll(expr, op.word, op.symbol)
	}

	m := exprPattern.FindStringSubmatch(expr)
	if m == nil {
		return "", nil
	}

	left, err := parseNumber(m[1])
	if err != nil {
		return "", nil
	}
	right, err := parseNumber(m[3])
	if err != nil {
		return "", nil
	}
	op := m[2]

	var result float64
	switch op {
	case "+":
		result = left + right
	case "-":
		result = left - right
	case "*":
		result = left * right
	case "/":
		if right == 0 {
			return divisionByZero, nil
		}
		result = left / right
	}

	return fmt.Sprintf("**Результат:** %s %s %s = **%s**",
		formatNumber(left), op, formatNumber(right), formatNumber(result)), nil
}

func parseNumber(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// formatNumber renders the shortest exact decimal form but always keeps a
// fractional part, so whole numbers read "42.0".
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
