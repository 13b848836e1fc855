package evaluator

import (
	"strconv"
	"strings"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
)

// parseHexColor normalizes a #rgb/#rgba/#rrggbb/#rrggbbaa textual literal
// into a Color value.
func parseHexColor(raw string, pos ast.Position) (*ast.Color, error) {
	hex := strings.TrimPrefix(raw, "#")
	expand := func(c byte) int {
		v, _ := strconv.ParseInt(string([]byte{c, c}), 16, 32)
		return int(v)
	}
	pair := func(s string) int {
		v, _ := strconv.ParseInt(s, 16, 32)
		return int(v)
	}
	switch len(hex) {
	case 3:
		return &ast.Color{Position: pos, R: expand(hex[0]), G: expand(hex[1]), B: expand(hex[2]), A: 1}, nil
	case 4:
		a, _ := strconv.ParseInt(string([]byte{hex[3], hex[3]}), 16, 32)
		return &ast.Color{Position: pos, R: expand(hex[0]), G: expand(hex[1]), B: expand(hex[2]), A: float64(a) / 255}, nil
	case 6:
		return &ast.Color{Position: pos, R: pair(hex[0:2]), G: pair(hex[2:4]), B: pair(hex[4:6]), A: 1}, nil
	case 8:
		a := pair(hex[6:8])
		return &ast.Color{Position: pos, R: pair(hex[0:2]), G: pair(hex[2:4]), B: pair(hex[4:6]), A: float64(a) / 255}, nil
	default:
		return nil, diag.New(diag.KindSyntax, pos, "invalid hex color: %s", raw)
	}
}

// parseNumberLiteral splits the unit suffix off a numeric/percentage/
// dimension textual literal and produces a Number.
func parseNumberLiteral(raw string, pos ast.Position) (*ast.Number, error) {
	i := 0
	if i < len(raw) && (raw[i] == '+' || raw[i] == '-') {
		i++
	}
	start := i
	for i < len(raw) && (raw[i] >= '0' && raw[i] <= '9' || raw[i] == '.') {
		i++
	}
	numPart := raw[:i]
	unit := raw[i:]
	_ = start
	val, err := strconv.ParseFloat(numPart, 64)
	if err != nil {
		return nil, diag.New(diag.KindSyntax, pos, "invalid number: %s", raw)
	}
	n := &ast.Number{Position: pos, Value: val, HasLeadingZero: strings.HasPrefix(numPart, "0.") || strings.HasPrefix(numPart, "-0.")}
	if unit != "" {
		n.NumeratorUnits = []string{unit}
	}
	return n, nil
}
