package evaluator

import (
	"fmt"
	"math"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
	"github.com/titpetric/stylesc/units"
)

// sameUnits returns the numerator/denominator unit vectors to use for
// the result of a+b or a-b: they must already be unit-compatible, so the
// result simply takes the left operand's units.
func sameUnits(a *ast.Number) ([]string, []string) {
	return append([]string(nil), a.NumeratorUnits...), append([]string(nil), a.DenominatorUnits...)
}

// numberAddSub implements + and - (and the add/sub rules mod follows) on
// two numbers: units must be compatible after normalization.
func numberAddSub(op ast.BinaryOp, a, b *ast.Number, pos ast.Position) (*ast.Number, error) {
	aUnit, bUnit := primaryUnit(a), primaryUnit(b)
	factor := 1.0
	if aUnit != "" || bUnit != "" {
		var ok bool
		factor, ok = unitsCompatible(aUnit, bUnit)
		if !ok {
			return nil, diag.New(diag.KindEvaluation, pos, "incompatible units: %s and %s", unitsString(a), unitsString(b))
		}
	}
	bVal := b.Value * factor
	var val float64
	switch op {
	case ast.OpAdd:
		val = a.Value + bVal
	case ast.OpSub:
		val = a.Value - bVal
	case ast.OpMod:
		if bVal == 0 {
			return nil, diag.New(diag.KindEvaluation, pos, "division by zero")
		}
		val = math.Mod(a.Value, bVal)
	}
	num, den := sameUnits(a)
	return &ast.Number{Position: pos, Value: val, NumeratorUnits: num, DenominatorUnits: den}, nil
}

// numberMul implements *: unit vectors concatenate, then cancel.
func numberMul(a, b *ast.Number, pos ast.Position) *ast.Number {
	num := append(append([]string(nil), a.NumeratorUnits...), b.NumeratorUnits...)
	den := append(append([]string(nil), a.DenominatorUnits...), b.DenominatorUnits...)
	num, den = cancelUnits(num, den)
	return &ast.Number{Position: pos, Value: a.Value * b.Value, NumeratorUnits: num, DenominatorUnits: den}
}

// numberDiv implements /: b's units move to the opposite side, then cancel.
func numberDiv(a, b *ast.Number, pos ast.Position) (*ast.Number, error) {
	if b.Value == 0 {
		return nil, diag.New(diag.KindEvaluation, pos, "division by zero")
	}
	num := append(append([]string(nil), a.NumeratorUnits...), b.DenominatorUnits...)
	den := append(append([]string(nil), a.DenominatorUnits...), b.NumeratorUnits...)
	num, den = cancelUnits(num, den)
	return &ast.Number{Position: pos, Value: a.Value / b.Value, NumeratorUnits: num, DenominatorUnits: den}, nil
}

func primaryUnit(n *ast.Number) string {
	return units.Primary(n.NumeratorUnits, n.DenominatorUnits)
}

func unitsString(n *ast.Number) string {
	return units.String(n.NumeratorUnits, n.DenominatorUnits)
}

// numberRelational implements </<=/>/>= on two numbers that must share a
// compatible unit after normalization.
func numberRelational(op ast.BinaryOp, a, b *ast.Number, pos ast.Position) (bool, error) {
	factor, ok := unitsCompatible(primaryUnit(a), primaryUnit(b))
	if !ok {
		return false, diag.New(diag.KindEvaluation, pos, "cannot compare numbers with incompatible units %s and %s", unitsString(a), unitsString(b))
	}
	bVal := b.Value * factor
	switch op {
	case ast.OpLt:
		return a.Value < bVal, nil
	case ast.OpLte:
		return a.Value <= bVal, nil
	case ast.OpGt:
		return a.Value > bVal, nil
	case ast.OpGte:
		return a.Value >= bVal, nil
	}
	return false, nil
}

// colorChannelOp applies op to each of r/g/b, clamping to [0,255].
func colorChannelOp(op ast.BinaryOp, a, b *ast.Color, pos ast.Position) (*ast.Color, error) {
	if a.A != b.A {
		return nil, diag.New(diag.KindEvaluation, pos, "alpha channels must be equal to add, subtract, multiply, or divide colors")
	}
	apply := func(x, y int) int {
		var v float64
		switch op {
		case ast.OpAdd:
			v = float64(x + y)
		case ast.OpSub:
			v = float64(x - y)
		case ast.OpMul:
			v = float64(x * y)
		case ast.OpDiv:
			if y == 0 {
				v = 0
			} else {
				v = float64(x) / float64(y)
			}
		}
		return clampByte(int(math.Round(v)))
	}
	return &ast.Color{
		Position: pos,
		R:        apply(a.R, b.R),
		G:        apply(a.G, b.G),
		B:        apply(a.B, b.B),
		A:        a.A,
	}, nil
}

// colorNumberOp applies a per-channel op between a color and a scalar
// number (e.g. lighten-by-add idioms like `#fff + 10`).
func colorNumberOp(op ast.BinaryOp, c *ast.Color, n *ast.Number, pos ast.Position) *ast.Color {
	v := n.Value
	apply := func(x int) int {
		var r float64
		switch op {
		case ast.OpAdd:
			r = float64(x) + v
		case ast.OpSub:
			r = float64(x) - v
		case ast.OpMul:
			r = float64(x) * v
		case ast.OpDiv:
			if v == 0 {
				r = 0
			} else {
				r = float64(x) / v
			}
		}
		return clampByte(int(math.Round(r)))
	}
	return &ast.Color{Position: pos, R: apply(c.R), G: apply(c.G), B: apply(c.B), A: c.A}
}

func clampByte(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// concatString implements the catch-all string-concatenation fallback used
// by '-' and '/' when applied to operand kinds that have no arithmetic
// meaning (number op color degrading to a literal, string minus/slash,
// etc): the operator appears literally between the rendered operands.
func concatString(left, right string, op string, quoted bool, quoteMark byte, pos ast.Position) ast.Expression {
	text := fmt.Sprintf("%s%s%s", left, op, right)
	if quoted {
		return &ast.StringQuoted{Position: pos, Value: text, QuoteMark: quoteMark}
	}
	return &ast.StringConstant{Position: pos, Value: text}
}
