package evaluator

import (
	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
)

func (e *Evaluator) evalBinary(b *ast.Binary) (ast.Expression, error) {
	// A delayed slash (font: 10px/20px) only becomes a real division when
	// the surrounding context demands a value; evalBinary is only ever
	// reached for a Binary node once something upstream (a parenthesized
	// group, an explicit operator, a variable operand) already decided it
	// needs evaluating, so a Delayed binary here still round-trips as a
	// literal unless both operands are themselves plain numbers — see
	// EvalDelayed for the one caller (Declaration values) that makes that
	// call explicitly.
	left, err := e.Eval(b.Left)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ast.OpAnd:
		if !Truthy(left) {
			return left, nil
		}
		return e.Eval(b.Right)
	case ast.OpOr:
		if Truthy(left) {
			return left, nil
		}
		return e.Eval(b.Right)
	}

	right, err := e.Eval(b.Right)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case ast.OpEq:
		return &ast.Boolean{Position: b.Position, Value: valuesEqual(left, right)}, nil
	case ast.OpNeq:
		return &ast.Boolean{Position: b.Position, Value: !valuesEqual(left, right)}, nil
	case ast.OpGt, ast.OpGte, ast.OpLt, ast.OpLte:
		ln, lok := left.(*ast.Number)
		rn, rok := right.(*ast.Number)
		if !lok || !rok {
			return nil, diag.New(diag.KindEvaluation, b.Position, "relational operators are only defined on numbers")
		}
		ok, err := numberRelational(b.Op, ln, rn, b.Position)
		if err != nil {
			return nil, err
		}
		return &ast.Boolean{Position: b.Position, Value: ok}, nil
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod:
		return e.evalArith(b, left, right)
	}
	return nil, diag.New(diag.KindEvaluation, b.Position, "unsupported binary operator")
}

// EvalDelayed is the one caller allowed to force a delayed '/' into a real
// division: Declaration values call it so `width: $w/2` divides while
// `font: 10px/20px` (both sides literal numbers, no explicit operator
// elsewhere and no variable involved) still renders as a literal slash.
// Per spec §4.2/§9, the rule is: evaluate the slash as division whenever
// either operand is not a bare numeric literal (i.e. involves a variable,
// function call, or nested arithmetic); otherwise preserve it.
func (e *Evaluator) EvalDelayed(expr ast.Expression) (ast.Expression, error) {
	if b, ok := expr.(*ast.Binary); ok && b.Delayed && b.Op == ast.OpDiv {
		if isBareLiteral(b.Left) && isBareLiteral(b.Right) {
			left, err := e.Eval(b.Left)
			if err != nil {
				return nil, err
			}
			right, err := e.Eval(b.Right)
			if err != nil {
				return nil, err
			}
			return &ast.Binary{Position: b.Position, Op: ast.OpDiv, Left: left, Right: right, Delayed: true}, nil
		}
	}
	return e.Eval(expr)
}

func isBareLiteral(e ast.Expression) bool {
	switch e.(type) {
	case *ast.Number, *ast.Textual:
		return true
	default:
		return false
	}
}

func (e *Evaluator) evalArith(b *ast.Binary, left, right ast.Expression) (ast.Expression, error) {
	ln, lIsNum := left.(*ast.Number)
	rn, rIsNum := right.(*ast.Number)
	lc, lIsColor := left.(*ast.Color)
	rc, rIsColor := right.(*ast.Color)

	switch {
	case lIsNum && rIsNum:
		switch b.Op {
		case ast.OpAdd, ast.OpSub, ast.OpMod:
			return numberAddSub(b.Op, ln, rn, b.Position)
		case ast.OpMul:
			return numberMul(ln, rn, b.Position), nil
		case ast.OpDiv:
			return numberDiv(ln, rn, b.Position)
		}
	case lIsColor && rIsColor:
		return colorChannelOp(b.Op, lc, rc, b.Position)
	case lIsColor && rIsNum:
		return colorNumberOp(b.Op, lc, rn, b.Position), nil
	case lIsNum && rIsColor:
		if b.Op == ast.OpAdd || b.Op == ast.OpMul {
			return colorNumberOp(b.Op, rc, ln, b.Position), nil
		}
		// '-' and '/' of number op color degrade to string concatenation.
		return concatString(Inspect(left), Inspect(right), opText(b.Op), false, 0, b.Position), nil
	}

	// Arithmetic involving strings, or any other mixed kind: '+'
	// concatenates (quotedness follows the left operand); '-' and '/'
	// produce a concatenation with the operator literal between.
	_, leftQuoted := left.(*ast.StringQuoted)
	if b.Op == ast.OpAdd {
		text := RenderUnquoted(left) + RenderUnquoted(right)
		if leftQuoted {
			q := left.(*ast.StringQuoted).QuoteMark
			return &ast.StringQuoted{Position: b.Position, Value: text, QuoteMark: q}, nil
		}
		return &ast.StringConstant{Position: b.Position, Value: text}, nil
	}
	var quoteMark byte
	if leftQuoted {
		quoteMark = left.(*ast.StringQuoted).QuoteMark
	}
	return concatString(Inspect(left), Inspect(right), opText(b.Op), leftQuoted, quoteMark, b.Position), nil
}

// valuesEqual implements the spec's total equality: values of different
// kinds are unequal; String_Constant and String_Quoted compare by their
// unquoted value; lists compare structurally including separator; Number
// equality requires equal value and equal normalized unit vectors.
func valuesEqual(a, b ast.Expression) bool {
	switch av := a.(type) {
	case *ast.Number:
		bv, ok := b.(*ast.Number)
		if !ok {
			return false
		}
		factor, ok := unitsCompatible(primaryUnit(av), primaryUnit(bv))
		if !ok {
			return false
		}
		return av.Value == bv.Value*factor
	case *ast.Color:
		bv, ok := b.(*ast.Color)
		return ok && av.R == bv.R && av.G == bv.G && av.B == bv.B && av.A == bv.A
	case *ast.Boolean:
		bv, ok := b.(*ast.Boolean)
		return ok && av.Value == bv.Value
	case *ast.Null:
		_, ok := b.(*ast.Null)
		return ok
	case *ast.StringConstant, *ast.StringQuoted:
		switch b.(type) {
		case *ast.StringConstant, *ast.StringQuoted:
			return RenderUnquoted(a) == RenderUnquoted(b)
		default:
			return false
		}
	case *ast.List:
		bv, ok := b.(*ast.List)
		if !ok || av.Separator != bv.Separator || len(av.Items) != len(bv.Items) {
			return false
		}
		for i := range av.Items {
			if !valuesEqual(av.Items[i], bv.Items[i]) {
				return false
			}
		}
		return true
	case *ast.Map:
		bv, ok := b.(*ast.Map)
		if !ok || len(av.Entries) != len(bv.Entries) {
			return false
		}
		for i := range av.Entries {
			if !valuesEqual(av.Entries[i].Key, bv.Entries[i].Key) || !valuesEqual(av.Entries[i].Value, bv.Entries[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
