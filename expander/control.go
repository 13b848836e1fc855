package expander

import (
	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
	"github.com/titpetric/stylesc/evaluator"
)

// maxWhileIterations bounds @while the same way evaluator.MaxCallDepth
// bounds recursion: a runaway predicate (one that never flips falsy)
// otherwise loops forever instead of surfacing a compile error.
const maxWhileIterations = 100000

// truthyPredicate decides an @if/@while condition. A predicate whose root
// is a logical/relational combinator is evaluated through
// evaluator.EvalPredicate (comparisons are evaluated by the evaluator, and
// expr-lang combines their results with and/or/not); anything else — a bare variable, a function call, a literal —
// is evaluated normally and tested with evaluator.Truthy, so `@if $flag`
// behaves like a plain truthiness check rather than miscomparing a
// non-boolean value.
func (ex *Expander) truthyPredicate(pred ast.Expression) (bool, error) {
	if isBooleanShape(pred) {
		return ex.Eval.EvalPredicate(pred)
	}
	val, err := ex.Eval.Eval(pred)
	if err != nil {
		return false, err
	}
	return evaluator.Truthy(val), nil
}

func isBooleanShape(e ast.Expression) bool {
	switch v := e.(type) {
	case *ast.Binary:
		switch v.Op {
		case ast.OpAnd, ast.OpOr, ast.OpEq, ast.OpNeq, ast.OpGt, ast.OpGte, ast.OpLt, ast.OpLte:
			return true
		}
	case *ast.Unary:
		return v.Op == ast.UnaryNot
	}
	return false
}

func (ex *Expander) expandIf(s *ast.If, parent *ast.SelectorList) ([]ast.Statement, error) {
	ok, err := ex.truthyPredicate(s.Predicate)
	if err != nil {
		return nil, err
	}
	if ok {
		ex.Env.Push()
		defer ex.Env.Pop()
		return ex.expandBlock(s.Consequent.Children, parent)
	}
	switch alt := s.Alternative.(type) {
	case nil:
		return nil, nil
	case *ast.If:
		return ex.expandIf(alt, parent)
	case *ast.Block:
		ex.Env.Push()
		defer ex.Env.Pop()
		return ex.expandBlock(alt.Children, parent)
	}
	return nil, nil
}

func (ex *Expander) expandFor(s *ast.For, parent *ast.SelectorList) ([]ast.Statement, error) {
	lowerV, err := ex.Eval.Eval(s.Lower)
	if err != nil {
		return nil, err
	}
	upperV, err := ex.Eval.Eval(s.Upper)
	if err != nil {
		return nil, err
	}
	lowerN, ok := lowerV.(*ast.Number)
	if !ok {
		return nil, diag.New(diag.KindEvaluation, s.Position, "@for lower bound must be a number")
	}
	upperN, ok := upperV.(*ast.Number)
	if !ok {
		return nil, diag.New(diag.KindEvaluation, s.Position, "@for upper bound must be a number")
	}

	lo, hi := int(lowerN.Value), int(upperN.Value)
	step := 1
	if hi < lo {
		step = -1
	}

	var out []ast.Statement
	for i := lo; stepContinues(i, hi, step, s.Inclusive); i += step {
		ex.Env.Push()
		ex.Env.SetLocal(s.Var, &ast.Number{Position: s.Position, Value: float64(i)})
		expanded, err := ex.expandBlock(s.Block.Children, parent)
		ex.Env.Pop()
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func stepContinues(i, hi, step int, inclusive bool) bool {
	if step > 0 {
		if inclusive {
			return i <= hi
		}
		return i < hi
	}
	if inclusive {
		return i >= hi
	}
	return i > hi
}

// expandEach iterates a list or map, binding one or more loop variables per
// item. A single loop variable binds each whole item (for a map, the
// space-separated key/value pair). With two or more variables, a list of
// sub-lists destructures element-wise; anything shorter is padded with
// Null, matching the original's null-padding rule for short items (spec §5
// supplement) rather than erroring.
func (ex *Expander) expandEach(s *ast.Each, parent *ast.SelectorList) ([]ast.Statement, error) {
	listVal, err := ex.Eval.Eval(s.List)
	if err != nil {
		return nil, err
	}
	tuples := eachTuples(listVal, len(s.Vars))

	var out []ast.Statement
	for _, tuple := range tuples {
		ex.Env.Push()
		for i, name := range s.Vars {
			var v ast.Expression = &ast.Null{}
			if i < len(tuple) {
				v = tuple[i]
			}
			ex.Env.SetLocal(name, v)
		}
		expanded, err := ex.expandBlock(s.Block.Children, parent)
		ex.Env.Pop()
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func eachTuples(v ast.Expression, nvars int) [][]ast.Expression {
	switch x := v.(type) {
	case *ast.Map:
		out := make([][]ast.Expression, len(x.Entries))
		for i, e := range x.Entries {
			out[i] = []ast.Expression{e.Key, e.Value}
			if nvars == 1 {
				out[i] = []ast.Expression{&ast.List{Items: out[i], Separator: ast.SepSpace}}
			}
		}
		return out
	case *ast.List:
		out := make([][]ast.Expression, len(x.Items))
		for i, item := range x.Items {
			if inner, ok := item.(*ast.List); ok && len(inner.Items) > 1 && nvars > 1 {
				out[i] = inner.Items
			} else {
				out[i] = []ast.Expression{item}
			}
		}
		return out
	default:
		return [][]ast.Expression{{v}}
	}
}

func (ex *Expander) expandWhile(s *ast.While, parent *ast.SelectorList) ([]ast.Statement, error) {
	var out []ast.Statement
	for i := 0; ; i++ {
		if i >= maxWhileIterations {
			return nil, diag.New(diag.KindEvaluation, s.Position, "@while exceeded %d iterations", maxWhileIterations)
		}
		ok, err := ex.truthyPredicate(s.Predicate)
		if err != nil {
			return nil, err
		}
		if !ok {
			break
		}
		ex.Env.Push()
		expanded, err := ex.expandBlock(s.Block.Children, parent)
		ex.Env.Pop()
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}
