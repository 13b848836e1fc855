package evaluator

import (
	"fmt"

	exprlang "github.com/expr-lang/expr"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
)

// EvalPredicate evaluates an @if/@while predicate. The teacher reached for
// expr-lang ad hoc inside renderer/renderer_types.go's Boolean() helper to
// evaluate guard-shaped strings like "14px > 12px"; here that same library
// gets a permanent, typed home: leaves of the predicate tree (anything that
// isn't itself an and/or/not node) are evaluated normally through Eval (or,
// for a relational/equality comparison, through evalBinary so unit-aware
// comparison and its incompatible-units error still apply), lifted into an
// expr-lang environment, and the surrounding and/or/not structure — which
// is exactly the shape expr-lang is good at — is flattened into one
// expr-lang program and run once. This keeps hand-written unit-aware
// arithmetic and comparison (§4.2) for the leaves while letting expr-lang
// own only the boolean combination logic.
func (e *Evaluator) EvalPredicate(predicate ast.Expression) (bool, error) {
	env := map[string]interface{}{}
	text, err := e.flatten(predicate, env)
	if err != nil {
		return false, err
	}
	program, err := exprlang.Compile(text, exprlang.Env(env))
	if err != nil {
		return false, diag.New(diag.KindEvaluation, predicate.Pos(), "failed to compile predicate: %v", err)
	}
	result, err := exprlang.Run(program, env)
	if err != nil {
		return false, diag.New(diag.KindEvaluation, predicate.Pos(), "failed to evaluate predicate: %v", err)
	}
	b, _ := result.(bool)
	return b, nil
}

// flatten recursively lowers the boolean/relational skeleton of predicate
// into an expr-lang source fragment, evaluating and lifting leaf
// expressions into env as it goes.
func (e *Evaluator) flatten(node ast.Expression, env map[string]interface{}) (string, error) {
	switch n := node.(type) {
	case *ast.Binary:
		switch n.Op {
		case ast.OpAnd, ast.OpOr:
			left, err := e.flatten(n.Left, env)
			if err != nil {
				return "", err
			}
			right, err := e.flatten(n.Right, env)
			if err != nil {
				return "", err
			}
			return "(" + left + " " + exprOp(n.Op) + " " + right + ")", nil
		case ast.OpEq, ast.OpNeq, ast.OpGt, ast.OpGte, ast.OpLt, ast.OpLte:
			// Comparisons must not be decomposed into bare leaf values:
			// expr-lang's own ">"/"<"/etc. know nothing about CSS units, so
			// evalBinary (numberRelational/valuesEqual) evaluates the whole
			// comparison first, unit-aware, and only the resulting boolean
			// is lifted into the expr-lang environment.
			result, err := e.evalBinary(n)
			if err != nil {
				return "", err
			}
			name := fmt.Sprintf("v%d", len(env))
			env[name] = toGoValue(result)
			return name, nil
		}
	case *ast.Unary:
		if n.Op == ast.UnaryNot {
			inner, err := e.flatten(n.Operand, env)
			if err != nil {
				return "", err
			}
			return "(!" + inner + ")", nil
		}
	}

	val, err := e.Eval(node)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("v%d", len(env))
	env[name] = toGoValue(val)
	return name, nil
}

// exprOp maps the two boolean-combination operators flatten still hands to
// expr-lang; relational/equality operators are evaluated by evalBinary
// before they ever reach here.
func exprOp(op ast.BinaryOp) string {
	if op == ast.OpOr {
		return "||"
	}
	return "&&"
}

// toGoValue lifts an evaluated operand of and/or/not into the Go bool
// expr-lang combines, by the Truthy rule: false and null are false, every
// other value is true.
func toGoValue(v ast.Expression) interface{} {
	return Truthy(v)
}
