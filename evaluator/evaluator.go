// Package evaluator turns an ast.Expression tree into a value (itself an
// ast.Expression variant), per spec §4.2. It generalizes the teacher's
// string-oriented expression/evaluator.go (which parsed and evaluated raw
// "10px * 2"-shaped strings) into evaluation over the typed AST, with real
// unit vectors on Number and per-channel Color arithmetic instead of the
// teacher's regex-based "preprocessComparisonExpr" shortcuts.
package evaluator

import (
	"strings"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
	"github.com/titpetric/stylesc/environment"
	"github.com/titpetric/stylesc/functions"
)

// MaxCallDepth bounds function/mixin recursion, matching the fixed
// stack-overflow constant named in spec §4.2 (the original libsass uses
// 1024).
const MaxCallDepth = 1024

// Evaluator evaluates expressions against an Environment, dispatching
// unknown function names to the built-in registry and falling through to
// a literal CSS function-call emission for names neither built in nor
// user-defined.
type Evaluator struct {
	Env   *environment.Environment
	Funcs *functions.Registry
	Sink  diag.Sink

	depth int

	// Invoke runs a user-defined function body; set by the expander
	// package (which owns statement execution, including @return) to
	// avoid an import cycle between evaluator and expander.
	Invoke func(def *ast.Definition, args *ast.Arguments) (ast.Expression, error)
}

// New builds an Evaluator over env using the default built-in function
// registry.
func New(env *environment.Environment, sink diag.Sink) *Evaluator {
	if sink == nil {
		sink = diag.NullSink{}
	}
	return &Evaluator{Env: env, Funcs: functions.Default(), Sink: sink}
}

// Eval evaluates expr to a value.
func (e *Evaluator) Eval(expr ast.Expression) (ast.Expression, error) {
	switch v := expr.(type) {
	case nil:
		return &ast.Null{}, nil
	case *ast.Number, *ast.Color, *ast.Boolean, *ast.Null, *ast.StringConstant, *ast.StringQuoted:
		return v, nil
	case *ast.Textual:
		return e.evalTextual(v)
	case *ast.StringSchema:
		return e.evalSchema(v)
	case *ast.List:
		return e.evalList(v)
	case *ast.Map:
		return e.evalMap(v)
	case *ast.Binary:
		return e.evalBinary(v)
	case *ast.Unary:
		return e.evalUnary(v)
	case *ast.Variable:
		return e.evalVariable(v)
	case *ast.FunctionCall:
		return e.evalCall(v)
	case *ast.FunctionCallSchema:
		return e.evalCallSchema(v)
	default:
		// Selector nodes and already-resolved literals pass through
		// unchanged; the selector algebra evaluates these separately.
		return expr, nil
	}
}

func (e *Evaluator) evalVariable(v *ast.Variable) (ast.Expression, error) {
	val, ok := e.Env.Get(v.Name)
	if !ok {
		return nil, diag.New(diag.KindEvaluation, v.Position, "undefined variable: $%s", v.Name)
	}
	return val, nil
}

func (e *Evaluator) evalList(l *ast.List) (ast.Expression, error) {
	out := &ast.List{Position: l.Position, Separator: l.Separator, IsArglist: l.IsArglist, IsBracketed: l.IsBracketed}
	out.Items = make([]ast.Expression, len(l.Items))
	for i, item := range l.Items {
		v, err := e.Eval(item)
		if err != nil {
			return nil, err
		}
		out.Items[i] = v
	}
	return out, nil
}

func (e *Evaluator) evalMap(m *ast.Map) (ast.Expression, error) {
	out := &ast.Map{Position: m.Position}
	seen := make(map[string]bool, len(m.Entries))
	for _, entry := range m.Entries {
		k, err := e.Eval(entry.Key)
		if err != nil {
			return nil, err
		}
		v, err := e.Eval(entry.Value)
		if err != nil {
			return nil, err
		}
		text := RenderUnquoted(k)
		if seen[text] {
			return nil, diag.New(diag.KindEvaluation, m.Position, "duplicate map key: %s", text)
		}
		seen[text] = true
		out.Entries = append(out.Entries, ast.MapEntry{Key: k, Value: v})
	}
	return out, nil
}

// evalTextual normalizes a raw lexical literal into its evaluated form.
func (e *Evaluator) evalTextual(t *ast.Textual) (ast.Expression, error) {
	switch t.Kind {
	case ast.TextualHex:
		return parseHexColor(t.Raw, t.Position)
	default:
		return parseNumberLiteral(t.Raw, t.Position)
	}
}

// evalSchema evaluates each fragment and concatenates unquoted text; the
// schema's own quote mark decides whether the result round-trips quoted.
func (e *Evaluator) evalSchema(s *ast.StringSchema) (ast.Expression, error) {
	var b strings.Builder
	for _, frag := range s.Fragments {
		v, err := e.Eval(frag)
		if err != nil {
			return nil, err
		}
		b.WriteString(RenderUnquoted(v))
	}
	if s.QuoteMark != 0 {
		return &ast.StringQuoted{Position: s.Position, Value: b.String(), QuoteMark: s.QuoteMark}, nil
	}
	return &ast.StringConstant{Position: s.Position, Value: b.String()}, nil
}

// Truthy implements the spec's logical-op truthiness rule: false and null
// are falsy, everything else (including 0 and "") is truthy.
func Truthy(v ast.Expression) bool {
	switch x := v.(type) {
	case *ast.Boolean:
		return x.Value
	case *ast.Null:
		return false
	case nil:
		return false
	default:
		return true
	}
}

func (e *Evaluator) evalUnary(u *ast.Unary) (ast.Expression, error) {
	v, err := e.Eval(u.Operand)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case ast.UnaryNot:
		return &ast.Boolean{Position: u.Position, Value: !Truthy(v)}, nil
	case ast.UnaryMinus, ast.UnaryPlus:
		if n, ok := v.(*ast.Number); ok {
			if u.Op == ast.UnaryMinus {
				return &ast.Number{Position: u.Position, Value: -n.Value, NumeratorUnits: n.NumeratorUnits, DenominatorUnits: n.DenominatorUnits}, nil
			}
			return n, nil
		}
		// Applied to a null-valued variable, +/- degrade to the literal
		// sign followed by the empty unquoted string, preserved for
		// compatibility per spec §4.2.
		if _, isNull := v.(*ast.Null); isNull {
			sign := "+"
			if u.Op == ast.UnaryMinus {
				sign = "-"
			}
			return &ast.StringConstant{Position: u.Position, Value: sign}, nil
		}
		return nil, diag.New(diag.KindEvaluation, u.Position, "unary operator requires a number")
	}
	return nil, diag.New(diag.KindEvaluation, u.Position, "unsupported unary operator")
}
