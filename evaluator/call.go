package evaluator

import (
	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
)

// evalCall resolves a function call in the order required by the
// function-call resolution contract: built-in registry first, then a
// user-defined function closing over its own lexical scope (delegated to
// the expander via Invoke), and finally an unknown name, which passes
// through untouched as a literal CSS function call (e.g. calc(),
// var(), translate()) the way the teacher's renderer left unrecognized
// @function names as literal text.
func (e *Evaluator) evalCall(fc *ast.FunctionCall) (ast.Expression, error) {
	evaluated, err := e.evalArguments(fc.Args)
	if err != nil {
		return nil, err
	}
	positional := positionalValues(evaluated)

	if fn, ok := e.Funcs.Lookup(fc.Name); ok {
		result, err := fn(positional)
		if err != nil {
			return nil, diag.Wrap(diag.KindEvaluation, fc.Position, err)
		}
		return result, nil
	}

	if def, ok := e.Env.GetFunction(fc.Name); ok {
		return e.invoke(def, evaluated, fc.Position)
	}

	return &ast.FunctionCall{Position: fc.Position, Name: fc.Name, Args: evaluated}, nil
}

func (e *Evaluator) evalCallSchema(fcs *ast.FunctionCallSchema) (ast.Expression, error) {
	nameVal, err := e.Eval(fcs.NameExpr)
	if err != nil {
		return nil, err
	}
	name := RenderUnquoted(nameVal)
	return e.evalCall(&ast.FunctionCall{Position: fcs.Position, Name: name, Args: fcs.Args})
}

func (e *Evaluator) invoke(def *ast.Definition, args *ast.Arguments, pos ast.Position) (ast.Expression, error) {
	if e.Invoke == nil {
		return nil, diag.New(diag.KindEvaluation, pos, "function %s has no executable body", def.Name)
	}
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > MaxCallDepth {
		return nil, diag.New(diag.KindEvaluation, pos, "maximum call stack size exceeded")
	}
	return e.Invoke(def, args)
}

// EvalArguments is the exported form of evalArguments: the expander's
// @include handling needs the same evaluation-plus-spread treatment of
// actual arguments that a function call gets.
func (e *Evaluator) EvalArguments(args *ast.Arguments) (*ast.Arguments, error) {
	return e.evalArguments(args)
}

// evalArguments evaluates every argument's value expression in place,
// expanding a trailing rest/splat list argument (e.g. my-func($args...))
// into one positional Argument per list item, plus one keyword Argument
// per matching Map entry when the spread value is a Map.
func (e *Evaluator) evalArguments(args *ast.Arguments) (*ast.Arguments, error) {
	if args == nil {
		return &ast.Arguments{}, nil
	}
	out := &ast.Arguments{Position: args.Position}
	for _, a := range args.Items {
		val, err := e.Eval(a.Value)
		if err != nil {
			return nil, err
		}
		if a.IsRest {
			spread, err := spreadArgument(val, a.Position)
			if err != nil {
				return nil, err
			}
			out.Items = append(out.Items, spread...)
			continue
		}
		out.Items = append(out.Items, &ast.Argument{Position: a.Position, Value: val, Name: a.Name, IsKeyword: a.IsKeyword})
	}
	return out, nil
}

func spreadArgument(val ast.Expression, pos ast.Position) ([]*ast.Argument, error) {
	switch v := val.(type) {
	case *ast.List:
		out := make([]*ast.Argument, len(v.Items))
		for i, item := range v.Items {
			out[i] = &ast.Argument{Position: pos, Value: item}
		}
		return out, nil
	case *ast.Map:
		out := make([]*ast.Argument, len(v.Entries))
		for i, entry := range v.Entries {
			out[i] = &ast.Argument{Position: pos, Value: entry.Value, Name: RenderUnquoted(entry.Key), IsKeyword: true}
		}
		return out, nil
	default:
		return []*ast.Argument{{Position: pos, Value: val}}, nil
	}
}

func positionalValues(args *ast.Arguments) []ast.Expression {
	out := make([]ast.Expression, 0, len(args.Items))
	for _, a := range args.Items {
		if a.Name == "" {
			out = append(out, a.Value)
		}
	}
	return out
}

// BindParameters matches actual arguments against formal parameters per
// the spec's positional-then-keyword-then-default contract: positional
// arguments fill left to right, named arguments fill by name (including
// positions already skipped), a trailing IsRest parameter collects
// whatever positional arguments remain into a List, and any parameter
// still unbound falls back to its default expression (evaluated in the
// new call frame, matching CSS's allowance for later defaults to
// reference earlier parameters) or errors if required.
//
// This is shared by the expander's mixin/function Invoke implementation,
// kept here because it depends only on the evaluator's Eval for default
// expressions.
func (e *Evaluator) BindParameters(params *ast.Parameters, args *ast.Arguments, bind func(name string, value ast.Expression)) error {
	if params == nil {
		return nil
	}
	bound := make(map[string]bool, len(params.Items))

	positional := make([]ast.Expression, 0, len(args.Items))
	named := map[string]ast.Expression{}
	for _, a := range args.Items {
		if a.Name != "" {
			named[a.Name] = a.Value
		} else {
			positional = append(positional, a.Value)
		}
	}

	posIdx := 0
	for _, p := range params.Items {
		if p.IsRest {
			rest := append([]ast.Expression{}, positional[posIdx:]...)
			bind(p.Name, &ast.List{Items: rest, Separator: ast.SepComma, IsArglist: true})
			bound[p.Name] = true
			posIdx = len(positional)
			continue
		}
		if v, ok := named[p.Name]; ok {
			bind(p.Name, v)
			bound[p.Name] = true
			continue
		}
		if posIdx < len(positional) {
			bind(p.Name, positional[posIdx])
			posIdx++
			bound[p.Name] = true
			continue
		}
		if p.Default != nil {
			v, err := e.Eval(p.Default)
			if err != nil {
				return err
			}
			bind(p.Name, v)
			bound[p.Name] = true
			continue
		}
		return diag.New(diag.KindEvaluation, params.Position, "missing argument for parameter $%s", p.Name)
	}
	if posIdx < len(positional) {
		return diag.New(diag.KindEvaluation, params.Position, "too many positional arguments")
	}
	for name := range named {
		if !paramExists(params, name) {
			return diag.New(diag.KindEvaluation, params.Position, "unknown keyword argument $%s", name)
		}
	}
	return nil
}

func paramExists(params *ast.Parameters, name string) bool {
	for _, p := range params.Items {
		if p.Name == name {
			return true
		}
	}
	return false
}
