// Package expander rewrites a parsed ast.Block into a flatter statement
// tree: control flow is executed away, mixins/includes and @content are
// inlined, imports are spliced in, and parent-selector ("&") references are
// resolved against an ancestor selector list. It generalizes the teacher's
// single recursive Render method (renderer/renderer.go), which interleaved
// expansion with text rendering in one pass, into a dedicated tree-rewrite
// stage: the output is still a statement tree (nested Rulesets, not flat
// CSS rules), leaving de-nesting and at-rule bubbling to the later cssize
// pass and text rendering to the emitter.
package expander

import (
	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
	"github.com/titpetric/stylesc/environment"
	"github.com/titpetric/stylesc/evaluator"
	"github.com/titpetric/stylesc/parser"
	"github.com/titpetric/stylesc/selector"
)

// contentFrame captures an @include call site's content block together with
// the lexical frame and selector context it was written in, so @content
// inside the mixin body evaluates as if it were inline at the call site.
type contentFrame struct {
	block  *ast.Block
	frame  *environment.Frame
	parent *ast.SelectorList
}

// Expander holds the mutable state threaded through one compile's tree
// rewrite: the shared Environment/Evaluator, the @content call stack, and a
// recursion guard for mixin includes (functions are guarded separately by
// evaluator.MaxCallDepth in Evaluator.invoke).
type Expander struct {
	Env  *environment.Environment
	Eval *evaluator.Evaluator

	contentStack []contentFrame
	depth        int
}

// New builds an Expander over env/ev and wires ev.Invoke so @function calls
// resolved by the evaluator execute their body here — the seam the
// evaluator package leaves open specifically to avoid an import cycle.
func New(env *environment.Environment, ev *evaluator.Evaluator) *Expander {
	ex := &Expander{Env: env, Eval: ev}
	ev.Invoke = ex.invokeFunction
	return ex
}

// Expand rewrites block's statement tree starting in root (no ancestor
// selector) context.
func (ex *Expander) Expand(block *ast.Block) (*ast.Block, error) {
	out, err := ex.expandBlock(block.Children, nil)
	if err != nil {
		return nil, err
	}
	return &ast.Block{Position: block.Position, Children: out, IsRoot: block.IsRoot}, nil
}

// expandBlock rewrites stmts under the given already-resolved ancestor
// selector list, flattening each statement's zero-or-more replacements into
// one list.
func (ex *Expander) expandBlock(stmts []ast.Statement, parent *ast.SelectorList) ([]ast.Statement, error) {
	var out []ast.Statement
	for _, stmt := range stmts {
		expanded, err := ex.expandStatement(stmt, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	return out, nil
}

func (ex *Expander) expandStatement(stmt ast.Statement, parent *ast.SelectorList) ([]ast.Statement, error) {
	switch s := stmt.(type) {
	case *ast.Ruleset:
		return ex.expandRuleset(s, parent)
	case *ast.Declaration:
		return ex.expandDeclarationPrefixed("", s, parent)
	case *ast.Assignment:
		return nil, ex.expandAssignment(s)
	case *ast.Definition:
		ex.defineDefinition(s)
		return nil, nil
	case *ast.MixinCall:
		return ex.expandMixinCall(s, parent)
	case *ast.Content:
		return ex.expandContent(s)
	case *ast.If:
		return ex.expandIf(s, parent)
	case *ast.For:
		return ex.expandFor(s, parent)
	case *ast.Each:
		return ex.expandEach(s, parent)
	case *ast.While:
		return ex.expandWhile(s, parent)
	case *ast.Return:
		val, err := ex.Eval.Eval(s.Value)
		if err != nil {
			return nil, err
		}
		return []ast.Statement{&ast.Return{Position: s.Position, Value: val}}, nil
	case *ast.Import:
		return ex.expandImport(s, parent)
	case *ast.MediaRule:
		return ex.expandMedia(s, parent)
	case *ast.SupportsRule:
		return ex.expandSupports(s, parent)
	case *ast.AtRootRule:
		return ex.expandAtRoot(s, parent)
	case *ast.Directive:
		return ex.expandDirective(s, parent)
	case *ast.KeyframeRule:
		return ex.expandKeyframes(s)
	case *ast.ExtendRule:
		return ex.expandExtend(s)
	case *ast.Warning:
		return nil, ex.emitWarning(s)
	case *ast.Debug:
		return nil, ex.emitDebug(s)
	case *ast.ErrorStmt:
		return nil, ex.emitError(s)
	case *ast.Comment:
		return []ast.Statement{s}, nil
	default:
		return []ast.Statement{stmt}, nil
	}
}

// expandRuleset resolves the ruleset's own selector (interpolation, then
// "&" substitution against parent) and recurses into its body under the
// resulting selector as the new ancestor context.
func (ex *Expander) expandRuleset(r *ast.Ruleset, parent *ast.SelectorList) ([]ast.Statement, error) {
	resolved, err := ex.resolveSelector(r.Selector)
	if err != nil {
		return nil, err
	}
	final := selector.ResolveList(parent, resolved)
	body, err := ex.expandBlock(r.Block.Children, final)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{&ast.Ruleset{Position: r.Position, Selector: final, Block: &ast.Block{Children: body}}}, nil
}

// resolveSelector turns a selector expression (already-structured, or an
// interpolated schema) into a concrete SelectorList, evaluating and
// re-parsing schemas as needed.
func (ex *Expander) resolveSelector(expr ast.Expression) (*ast.SelectorList, error) {
	switch v := expr.(type) {
	case *ast.SelectorList:
		return v, nil
	case *ast.SelectorSchema:
		val, err := ex.Eval.Eval(v.Contents)
		if err != nil {
			return nil, err
		}
		text := evaluator.RenderUnquoted(val)
		list, err := parser.ParseSelectorList(v.Position.Path, text)
		if err != nil {
			return nil, diag.Wrap(diag.KindSyntax, v.Position, err)
		}
		return list, nil
	default:
		return nil, diag.New(diag.KindEvaluation, expr.Pos(), "invalid selector")
	}
}

// expandDeclarationPrefixed evaluates a declaration's property/value and, for
// a namespaced declaration (font: { family: ...; size: ...; }), recurses
// into its nested block concatenating "prefix-child" property names — the
// original's sole namespaced-property feature, absent from the teacher
// (plain CSS/LESS has no such nesting) and supplemented here per spec §5.
func (ex *Expander) expandDeclarationPrefixed(prefix string, d *ast.Declaration, parent *ast.SelectorList) ([]ast.Statement, error) {
	name, err := ex.evalPropertyName(d.Property)
	if err != nil {
		return nil, err
	}
	full := name
	if prefix != "" {
		full = prefix + "-" + name
	}

	var out []ast.Statement
	if d.Value != nil {
		if _, isNull := d.Value.(*ast.Null); !isNull {
			val, err := ex.Eval.EvalDelayed(d.Value)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.Declaration{
				Position:         d.Position,
				Property:         &ast.StringConstant{Value: full},
				Value:            val,
				IsImportant:      d.IsImportant,
				IsCustomProperty: d.IsCustomProperty,
			})
		}
	}
	if d.Block != nil {
		for _, child := range d.Block.Children {
			if nd, ok := child.(*ast.Declaration); ok {
				nested, err := ex.expandDeclarationPrefixed(full, nd, parent)
				if err != nil {
					return nil, err
				}
				out = append(out, nested...)
				continue
			}
			expanded, err := ex.expandStatement(child, parent)
			if err != nil {
				return nil, err
			}
			out = append(out, expanded...)
		}
	}
	return out, nil
}

func (ex *Expander) evalPropertyName(expr ast.Expression) (string, error) {
	if sc, ok := expr.(*ast.StringConstant); ok {
		return sc.Value, nil
	}
	val, err := ex.Eval.Eval(expr)
	if err != nil {
		return "", err
	}
	return evaluator.RenderUnquoted(val), nil
}

func (ex *Expander) expandAssignment(a *ast.Assignment) error {
	val, err := ex.Eval.Eval(a.Value)
	if err != nil {
		return err
	}
	switch {
	case a.IsGuarded:
		ex.Env.SetDefault(a.Name, val, a.IsGlobal)
	case a.IsGlobal:
		ex.Env.SetGlobal(a.Name, val)
	default:
		ex.Env.SetLexical(a.Name, val)
	}
	return nil
}

// defineDefinition registers a mixin/function and snapshots the defining
// lexical frame, per the lexical-scope closure contract (ast.Definition's
// EnvironmentSnapshot doc comment).
func (ex *Expander) defineDefinition(d *ast.Definition) {
	d.EnvironmentSnapshot = ex.Env.Current()
	if d.Kind == ast.KindMixin {
		ex.Env.DefineMixin(d.Name, d)
	} else {
		ex.Env.DefineFunction(d.Name, d)
	}
}

func (ex *Expander) expandImport(imp *ast.Import, parent *ast.SelectorList) ([]ast.Statement, error) {
	var out []ast.Statement
	for _, stub := range imp.Stubs {
		expanded, err := ex.expandBlock(stub.Stylesheet.Children, parent)
		if err != nil {
			return nil, err
		}
		out = append(out, expanded...)
	}
	if len(imp.Stubs) == 0 {
		for _, u := range imp.Urls {
			val, err := ex.Eval.Eval(u)
			if err != nil {
				return nil, err
			}
			out = append(out, &ast.Directive{Position: imp.Position, Keyword: "import", Value: val})
		}
	}
	return out, nil
}

func (ex *Expander) emitWarning(s *ast.Warning) error {
	val, err := ex.Eval.Eval(s.Value)
	if err != nil {
		return err
	}
	ex.Eval.Sink.Warn(s.Position, evaluator.RenderUnquoted(val))
	return nil
}

func (ex *Expander) emitDebug(s *ast.Debug) error {
	val, err := ex.Eval.Eval(s.Value)
	if err != nil {
		return err
	}
	ex.Eval.Sink.Debug(s.Position, evaluator.RenderUnquoted(val))
	return nil
}

func (ex *Expander) emitError(s *ast.ErrorStmt) error {
	val, err := ex.Eval.Eval(s.Value)
	if err != nil {
		return err
	}
	return diag.New(diag.KindEvaluation, s.Position, "%s", evaluator.RenderUnquoted(val))
}
