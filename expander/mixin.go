package expander

import (
	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
	"github.com/titpetric/stylesc/environment"
	"github.com/titpetric/stylesc/evaluator"
)

// expandMixinCall inlines an @include: binds actual arguments against the
// mixin's formal parameters inside its lexically captured frame (not the
// caller's dynamic one), then expands its body under the caller's selector
// context. A content block, if supplied, is remembered on the content stack
// in the caller's own frame/selector context so @content inside the mixin
// body evaluates as if written at the call site.
func (ex *Expander) expandMixinCall(call *ast.MixinCall, parent *ast.SelectorList) ([]ast.Statement, error) {
	def, ok := ex.Env.GetMixin(call.Name)
	if !ok {
		return nil, diag.New(diag.KindEvaluation, call.Position, "undefined mixin: %s", call.Name)
	}

	ex.depth++
	if ex.depth > evaluator.MaxCallDepth {
		ex.depth--
		return nil, diag.New(diag.KindEvaluation, call.Position, "maximum mixin include depth exceeded")
	}
	defer func() { ex.depth-- }()

	args, err := ex.Eval.EvalArguments(call.Args)
	if err != nil {
		return nil, err
	}

	if call.ContentBlock != nil {
		ex.contentStack = append(ex.contentStack, contentFrame{
			block:  call.ContentBlock,
			frame:  ex.Env.Current(),
			parent: parent,
		})
		defer func() { ex.contentStack = ex.contentStack[:len(ex.contentStack)-1] }()
	}

	mixinFrame, _ := def.EnvironmentSnapshot.(*environment.Frame)
	restore := ex.Env.EnterFrame(mixinFrame)
	defer restore()
	ex.Env.Push()
	defer ex.Env.Pop()

	if err := ex.Eval.BindParameters(def.Params, args, func(name string, v ast.Expression) {
		ex.Env.SetLocal(name, v)
	}); err != nil {
		return nil, err
	}

	out, err := ex.expandBlock(def.Block.Children, parent)
	if err != nil {
		return nil, err
	}
	if call.IsImportant {
		markImportant(out)
	}
	return out, nil
}

// markImportant forces every declaration reachable from stmts to carry
// !important, implementing `.mixin() !important;` — a LESS feature the
// teacher's own dialect supports (lessgo is a LESS preprocessor), carried
// over since spec.md's MixinCall node already names IsImportant.
func markImportant(stmts []ast.Statement) {
	for _, s := range stmts {
		switch v := s.(type) {
		case *ast.Declaration:
			v.IsImportant = true
		case *ast.Ruleset:
			markImportant(v.Block.Children)
		case *ast.MediaRule:
			markImportant(v.Block.Children)
		case *ast.SupportsRule:
			markImportant(v.Block.Children)
		case *ast.AtRootRule:
			markImportant(v.Block.Children)
		case *ast.KeyframeRule:
			markImportant(v.Block.Children)
		case *ast.Directive:
			if v.Block != nil {
				markImportant(v.Block.Children)
			}
		}
	}
}

// expandContent substitutes the top of the content stack: the caller's
// content block, evaluated back in the caller's own lexical frame and
// selector context.
func (ex *Expander) expandContent(s *ast.Content) ([]ast.Statement, error) {
	if len(ex.contentStack) == 0 {
		return nil, diag.New(diag.KindEvaluation, s.Position, "@content used in a mixin that was not passed a content block")
	}
	top := ex.contentStack[len(ex.contentStack)-1]
	restore := ex.Env.EnterFrame(top.frame)
	defer restore()
	ex.Env.Push()
	defer ex.Env.Pop()
	return ex.expandBlock(top.block.Children, top.parent)
}

// invokeFunction is wired as evaluator.Evaluator.Invoke: it executes a
// function body by running it through the same statement expansion as
// everything else (so @if/@for/@each/@while and $-assignments inside a
// function body share one implementation with ruleset bodies) and then
// looks for the first *ast.Return produced, which expandStatement lowers
// from an ast.Return node by evaluating its value eagerly.
func (ex *Expander) invokeFunction(def *ast.Definition, args *ast.Arguments) (ast.Expression, error) {
	ex.depth++
	if ex.depth > evaluator.MaxCallDepth {
		ex.depth--
		return nil, diag.New(diag.KindEvaluation, def.Position, "maximum call stack size exceeded")
	}
	defer func() { ex.depth-- }()

	fnFrame, _ := def.EnvironmentSnapshot.(*environment.Frame)
	restore := ex.Env.EnterFrame(fnFrame)
	defer restore()
	ex.Env.Push()
	defer ex.Env.Pop()

	if err := ex.Eval.BindParameters(def.Params, args, func(name string, v ast.Expression) {
		ex.Env.SetLocal(name, v)
	}); err != nil {
		return nil, err
	}

	body, err := ex.expandBlock(def.Block.Children, nil)
	if err != nil {
		return nil, err
	}
	for _, st := range body {
		if r, ok := st.(*ast.Return); ok {
			return r.Value, nil
		}
	}
	return nil, diag.New(diag.KindEvaluation, def.Position, "function %s finished without @return", def.Name)
}
