package expander

import (
	"github.com/titpetric/stylesc/ast"
)

func (ex *Expander) expandMedia(s *ast.MediaRule, parent *ast.SelectorList) ([]ast.Statement, error) {
	queries, err := ex.evalMediaQueries(s.Queries)
	if err != nil {
		return nil, err
	}
	body, err := ex.expandBlock(s.Block.Children, parent)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{&ast.MediaRule{Position: s.Position, Queries: queries, Block: &ast.Block{Children: body}}}, nil
}

func (ex *Expander) evalMediaQueries(qs []ast.MediaQuery) ([]ast.MediaQuery, error) {
	out := make([]ast.MediaQuery, len(qs))
	for i, q := range qs {
		nq := ast.MediaQuery{Modifier: q.Modifier, Type: q.Type}
		for _, f := range q.Features {
			feature := ast.MediaFeature{Name: f.Name}
			if f.Value != nil {
				v, err := ex.Eval.Eval(f.Value)
				if err != nil {
					return nil, err
				}
				feature.Value = v
			}
			nq.Features = append(nq.Features, feature)
		}
		out[i] = nq
	}
	return out, nil
}

// @supports feature tests are plain text per ast.SupportsCondition; nothing
// in them references variables, so the condition tree passes through
// unevaluated.
func (ex *Expander) expandSupports(s *ast.SupportsRule, parent *ast.SelectorList) ([]ast.Statement, error) {
	body, err := ex.expandBlock(s.Block.Children, parent)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{&ast.SupportsRule{Position: s.Position, Condition: s.Condition, Block: &ast.Block{Children: body}}}, nil
}

// expandAtRoot implements the selector part of @at-root's context rules:
// the default (no query), `without` naming "rule" or "all", and `with`
// naming neither of them drop the ancestor selector for the nested block.
// The "media" and "supports" tags have no further effect here, since the
// expander doesn't track an enclosing at-rule stack: the block stays inside
// any @media/@supports around it.
func (ex *Expander) expandAtRoot(s *ast.AtRootRule, parent *ast.SelectorList) ([]ast.Statement, error) {
	next := parent
	dropsRule := true
	if s.Query != nil {
		_, hasRule := s.Query.Tags["rule"]
		if _, hasAll := s.Query.Tags["all"]; hasAll {
			hasRule = true
		}
		if s.Query.Exclude {
			dropsRule = hasRule
		} else {
			dropsRule = !hasRule
		}
	}
	if dropsRule {
		next = nil
	}
	return ex.expandBlock(s.Block.Children, next)
}

func (ex *Expander) expandDirective(s *ast.Directive, parent *ast.SelectorList) ([]ast.Statement, error) {
	out := &ast.Directive{Position: s.Position, Keyword: s.Keyword}
	if s.Selector != nil {
		v, err := ex.Eval.Eval(s.Selector)
		if err != nil {
			return nil, err
		}
		out.Selector = v
	}
	if s.Value != nil {
		v, err := ex.Eval.Eval(s.Value)
		if err != nil {
			return nil, err
		}
		out.Value = v
	}
	if s.Block != nil {
		body, err := ex.expandBlock(s.Block.Children, parent)
		if err != nil {
			return nil, err
		}
		out.Block = &ast.Block{Children: body}
	}
	return []ast.Statement{out}, nil
}

// expandKeyframes expands a keyframe block's stop rulesets ("0%", "from",
// "to") with no ancestor selector: a percentage stop is not a CSS selector
// that nests under a surrounding rule, so & has no meaning here and
// selector.ResolveList's nil-parent passthrough already does the right
// thing.
func (ex *Expander) expandKeyframes(s *ast.KeyframeRule) ([]ast.Statement, error) {
	body, err := ex.expandBlock(s.Block.Children, nil)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{&ast.KeyframeRule{Position: s.Position, Name: s.Name, Block: &ast.Block{Children: body}}}, nil
}

// expandExtend resolves the @extend target's own interpolation (if any)
// and leaves the ExtendRule in place inside its enclosing ruleset's body,
// to be consumed by the extend package's later pass.
func (ex *Expander) expandExtend(s *ast.ExtendRule) ([]ast.Statement, error) {
	resolved, err := ex.resolveSelector(s.Selector)
	if err != nil {
		return nil, err
	}
	return []ast.Statement{&ast.ExtendRule{Position: s.Position, Selector: resolved, IsOptional: s.IsOptional}}, nil
}
