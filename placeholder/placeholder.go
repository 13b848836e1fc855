// Package placeholder implements the final selector cleanup pass:
// placeholder selectors (%name) exist only as @extend targets and must
// never reach emitted CSS. Per spec §4.7, any complex selector that still
// contains a PlaceholderSelector after extend has run is dropped in full —
// not stripped down to its remaining simple selectors — and, if none of a
// ruleset's selector list survives, the whole ruleset is dropped with it.
//
// Grounded on the teacher's renderer, which only ever walked resolved,
// already-real selectors (lessgo has no placeholder concept of its own);
// the drop shape instead follows how extend.Resolve leaves placeholder
// compounds in the tree — merged away into real selectors where extended
// (those no longer carry a placeholder and pass through untouched), left
// in place (and so still placeholder-bearing) where never extended.
package placeholder

import "github.com/titpetric/stylesc/ast"

// Remove returns a copy of block with every placeholder selector scrubbed.
func Remove(block *ast.Block) *ast.Block {
	return &ast.Block{Position: block.Position, Children: removeStatements(block.Children), IsRoot: block.IsRoot}
}

func removeStatements(stmts []ast.Statement) []ast.Statement {
	var out []ast.Statement
	for _, s := range stmts {
		if r := removeStatement(s); r != nil {
			out = append(out, r)
		}
	}
	return out
}

func removeStatement(s ast.Statement) ast.Statement {
	switch v := s.(type) {
	case *ast.Ruleset:
		sel, ok := v.Selector.(*ast.SelectorList)
		if !ok {
			return v
		}
		items := filterSelectorItems(sel.Items)
		if len(items) == 0 {
			return nil
		}
		return &ast.Ruleset{
			Position: v.Position,
			Selector: &ast.SelectorList{Position: sel.Position, Items: items},
			Block:    &ast.Block{Children: removeStatements(v.Block.Children)},
			GroupEnd: v.GroupEnd,
		}
	case *ast.MediaRule:
		body := removeStatements(v.Block.Children)
		if len(body) == 0 {
			return nil
		}
		return &ast.MediaRule{Position: v.Position, Queries: v.Queries, Block: &ast.Block{Children: body}, GroupEnd: v.GroupEnd}
	case *ast.SupportsRule:
		body := removeStatements(v.Block.Children)
		if len(body) == 0 {
			return nil
		}
		return &ast.SupportsRule{Position: v.Position, Condition: v.Condition, Block: &ast.Block{Children: body}, GroupEnd: v.GroupEnd}
	case *ast.Directive:
		if v.Block == nil {
			return v
		}
		body := removeStatements(v.Block.Children)
		if len(body) == 0 {
			return nil
		}
		return &ast.Directive{Position: v.Position, Keyword: v.Keyword, Selector: v.Selector, Value: v.Value, Block: &ast.Block{Children: body}, GroupEnd: v.GroupEnd}
	case *ast.KeyframeRule:
		return &ast.KeyframeRule{Position: v.Position, Name: v.Name, Block: &ast.Block{Children: removeStatements(v.Block.Children)}}
	default:
		return s
	}
}

// filterSelectorItems drops every complex selector that still carries a
// placeholder anywhere along its chain. A chain like ".a %ph" can never
// match a real element once %ph is in play, so the whole selector goes,
// rather than degrading it to ".a".
func filterSelectorItems(items []*ast.ComplexSelector) []*ast.ComplexSelector {
	var out []*ast.ComplexSelector
	for _, c := range items {
		if !c.HasPlaceholder() {
			out = append(out, c)
		}
	}
	return out
}
