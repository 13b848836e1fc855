// Package cssize de-nests an expanded statement tree into the flat,
// CSS-shaped form an emitter can walk directly: every nested ruleset is
// hoisted to a top-level sibling, and at-rules (media/supports/keyframes/
// directives) found inside a ruleset's body bubble up above it instead of
// staying nested.
//
// This only works because the expander has already resolved every
// ast.Ruleset's Selector relative to the page root rather than to its
// lexical parent (see expander.expandRuleset's final := selector.ResolveList
// threading): by the time a tree reaches this package, no node anywhere in
// it still needs "&" substitution, so flattening is pure tree surgery with
// no selector algebra of its own. This generalizes the teacher's single
// recursive Render walk (renderer/renderer.go), which interleaved the
// equivalent de-nesting with text output; here it is pulled out as its own
// pass so the emitter only ever sees a flat top-level list.
package cssize

import (
	"github.com/titpetric/stylesc/ast"
)

// Flatten returns a new Block whose Children contains no ast.Ruleset nested
// inside another ast.Ruleset's Block, and no at-rule nested inside a
// ruleset's Block either — every such node has been hoisted to top level,
// in source order.
func Flatten(block *ast.Block) *ast.Block {
	return &ast.Block{Position: block.Position, Children: flattenStatements(block.Children), IsRoot: block.IsRoot}
}

func flattenStatements(stmts []ast.Statement) []ast.Statement {
	var out []ast.Statement
	for _, s := range stmts {
		out = append(out, flattenStatement(s)...)
	}
	return out
}

func flattenStatement(s ast.Statement) []ast.Statement {
	switch v := s.(type) {
	case *ast.Ruleset:
		return flattenRuleset(v, false)
	case *ast.MediaRule:
		return []ast.Statement{&ast.MediaRule{Position: v.Position, Queries: v.Queries, Block: &ast.Block{Children: flattenStatements(v.Block.Children)}}}
	case *ast.SupportsRule:
		return []ast.Statement{&ast.SupportsRule{Position: v.Position, Condition: v.Condition, Block: &ast.Block{Children: flattenStatements(v.Block.Children)}}}
	case *ast.KeyframeRule:
		return []ast.Statement{&ast.KeyframeRule{Position: v.Position, Name: v.Name, Block: &ast.Block{Children: flattenStatements(v.Block.Children)}}}
	case *ast.Directive:
		if v.Block == nil {
			return []ast.Statement{v}
		}
		return []ast.Statement{&ast.Directive{Position: v.Position, Keyword: v.Keyword, Selector: v.Selector, Value: v.Value, Block: &ast.Block{Children: flattenStatements(v.Block.Children)}}}
	default:
		return []ast.Statement{s}
	}
}

// flattenRuleset splits a ruleset's body into its own declaration group
// (the ruleset re-emitted with only its direct declarations/comments) plus
// every nested ruleset or at-rule bubbled out as sibling top-level
// statements that follow it, preserving source order. A ruleset with no
// direct declarations still gets re-emitted (an empty rule is a no-op for
// the emitter, which skips bodies with no declarations, but keeping the
// node here avoids asymmetric special-casing of the group_end split).
//
// parentIsRuleset is true only when r was itself found nested directly
// inside another ruleset's body (the recursive *ast.Ruleset case below):
// in that case the outer call already owns deciding where this ruleset's
// group ends, so this call must not mark group_end itself. Every other
// caller (top-level, or bubbled out from under a media/supports/directive)
// passes false, and the last bubblable statement this call produces is
// marked group_end so the emitter can insert a separator after it.
func flattenRuleset(r *ast.Ruleset, parentIsRuleset bool) []ast.Statement {
	var group []ast.Statement
	var bubbled []ast.Statement
	for _, child := range r.Block.Children {
		switch c := child.(type) {
		case *ast.Declaration, *ast.Comment:
			group = append(group, child)
		case *ast.Ruleset:
			bubbled = append(bubbled, flattenRuleset(c, true)...)
		case *ast.MediaRule:
			bubbled = append(bubbled, bubbleMedia(c, r.Selector))
		case *ast.SupportsRule:
			bubbled = append(bubbled, bubbleSupports(c, r.Selector))
		case *ast.KeyframeRule, *ast.Directive:
			bubbled = append(bubbled, flattenStatement(child)...)
		case *ast.ExtendRule:
			// consumed by the extend pass; a leftover here has nothing
			// left to unify against and is dropped.
		default:
			group = append(group, child)
		}
	}
	out := []ast.Statement{&ast.Ruleset{Position: r.Position, Selector: r.Selector, Block: &ast.Block{Children: group}}}
	out = append(out, bubbled...)
	if !parentIsRuleset && len(out) > 0 {
		markGroupEnd(out[len(out)-1])
	}
	return out
}

// markGroupEnd sets the group_end flag (§4.6) on whichever bubblable
// statement kind s turns out to be; anything else is left untouched.
func markGroupEnd(s ast.Statement) {
	switch v := s.(type) {
	case *ast.Ruleset:
		v.GroupEnd = true
	case *ast.MediaRule:
		v.GroupEnd = true
	case *ast.SupportsRule:
		v.GroupEnd = true
	case *ast.Directive:
		v.GroupEnd = true
	}
}

// bubbleMedia re-homes an @media block found nested inside a ruleset's
// body: its own bare declarations (ones not already inside a further
// nested ruleset) are re-wrapped under the enclosing ruleset's selector,
// so they keep applying to the right element once the @media block is no
// longer physically inside that ruleset.
func bubbleMedia(c *ast.MediaRule, selector ast.Expression) ast.Statement {
	return &ast.MediaRule{Position: c.Position, Queries: c.Queries, Block: &ast.Block{Children: wrapBareDeclarations(c.Block.Children, selector, c.Position)}}
}

func bubbleSupports(c *ast.SupportsRule, selector ast.Expression) ast.Statement {
	return &ast.SupportsRule{Position: c.Position, Condition: c.Condition, Block: &ast.Block{Children: wrapBareDeclarations(c.Block.Children, selector, c.Position)}}
}

// wrapBareDeclarations runs consecutive declarations/comments found
// directly inside an at-rule body through a synthetic ruleset using sel,
// flushing that run whenever a nested ruleset or further at-rule
// interrupts it, so relative order is preserved.
func wrapBareDeclarations(children []ast.Statement, sel ast.Expression, pos ast.Position) []ast.Statement {
	var out []ast.Statement
	var pending []ast.Statement
	flush := func() {
		if len(pending) == 0 {
			return
		}
		out = append(out, &ast.Ruleset{Position: pos, Selector: sel, Block: &ast.Block{Children: pending}})
		pending = nil
	}
	for _, child := range children {
		switch c := child.(type) {
		case *ast.Declaration, *ast.Comment:
			pending = append(pending, child)
		case *ast.Ruleset:
			flush()
			out = append(out, flattenRuleset(c, false)...)
		case *ast.MediaRule:
			flush()
			out = append(out, bubbleMedia(c, sel))
		case *ast.SupportsRule:
			flush()
			out = append(out, bubbleSupports(c, sel))
		default:
			flush()
			out = append(out, flattenStatement(child)...)
		}
	}
	flush()
	return out
}
