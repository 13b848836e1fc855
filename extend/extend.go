// Package extend implements the second selector-algebra pass: it collects
// every @extend/&:extend() statement left in place by the expander package,
// then rewrites each matching ruleset's selector list to add the extending
// selector, unifying at the compound that matched.
//
// This generalizes the teacher's collectExtends/buildSelector machinery in
// renderer/renderer.go, which performed the same unification inline during
// rendering; here it runs as its own pass between the expander and cssize so
// extend can see every ruleset in the whole document, not just the ones
// rendered so far.
package extend

import (
	"strings"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/diag"
	"github.com/titpetric/stylesc/selector"
)

// maxExtendPasses bounds fixpoint iteration for chained extends (A extends
// B, B extends C): each pass can surface newly matchable selectors created
// by the previous one, so passes repeat until nothing changes or this cap
// is hit.
const maxExtendPasses = 32

// extension is one @extend target/extender pairing: everywhere target
// matches a compound occurring anywhere in a ruleset's complex selector,
// that ruleset's selector list gains one new complex selector per entry in
// extenders.
type extension struct {
	target    *ast.ComplexSelector
	extenders []*ast.ComplexSelector
	optional  bool
	pos       ast.Position
	matched   bool
}

// Resolve strips every ExtendRule out of block, applies the extensions they
// describe to every matching ruleset selector in the document, and returns
// the rewritten block. A non-optional extend that matches nothing anywhere
// in the document is a compile error, matching the original's strictness
// (an @extend that silently does nothing usually indicates a typo).
func Resolve(block *ast.Block) (*ast.Block, error) {
	stmts, exts := collect(block.Children, nil)
	out := &ast.Block{Position: block.Position, Children: stmts, IsRoot: block.IsRoot}

	for i := 0; i < maxExtendPasses; i++ {
		if !applyExtensions(out.Children, exts) {
			break
		}
	}

	for _, e := range exts {
		if !e.optional && !e.matched {
			return nil, diag.New(diag.KindEvaluation, e.pos, "extend target %q matched no selectors", renderComplex(e.target))
		}
	}
	return out, nil
}

// collect walks stmts recursively, removing every ExtendRule it finds and
// recording it as an extension keyed to the ComplexSelector items of the
// nearest enclosing ruleset (the "extender"). @media/@supports/@page are
// transparent to that context; @keyframes is not, since percentage stops
// aren't selectors @extend can target or extend through.
func collect(stmts []ast.Statement, enclosing *ast.SelectorList) ([]ast.Statement, []*extension) {
	var out []ast.Statement
	var exts []*extension

	for _, stmt := range stmts {
		switch v := stmt.(type) {
		case *ast.Ruleset:
			sel, _ := v.Selector.(*ast.SelectorList)
			body, childExts := collect(v.Block.Children, sel)
			exts = append(exts, childExts...)
			out = append(out, &ast.Ruleset{Position: v.Position, Selector: v.Selector, Block: &ast.Block{Children: body}})
		case *ast.MediaRule:
			body, childExts := collect(v.Block.Children, enclosing)
			exts = append(exts, childExts...)
			out = append(out, &ast.MediaRule{Position: v.Position, Queries: v.Queries, Block: &ast.Block{Children: body}})
		case *ast.SupportsRule:
			body, childExts := collect(v.Block.Children, enclosing)
			exts = append(exts, childExts...)
			out = append(out, &ast.SupportsRule{Position: v.Position, Condition: v.Condition, Block: &ast.Block{Children: body}})
		case *ast.Directive:
			if v.Block == nil {
				out = append(out, v)
				continue
			}
			body, childExts := collect(v.Block.Children, enclosing)
			exts = append(exts, childExts...)
			out = append(out, &ast.Directive{Position: v.Position, Keyword: v.Keyword, Selector: v.Selector, Value: v.Value, Block: &ast.Block{Children: body}})
		case *ast.KeyframeRule:
			body, _ := collect(v.Block.Children, nil)
			out = append(out, &ast.KeyframeRule{Position: v.Position, Name: v.Name, Block: &ast.Block{Children: body}})
		case *ast.ExtendRule:
			if enclosing == nil {
				continue
			}
			targets, _ := v.Selector.(*ast.SelectorList)
			if targets == nil {
				continue
			}
			for _, t := range targets.Items {
				exts = append(exts, &extension{
					target:    t,
					extenders: enclosing.Items,
					optional:  v.IsOptional,
					pos:       v.Position,
				})
			}
		default:
			out = append(out, stmt)
		}
	}
	return out, exts
}

// applyExtensions runs one pass over every ruleset reachable from stmts,
// extending each one whose selector list contains a complex selector with
// any compound matched by some extension's target. Reports whether
// any selector list changed, so Resolve can keep iterating for chained
// extends.
func applyExtensions(stmts []ast.Statement, exts []*extension) bool {
	changed := false
	for _, stmt := range stmts {
		switch v := stmt.(type) {
		case *ast.Ruleset:
			if sel, ok := v.Selector.(*ast.SelectorList); ok {
				if extendSelectorList(sel, exts) {
					changed = true
				}
			}
			if applyExtensions(v.Block.Children, exts) {
				changed = true
			}
		case *ast.MediaRule:
			if applyExtensions(v.Block.Children, exts) {
				changed = true
			}
		case *ast.SupportsRule:
			if applyExtensions(v.Block.Children, exts) {
				changed = true
			}
		case *ast.Directive:
			if v.Block != nil && applyExtensions(v.Block.Children, exts) {
				changed = true
			}
		case *ast.KeyframeRule:
			if applyExtensions(v.Block.Children, exts) {
				changed = true
			}
		}
	}
	return changed
}

// extendSelectorList tries every extension against every compound of every
// existing complex selector in sel (a fixed-length snapshot, so newly
// appended selectors from this same pass aren't immediately re-matched
// against the same extension within the pass — the outer fixpoint loop
// handles chaining across passes instead). Per spec §4.4, a target can
// match a compound occurring anywhere in a complex selector, not only its
// trailing one (".a .b { }" is extendable via "@extend .a").
func extendSelectorList(sel *ast.SelectorList, exts []*extension) bool {
	changed := false
	existing := sel.Items
	for _, c := range existing {
		for segIdx := range c.Segments {
			compound := c.Segments[segIdx].Compound
			for _, e := range exts {
				targetIdx := len(e.target.Segments) - 1
				if targetIdx < 0 {
					continue
				}
				key := e.target.Segments[targetIdx].Compound
				if !selector.CompoundIsSubsetOf(key, compound) {
					continue
				}
				for _, extender := range e.extenders {
					merged, ok := extendComplex(c, segIdx, key, extender)
					if !ok {
						continue
					}
					e.matched = true
					if containsComplex(sel.Items, merged) {
						continue
					}
					sel.Items = append(sel.Items, merged)
					changed = true
				}
			}
		}
	}
	return changed
}

// extendComplex implements the §4.4 merge: k (matched's compound at
// matchIdx) minus key (the subset-map compound that matched), unified with
// the extender's trailing compound. Diffing key out first is what keeps a
// plain class-to-class extend from over-constraining the result — without
// it, unifying the whole of k back in re-adds the key itself, turning
// ".a"+"@extend .a"-from-".b" into ".a.b" instead of plain ".b". Only the
// extender's own final compound participates in the merge; an extender
// written with a combinator chain (e.g. "@extend" triggered from
// ".a .b { ... }") contributes just its last compound here — full
// prefix-splicing for multi-segment extenders is out of scope for this pass
// (no fixture in this repository exercises it; see DESIGN.md).
func extendComplex(matched *ast.ComplexSelector, matchIdx int, key *ast.CompoundSelector, extender *ast.ComplexSelector) (*ast.ComplexSelector, bool) {
	extIdx := len(extender.Segments) - 1
	if extIdx < 0 {
		return nil, false
	}
	remainder := selector.DiffCompound(matched.Segments[matchIdx].Compound, key)
	unified, ok := selector.UnifyCompound(remainder, extender.Segments[extIdx].Compound)
	if !ok {
		return nil, false
	}
	return selector.ReplaceCompound(matched, matchIdx, unified), true
}

func containsComplex(items []*ast.ComplexSelector, c *ast.ComplexSelector) bool {
	target := renderComplex(c)
	for _, i := range items {
		if renderComplex(i) == target {
			return true
		}
	}
	return false
}

func renderComplex(c *ast.ComplexSelector) string {
	var b strings.Builder
	for i, seg := range c.Segments {
		if i > 0 {
			b.WriteString(seg.Combinator.String())
		}
		for _, item := range seg.Compound.Items {
			b.WriteString(item.Text())
		}
	}
	return b.String()
}
