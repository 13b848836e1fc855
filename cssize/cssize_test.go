package cssize_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/cssize"
)

func selectorFor(name string) *ast.SelectorList {
	return &ast.SelectorList{Items: []*ast.ComplexSelector{{
		Segments: []ast.ComplexSelectorSegment{{
			Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: name}}},
		}},
	}}}
}

func decl(prop, value string) *ast.Declaration {
	return &ast.Declaration{
		Property: &ast.StringConstant{Value: prop},
		Value:    &ast.StringConstant{Value: value},
	}
}

func TestFlattenHoistsNestedRuleset(t *testing.T) {
	inner := &ast.Ruleset{
		Selector: selectorFor("child"),
		Block:    &ast.Block{Children: []ast.Statement{decl("color", "red")}},
	}
	outer := &ast.Ruleset{
		Selector: selectorFor("parent"),
		Block:    &ast.Block{Children: []ast.Statement{decl("display", "block"), inner}},
	}

	out := cssize.Flatten(&ast.Block{Children: []ast.Statement{outer}})
	require.Len(t, out.Children, 2)

	first, ok := out.Children[0].(*ast.Ruleset)
	require.True(t, ok)
	require.Len(t, first.Block.Children, 1)
	require.Same(t, outer.Selector, first.Selector)

	second, ok := out.Children[1].(*ast.Ruleset)
	require.True(t, ok)
	require.Same(t, inner.Selector, second.Selector)
}

func TestFlattenBubblesMediaAboveRuleset(t *testing.T) {
	media := &ast.MediaRule{
		Queries: []ast.MediaQuery{{Type: "screen"}},
		Block:   &ast.Block{Children: []ast.Statement{decl("color", "blue")}},
	}
	outer := &ast.Ruleset{
		Selector: selectorFor("box"),
		Block:    &ast.Block{Children: []ast.Statement{decl("display", "block"), media}},
	}

	out := cssize.Flatten(&ast.Block{Children: []ast.Statement{outer}})
	require.Len(t, out.Children, 2)

	rule, ok := out.Children[0].(*ast.Ruleset)
	require.True(t, ok)
	require.Len(t, rule.Block.Children, 1)

	bubbled, ok := out.Children[1].(*ast.MediaRule)
	require.True(t, ok)
	require.Len(t, bubbled.Block.Children, 1)

	wrapped, ok := bubbled.Block.Children[0].(*ast.Ruleset)
	require.True(t, ok)
	require.Same(t, outer.Selector, wrapped.Selector)
	require.Len(t, wrapped.Block.Children, 1)
}

func TestFlattenDropsLeftoverExtendRule(t *testing.T) {
	outer := &ast.Ruleset{
		Selector: selectorFor("box"),
		Block: &ast.Block{Children: []ast.Statement{
			decl("color", "red"),
			&ast.ExtendRule{Selector: selectorFor("placeholder")},
		}},
	}

	out := cssize.Flatten(&ast.Block{Children: []ast.Statement{outer}})
	require.Len(t, out.Children, 1)
	rule := out.Children[0].(*ast.Ruleset)
	require.Len(t, rule.Block.Children, 1)
}

func TestFlattenMarksGroupEndOnLastBubbledStatement(t *testing.T) {
	media := &ast.MediaRule{
		Queries: []ast.MediaQuery{{Type: "screen"}},
		Block:   &ast.Block{Children: []ast.Statement{decl("color", "blue")}},
	}
	inner := &ast.Ruleset{
		Selector: selectorFor("child"),
		Block:    &ast.Block{Children: []ast.Statement{decl("color", "red"), media}},
	}
	outer := &ast.Ruleset{
		Selector: selectorFor("parent"),
		Block:    &ast.Block{Children: []ast.Statement{decl("display", "block"), inner}},
	}

	out := cssize.Flatten(&ast.Block{Children: []ast.Statement{outer}})
	require.Len(t, out.Children, 3)

	// The outer group and the hoisted inner ruleset are not the last thing
	// cssize produced from this source tree, so neither is group_end.
	outerGroup := out.Children[0].(*ast.Ruleset)
	require.False(t, outerGroup.GroupEnd)
	innerGroup := out.Children[1].(*ast.Ruleset)
	require.False(t, innerGroup.GroupEnd)

	// The bubbled @media is the last statement this source ruleset produced,
	// and it wasn't itself nested inside another ruleset when cssize found
	// it (a ruleset nested in a ruleset was, which is why innerGroup above
	// stays false even though it's the direct child of outer).
	bubbledMedia := out.Children[2].(*ast.MediaRule)
	require.True(t, bubbledMedia.GroupEnd)
}

func TestFlattenMarksGroupEndOnEachIndependentTopLevelRuleset(t *testing.T) {
	a := &ast.Ruleset{Selector: selectorFor("a"), Block: &ast.Block{Children: []ast.Statement{decl("x", "1")}}}
	b := &ast.Ruleset{Selector: selectorFor("b"), Block: &ast.Block{Children: []ast.Statement{decl("y", "2")}}}

	out := cssize.Flatten(&ast.Block{Children: []ast.Statement{a, b}})
	require.Len(t, out.Children, 2)
	require.True(t, out.Children[0].(*ast.Ruleset).GroupEnd)
	require.True(t, out.Children[1].(*ast.Ruleset).GroupEnd)
}

func TestFlattenPreservesTopLevelOrder(t *testing.T) {
	a := &ast.Ruleset{Selector: selectorFor("a"), Block: &ast.Block{Children: []ast.Statement{decl("x", "1")}}}
	b := &ast.Ruleset{Selector: selectorFor("b"), Block: &ast.Block{Children: []ast.Statement{decl("y", "2")}}}

	out := cssize.Flatten(&ast.Block{Children: []ast.Statement{a, b}})
	require.Len(t, out.Children, 2)
	require.Same(t, a.Selector, out.Children[0].(*ast.Ruleset).Selector)
	require.Same(t, b.Selector, out.Children[1].(*ast.Ruleset).Selector)
}
