package extend_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/extend"
)

func complexFor(items ...ast.SimpleSelector) *ast.ComplexSelector {
	return &ast.ComplexSelector{Segments: []ast.ComplexSelectorSegment{{
		Compound: &ast.CompoundSelector{Items: items},
	}}}
}

func listFor(items ...ast.SimpleSelector) *ast.SelectorList {
	return &ast.SelectorList{Items: []*ast.ComplexSelector{complexFor(items...)}}
}

func TestResolveExtendsMatchingRuleset(t *testing.T) {
	target := &ast.Ruleset{
		Selector: listFor(&ast.PlaceholderSelector{Name: "ph"}),
		Block: &ast.Block{Children: []ast.Statement{
			&ast.Declaration{Property: &ast.StringConstant{Value: "color"}, Value: &ast.StringConstant{Value: "red"}},
		}},
	}
	extender := &ast.Ruleset{
		Selector: listFor(&ast.ClassSelector{Name: "error"}),
		Block: &ast.Block{Children: []ast.Statement{
			&ast.ExtendRule{Selector: listFor(&ast.PlaceholderSelector{Name: "ph"})},
		}},
	}

	out, err := extend.Resolve(&ast.Block{Children: []ast.Statement{target, extender}})
	require.NoError(t, err)
	require.Len(t, out.Children, 2)

	resolvedTarget := out.Children[0].(*ast.Ruleset)
	require.Len(t, resolvedTarget.Selector.(*ast.SelectorList).Items, 2)

	resolvedExtender := out.Children[1].(*ast.Ruleset)
	require.Empty(t, resolvedExtender.Block.Children, "the ExtendRule statement must be removed")
}

func TestResolveErrorsOnUnmatchedRequiredExtend(t *testing.T) {
	extender := &ast.Ruleset{
		Selector: listFor(&ast.ClassSelector{Name: "error"}),
		Block: &ast.Block{Children: []ast.Statement{
			&ast.ExtendRule{Selector: listFor(&ast.PlaceholderSelector{Name: "missing"})},
		}},
	}

	_, err := extend.Resolve(&ast.Block{Children: []ast.Statement{extender}})
	require.Error(t, err)
}

func TestResolveDiffsKeyOutBeforeUnifying(t *testing.T) {
	// .a { color: red; } .b { @extend .a; font: bold; }
	target := &ast.Ruleset{
		Selector: listFor(&ast.ClassSelector{Name: "a"}),
		Block: &ast.Block{Children: []ast.Statement{
			&ast.Declaration{Property: &ast.StringConstant{Value: "color"}, Value: &ast.StringConstant{Value: "red"}},
		}},
	}
	extender := &ast.Ruleset{
		Selector: listFor(&ast.ClassSelector{Name: "b"}),
		Block: &ast.Block{Children: []ast.Statement{
			&ast.ExtendRule{Selector: listFor(&ast.ClassSelector{Name: "a"})},
			&ast.Declaration{Property: &ast.StringConstant{Value: "font"}, Value: &ast.StringConstant{Value: "bold"}},
		}},
	}

	out, err := extend.Resolve(&ast.Block{Children: []ast.Statement{target, extender}})
	require.NoError(t, err)

	resolved := out.Children[0].(*ast.Ruleset).Selector.(*ast.SelectorList)
	require.Len(t, resolved.Items, 2)

	// The second item must unify to plain ".b", not ".a.b": diffing the
	// matched key (.a) out of the matched compound before unifying with the
	// extender keeps a class-to-class extend from doubling the key back in.
	second := resolved.Items[1].Segments[0].Compound.Items
	require.Len(t, second, 1)
	cls, ok := second[0].(*ast.ClassSelector)
	require.True(t, ok)
	require.Equal(t, "b", cls.Name)
}

func TestResolveMatchesNonTrailingCompound(t *testing.T) {
	// .a .b { color: red; } .c { @extend .a; }
	target := &ast.ComplexSelector{Segments: []ast.ComplexSelectorSegment{
		{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "a"}}}},
		{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "b"}}}},
	}}
	targetRuleset := &ast.Ruleset{
		Selector: &ast.SelectorList{Items: []*ast.ComplexSelector{target}},
		Block: &ast.Block{Children: []ast.Statement{
			&ast.Declaration{Property: &ast.StringConstant{Value: "color"}, Value: &ast.StringConstant{Value: "red"}},
		}},
	}
	extender := &ast.Ruleset{
		Selector: listFor(&ast.ClassSelector{Name: "c"}),
		Block: &ast.Block{Children: []ast.Statement{
			&ast.ExtendRule{Selector: listFor(&ast.ClassSelector{Name: "a"})},
		}},
	}

	out, err := extend.Resolve(&ast.Block{Children: []ast.Statement{targetRuleset, extender}})
	require.NoError(t, err)

	resolved := out.Children[0].(*ast.Ruleset).Selector.(*ast.SelectorList)
	require.Len(t, resolved.Items, 2, "an extend target matching the leading, non-trailing compound must still match")

	extended := resolved.Items[1]
	require.Len(t, extended.Segments, 2)
	first := extended.Segments[0].Compound.Items
	require.Len(t, first, 1)
	cls, ok := first[0].(*ast.ClassSelector)
	require.True(t, ok)
	require.Equal(t, "c", cls.Name)
}

func TestResolveOptionalExtendNeverErrors(t *testing.T) {
	extender := &ast.Ruleset{
		Selector: listFor(&ast.ClassSelector{Name: "error"}),
		Block: &ast.Block{Children: []ast.Statement{
			&ast.ExtendRule{Selector: listFor(&ast.PlaceholderSelector{Name: "missing"}), IsOptional: true},
		}},
	}

	out, err := extend.Resolve(&ast.Block{Children: []ast.Statement{extender}})
	require.NoError(t, err)
	require.Len(t, out.Children, 1)
}
