package placeholder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/placeholder"
)

func complexOf(items ...ast.SimpleSelector) *ast.ComplexSelector {
	return &ast.ComplexSelector{Segments: []ast.ComplexSelectorSegment{{
		Compound: &ast.CompoundSelector{Items: items},
	}}}
}

func TestRemoveDropsPlaceholderOnlyRuleset(t *testing.T) {
	r := &ast.Ruleset{
		Selector: &ast.SelectorList{Items: []*ast.ComplexSelector{complexOf(&ast.PlaceholderSelector{Name: "ph"})}},
		Block:    &ast.Block{Children: []ast.Statement{&ast.Declaration{Property: &ast.StringConstant{Value: "color"}}}},
	}
	out := placeholder.Remove(&ast.Block{Children: []ast.Statement{r}})
	require.Empty(t, out.Children)
}

func TestRemoveDropsSelectorWithPlaceholderMergedIntoCompound(t *testing.T) {
	r := &ast.Ruleset{
		Selector: &ast.SelectorList{Items: []*ast.ComplexSelector{
			complexOf(&ast.PlaceholderSelector{Name: "ph"}),
			complexOf(&ast.PlaceholderSelector{Name: "ph"}, &ast.ClassSelector{Name: "error"}),
		}},
		Block: &ast.Block{Children: []ast.Statement{&ast.Declaration{Property: &ast.StringConstant{Value: "color"}}}},
	}
	out := placeholder.Remove(&ast.Block{Children: []ast.Statement{r}})
	// Both complex selectors still carry %ph (one bare, one merged into a
	// compound alongside .error), so neither survives: a selector is dropped
	// whole rather than stripped down to its remaining simple selectors.
	require.Empty(t, out.Children)
}

func TestRemoveKeepsPlaceholderFreeSelectorsAlongsideDroppedOnes(t *testing.T) {
	r := &ast.Ruleset{
		Selector: &ast.SelectorList{Items: []*ast.ComplexSelector{
			complexOf(&ast.PlaceholderSelector{Name: "ph"}),
			complexOf(&ast.ClassSelector{Name: "error"}),
		}},
		Block: &ast.Block{Children: []ast.Statement{&ast.Declaration{Property: &ast.StringConstant{Value: "color"}}}},
	}
	out := placeholder.Remove(&ast.Block{Children: []ast.Statement{r}})
	require.Len(t, out.Children, 1)

	kept := out.Children[0].(*ast.Ruleset)
	sel := kept.Selector.(*ast.SelectorList)
	require.Len(t, sel.Items, 1)
	cls, ok := sel.Items[0].Segments[0].Compound.Items[0].(*ast.ClassSelector)
	require.True(t, ok)
	require.Equal(t, "error", cls.Name)
}

func TestRemovePassesThroughOrdinarySelectors(t *testing.T) {
	r := &ast.Ruleset{
		Selector: &ast.SelectorList{Items: []*ast.ComplexSelector{complexOf(&ast.ClassSelector{Name: "card"})}},
		Block:    &ast.Block{Children: nil},
	}
	out := placeholder.Remove(&ast.Block{Children: []ast.Statement{r}})
	require.Len(t, out.Children, 1)
}
