package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/emitter"
)

func TestEmitRulesetWithDeclarations(t *testing.T) {
	sel := &ast.SelectorList{Items: []*ast.ComplexSelector{{
		Segments: []ast.ComplexSelectorSegment{{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "card"}}}}},
	}}}
	r := &ast.Ruleset{
		Selector: sel,
		Block: &ast.Block{Children: []ast.Statement{
			&ast.Declaration{Property: &ast.StringConstant{Value: "color"}, Value: &ast.StringQuoted{Value: "red"}},
		}},
	}

	out, err := emitter.NewNested().Emit(&ast.Block{Children: []ast.Statement{r}})
	require.NoError(t, err)
	require.Equal(t, ".card {\n  color: \"red\";\n}\n", out)
}

func TestEmitSkipsEmptyRuleset(t *testing.T) {
	sel := &ast.SelectorList{Items: []*ast.ComplexSelector{{
		Segments: []ast.ComplexSelectorSegment{{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "empty"}}}}},
	}}}
	r := &ast.Ruleset{Selector: sel, Block: &ast.Block{}}

	out, err := emitter.NewNested().Emit(&ast.Block{Children: []ast.Statement{r}})
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestEmitImportantDeclaration(t *testing.T) {
	sel := &ast.SelectorList{Items: []*ast.ComplexSelector{{
		Segments: []ast.ComplexSelectorSegment{{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "x"}}}}},
	}}}
	r := &ast.Ruleset{
		Selector: sel,
		Block: &ast.Block{Children: []ast.Statement{
			&ast.Declaration{Property: &ast.StringConstant{Value: "color"}, Value: &ast.StringConstant{Value: "red"}, IsImportant: true},
		}},
	}

	out, err := emitter.NewNested().Emit(&ast.Block{Children: []ast.Statement{r}})
	require.NoError(t, err)
	require.Equal(t, ".x {\n  color: red !important;\n}\n", out)
}

func TestEmitMediaRuleIndentsBody(t *testing.T) {
	sel := &ast.SelectorList{Items: []*ast.ComplexSelector{{
		Segments: []ast.ComplexSelectorSegment{{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "x"}}}}},
	}}}
	r := &ast.Ruleset{
		Selector: sel,
		Block: &ast.Block{Children: []ast.Statement{
			&ast.Declaration{Property: &ast.StringConstant{Value: "color"}, Value: &ast.StringConstant{Value: "red"}},
		}},
	}
	media := &ast.MediaRule{
		Queries: []ast.MediaQuery{{Type: "screen", Features: []ast.MediaFeature{{Name: "min-width", Value: &ast.Number{Value: 768, NumeratorUnits: []string{"px"}}}}}},
		Block:   &ast.Block{Children: []ast.Statement{r}},
	}

	out, err := emitter.NewNested().Emit(&ast.Block{Children: []ast.Statement{media}})
	require.NoError(t, err)
	require.Equal(t, "@media screen and (min-width: 768px) {\n  .x {\n    color: red;\n  }\n}\n", out)
}
