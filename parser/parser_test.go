package parser_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/parser"
)

func mustParse(t *testing.T, src string) *ast.Block {
	t.Helper()
	block, err := parser.Parse("test.style", src)
	require.NoError(t, err)
	return block
}

func TestParseDeclarationAndRuleset(t *testing.T) {
	block := mustParse(t, `.card { color: red; padding: 4px 8px; }`)
	require.Len(t, block.Children, 1)

	rule, ok := block.Children[0].(*ast.Ruleset)
	require.True(t, ok)

	selList, ok := rule.Selector.(*ast.SelectorList)
	require.True(t, ok)
	require.Len(t, selList.Items, 1)
	require.Len(t, selList.Items[0].Segments, 1)

	compound := selList.Items[0].Segments[0].Compound
	require.Len(t, compound.Items, 1)
	class, ok := compound.Items[0].(*ast.ClassSelector)
	require.True(t, ok)
	require.Equal(t, "card", class.Name)

	require.Len(t, rule.Block.Children, 2)
	decl, ok := rule.Block.Children[1].(*ast.Declaration)
	require.True(t, ok)
	list, ok := decl.Value.(*ast.List)
	require.True(t, ok)
	require.Equal(t, ast.SepSpace, list.Separator)
	require.Len(t, list.Items, 2)
}

func TestParseVariableAssignmentWithFlags(t *testing.T) {
	block := mustParse(t, `$gutter: 8px !default;`)
	require.Len(t, block.Children, 1)
	a, ok := block.Children[0].(*ast.Assignment)
	require.True(t, ok)
	require.Equal(t, "gutter", a.Name)
	require.True(t, a.IsGuarded)
}

func TestParseMixinDefinitionAndInclude(t *testing.T) {
	block := mustParse(t, `
@mixin button($color, $size: 10px) {
  color: $color;
  padding: $size;
}
.btn {
  @include button(red, $size: 20px);
}`)
	require.Len(t, block.Children, 2)

	def, ok := block.Children[0].(*ast.Definition)
	require.True(t, ok)
	require.Equal(t, "button", def.Name)
	require.Equal(t, ast.KindMixin, def.Kind)
	require.Len(t, def.Params.Items, 2)
	require.Equal(t, "color", def.Params.Items[0].Name)
	require.Nil(t, def.Params.Items[0].Default)
	require.NotNil(t, def.Params.Items[1].Default)

	ruleset, ok := block.Children[1].(*ast.Ruleset)
	require.True(t, ok)
	call, ok := ruleset.Block.Children[0].(*ast.MixinCall)
	require.True(t, ok)
	require.Equal(t, "button", call.Name)
	require.Len(t, call.Args.Items, 2)
	require.Equal(t, "size", call.Args.Items[1].Name)
}

func TestParseIfElseChain(t *testing.T) {
	block := mustParse(t, `
@if $theme == dark {
  color: black;
} @else if $theme == light {
  color: white;
} @else {
  color: gray;
}`)
	require.Len(t, block.Children, 1)
	ifStmt, ok := block.Children[0].(*ast.If)
	require.True(t, ok)
	require.NotNil(t, ifStmt.Predicate)

	elseIf, ok := ifStmt.Alternative.(*ast.If)
	require.True(t, ok)
	elseBlock, ok := elseIf.Alternative.(*ast.Block)
	require.True(t, ok)
	require.Len(t, elseBlock.Children, 1)
}

func TestParseEachOverMap(t *testing.T) {
	block := mustParse(t, `
@each $name, $size in (small: 10px, large: 20px) {
  .icon-#{$name} { width: $size; }
}`)
	each, ok := block.Children[0].(*ast.Each)
	require.True(t, ok)
	require.Equal(t, []string{"name", "size"}, each.Vars)
	m, ok := each.List.(*ast.Map)
	require.True(t, ok)
	require.Len(t, m.Entries, 2)

	inner, ok := each.Block.Children[0].(*ast.Ruleset)
	require.True(t, ok)
	_, isSchema := inner.Selector.(*ast.SelectorSchema)
	require.True(t, isSchema)
}

func TestParseExtendAndPlaceholder(t *testing.T) {
	block := mustParse(t, `
%ghost-button {
  border: none;
}
.btn {
  @extend %ghost-button;
}`)
	require.Len(t, block.Children, 2)
	ruleset := block.Children[0].(*ast.Ruleset)
	selList := ruleset.Selector.(*ast.SelectorList)
	placeholder, ok := selList.Items[0].Segments[0].Compound.Items[0].(*ast.PlaceholderSelector)
	require.True(t, ok)
	require.Equal(t, "ghost-button", placeholder.Name)

	btn := block.Children[1].(*ast.Ruleset)
	extend, ok := btn.Block.Children[0].(*ast.ExtendRule)
	require.True(t, ok)
	require.False(t, extend.IsOptional)
}

func TestParseNestedAmpersandSelector(t *testing.T) {
	block := mustParse(t, `
.btn {
  &:hover { color: blue; }
  &.active { color: green; }
}`)
	btn := block.Children[0].(*ast.Ruleset)
	require.Len(t, btn.Block.Children, 2)

	hover := btn.Block.Children[0].(*ast.Ruleset)
	hoverSel := hover.Selector.(*ast.SelectorList).Items[0].Segments[0].Compound
	require.Len(t, hoverSel.Items, 2)
	_, isParent := hoverSel.Items[0].(*ast.ParentSelector)
	require.True(t, isParent)
	pseudo, isPseudo := hoverSel.Items[1].(*ast.PseudoSelector)
	require.True(t, isPseudo)
	require.Equal(t, "hover", pseudo.Name)
}

func TestParseArithmeticPrecedence(t *testing.T) {
	block := mustParse(t, `.box { width: 2px + 3px * 2; }`)
	decl := block.Children[0].(*ast.Ruleset).Block.Children[0].(*ast.Declaration)
	bin, ok := decl.Value.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpAdd, bin.Op)
	rhs, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, ast.OpMul, rhs.Op)
}

func TestParseMapLiteralAndBracketedList(t *testing.T) {
	block := mustParse(t, `$sizes: (sm: 1, lg: 2);`)
	a := block.Children[0].(*ast.Assignment)
	m, ok := a.Value.(*ast.Map)
	require.True(t, ok)
	require.Len(t, m.Entries, 2)

	block2 := mustParse(t, `$list: [a, b, c];`)
	a2 := block2.Children[0].(*ast.Assignment)
	list, ok := a2.Value.(*ast.List)
	require.True(t, ok)
	require.True(t, list.IsBracketed)
	require.Len(t, list.Items, 3)
}
