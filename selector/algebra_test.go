package selector_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"

	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/selector"
)

func TestUnifyCompoundMergesDistinctClasses(t *testing.T) {
	a := &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "message"}}}
	b := &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "error"}}}

	got, ok := selector.UnifyCompound(a, b)
	require.True(t, ok)

	want := &ast.CompoundSelector{Items: []ast.SimpleSelector{
		&ast.ClassSelector{Name: "message"},
		&ast.ClassSelector{Name: "error"},
	}}
	if diff := cmp.Diff(want, got, cmpIgnorePositions()); diff != "" {
		t.Fatalf("unified compound mismatch (-want +got):\n%s", diff)
	}
}

func TestUnifyCompoundRejectsConflictingTypes(t *testing.T) {
	a := &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.TypeSelector{Name: "a"}}}
	b := &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.TypeSelector{Name: "span"}}}

	_, ok := selector.UnifyCompound(a, b)
	require.False(t, ok)
}

func TestUnifyCompoundIsIdempotentOnRepeatedExtend(t *testing.T) {
	a := &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "message"}}}
	b := &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "error"}}}

	once, ok := selector.UnifyCompound(a, b)
	require.True(t, ok)
	twice, ok := selector.UnifyCompound(once, b)
	require.True(t, ok)

	if diff := cmp.Diff(once, twice, cmpIgnorePositions()); diff != "" {
		t.Fatalf("re-unifying with an already-merged compound changed it (-once +twice):\n%s", diff)
	}
}

func TestCompoundIsSubsetOfReflexive(t *testing.T) {
	c := &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "card"}, &ast.ClassSelector{Name: "featured"}}}
	require.True(t, selector.CompoundIsSubsetOf(c, c))
}

func TestIsSuperselectorOfMismatchedLengthIsFalse(t *testing.T) {
	a := &ast.ComplexSelector{Segments: []ast.ComplexSelectorSegment{
		{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "a"}}}},
	}}
	b := &ast.ComplexSelector{Segments: []ast.ComplexSelectorSegment{
		{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "a"}}}},
		{Combinator: ast.Descendant, Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "b"}}}},
	}}
	require.False(t, selector.IsSuperselectorOf(a, b))
}

func TestReplaceCompoundLeavesOtherSegmentsUntouched(t *testing.T) {
	c := &ast.ComplexSelector{Segments: []ast.ComplexSelectorSegment{
		{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "a"}}}},
		{Combinator: ast.Child, Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "b"}}}},
	}}
	replacement := &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "b"}, &ast.ClassSelector{Name: "c"}}}

	got := selector.ReplaceCompound(c, 1, replacement)

	want := &ast.ComplexSelector{Segments: []ast.ComplexSelectorSegment{
		{Compound: &ast.CompoundSelector{Items: []ast.SimpleSelector{&ast.ClassSelector{Name: "a"}}}},
		{Combinator: ast.Child, Compound: replacement},
	}}
	if diff := cmp.Diff(want, got, cmpIgnorePositions()); diff != "" {
		t.Fatalf("replaced complex selector mismatch (-want +got):\n%s", diff)
	}
}

// cmpIgnorePositions drops ast.Position fields from the comparison, since
// the selectors built here never set them and the algebra functions leave
// most of them zero-valued by construction.
func cmpIgnorePositions() cmp.Option {
	return cmpopts.IgnoreTypes(ast.Position{})
}
