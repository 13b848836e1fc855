package selector

import "github.com/titpetric/stylesc/ast"

// UnifyCompound merges two compound selectors that both apply to the same
// element (the @extend merge step: ".message" extended by ".error" turns
// ".message" into ".message.error" wherever it's used). Returns ok=false
// when the two compounds carry conflicting type selectors or conflicting
// ids, since an element can't match both.
func UnifyCompound(a, b *ast.CompoundSelector) (*ast.CompoundSelector, bool) {
	out := &ast.CompoundSelector{Position: a.Position}
	out.Items = append(out.Items, a.Items...)

	for _, bi := range b.Items {
		switch bv := bi.(type) {
		case *ast.TypeSelector:
			if existing := findType(out.Items); existing != nil {
				if existing.Name != bv.Name && existing.Name != "*" && bv.Name != "*" {
					return nil, false
				}
				if existing.Name == "*" {
					*existing = *bv
				}
				continue
			}
			out.Items = append([]ast.SimpleSelector{bv}, out.Items...)
		case *ast.IdSelector:
			if existing := findID(out.Items); existing != nil && existing.Name != bv.Name {
				return nil, false
			}
			if !containsText(out.Items, bv.Text()) {
				out.Items = append(out.Items, bv)
			}
		default:
			if !containsText(out.Items, bi.Text()) {
				out.Items = append(out.Items, bi)
			}
		}
	}
	return out, true
}

func findType(items []ast.SimpleSelector) *ast.TypeSelector {
	for _, i := range items {
		if t, ok := i.(*ast.TypeSelector); ok {
			return t
		}
	}
	return nil
}

func findID(items []ast.SimpleSelector) *ast.IdSelector {
	for _, i := range items {
		if id, ok := i.(*ast.IdSelector); ok {
			return id
		}
	}
	return nil
}

func containsText(items []ast.SimpleSelector, text string) bool {
	for _, i := range items {
		if i.Text() == text {
			return true
		}
	}
	return false
}

// DiffCompound returns the items of a that do not also appear in b (by
// Text()), preserving a's order. Extend uses this to isolate whatever
// specificity a matched compound carries beyond the subset-map key that
// matched it, before unifying that remainder with the extending selector —
// unifying the key itself back in would double it up.
func DiffCompound(a, b *ast.CompoundSelector) *ast.CompoundSelector {
	out := &ast.CompoundSelector{Position: a.Position}
	for _, item := range a.Items {
		if !containsText(b.Items, item.Text()) {
			out.Items = append(out.Items, item)
		}
	}
	return out
}

// CompoundIsSubsetOf reports whether every simple selector of a also
// appears in b, meaning any element matching b also matches a (a is the
// more general, "super" selector).
func CompoundIsSubsetOf(a, b *ast.CompoundSelector) bool {
	for _, ai := range a.Items {
		if !containsText(b.Items, ai.Text()) {
			return false
		}
	}
	return true
}

// IsSuperselectorOf reports whether every element complex selector b
// matches is also matched by a. This implements the common, practically
// useful case the extend pass relies on — equal segment counts with
// matching combinators and a per-segment compound-subset relation — rather
// than full CSS4 superselector semantics (which must also reason about
// combinator transitivity across unequal-length selectors).
func IsSuperselectorOf(a, b *ast.ComplexSelector) bool {
	if len(a.Segments) != len(b.Segments) {
		return false
	}
	for i := range a.Segments {
		if a.Segments[i].Combinator != b.Segments[i].Combinator {
			return false
		}
		if !CompoundIsSubsetOf(a.Segments[i].Compound, b.Segments[i].Compound) {
			return false
		}
	}
	return true
}

// ReplaceCompound returns a copy of c with the compound at index idx
// replaced by replacement.
func ReplaceCompound(c *ast.ComplexSelector, idx int, replacement *ast.CompoundSelector) *ast.ComplexSelector {
	out := &ast.ComplexSelector{Position: c.Position}
	out.Segments = append(out.Segments, c.Segments...)
	out.Segments[idx] = ast.ComplexSelectorSegment{Combinator: c.Segments[idx].Combinator, Compound: replacement}
	return out
}
