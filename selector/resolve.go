// Package selector implements the selector algebra: resolving & (parent
// selector) references against an ancestor selector list, and the
// unify/is-superselector-of/subset-map operations the extend pass needs.
// Grounded on the teacher's buildSelector (renderer/renderer.go), which
// joined a child selector string onto its parentSelector string one level
// at a time; here the join operates on the typed ComplexSelector tree so
// "&" can appear anywhere in a compound (not just as a whole-selector
// prefix) and a suffix like "&-bar" concatenates onto the parent's last
// simple selector instead of being glued as plain text.
package selector

import "github.com/titpetric/stylesc/ast"

// ResolveList resolves every complex selector in child against every
// complex selector in parent (nil parent means root: no "&" is legal and
// the child selectors pass through unchanged).
func ResolveList(parent *ast.SelectorList, child *ast.SelectorList) *ast.SelectorList {
	if parent == nil || len(parent.Items) == 0 {
		return child
	}
	out := &ast.SelectorList{Position: child.Position}
	for _, c := range child.Items {
		for _, p := range parent.Items {
			out.Items = append(out.Items, resolveComplex(p, c))
		}
	}
	return out
}

// resolveComplex substitutes every ParentSelector reference inside c with
// p, or — if c contains no "&" at all — prepends p as an ancestor via the
// implicit descendant combinator, matching Sass nesting semantics.
func resolveComplex(p, c *ast.ComplexSelector) *ast.ComplexSelector {
	if !c.HasParentRef() {
		out := &ast.ComplexSelector{Position: c.Position}
		out.Segments = append(out.Segments, p.Segments...)
		out.Segments = append(out.Segments, c.Segments...)
		return out
	}
	out := &ast.ComplexSelector{Position: c.Position}
	for _, seg := range c.Segments {
		if !seg.Compound.HasParentRef() {
			out.Segments = append(out.Segments, seg)
			continue
		}
		out.Segments = append(out.Segments, substituteParentInCompound(p, seg)...)
	}
	return out
}

// substituteParentInCompound expands one compound containing "&" into one
// or more segments: a bare "&" splices in every segment of p verbatim; a
// suffixed "&foo" (e.g. "&-active") concatenates foo onto the last simple
// selector of p's final compound, keeping p's earlier segments untouched.
func substituteParentInCompound(p *ast.ComplexSelector, seg ast.ComplexSelectorSegment) []ast.ComplexSelectorSegment {
	var parentRef *ast.ParentSelector
	rest := make([]ast.SimpleSelector, 0, len(seg.Compound.Items))
	for _, item := range seg.Compound.Items {
		if ref, ok := item.(*ast.ParentSelector); ok {
			parentRef = ref
			continue
		}
		rest = append(rest, item)
	}

	if parentRef == nil || len(p.Segments) == 0 {
		return []ast.ComplexSelectorSegment{seg}
	}

	lastIdx := len(p.Segments) - 1
	merged := make([]ast.ComplexSelectorSegment, lastIdx+1)
	copy(merged, p.Segments[:lastIdx])

	lastCompound := p.Segments[lastIdx].Compound
	newItems := make([]ast.SimpleSelector, 0, len(lastCompound.Items)+len(rest)+1)
	newItems = append(newItems, lastCompound.Items...)
	if parentRef.Suffix != "" {
		newItems = appendSuffix(newItems, parentRef.Suffix)
	}
	newItems = append(newItems, rest...)

	merged[lastIdx] = ast.ComplexSelectorSegment{
		Combinator: p.Segments[lastIdx].Combinator,
		Compound:   &ast.CompoundSelector{Position: seg.Compound.Position, Items: newItems},
	}
	merged[0].Combinator = seg.Combinator
	return merged
}

// appendSuffix concatenates suffix text onto the textual tail of the last
// simple selector (the common &-bem-modifier pattern), via a synthetic
// ClassSelector/TypeSelector/IdSelector/PlaceholderSelector carrying the
// combined name so Text() renders correctly.
func appendSuffix(items []ast.SimpleSelector, suffix string) []ast.SimpleSelector {
	if len(items) == 0 {
		return []ast.SimpleSelector{&ast.TypeSelector{Name: suffix}}
	}
	last := items[len(items)-1]
	var replaced ast.SimpleSelector
	switch s := last.(type) {
	case *ast.ClassSelector:
		replaced = &ast.ClassSelector{Position: s.Position, Name: s.Name + suffix}
	case *ast.TypeSelector:
		replaced = &ast.TypeSelector{Position: s.Position, Name: s.Name + suffix, Namespace: s.Namespace}
	case *ast.IdSelector:
		replaced = &ast.IdSelector{Position: s.Position, Name: s.Name + suffix}
	case *ast.PlaceholderSelector:
		replaced = &ast.PlaceholderSelector{Position: s.Position, Name: s.Name + suffix}
	default:
		out := append(append([]ast.SimpleSelector{}, items...), &ast.TypeSelector{Name: suffix})
		return out
	}
	out := append([]ast.SimpleSelector{}, items[:len(items)-1]...)
	out = append(out, replaced)
	return out
}
