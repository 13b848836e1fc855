package ast

// SimpleSelector is implemented by every single (non-compound) selector
// component: type, class, id, placeholder, parent, attribute, pseudo.
type SimpleSelector interface {
	Expression
	simpleSelector()
	// Text is the canonical textual form used for subset-map matching and
	// superselector comparisons (normalized, not necessarily the original
	// source spelling).
	Text() string
}

// TypeSelector matches an element by tag name, e.g. div or ns|div. A bare
// "*" universal selector is represented with Name == "*".
type TypeSelector struct {
	Position
	Name      string
	Namespace string
}

func (*TypeSelector) exprNode()        {}
func (*TypeSelector) simpleSelector()  {}
func (t *TypeSelector) Text() string {
	if t.Namespace != "" {
		return t.Namespace + "|" + t.Name
	}
	return t.Name
}

// ClassSelector matches .name.
type ClassSelector struct {
	Position
	Name string
}

func (*ClassSelector) exprNode()       {}
func (*ClassSelector) simpleSelector() {}
func (c *ClassSelector) Text() string  { return "." + c.Name }

// IdSelector matches #name.
type IdSelector struct {
	Position
	Name string
}

func (*IdSelector) exprNode()       {}
func (*IdSelector) simpleSelector() {}
func (i *IdSelector) Text() string  { return "#" + i.Name }

// PlaceholderSelector matches %name. Placeholders are only valid as
// @extend targets; they are stripped by the placeholder-removal pass
// before emission.
type PlaceholderSelector struct {
	Position
	Name string
}

func (*PlaceholderSelector) exprNode()       {}
func (*PlaceholderSelector) simpleSelector() {}
func (p *PlaceholderSelector) Text() string  { return "%" + p.Name }

// ParentSelector is the & token. Legal only inside a ruleset nested under
// another ruleset; the expander replaces it using the selector stack.
type ParentSelector struct {
	Position
	// Suffix holds trailing text directly concatenated onto the parent,
	// e.g. the "-bar" in "&-bar".
	Suffix string
}

func (*ParentSelector) exprNode()       {}
func (*ParentSelector) simpleSelector() {}
func (p *ParentSelector) Text() string  { return "&" + p.Suffix }

// AttributeMatcher enumerates the CSS attribute-selector comparison forms.
type AttributeMatcher string

const (
	AttrExists     AttributeMatcher = ""
	AttrEquals     AttributeMatcher = "="
	AttrIncludes   AttributeMatcher = "~="
	AttrDashMatch  AttributeMatcher = "|="
	AttrPrefix     AttributeMatcher = "^="
	AttrSuffix     AttributeMatcher = "$="
	AttrSubstring  AttributeMatcher = "*="
)

// AttributeSelector matches [name op value], e.g. [data-x^="a"].
type AttributeSelector struct {
	Position
	Name    string
	Matcher AttributeMatcher
	Value   string // empty when Matcher == AttrExists
}

func (*AttributeSelector) exprNode()       {}
func (*AttributeSelector) simpleSelector() {}
func (a *AttributeSelector) Text() string {
	if a.Matcher == AttrExists {
		return "[" + a.Name + "]"
	}
	return "[" + a.Name + string(a.Matcher) + a.Value + "]"
}

// PseudoSelector matches :name or ::name, optionally with an argument or a
// wrapped nested selector list (e.g. :not(.a, .b)).
type PseudoSelector struct {
	Position
	Name             string
	IsElement        bool // true for ::name
	Argument         string
	WrappedSelector  *SelectorList
}

func (*PseudoSelector) exprNode()       {}
func (*PseudoSelector) simpleSelector() {}
func (p *PseudoSelector) Text() string {
	prefix := ":"
	if p.IsElement {
		prefix = "::"
	}
	s := prefix + p.Name
	if p.Argument != "" {
		s += "(" + p.Argument + ")"
	}
	return s
}

// CompoundSelector is an unordered-but-emitted-ordered AND of simple
// selectors applied to the same element, e.g. div.foo[x].
type CompoundSelector struct {
	Position
	Items []SimpleSelector
}

func (*CompoundSelector) exprNode() {}

// HasParentRef reports whether this compound contains a ParentSelector.
func (c *CompoundSelector) HasParentRef() bool {
	for _, item := range c.Items {
		if _, ok := item.(*ParentSelector); ok {
			return true
		}
	}
	return false
}

// HasPlaceholder reports whether this compound contains a placeholder.
func (c *CompoundSelector) HasPlaceholder() bool {
	for _, item := range c.Items {
		if _, ok := item.(*PlaceholderSelector); ok {
			return true
		}
	}
	return false
}

// Combinator joins two compound selectors inside a ComplexSelector.
type Combinator int

const (
	Descendant Combinator = iota // plain whitespace
	Child                        // >
	NextSibling                  // +
	FollowingSibling             // ~
)

func (c Combinator) String() string {
	switch c {
	case Child:
		return ">"
	case NextSibling:
		return "+"
	case FollowingSibling:
		return "~"
	default:
		return " "
	}
}

// ComplexSelectorSegment is one (combinator, compound) pair in a
// ComplexSelector. The very first segment's Combinator is ignored (there is
// nothing before it but the implicit document root).
type ComplexSelectorSegment struct {
	Combinator Combinator
	Compound   *CompoundSelector
}

// ComplexSelector is compound selectors joined by combinators, e.g. "a > b c".
type ComplexSelector struct {
	Position
	Segments []ComplexSelectorSegment
}

func (*ComplexSelector) exprNode() {}

// HasParentRef reports whether any compound in this selector references &.
func (c *ComplexSelector) HasParentRef() bool {
	for _, seg := range c.Segments {
		if seg.Compound.HasParentRef() {
			return true
		}
	}
	return false
}

// HasPlaceholder reports whether any compound in this selector is, or
// carries, a placeholder.
func (c *ComplexSelector) HasPlaceholder() bool {
	for _, seg := range c.Segments {
		if seg.Compound.HasPlaceholder() {
			return true
		}
	}
	return false
}

// SelectorList is a comma-separated group of complex selectors.
type SelectorList struct {
	Position
	Items []*ComplexSelector
}

func (*SelectorList) exprNode() {}

// SelectorSchema is an unparsed selector containing interpolation; it is
// evaluated and re-parsed into a SelectorList during expansion.
type SelectorSchema struct {
	Position
	Contents *StringSchema
}

func (*SelectorSchema) exprNode() {}
