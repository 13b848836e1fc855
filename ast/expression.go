package ast

// Expression is implemented by every node that appears in a value context.
type Expression interface {
	Pos() Position
	exprNode()
}

// Separator is the glue between items of a List.
type Separator int

const (
	SepSpace Separator = iota
	SepComma
	SepSlash
)

func (s Separator) String() string {
	switch s {
	case SepComma:
		return ","
	case SepSlash:
		return "/"
	default:
		return " "
	}
}

// Number is a numeric literal with a unit vector, e.g. 10px, 2px*s/em.
type Number struct {
	Position
	Value           float64
	NumeratorUnits  []string
	DenominatorUnits []string
	HasLeadingZero  bool
}

func (*Number) exprNode() {}

// Color is an RGBA color. Alpha is in [0,1].
type Color struct {
	Position
	R, G, B      int
	A            float64
	OriginalName string
}

func (*Color) exprNode() {}

// Boolean is a true/false literal value.
type Boolean struct {
	Position
	Value bool
}

func (*Boolean) exprNode() {}

// Null is the absence of a value.
type Null struct {
	Position
}

func (*Null) exprNode() {}

// StringConstant is an unquoted string value (CSS identifier/keyword text).
type StringConstant struct {
	Position
	Value string
}

func (*StringConstant) exprNode() {}

// StringQuoted is a quoted string literal, remembering its quote mark so it
// round-trips unless interpolation strips it.
type StringQuoted struct {
	Position
	Value     string
	QuoteMark byte // '"', '\'', or 0 for none
}

func (*StringQuoted) exprNode() {}

// StringSchema is a string built from literal and interpolated fragments,
// e.g. "foo-#{$x}-bar".
type StringSchema struct {
	Position
	Fragments      []Expression
	HasInterpolants bool
	QuoteMark      byte
}

func (*StringSchema) exprNode() {}

// List is a separated sequence of values: comma, space, or slash separated.
type List struct {
	Position
	Items       []Expression
	Separator   Separator
	IsArglist   bool
	IsBracketed bool
}

func (*List) exprNode() {}

// MapEntry is one key/value pair of a Map, preserving declaration order.
type MapEntry struct {
	Key   Expression
	Value Expression
}

// Map is an ordered key/value collection: (a: 1, b: 2).
type Map struct {
	Position
	Entries []MapEntry
}

func (*Map) exprNode() {}

// BinaryOp enumerates the binary operators the evaluator understands.
type BinaryOp int

const (
	OpAnd BinaryOp = iota
	OpOr
	OpEq
	OpNeq
	OpGt
	OpGte
	OpLt
	OpLte
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
)

// Binary is a two-operand expression, e.g. $a + $b.
type Binary struct {
	Position
	Op          BinaryOp
	Left, Right Expression
	// Delayed marks a '/' that appeared as a separator rather than an
	// explicit division operator (e.g. the slash in `font: 10px/20px`).
	// The evaluator only turns it into a real division when the
	// surrounding context demands a value (see evaluator.EvalDelayed).
	Delayed bool
}

func (*Binary) exprNode() {}

// UnaryOp enumerates the unary operators.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryNot
)

// Unary is a single-operand prefix expression: -$x, +$x, not $x.
type Unary struct {
	Position
	Op      UnaryOp
	Operand Expression
}

func (*Unary) exprNode() {}

// Variable is a reference to a bound name, e.g. $color.
type Variable struct {
	Position
	Name string
}

func (*Variable) exprNode() {}

// FunctionCall invokes a built-in, user-defined, or passthrough CSS function.
type FunctionCall struct {
	Position
	Name string
	Args *Arguments
}

func (*FunctionCall) exprNode() {}

// FunctionCallSchema is a function call whose name itself contains
// interpolation, e.g. #{$fn}(1, 2).
type FunctionCallSchema struct {
	Position
	NameExpr Expression
	Args     *Arguments
}

func (*FunctionCallSchema) exprNode() {}

// TextualKind distinguishes the raw lexical shape of a Textual literal.
type TextualKind int

const (
	TextualNumber TextualKind = iota
	TextualPercentage
	TextualDimension
	TextualHex
)

// Textual preserves an unevaluated numeric literal exactly as written in
// source, before the evaluator normalizes it into a Number or Color.
type Textual struct {
	Position
	Kind TextualKind
	Raw  string
}

func (*Textual) exprNode() {}

// Argument is one actual argument of a call: positional, named, or a
// splatted rest/keyword argument (trailing `...`).
type Argument struct {
	Position
	Value      Expression
	Name       string // empty unless keyword argument
	IsRest     bool
	IsKeyword  bool
}

func (*Argument) exprNode() {}

// Arguments is the ordered list of actual arguments at a call site.
type Arguments struct {
	Position
	Items []*Argument
}

func (*Arguments) exprNode() {}

// Parameter is one formal parameter of a mixin/function definition.
type Parameter struct {
	Position
	Name    string
	Default Expression // nil if required
	IsRest  bool
}

func (*Parameter) exprNode() {}

// Parameters is the ordered list of formal parameters of a definition.
type Parameters struct {
	Position
	Items []*Parameter
}

func (*Parameters) exprNode() {}
