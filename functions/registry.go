package functions

import (
	"fmt"

	"github.com/titpetric/stylesc/ast"
)

// Func is a built-in function body. Arguments arrive already evaluated
// (Eval resolves variables/expressions before a FunctionCall dispatches
// here), and the result is itself an expression slotted back into the
// surrounding evaluation the way a user-defined function's return value
// would be. This replaces the teacher's FuncMap, whose entries were
// string-to-string closures (DefaultFuncMap in the original
// functions/registry.go) — the spec's typed value model means arguments
// and results have to stay ast.Expression end to end instead of round
// tripping through CSS text.
type Func func(args []ast.Expression) (ast.Expression, error)

// Registry resolves built-in function names. Lookups are case-sensitive,
// and the parser keeps a function name exactly as written in the source,
// so only the registered spelling matches.
type Registry struct {
	funcs map[string]Func
}

// Default builds the registry of built-in functions. One registry is
// shared across an entire compile; it holds no per-call state.
func Default() *Registry {
	r := &Registry{funcs: map[string]Func{}}

	// Math.
	r.funcs["ceil"] = Ceil
	r.funcs["floor"] = Floor
	r.funcs["round"] = Round
	r.funcs["abs"] = Abs
	r.funcs["sqrt"] = Sqrt
	r.funcs["pow"] = Pow
	r.funcs["mod"] = Mod
	r.funcs["percentage"] = Percentage
	r.funcs["min"] = Min
	r.funcs["max"] = Max
	r.funcs["pi"] = Pi
	r.funcs["sin"] = trig("sin", mathSin)
	r.funcs["cos"] = trig("cos", mathCos)
	r.funcs["tan"] = trig("tan", mathTan)
	r.funcs["asin"] = trig("asin", mathAsin)
	r.funcs["acos"] = trig("acos", mathAcos)
	r.funcs["atan"] = trig("atan", mathAtan)

	// Colors.
	r.funcs["rgb"] = RGB
	r.funcs["rgba"] = RGBA
	r.funcs["hsl"] = HSL
	r.funcs["hsla"] = HSLA
	r.funcs["hue"] = Hue
	r.funcs["saturation"] = Saturation
	r.funcs["lightness"] = Lightness
	r.funcs["red"] = Red
	r.funcs["green"] = Green
	r.funcs["blue"] = Blue
	r.funcs["alpha"] = Alpha
	r.funcs["lighten"] = Lighten
	r.funcs["darken"] = Darken
	r.funcs["saturate"] = Saturate
	r.funcs["desaturate"] = Desaturate
	r.funcs["spin"] = Spin
	r.funcs["grayscale"] = Grayscale
	r.funcs["greyscale"] = Grayscale
	r.funcs["fade"] = Fade
	r.funcs["fadein"] = FadeIn
	r.funcs["fadeout"] = FadeOut
	r.funcs["mix"] = Mix

	// Strings.
	r.funcs["unquote"] = Unquote
	r.funcs["quote"] = Quote
	r.funcs["str-slice"] = StrSlice
	r.funcs["str-length"] = StrLength
	r.funcs["str-insert"] = StrInsert
	r.funcs["to-upper-case"] = ToUpperCase
	r.funcs["to-lower-case"] = ToLowerCase
	r.funcs["str-replace"] = StrReplace

	// Lists.
	r.funcs["length"] = Length
	r.funcs["nth"] = Nth
	r.funcs["list-separator"] = ListSeparator
	r.funcs["join"] = Join
	r.funcs["append"] = Append
	r.funcs["index"] = Index
	r.funcs["zip"] = Zip
	r.funcs["is-bracketed"] = IsBracketed

	// Maps.
	r.funcs["map-get"] = MapGet
	r.funcs["map-merge"] = MapMerge
	r.funcs["map-keys"] = MapKeys
	r.funcs["map-values"] = MapValues
	r.funcs["map-has-key"] = MapHasKey
	r.funcs["map-remove"] = MapRemove

	// Introspection / type predicates.
	r.funcs["type-of"] = TypeOf
	r.funcs["is-number"] = IsNumber
	r.funcs["is-string"] = IsString
	r.funcs["is-color"] = IsColor
	r.funcs["is-list"] = IsList
	r.funcs["is-map"] = IsMap
	r.funcs["is-bool"] = IsBool
	r.funcs["is-null"] = IsNull
	r.funcs["is-function"] = IsFunction
	r.funcs["unit"] = Unit
	r.funcs["unitless"] = Unitless
	r.funcs["comparable"] = Comparable

	return r
}

// Lookup returns the built-in function registered under name, if any.
func (r *Registry) Lookup(name string) (Func, bool) {
	f, ok := r.funcs[name]
	return f, ok
}

// Register installs or overrides a built-in under name, letting a host
// application extend the registry with custom functions the way the
// teacher's DefaultFuncMap callers could add entries to the FuncMap
// before handing it to the renderer.
func (r *Registry) Register(name string, fn Func) {
	r.funcs[name] = fn
}

func argErr(fn, msg string) error {
	return fmt.Errorf("%s(): %s", fn, msg)
}
