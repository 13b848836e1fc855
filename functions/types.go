package functions

import (
	"github.com/titpetric/stylesc/ast"
	"github.com/titpetric/stylesc/units"
)

// typeName mirrors the teacher's IsNumber/IsString/IsColor family
// (functions/types.go), which had to sniff a value's type out of raw
// CSS text; with a typed AST the type IS the predicate, so every
// is-*() builtin collapses to one type switch shared by TypeOf.
func typeName(e ast.Expression) string {
	switch e.(type) {
	case *ast.Number:
		return "number"
	case *ast.Color:
		return "color"
	case *ast.StringConstant, *ast.StringQuoted, *ast.StringSchema:
		return "string"
	case *ast.Boolean:
		return "bool"
	case *ast.Null:
		return "null"
	case *ast.List:
		return "list"
	case *ast.Map:
		return "map"
	case *ast.FunctionCall, *ast.FunctionCallSchema:
		return "function"
	default:
		return "string"
	}
}

func TypeOf(args []ast.Expression) (ast.Expression, error) {
	if len(args) == 0 {
		return nil, argErr("type-of", "missing argument")
	}
	return &ast.StringQuoted{Value: typeName(args[0]), QuoteMark: '"'}, nil
}

func boolResult(b bool) ast.Expression {
	return &ast.Boolean{Value: b}
}

func IsNumber(args []ast.Expression) (ast.Expression, error) {
	return boolResult(len(args) > 0 && typeName(args[0]) == "number"), nil
}

func IsString(args []ast.Expression) (ast.Expression, error) {
	return boolResult(len(args) > 0 && typeName(args[0]) == "string"), nil
}

func IsColor(args []ast.Expression) (ast.Expression, error) {
	return boolResult(len(args) > 0 && typeName(args[0]) == "color"), nil
}

func IsList(args []ast.Expression) (ast.Expression, error) {
	return boolResult(len(args) > 0 && typeName(args[0]) == "list"), nil
}

func IsMap(args []ast.Expression) (ast.Expression, error) {
	return boolResult(len(args) > 0 && typeName(args[0]) == "map"), nil
}

func IsBool(args []ast.Expression) (ast.Expression, error) {
	return boolResult(len(args) > 0 && typeName(args[0]) == "bool"), nil
}

func IsNull(args []ast.Expression) (ast.Expression, error) {
	return boolResult(len(args) > 0 && typeName(args[0]) == "null"), nil
}

func IsFunction(args []ast.Expression) (ast.Expression, error) {
	return boolResult(len(args) > 0 && typeName(args[0]) == "function"), nil
}

// Unit returns a Number's unit(s) rendered as a quoted string, e.g.
// unit(5px) => "px", unit(5px * 2px) => "pxpx".
func Unit(args []ast.Expression) (ast.Expression, error) {
	n, err := number("unit", args, 0)
	if err != nil {
		return nil, err
	}
	return &ast.StringQuoted{Value: units.String(n.NumeratorUnits, n.DenominatorUnits), QuoteMark: '"'}, nil
}

func Unitless(args []ast.Expression) (ast.Expression, error) {
	n, err := number("unitless", args, 0)
	if err != nil {
		return nil, err
	}
	return boolResult(len(n.NumeratorUnits) == 0 && len(n.DenominatorUnits) == 0), nil
}

// Comparable reports whether two numbers can be compared under the
// unit conversion table (same dimension) or are both unitless.
func Comparable(args []ast.Expression) (ast.Expression, error) {
	a, err := number("comparable", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := number("comparable", args, 1)
	if err != nil {
		return nil, err
	}
	_, ok := units.Compatible(units.Primary(a.NumeratorUnits, a.DenominatorUnits), units.Primary(b.NumeratorUnits, b.DenominatorUnits))
	return boolResult(ok), nil
}
