package functions

import (
	"math"

	"github.com/titpetric/stylesc/ast"
)

// number extracts a *ast.Number argument, erroring with the function's name
// if the argument isn't numeric.
func number(fn string, args []ast.Expression, i int) (*ast.Number, error) {
	if i >= len(args) {
		return nil, argErr(fn, "missing numeric argument")
	}
	n, ok := args[i].(*ast.Number)
	if !ok {
		return nil, argErr(fn, "expected a number")
	}
	return n, nil
}

func withUnit(v float64, n *ast.Number) *ast.Number {
	return &ast.Number{Value: v, NumeratorUnits: n.NumeratorUnits, DenominatorUnits: n.DenominatorUnits}
}

func Ceil(args []ast.Expression) (ast.Expression, error) {
	n, err := number("ceil", args, 0)
	if err != nil {
		return nil, err
	}
	return withUnit(math.Ceil(n.Value), n), nil
}

func Floor(args []ast.Expression) (ast.Expression, error) {
	n, err := number("floor", args, 0)
	if err != nil {
		return nil, err
	}
	return withUnit(math.Floor(n.Value), n), nil
}

func Round(args []ast.Expression) (ast.Expression, error) {
	n, err := number("round", args, 0)
	if err != nil {
		return nil, err
	}
	return withUnit(math.Round(n.Value), n), nil
}

func Abs(args []ast.Expression) (ast.Expression, error) {
	n, err := number("abs", args, 0)
	if err != nil {
		return nil, err
	}
	return withUnit(math.Abs(n.Value), n), nil
}

func Sqrt(args []ast.Expression) (ast.Expression, error) {
	n, err := number("sqrt", args, 0)
	if err != nil {
		return nil, err
	}
	return withUnit(math.Sqrt(n.Value), n), nil
}

func Pow(args []ast.Expression) (ast.Expression, error) {
	b, err := number("pow", args, 0)
	if err != nil {
		return nil, err
	}
	e, err := number("pow", args, 1)
	if err != nil {
		return nil, err
	}
	return withUnit(math.Pow(b.Value, e.Value), b), nil
}

func Mod(args []ast.Expression) (ast.Expression, error) {
	a, err := number("mod", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := number("mod", args, 1)
	if err != nil {
		return nil, err
	}
	return withUnit(math.Mod(a.Value, b.Value), a), nil
}

func Percentage(args []ast.Expression) (ast.Expression, error) {
	n, err := number("percentage", args, 0)
	if err != nil {
		return nil, err
	}
	return &ast.Number{Value: n.Value * 100, NumeratorUnits: []string{"%"}}, nil
}

func Min(args []ast.Expression) (ast.Expression, error) {
	return minmax("min", args, func(a, b float64) bool { return a < b })
}

func Max(args []ast.Expression) (ast.Expression, error) {
	return minmax("max", args, func(a, b float64) bool { return a > b })
}

func minmax(fn string, args []ast.Expression, better func(a, b float64) bool) (ast.Expression, error) {
	if len(args) == 0 {
		return nil, argErr(fn, "requires at least one argument")
	}
	best, err := number(fn, args, 0)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(args); i++ {
		n, err := number(fn, args, i)
		if err != nil {
			return nil, err
		}
		if better(n.Value, best.Value) {
			best = n
		}
	}
	return best, nil
}

// trig wraps a radian-based math function, converting a `deg` argument
// to radians first so `sin(90deg)` and `sin(1.5708)` agree.
func trig(fn string, f func(float64) float64) Func {
	return func(args []ast.Expression) (ast.Expression, error) {
		n, err := number(fn, args, 0)
		if err != nil {
			return nil, err
		}
		v := n.Value
		if len(n.NumeratorUnits) == 1 && n.NumeratorUnits[0] == "deg" {
			v = v * math.Pi / 180
		}
		return &ast.Number{Value: f(v)}, nil
	}
}

func mathSin(v float64) float64  { return math.Sin(v) }
func mathCos(v float64) float64  { return math.Cos(v) }
func mathTan(v float64) float64  { return math.Tan(v) }
func mathAsin(v float64) float64 { return math.Asin(v) }
func mathAcos(v float64) float64 { return math.Acos(v) }
func mathAtan(v float64) float64 { return math.Atan(v) }

func Pi(args []ast.Expression) (ast.Expression, error) {
	return &ast.Number{Value: math.Pi}, nil
}
