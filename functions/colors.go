package functions

import (
	"math"

	"github.com/titpetric/stylesc/ast"
)

// Color is an RGBA color in the 0-255 (RGB) / 0-1 (A) ranges used by the
// HSL conversion math below — kept as the teacher's functions/colors.go
// modeled it, since the HSL round-trip is independent of how the channel
// values are carried across the evaluator boundary.
type Color struct {
	R, G, B, A float64
}

func fromAST(c *ast.Color) *Color {
	return &Color{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: c.A}
}

func (c *Color) toAST() *ast.Color {
	clamp := func(v float64) int {
		r := int(math.Round(v))
		if r < 0 {
			return 0
		}
		if r > 255 {
			return 255
		}
		return r
	}
	a := c.A
	if a < 0 {
		a = 0
	}
	if a > 1 {
		a = 1
	}
	return &ast.Color{R: clamp(c.R), G: clamp(c.G), B: clamp(c.B), A: a}
}

// ToHSL converts RGB to HSL.
func (c *Color) ToHSL() (h, s, l float64) {
	r := c.R / 255.0
	g := c.G / 255.0
	b := c.B / 255.0

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2

	if max == min {
		h = 0
		s = 0
	} else {
		d := max - min
		if l > 0.5 {
			s = d / (2 - max - min)
		} else {
			s = d / (max + min)
		}

		switch max {
		case r:
			h = math.Mod((g-b)/d+6, 6)
		case g:
			h = (b-r)/d + 2
		case b:
			h = (r-g)/d + 4
		}
		h *= 60
	}

	return h, s, l
}

// HSLToColor converts HSL (h in degrees, s/l in [0,1]) to an RGB Color.
func HSLToColor(h, s, l, a float64) *Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	if s > 1 {
		s = 1
	}
	if l > 1 {
		l = 1
	}

	chroma := (1 - math.Abs(2*l-1)) * s
	hp := h / 60
	x := chroma * (1 - math.Abs(math.Mod(hp, 2)-1))

	var r1, g1, b1 float64
	switch {
	case hp >= 0 && hp < 1:
		r1, g1, b1 = chroma, x, 0
	case hp >= 1 && hp < 2:
		r1, g1, b1 = x, chroma, 0
	case hp >= 2 && hp < 3:
		r1, g1, b1 = 0, chroma, x
	case hp >= 3 && hp < 4:
		r1, g1, b1 = 0, x, chroma
	case hp >= 4 && hp < 5:
		r1, g1, b1 = x, 0, chroma
	case hp >= 5 && hp < 6:
		r1, g1, b1 = chroma, 0, x
	}

	m := l - chroma/2
	return &Color{R: (r1 + m) * 255, G: (g1 + m) * 255, B: (b1 + m) * 255, A: a}
}

func colorArg(fn string, args []ast.Expression, i int) (*ast.Color, error) {
	if i >= len(args) {
		return nil, argErr(fn, "missing color argument")
	}
	c, ok := args[i].(*ast.Color)
	if !ok {
		return nil, argErr(fn, "expected a color")
	}
	return c, nil
}

func fraction(fn string, args []ast.Expression, i int) (float64, error) {
	n, err := number(fn, args, i)
	if err != nil {
		return 0, err
	}
	if len(n.NumeratorUnits) == 1 && n.NumeratorUnits[0] == "%" {
		return n.Value / 100, nil
	}
	return n.Value, nil
}

func RGB(args []ast.Expression) (ast.Expression, error) {
	r, err := number("rgb", args, 0)
	if err != nil {
		return nil, err
	}
	g, err := number("rgb", args, 1)
	if err != nil {
		return nil, err
	}
	b, err := number("rgb", args, 2)
	if err != nil {
		return nil, err
	}
	return (&Color{R: r.Value, G: g.Value, B: b.Value, A: 1}).toAST(), nil
}

func RGBA(args []ast.Expression) (ast.Expression, error) {
	r, err := number("rgba", args, 0)
	if err != nil {
		return nil, err
	}
	g, err := number("rgba", args, 1)
	if err != nil {
		return nil, err
	}
	b, err := number("rgba", args, 2)
	if err != nil {
		return nil, err
	}
	a, err := number("rgba", args, 3)
	if err != nil {
		return nil, err
	}
	return (&Color{R: r.Value, G: g.Value, B: b.Value, A: a.Value}).toAST(), nil
}

func HSL(args []ast.Expression) (ast.Expression, error) {
	h, err := number("hsl", args, 0)
	if err != nil {
		return nil, err
	}
	s, err := fraction("hsl", args, 1)
	if err != nil {
		return nil, err
	}
	l, err := fraction("hsl", args, 2)
	if err != nil {
		return nil, err
	}
	return HSLToColor(h.Value, s, l, 1).toAST(), nil
}

func HSLA(args []ast.Expression) (ast.Expression, error) {
	h, err := number("hsla", args, 0)
	if err != nil {
		return nil, err
	}
	s, err := fraction("hsla", args, 1)
	if err != nil {
		return nil, err
	}
	l, err := fraction("hsla", args, 2)
	if err != nil {
		return nil, err
	}
	a, err := number("hsla", args, 3)
	if err != nil {
		return nil, err
	}
	return HSLToColor(h.Value, s, l, a.Value).toAST(), nil
}

func Hue(args []ast.Expression) (ast.Expression, error) {
	c, err := colorArg("hue", args, 0)
	if err != nil {
		return nil, err
	}
	h, _, _ := fromAST(c).ToHSL()
	return &ast.Number{Value: h, NumeratorUnits: []string{"deg"}}, nil
}

func Saturation(args []ast.Expression) (ast.Expression, error) {
	c, err := colorArg("saturation", args, 0)
	if err != nil {
		return nil, err
	}
	_, s, _ := fromAST(c).ToHSL()
	return &ast.Number{Value: s * 100, NumeratorUnits: []string{"%"}}, nil
}

func Lightness(args []ast.Expression) (ast.Expression, error) {
	c, err := colorArg("lightness", args, 0)
	if err != nil {
		return nil, err
	}
	_, _, l := fromAST(c).ToHSL()
	return &ast.Number{Value: l * 100, NumeratorUnits: []string{"%"}}, nil
}

func channel(fn string, pick func(*ast.Color) int) Func {
	return func(args []ast.Expression) (ast.Expression, error) {
		c, err := colorArg(fn, args, 0)
		if err != nil {
			return nil, err
		}
		return &ast.Number{Value: float64(pick(c))}, nil
	}
}

func Red(args []ast.Expression) (ast.Expression, error) {
	return channel("red", func(c *ast.Color) int { return c.R })(args)
}

func Green(args []ast.Expression) (ast.Expression, error) {
	return channel("green", func(c *ast.Color) int { return c.G })(args)
}

func Blue(args []ast.Expression) (ast.Expression, error) {
	return channel("blue", func(c *ast.Color) int { return c.B })(args)
}

func Alpha(args []ast.Expression) (ast.Expression, error) {
	c, err := colorArg("alpha", args, 0)
	if err != nil {
		return nil, err
	}
	return &ast.Number{Value: c.A}, nil
}

func hslAdjust(fn string, adjust func(h, s, l, amt float64) (float64, float64, float64)) Func {
	return func(args []ast.Expression) (ast.Expression, error) {
		c, err := colorArg(fn, args, 0)
		if err != nil {
			return nil, err
		}
		amt, err := fraction(fn, args, 1)
		if err != nil {
			return nil, err
		}
		h, s, l := fromAST(c).ToHSL()
		h, s, l = adjust(h, s, l, amt)
		return HSLToColor(h, s, l, c.A).toAST(), nil
	}
}

func Lighten(args []ast.Expression) (ast.Expression, error) {
	return hslAdjust("lighten", func(h, s, l, amt float64) (float64, float64, float64) {
		return h, s, math.Min(1, l+amt)
	})(args)
}

func Darken(args []ast.Expression) (ast.Expression, error) {
	return hslAdjust("darken", func(h, s, l, amt float64) (float64, float64, float64) {
		return h, s, math.Max(0, l-amt)
	})(args)
}

func Saturate(args []ast.Expression) (ast.Expression, error) {
	return hslAdjust("saturate", func(h, s, l, amt float64) (float64, float64, float64) {
		return h, math.Min(1, s+amt), l
	})(args)
}

func Desaturate(args []ast.Expression) (ast.Expression, error) {
	return hslAdjust("desaturate", func(h, s, l, amt float64) (float64, float64, float64) {
		return h, math.Max(0, s-amt), l
	})(args)
}

func Spin(args []ast.Expression) (ast.Expression, error) {
	c, err := colorArg("spin", args, 0)
	if err != nil {
		return nil, err
	}
	deg, err := number("spin", args, 1)
	if err != nil {
		return nil, err
	}
	h, s, l := fromAST(c).ToHSL()
	h = math.Mod(h+deg.Value, 360)
	if h < 0 {
		h += 360
	}
	return HSLToColor(h, s, l, c.A).toAST(), nil
}

func Grayscale(args []ast.Expression) (ast.Expression, error) {
	c, err := colorArg("grayscale", args, 0)
	if err != nil {
		return nil, err
	}
	h, _, l := fromAST(c).ToHSL()
	return HSLToColor(h, 0, l, c.A).toAST(), nil
}

func Fade(args []ast.Expression) (ast.Expression, error) {
	c, err := colorArg("fade", args, 0)
	if err != nil {
		return nil, err
	}
	a, err := fraction("fade", args, 1)
	if err != nil {
		return nil, err
	}
	out := *c
	out.A = a
	return &out, nil
}

func FadeIn(args []ast.Expression) (ast.Expression, error) {
	c, err := colorArg("fadein", args, 0)
	if err != nil {
		return nil, err
	}
	amt, err := fraction("fadein", args, 1)
	if err != nil {
		return nil, err
	}
	out := *c
	out.A = math.Min(1, c.A+amt)
	return &out, nil
}

func FadeOut(args []ast.Expression) (ast.Expression, error) {
	c, err := colorArg("fadeout", args, 0)
	if err != nil {
		return nil, err
	}
	amt, err := fraction("fadeout", args, 1)
	if err != nil {
		return nil, err
	}
	out := *c
	out.A = math.Max(0, c.A-amt)
	return &out, nil
}

func Mix(args []ast.Expression) (ast.Expression, error) {
	a, err := colorArg("mix", args, 0)
	if err != nil {
		return nil, err
	}
	b, err := colorArg("mix", args, 1)
	if err != nil {
		return nil, err
	}
	weight := 0.5
	if len(args) > 2 {
		weight, err = fraction("mix", args, 2)
		if err != nil {
			return nil, err
		}
	}
	ca, cb := fromAST(a), fromAST(b)
	mixed := &Color{
		R: ca.R*weight + cb.R*(1-weight),
		G: ca.G*weight + cb.G*(1-weight),
		B: ca.B*weight + cb.B*(1-weight),
		A: a.A*weight + b.A*(1-weight),
	}
	return mixed.toAST(), nil
}
