// Package units holds the unit-conversion tables shared by the evaluator
// (number arithmetic) and the functions package (the unit()/comparable()
// introspection builtins), so neither has to import the other just to ask
// "are these two units the same dimension?".
package units

import "strings"

// Factors groups convertible units by dimension. The ratios are re-derived
// from documented CSS unit conversions (the original_source units.cpp
// tables are not present in the retrieval pack).
var Factors = map[string]struct {
	Dimension string
	Factor    float64 // multiply by this to convert to the dimension's base unit
}{
	// length, base = px
	"px": {"length", 1},
	"cm": {"length", 96.0 / 2.54},
	"mm": {"length", 96.0 / 25.4},
	"q":  {"length", 96.0 / 101.6},
	"in": {"length", 96},
	"pt": {"length", 96.0 / 72.0},
	"pc": {"length", 16},
	// angle, base = deg
	"deg":  {"angle", 1},
	"grad": {"angle", 0.9},
	"rad":  {"angle", 180.0 / 3.141592653589793},
	"turn": {"angle", 360},
	// time, base = s
	"s":  {"time", 1},
	"ms": {"time", 0.001},
	// frequency, base = hz
	"hz":  {"frequency", 1},
	"khz": {"frequency", 1000},
	// resolution, base = dpi
	"dpi":  {"resolution", 1},
	"dpcm": {"resolution", 2.54},
	"dppx": {"resolution", 96},
}

// Normalize lowercases a unit for table lookup.
func Normalize(u string) string { return strings.ToLower(u) }

// Convertible reports the conversion dimension and factor for u, if any.
// Units outside the known dimension tables (%, em, rem, vw, ch, ...) are
// only compatible with an identical unit string.
func Convertible(u string) (dimension string, factor float64, ok bool) {
	e, ok := Factors[Normalize(u)]
	return e.Dimension, e.Factor, ok
}

// Compatible reports whether a and b can be added/compared directly, and if
// so returns the factor to multiply a "b-unit" value by to express it in
// a's unit.
func Compatible(a, b string) (factor float64, ok bool) {
	if Normalize(a) == Normalize(b) {
		return 1, true
	}
	da, fa, oka := Convertible(a)
	db, fb, okb := Convertible(b)
	if !oka || !okb || da != db {
		return 0, false
	}
	return fb / fa, true
}

// Cancel removes matching unit/unit pairs between numerator and denominator
// vectors (used after multiplication/division), returning the simplified
// vectors.
func Cancel(num, den []string) ([]string, []string) {
	outNum := make([]string, 0, len(num))
	usedDen := make([]bool, len(den))
	for _, n := range num {
		canceled := false
		for i, d := range den {
			if !usedDen[i] && Normalize(n) == Normalize(d) {
				usedDen[i] = true
				canceled = true
				break
			}
		}
		if !canceled {
			outNum = append(outNum, n)
		}
	}
	outDen := make([]string, 0, len(den))
	for i, d := range den {
		if !usedDen[i] {
			outDen = append(outDen, d)
		}
	}
	return outNum, outDen
}

// Primary returns a number's single simple unit (one numerator, no
// denominator), or "" if it is unitless or compound (px*s, px/s, ...).
func Primary(numerator, denominator []string) string {
	if len(numerator) == 1 && len(denominator) == 0 {
		return numerator[0]
	}
	return ""
}

// String renders a unit vector pair the way a diagnostic or unit()
// introspection call does: numerator units concatenated, then a '/' and
// the denominator units if any, or "<no unit>" if both are empty.
func String(numerator, denominator []string) string {
	s := ""
	for _, u := range numerator {
		s += u
	}
	if len(denominator) > 0 {
		s += "/"
		for _, u := range denominator {
			s += u
		}
	}
	if s == "" {
		return "<no unit>"
	}
	return s
}
