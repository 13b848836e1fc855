package evaluator

import "github.com/titpetric/stylesc/units"

// unitsCompatible and cancelUnits delegate to the shared units package so
// the functions package's unit()/comparable() builtins can use the same
// conversion tables without evaluator importing functions importing
// evaluator in a cycle.
func unitsCompatible(a, b string) (float64, bool) { return units.Compatible(a, b) }

func cancelUnits(num, den []string) ([]string, []string) { return units.Cancel(num, den) }
