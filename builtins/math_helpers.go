package builtins

import (
	"math"

	"github.com/example/jsgo/runtime"
)

func math_NaN() float64              { return math.NaN() }
func math_Inf(sign int) float64      { return math.Inf(sign) }
func isNaN(f float64) bool           { return math.IsNaN(f) }
func isInf(f float64, sign int) bool { return math.IsInf(f, sign) }
func math_Floor(f float64) float64   { return math.Floor(f) }
func math_Abs(f float64) float64     { return math.Abs(f) }
func math_Min(a, b float64) float64  { return math.Min(a, b) }
func math_Max(a, b float64) float64  { return math.Max(a, b) }

// parseStringToNumber shares runtime.StringToNumber's radix-prefix and
// Infinity-literal handling rather than re-implementing StringToNumber here.
func parseStringToNumber(s string) float64 {
	return runtime.StringToNumber(s)
}
