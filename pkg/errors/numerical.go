package errors

import (
	"math"
)

// CheckNumericalStability returns a NumericalInstabilityError when values
// holds a NaN or Inf. iteration is reported as-is.
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// ClipValue clamps value to [lo, hi].
func ClipValue(value, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, value))
}
