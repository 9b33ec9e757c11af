// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/house-price/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent a displayed price.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ClampNonNegative returns val, or zero when val is negative.
func ClampNonNegative(val float64) float64 {
	return Max(0, val)
}
