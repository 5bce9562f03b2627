// Package units provides shared conversion and rounding helpers for pose data.
package units

import "math"

// MillimetersPerMeter converts captured translational data (meters) into the
// millimeter scale used throughout analysis.
const MillimetersPerMeter = 1000.0

// RoundDecimals is the precision applied after every conditioning stage.
// Vision-derived poses carry no meaningful signal past four decimals.
const RoundDecimals = 4

// MetersToMillimeters converts a translational measurement from meters to mm.
func MetersToMillimeters(m float64) float64 {
	return m * MillimetersPerMeter
}

// Round rounds v to RoundDecimals decimal places.
func Round(v float64) float64 {
	return RoundTo(v, RoundDecimals)
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, decimals int) float64 {
	mult := math.Pow(10, float64(decimals))
	return math.Round(v*mult) / mult
}
