package vmath

import "math"

// Fixed-point grids emulated on float64
// FP16 carries x/y position and velocity (1/128 steps), FP32 carries z (1/65536 steps)
const (
	FP16Scale = 0x80
	FP32Scale = 0x10000

	FP16Step = 1.0 / FP16Scale
	FP32Step = 1.0 / FP32Scale
)

// ZVelocityMax is the forward speed ceiling in tiles per frame
const ZVelocityMax = 0x2AAA / 65536.0

// TruncToward drops the fractional part of n toward zero
// Matches the signed floor the original binary applied to negative magnitudes
func TruncToward(n float64) float64 {
	if n >= 0 {
		return math.Floor(n)
	}
	return -math.Floor(-n)
}

// RoundFP16 truncates x toward zero onto the 1/128 grid
func RoundFP16(x float64) float64 {
	return TruncToward(x*FP16Scale) / FP16Scale
}

// RoundFP32 truncates x toward zero onto the 1/65536 grid
func RoundFP32(x float64) float64 {
	return TruncToward(x*FP32Scale) / FP32Scale
}

// FloorFP16 floors x onto the 1/128 grid
func FloorFP16(x float64) float64 {
	return math.Floor(x*FP16Scale) / FP16Scale
}

// FloorFP32 floors x onto the 1/65536 grid
func FloorFP32(x float64) float64 {
	return math.Floor(x*FP32Scale) / FP32Scale
}

// RoundHalfUp rounds to the nearest integer, ties toward +Inf
func RoundHalfUp(n float64) float64 {
	return math.Floor(n + 0.5)
}

// SnapFP16 moves x to the nearest 1/128 step
func SnapFP16(x float64) float64 {
	return RoundHalfUp(x*FP16Scale) / FP16Scale
}

// SnapFP32 moves x to the nearest 1/65536 step
func SnapFP32(x float64) float64 {
	return RoundHalfUp(x*FP32Scale) / FP32Scale
}

// ClampZVelocity bounds z to [0, ZVelocityMax]; the craft never reverses
func ClampZVelocity(z float64) float64 {
	return math.Min(math.Max(0.0, z), ZVelocityMax)
}
