package vmath

import "math"

// Seed returns a deterministic pseudo-random value in [0, 1) for index i on channel k
// Identical inputs always produce bit-identical output
func Seed(i, k int) float64 {
	x := float64(i)*12.9898 + float64(k)*78.233
	return Fract(math.Sin(x) * 43758.5453)
}

// SeedSigned maps Seed(i, k) into [-1, 1)
func SeedSigned(i, k int) float64 {
	return Seed(i, k)*2 - 1
}
