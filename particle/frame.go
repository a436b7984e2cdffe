package particle

import "math"

// frameIndex maps an angle onto n evenly sized buckets
func frameIndex(rotation float64, n int) int {
	turn := rotation / (2 * math.Pi)
	turn -= math.Floor(turn)
	idx := int(turn * float64(n))
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

// mirrorAngle reflects a heading across the vertical axis
func mirrorAngle(a float64) float64 {
	return math.Pi - a
}
