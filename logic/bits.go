package logic

import "math"

func realBits(f float64) uint64 {
	return math.Float64bits(f)
}

func realFromBits(b uint64) float64 {
	return math.Float64frombits(b)
}
