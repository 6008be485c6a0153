package gallery

import "math"

// EuclideanDistance returns the L2 distance between two descriptors. Vectors
// of different lengths are never comparable and yield +Inf.
func EuclideanDistance(a, b []float32) float64 {
	if len(a) != len(b) {
		return math.Inf(1)
	}
	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return math.Sqrt(sum)
}
