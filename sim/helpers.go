package sim

import "math"

// bound clamps x to [lo, hi].
func bound(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// boundProb clamps a probability to [0, 1].
func boundProb(p float64) float64 {
	return bound(p, 0, 1)
}

// sigmoid returns 1 / (1 + e^(-a(x-b))).
func sigmoid(x, a, b float64) float64 {
	return 1 / (1 + math.Exp(-a*(x-b)))
}
