// Package sed: sentinel errors and numeric helpers.
package sed

import (
	"errors"
	"math"
	"math/rand"
)

// ErrIncompletePath indicates a backtrace walk failed to reach the end of
// both sequences; with a pure cost kernel this cannot happen.
var ErrIncompletePath = errors.New("sed: backtrace walk incomplete")

// validCost reports whether a kernel result satisfies the numeric policy;
// the comparison is false for NaN as well as for negative values.
func validCost(c float64) bool { return c >= 0 }

// almostEqual reports co-optimality of two costs under the shared
// relative+absolute tolerance.
func almostEqual(a, b float64) bool {
	const eps = 1e-9
	scale := 1.0
	if abs := math.Abs(a); abs > scale {
		scale = abs
	}
	if abs := math.Abs(b); abs > scale {
		scale = abs
	}

	return math.Abs(a-b) <= eps*scale
}

// drawWeighted samples an index proportional to the given non-negative
// weights. rng == nil uses the shared global source.
func drawWeighted(rng *rand.Rand, weights []float64) int {
	var total float64
	for _, w := range weights {
		total += w
	}
	var r float64
	if rng != nil {
		r = rng.Float64() * total
	} else {
		r = rand.Float64() * total
	}
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		r -= w
		if r <= 0 {
			return i
		}
	}
	// Numerical slack: fall back to the last positive weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}

	return 0
}
