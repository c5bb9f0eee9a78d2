package sixdof

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	deg2rad = math.Pi / 180
	rad2deg = 1 / deg2rad
)

// clamp bounds v to [lo, hi]. NaN is passed through unchanged so that invalid
// commands propagate to the NaN check at the end of a step instead of being
// silently absorbed by a saturation limit.
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// angularIndices are the entries of a flat 12-element state held in radians.
var angularIndices = [...]int{3, 4, 5, 7, 8, 9, 10, 11}

// MultiToDeg returns a copy of a flat state vector with its angular entries
// converted to degrees, for human-facing output.
func MultiToDeg(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	for _, i := range angularIndices {
		out[i] *= rad2deg
	}
	return out
}

// WeightedSquareSum returns sum_i w_i * v_i^2 via mat64/BLAS.
func WeightedSquareSum(w, v []float64) float64 {
	sq := make([]float64, len(v))
	floats.MulTo(sq, v, v)
	return mat64.Dot(mat64.NewVector(len(w), w), mat64.NewVector(len(sq), sq))
}

// anyNaN reports whether any element of v is NaN.
func anyNaN(v []float64) bool {
	for _, x := range v {
		if math.IsNaN(x) {
			return true
		}
	}
	return false
}

// StepInput is a step command: init before stepTime, end at and after it.
func StepInput(init, end, stepTime, t float64) float64 {
	if t < stepTime {
		return init
	}
	return end
}
