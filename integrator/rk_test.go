package integrator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decay is x' = -x, whose exact solution from x(0)=1 is exp(-t).
func decay(t, x, u float64) float64 { return -x }

func decayVec(t float64, x, u []float64) []float64 {
	dot := make([]float64, len(x))
	for i := range x {
		dot[i] = -x[i]
	}
	return dot
}

func globalError(order int, h float64) float64 {
	s, err := New(order, h)
	if err != nil {
		panic(err)
	}
	x := 1.0
	steps := int(math.Round(1 / h))
	for i := 0; i < steps; i++ {
		x = s.Scalar(decay, float64(i)*h, x, 0)
	}
	return math.Abs(x - math.Exp(-1))
}

// TestConvergenceOrder checks that the global error of RK_k at t=1 scales as
// O(h^k) across halved step sizes.
func TestConvergenceOrder(t *testing.T) {
	hs := []float64{0.1, 0.05, 0.025}
	for order := 1; order <= 4; order++ {
		errs := make([]float64, len(hs))
		for i, h := range hs {
			errs[i] = globalError(order, h)
		}
		for i := 1; i < len(hs); i++ {
			slope := math.Log(errs[i-1]/errs[i]) / math.Log(hs[i-1]/hs[i])
			assert.InDelta(t, float64(order), slope, 0.25,
				"RK%d observed order %.3f (errors %v)", order, slope, errs)
		}
	}
}

func TestScalarVectorAgree(t *testing.T) {
	for order := 1; order <= 4; order++ {
		s, err := New(order, 0.01)
		require.NoError(t, err)
		xs := s.Scalar(decay, 0, 1, 0)
		xv := s.Vector(decayVec, 0, []float64{1, 1}, nil)
		assert.Equal(t, xs, xv[0])
		assert.Equal(t, xs, xv[1])
	}
}

func TestVectorInputHeldConstant(t *testing.T) {
	// x' = u: one RK4 step must advance exactly by u*dt.
	f := func(t float64, x, u []float64) []float64 {
		return []float64{u[0]}
	}
	s := NewRK4(0.5)
	got := s.Vector(f, 0, []float64{1}, []float64{3})
	assert.InDelta(t, 2.5, got[0], 1e-12)
}

func TestVectorDoesNotMutateState(t *testing.T) {
	s := NewRK4(0.1)
	x := []float64{1, 2, 3}
	s.Vector(decayVec, 0, x, nil)
	assert.Equal(t, []float64{1, 2, 3}, x)
}

func TestNewRejectsUnknownOrder(t *testing.T) {
	_, err := New(5, 0.1)
	require.Error(t, err)
	_, err = New(0, 0.1)
	require.Error(t, err)
}
