package sixdof

import (
	"fmt"
	"math"
	"sort"

	"github.com/gonum/matrix/mat64"
)

// Nelder-Mead coefficients: reflection, expansion, contraction, shrink.
const (
	nmRho   = 1.0
	nmGamma = 2.0
	nmAlpha = 0.5
	nmSigma = 0.5
)

// NelderMeadOptions bounds the simplex search.
type NelderMeadOptions struct {
	MaxFunEvals int
	MaxIter     int
	TolFun      float64
	TolX        float64
}

// DefaultNelderMeadOptions returns the default caps and tolerances.
func DefaultNelderMeadOptions() NelderMeadOptions {
	return NelderMeadOptions{
		MaxFunEvals: 50000,
		MaxIter:     10000,
		TolFun:      1e-10,
		TolX:        1e-10,
	}
}

func (o NelderMeadOptions) String() string {
	return fmt.Sprintf("max_fun_evals: %d, max_iter: %d, tol_fun: %g, tol_x: %g",
		o.MaxFunEvals, o.MaxIter, o.TolFun, o.TolX)
}

// NelderMeadResult is the outcome of a simplex search. Hitting the
// iteration or evaluation cap is not an error; inspect FVal.
type NelderMeadResult struct {
	X        []float64
	FVal     float64
	Iter     int
	FunEvals int
}

func (r NelderMeadResult) String() string {
	return fmt.Sprintf("x: %v, fval: %g, iter: %d, fun_evals: %d", r.X, r.FVal, r.Iter, r.FunEvals)
}

// ObjectiveFunc is a cost function over a free-variable vector. An error
// aborts the whole search.
type ObjectiveFunc func(x []float64) (float64, error)

// NelderMead minimizes f from x0 with the standard
// reflect/expand/contract/shrink simplex method.
func NelderMead(f ObjectiveFunc, x0 []float64, opts *NelderMeadOptions) (*NelderMeadResult, error) {
	options := DefaultNelderMeadOptions()
	if opts != nil {
		options = *opts
	}

	n := len(x0)
	// Initial simplex: x0 plus one vertex per coordinate, perturbed by 5%
	// (or to 0.00025 where the coordinate is zero).
	sim := mat64.NewDense(n+1, n, nil)
	sim.SetRow(0, x0)
	for k := 0; k < n; k++ {
		y := append([]float64(nil), x0...)
		if y[k] != 0 {
			y[k] = 1.05 * y[k]
		} else {
			y[k] = 0.00025
		}
		sim.SetRow(k+1, y)
	}

	fval := make([]float64, n+1)
	funEvals := 1
	iter := 1
	for k := 0; k <= n; k++ {
		v, err := f(mat64.Row(nil, k, sim))
		if err != nil {
			return nil, err
		}
		fval[k] = v
	}
	funEvals += n

	sortSimplex(sim, fval)

	for iter < options.MaxIter && funEvals < options.MaxFunEvals {
		if converged(sim, fval, options) {
			break
		}

		// Centroid of the best n vertices.
		xBar := make([]float64, n)
		for k := 0; k < n; k++ {
			row := mat64.Row(nil, k, sim)
			for j := 0; j < n; j++ {
				xBar[j] += row[j] / float64(n)
			}
		}
		worst := mat64.Row(nil, n, sim)

		xR := combine(xBar, worst, 1+nmRho, -nmRho)
		fR, err := f(xR)
		if err != nil {
			return nil, err
		}
		funEvals++

		doShrink := false
		switch {
		case fR < fval[0]:
			// Best so far: try to expand past the reflection.
			xE := combine(xBar, worst, 1+nmRho*nmGamma, -nmRho*nmGamma)
			fE, err := f(xE)
			if err != nil {
				return nil, err
			}
			funEvals++
			if fE < fR {
				sim.SetRow(n, xE)
				fval[n] = fE
			} else {
				sim.SetRow(n, xR)
				fval[n] = fR
			}
		case fR < fval[n-1]:
			sim.SetRow(n, xR)
			fval[n] = fR
		case fR < fval[n]:
			// Better than the worst only: contract outside.
			xC := combine(xBar, worst, 1+nmAlpha*nmRho, -nmAlpha*nmRho)
			fC, err := f(xC)
			if err != nil {
				return nil, err
			}
			funEvals++
			if fC <= fR {
				sim.SetRow(n, xC)
				fval[n] = fC
			} else {
				doShrink = true
			}
		default:
			// Worse than everything: contract inside.
			xCC := combine(xBar, worst, 1-nmAlpha, nmAlpha)
			fCC, err := f(xCC)
			if err != nil {
				return nil, err
			}
			funEvals++
			if fCC < fval[n] {
				sim.SetRow(n, xCC)
				fval[n] = fCC
			} else {
				doShrink = true
			}
		}

		if doShrink {
			best := mat64.Row(nil, 0, sim)
			for j := 1; j <= n; j++ {
				row := mat64.Row(nil, j, sim)
				for i := range row {
					row[i] = best[i] + nmSigma*(row[i]-best[i])
				}
				sim.SetRow(j, row)
				v, err := f(row)
				if err != nil {
					return nil, err
				}
				fval[j] = v
			}
			funEvals += n
		}

		sortSimplex(sim, fval)
		iter++
	}

	return &NelderMeadResult{
		X:        mat64.Row(nil, 0, sim),
		FVal:     fval[0],
		Iter:     iter,
		FunEvals: funEvals,
	}, nil
}

// combine returns a*x + b*y.
func combine(x, y []float64, a, b float64) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		out[i] = a*x[i] + b*y[i]
	}
	return out
}

// converged checks the dual tolerance: every non-best vertex within TolX of
// the best in the infinity norm, and every value within TolFun of the best.
func converged(sim *mat64.Dense, fval []float64, options NelderMeadOptions) bool {
	n := len(fval) - 1
	best := mat64.Row(nil, 0, sim)
	tolX, tolFun := 0.0, 0.0
	for k := 1; k <= n; k++ {
		row := mat64.Row(nil, k, sim)
		for j := range row {
			tolX = math.Max(tolX, math.Abs(row[j]-best[j]))
		}
		tolFun = math.Max(tolFun, math.Abs(fval[k]-fval[0]))
	}
	return tolFun <= options.TolFun && tolX <= options.TolX
}

// sortSimplex orders the vertices by ascending function value.
func sortSimplex(sim *mat64.Dense, fval []float64) {
	n := len(fval)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return fval[idx[a]] < fval[idx[b]] })

	rows := make([][]float64, n)
	vals := make([]float64, n)
	for i, j := range idx {
		rows[i] = mat64.Row(nil, j, sim)
		vals[i] = fval[j]
	}
	for i := 0; i < n; i++ {
		sim.SetRow(i, rows[i])
		fval[i] = vals[i]
	}
}
