// SPDX-License-Identifier: MIT

package distribution

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bewley/assetgrid"
	"github.com/katalvlaran/bewley/progress"
)

// massTol bounds the acceptable drift of total mass per sweep. Stochastic
// rows and a total policy map conserve mass exactly up to rounding;
// anything beyond this is a defect.
const massTol = 1e-9

// Iterate propagates a distribution over (asset, income) states forward
// under the given policy and income transition until it is stationary.
//
// Contract:
//   - policy must be a rectangular M×N index matrix into [0, M); transition
//     must be N×N. Violations return ErrShapeMismatch or
//     ErrPolicyOutOfRange.
//   - A warm-start distribution supplied via WithInitial is copied; the
//     caller's matrix is never mutated.
//   - Exhausting MaxIter returns Converged=false with the last iterate,
//     never a stale distribution disguised as converged.
//
// Complexity: O(M·N²) per sweep, O(M·N) memory.
func Iterate(policy [][]int, transition *mat.Dense, opts ...Option) (*Result, error) {
	// Stage 1: shape validation.
	m := len(policy)
	if m == 0 || transition == nil {
		return nil, ErrShapeMismatch
	}
	tr, tc := transition.Dims()
	if tr != tc || tr == 0 {
		return nil, ErrShapeMismatch
	}
	n := tr
	for i := range policy {
		if len(policy[i]) != n {
			return nil, ErrShapeMismatch
		}
		for j, k := range policy[i] {
			if k < 0 || k >= m {
				return nil, fmt.Errorf("%w: policy[%d][%d]=%d, grid size %d", ErrPolicyOutOfRange, i, j, k, m)
			}
		}
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.TolD <= 0 || o.MaxIter < 1 {
		return nil, ErrInvalidTolerance
	}

	// Stage 2: seed.
	cur := mat.NewDense(m, n, nil)
	if o.Initial != nil {
		ir, ic := o.Initial.Dims()
		if ir != m || ic != n {
			return nil, ErrShapeMismatch
		}
		if err := checkInitial(o.Initial); err != nil {
			return nil, err
		}
		cur.Copy(o.Initial)
	} else {
		uniform := 1 / float64(m*n)
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				cur.Set(i, j, uniform)
			}
		}
	}

	// Stage 3: forward sweeps.
	var residual float64
	for iter := 1; iter <= o.MaxIter; iter++ {
		// Fresh zero target every sweep: the policy map is many-to-one, so
		// accumulation without a reset would double-count mass.
		next := mat.NewDense(m, n, nil)
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				mass := cur.At(i, j)
				if mass == 0 {
					continue
				}
				k := policy[i][j]
				for jp := 0; jp < n; jp++ {
					next.Set(k, jp, next.At(k, jp)+mass*transition.At(j, jp))
				}
			}
		}

		total := floats.Sum(next.RawMatrix().Data)
		if math.Abs(total-1) > massTol {
			panic(fmt.Sprintf("distribution: mass not conserved: %.12g after sweep %d", total, iter))
		}

		residual = floats.Distance(next.RawMatrix().Data, cur.RawMatrix().Data, math.Inf(1))
		o.Sink.Observe(progress.Event{Stage: progress.StageDistribution, Iteration: iter, Residual: residual})
		cur = next

		if residual < o.TolD {
			return &Result{
				Distribution: cur,
				Iterations:   iter,
				Residual:     residual,
				Converged:    true,
			}, nil
		}
	}

	return &Result{
		Distribution: cur,
		Iterations:   o.MaxIter,
		Residual:     residual,
		Converged:    false,
	}, nil
}

// Mean returns the distribution-weighted mean asset holding, the aggregate
// asset demand of the economy.
func Mean(dist *mat.Dense, grid assetgrid.Grid) float64 {
	m, n := dist.Dims()
	acc := 0.0
	for i := 0; i < m; i++ {
		a := grid.At(i)
		for j := 0; j < n; j++ {
			acc += dist.At(i, j) * a
		}
	}

	return acc
}

// checkInitial rejects warm starts with negative entries or non-unit mass.
// Indexed access keeps the check correct for matrix views whose backing
// stride exceeds the column count.
func checkInitial(initial *mat.Dense) error {
	m, n := initial.Dims()
	total := 0.0
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			v := initial.At(i, j)
			if v < 0 || math.IsNaN(v) {
				return ErrInvalidInitial
			}
			total += v
		}
	}
	if math.Abs(total-1) > massTol {
		return ErrInvalidInitial
	}

	return nil
}
