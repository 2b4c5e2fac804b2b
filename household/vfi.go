// SPDX-License-Identifier: MIT

package household

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bewley/assetgrid"
	"github.com/katalvlaran/bewley/income"
	"github.com/katalvlaran/bewley/progress"
)

// Solve runs value-function iteration for the household problem at the
// given prices.
//
// Contract:
//   - proc must be non-nil and grid must have at least two points.
//   - Options are validated on entry (ErrInvalidDiscount,
//     ErrInvalidRiskAversion, ErrInvalidTolerance).
//   - The returned Result owns its arrays; caller inputs are never mutated.
//   - Exhausting MaxIter returns Converged=false with the last iterate and
//     residual, not an error.
//
// Complexity: O(M·N²) per sweep for the continuation product plus the
// monotone argmax scans, O(M·N) memory per iterate.
func Solve(p Prices, proc *income.Process, grid assetgrid.Grid, opts ...Option) (*Result, error) {
	// Stage 1: validation.
	if proc == nil {
		return nil, ErrNilProcess
	}
	if grid.Len() < 2 {
		return nil, ErrEmptyGrid
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Beta <= 0 || o.Beta >= 1 || math.IsNaN(o.Beta) {
		return nil, ErrInvalidDiscount
	}
	if o.Gamma <= 0 || math.IsNaN(o.Gamma) {
		return nil, ErrInvalidRiskAversion
	}
	if o.TolV <= 0 || o.MaxIter < 1 {
		return nil, ErrInvalidTolerance
	}

	// Stage 2: precompute what never changes across sweeps.
	var (
		m          = grid.Len()
		n          = proc.States()
		assets     = grid.Values()
		levels     = proc.Levels()
		transition = proc.Transition()
	)

	// cash[i*n+j] = (1+r)·a_i + w·y_j, the resources available before the
	// savings choice.
	cash := make([]float64, m*n)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			cash[i*n+j] = (1+p.Rate)*assets[i] + p.Wage*levels[j]
		}
	}

	var (
		vOld   = mat.NewDense(m, n, nil)
		ev     = mat.NewDense(m, n, nil)
		policy = make([][]int, m)
	)
	for i := range policy {
		policy[i] = make([]int, n)
	}

	// Stage 3: Bellman sweeps.
	var residual float64
	for iter := 1; iter <= o.MaxIter; iter++ {
		// Continuation values: EV(k, j) = Σ_{j'} Π(j, j')·V_old(k, j'),
		// i.e. EV = V_old·Πᵀ. The matrix product evaluates the same sums as
		// the explicit loop, just data-parallel across (k, j).
		ev.Mul(vOld, transition.T())

		// vNew is allocated fresh each sweep so the old and new iterates
		// coexist for the convergence check.
		vNew := mat.NewDense(m, n, nil)
		for j := 0; j < n; j++ {
			// Monotone lower bound for the argmax scan within income state j.
			kStart := 0
			for i := 0; i < m; i++ {
				if kStart >= m {
					// A binding upper bound on the scan start reflects a
					// saturated policy, not an error: clip to the last index.
					kStart = m - 1
				}
				best := math.Inf(-1)
				bestK := kStart
				feasible := false
				for k := kStart; k < m; k++ {
					c := cash[i*n+j] - assets[k]
					cand := CRRA(c, o.Gamma) + o.Beta*ev.At(k, j)
					// Strict improvement only: ties keep the lowest index.
					if cand > best {
						best = cand
						bestK = k
						feasible = c > MinConsumption
					}
				}
				vNew.Set(i, j, best)
				policy[i][j] = bestK
				// The maximizer bounds richer rows' scans only when it is a
				// feasible choice: a fully constrained row maximizes the bare
				// continuation value, and that index says nothing about where
				// a feasible row's argmax sits.
				if feasible {
					kStart = bestK
				} else {
					kStart = 0
				}
			}
		}

		residual = floats.Distance(vNew.RawMatrix().Data, vOld.RawMatrix().Data, math.Inf(1))
		o.Sink.Observe(progress.Event{Stage: progress.StageValue, Iteration: iter, Residual: residual})
		vOld = vNew

		if residual < o.TolV {
			return &Result{
				Value:      vOld,
				Policy:     clonePolicy(policy),
				Iterations: iter,
				Residual:   residual,
				Converged:  true,
			}, nil
		}
	}

	return &Result{
		Value:      vOld,
		Policy:     clonePolicy(policy),
		Iterations: o.MaxIter,
		Residual:   residual,
		Converged:  false,
	}, nil
}

// clonePolicy deep-copies the policy matrix so the Result owns its arrays.
func clonePolicy(policy [][]int) [][]int {
	out := make([][]int, len(policy))
	for i, row := range policy {
		out[i] = make([]int, len(row))
		copy(out[i], row)
	}

	return out
}
