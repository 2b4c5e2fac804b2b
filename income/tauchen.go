// SPDX-License-Identifier: MIT

package income

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/integrate/quad"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// minRowMass is the smallest acceptable unnormalized transition-row sum.
// Anything below it means the conditional densities underflowed.
const minRowMass = 1e-12

// Discretize approximates the AR(1) process
//
//	log y' = (1-ρ)·μ + ρ·log y + ε,  ε ~ N(0, σ²)
//
// by an n-state Markov chain via Tauchen–Hussey quadrature.
//
// Contract:
//   - n ≥ 2, ρ ∈ (-1, 1), σ > 0; violations return the matching sentinel.
//   - The returned transition matrix is row-stochastic with non-negative
//     entries; the returned levels are strictly positive with stationary
//     mean exactly one.
//   - Rows whose unnormalized mass underflows surface ErrDegenerateChain.
//
// Complexity: O(n²) time for the transition build plus the power iteration,
// O(n²) memory.
func Discretize(n int, rho, sigma, mu float64, opts ...Option) (*Process, error) {
	// Stage 1: parameter validation.
	if n < 2 {
		return nil, ErrInvalidStateCount
	}
	if rho <= -1 || rho >= 1 || math.IsNaN(rho) {
		return nil, ErrInvalidPersistence
	}
	if sigma <= 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, ErrInvalidShockStd
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.BaselineStd < 0 {
		return nil, ErrInvalidShockStd
	}

	// Stage 2: state grid on the scaled Gauss–Hermite nodes.
	sigmaInf := sigma / math.Sqrt(1-rho*rho)
	baseline := o.BaselineStd
	if baseline == 0 {
		w := 0.5 + rho/4
		baseline = w*sigma + (1-w)*sigmaInf
	}

	nodes := make([]float64, n)
	weights := make([]float64, n)
	quad.Hermite{}.FixedLocations(nodes, weights, math.Inf(-1), math.Inf(1))

	grid := make([]float64, n)
	for q, x := range nodes {
		grid[q] = mu + math.Sqrt2*baseline*x
	}

	// Stage 3: transition rows. Each row i weights the likelihood ratio of
	// the conditional AR(1) law against the baseline density the nodes were
	// drawn from, then normalizes the row to one. The baseline denominator
	// cancels the e^(-x²) factor carried by the raw Gauss–Hermite weights;
	// without it the chain loses persistence. A vanishing row sum is a
	// degenerate chain, never a division by zero.
	base := distuv.Normal{Mu: mu, Sigma: baseline}
	transition := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		cond := distuv.Normal{Mu: (1-rho)*mu + rho*grid[i], Sigma: sigma}
		rowSum := 0.0
		for j := 0; j < n; j++ {
			p := weights[j] * cond.Prob(grid[j]) / base.Prob(grid[j])
			transition.Set(i, j, p)
			rowSum += p
		}
		if rowSum < minRowMass {
			return nil, ErrDegenerateChain
		}
		for j := 0; j < n; j++ {
			transition.Set(i, j, transition.At(i, j)/rowSum)
		}
	}

	// Stage 4: stationary probabilities (unit-eigenvalue left eigenvector)
	// and mean-one level normalization.
	stationary, err := stationaryVector(transition, o.StatTol, o.StatMaxIter)
	if err != nil {
		return nil, err
	}

	levels := make([]float64, n)
	for j, g := range grid {
		levels[j] = math.Exp(g)
	}
	mean := floats.Dot(stationary, levels)
	if mean <= 0 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, ErrDegenerateChain
	}
	for j := range levels {
		levels[j] /= mean
	}

	return &Process{
		levels:     levels,
		stationary: stationary,
		transition: transition,
	}, nil
}

// stationaryVector computes the stationary distribution π̄ of a
// row-stochastic matrix by power iteration on π' = π·Π, starting from the
// uniform vector. Convergence is sup-norm below tol; exhausting maxIter
// returns ErrDegenerateChain.
func stationaryVector(transition *mat.Dense, tol float64, maxIter int) ([]float64, error) {
	n, _ := transition.Dims()
	cur := make([]float64, n)
	next := make([]float64, n)
	for j := range cur {
		cur[j] = 1 / float64(n)
	}

	for iter := 0; iter < maxIter; iter++ {
		for j := 0; j < n; j++ {
			acc := 0.0
			for i := 0; i < n; i++ {
				acc += cur[i] * transition.At(i, j)
			}
			next[j] = acc
		}
		if floats.Distance(cur, next, math.Inf(1)) < tol {
			// Renormalize once to absorb accumulated rounding.
			total := floats.Sum(next)
			if total < minRowMass {
				return nil, ErrDegenerateChain
			}
			out := make([]float64, n)
			for j := range out {
				out[j] = next[j] / total
			}

			return out, nil
		}
		cur, next = next, cur
	}

	return nil, ErrDegenerateChain
}
