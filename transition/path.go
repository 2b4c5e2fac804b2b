// SPDX-License-Identifier: MIT

package transition

import (
	"context"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bewley/assetgrid"
	"github.com/katalvlaran/bewley/distribution"
	"github.com/katalvlaran/bewley/household"
	"github.com/katalvlaran/bewley/income"
	"github.com/katalvlaran/bewley/progress"
)

// massTol bounds the acceptable total-mass drift of one forward push.
const massTol = 1e-9

// Solve computes the transition path of a pure-exchange economy whose
// borrowing limit follows limits[0..T-1], converging to the stationary
// economy at terminalRate.
//
// Contract:
//   - limits must be non-empty; every limit must be finite and leave at
//     least two grid points below the asset cap.
//   - The terminal condition is the stationary household solution at
//     terminalRate on the final grid; its non-convergence is
//     ErrTerminalSolve.
//   - A supplied initial distribution is copied, never mutated.
//   - Exhausting MaxIter returns Converged=false with the last path.
//
// Complexity: O(MaxIter · T · M·N·(M+N)) time, O(T·M·N) memory.
func Solve(ctx context.Context, proc *income.Process, limits []float64, terminalRate float64, opts ...Option) (*Result, error) {
	// Stage 1: validation and per-period grids.
	if proc == nil {
		return nil, household.ErrNilProcess
	}
	horizon := len(limits)
	if horizon == 0 {
		return nil, ErrEmptyHorizon
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Beta <= 0 || o.Beta >= 1 || o.Gamma <= 0 ||
		o.Relax <= 0 || o.Relax > 1 ||
		o.TolPath <= 0 || o.MaxIter < 1 ||
		!(o.RLow < o.RHigh) {
		return nil, ErrInvalidOptions
	}
	if ctx == nil {
		ctx = context.Background()
	}

	grids := make([]assetgrid.Grid, horizon)
	for t, limit := range limits {
		g, err := assetgrid.Build(limit, o.MaxAssets, o.GridPoints, o.LogSpaced)
		if err != nil {
			return nil, fmt.Errorf("%w: period %d: %v", ErrInvalidLimit, t, err)
		}
		grids[t] = g
	}

	var (
		m          = o.GridPoints
		n          = proc.States()
		levels     = proc.Levels()
		transition = proc.Transition()
	)

	// Stage 2: terminal condition on the final grid.
	terminal, err := household.Solve(
		household.Prices{Rate: terminalRate, Wage: 1},
		proc, grids[horizon-1],
		household.WithBeta(o.Beta),
		household.WithGamma(o.Gamma),
		household.WithTolerance(o.TolV, o.MaxIterValue),
	)
	if err != nil {
		return nil, err
	}
	if !terminal.Converged {
		return nil, fmt.Errorf("%w: residual %.3g", ErrTerminalSolve, terminal.Residual)
	}

	// Stage 3: initial cross-section on the period-0 grid.
	initial := mat.NewDense(m, n, nil)
	if o.Initial != nil {
		ir, ic := o.Initial.Dims()
		if ir != m || ic != n {
			return nil, ErrShapeMismatch
		}
		initial.Copy(o.Initial)
	} else {
		uniform := 1 / float64(m*n)
		for i := 0; i < m; i++ {
			for j := 0; j < n; j++ {
				initial.Set(i, j, uniform)
			}
		}
	}

	// Stage 4: outer iteration on the rate path.
	rates := make([]float64, horizon)
	for t := range rates {
		rates[t] = terminalRate
	}
	policies := make([][][]int, horizon)
	excess := make([]float64, horizon)

	var residual float64
	for iter := 1; iter <= o.MaxIter; iter++ {
		if err = ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCanceled, err)
		}

		// Backward induction. Choices at t live on the period t+1 grid;
		// the final period reuses its own grid against the terminal value.
		vNext := terminal.Value
		for t := horizon - 1; t >= 0; t-- {
			choice := grids[horizon-1]
			if t+1 < horizon {
				choice = grids[t+1]
			}
			vNext, policies[t] = bellmanStep(rates[t], grids[t], choice, levels, transition, vNext, o)
		}

		// Forward propagation from the initial cross-section.
		cur := mat.DenseCopyOf(initial)
		for t := 0; t < horizon; t++ {
			excess[t] = distribution.Mean(cur, grids[t]) - o.Bonds
			if t+1 < horizon {
				cur = push(cur, policies[t], transition)
			}
		}

		residual = 0
		for _, e := range excess {
			if a := math.Abs(e); a > residual {
				residual = a
			}
		}
		o.Sink.Observe(progress.Event{Stage: progress.StagePath, Iteration: iter, Residual: residual, Rate: rates[0]})

		if residual < o.TolPath {
			return &Result{
				Rates:      append([]float64(nil), rates...),
				Excess:     append([]float64(nil), excess...),
				Policies:   policies,
				Residual:   residual,
				Iterations: iter,
				Converged:  true,
			}, nil
		}

		// Damped path update: excess demand rises with the rate, so each
		// period's rate moves against its own excess.
		for t := range rates {
			rates[t] = clamp(rates[t]-o.Relax*excess[t], o.RLow, o.RHigh)
		}
	}

	return &Result{
		Rates:      append([]float64(nil), rates...),
		Excess:     append([]float64(nil), excess...),
		Policies:   policies,
		Residual:   residual,
		Iterations: o.MaxIter,
		Converged:  false,
	}, nil
}

// bellmanStep runs one Bellman maximization: current states live on grid,
// choices on choice, continuation values vNext on choice. Same penalty,
// tie-breaking and monotone-scan semantics as the stationary solver.
func bellmanStep(rate float64, grid, choice assetgrid.Grid, levels []float64, transition *mat.Dense, vNext *mat.Dense, o Options) (*mat.Dense, [][]int) {
	var (
		m, n    = grid.Len(), len(levels)
		mc      = choice.Len()
		ev      = mat.NewDense(mc, n, nil)
		v       = mat.NewDense(m, n, nil)
		policy  = make([][]int, m)
		assets  = grid.Values()
		choices = choice.Values()
	)
	ev.Mul(vNext, transition.T())
	for i := range policy {
		policy[i] = make([]int, n)
	}

	for j := 0; j < n; j++ {
		kStart := 0
		for i := 0; i < m; i++ {
			if kStart >= mc {
				kStart = mc - 1
			}
			cash := (1+rate)*assets[i] + levels[j]
			best := math.Inf(-1)
			bestK := kStart
			feasible := false
			for k := kStart; k < mc; k++ {
				c := cash - choices[k]
				cand := household.CRRA(c, o.Gamma) + o.Beta*ev.At(k, j)
				if cand > best {
					best = cand
					bestK = k
					feasible = c > household.MinConsumption
				}
			}
			v.Set(i, j, best)
			policy[i][j] = bestK
			// A fully constrained row's maximizer carries no information
			// about feasible rows above it; only feasible choices tighten
			// the scan start.
			if feasible {
				kStart = bestK
			} else {
				kStart = 0
			}
		}
	}

	return v, policy
}

// push advances a cross-section one period: mass at (i, j) flows to
// (policy[i][j], j') weighted by the income transition. The target is
// freshly zeroed and total mass is asserted, as in the stationary
// distribution iteration.
func push(cur *mat.Dense, policy [][]int, transition *mat.Dense) *mat.Dense {
	m, n := cur.Dims()
	out := mat.NewDense(m, n, nil)
	for i := 0; i < m; i++ {
		for j := 0; j < n; j++ {
			mass := cur.At(i, j)
			if mass == 0 {
				continue
			}
			k := policy[i][j]
			for jp := 0; jp < n; jp++ {
				out.Set(k, jp, out.At(k, jp)+mass*transition.At(j, jp))
			}
		}
	}

	if total := floats.Sum(out.RawMatrix().Data); math.Abs(total-1) > massTol {
		panic(fmt.Sprintf("transition: mass not conserved: %.12g", total))
	}

	return out
}

// clamp bounds x to [lo, hi].
func clamp(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}

	return x
}
