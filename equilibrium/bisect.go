// SPDX-License-Identifier: MIT

package equilibrium

import (
	"context"
	"fmt"
	"math"

	"github.com/katalvlaran/bewley/assetgrid"
	"github.com/katalvlaran/bewley/distribution"
	"github.com/katalvlaran/bewley/household"
	"github.com/katalvlaran/bewley/income"
	"github.com/katalvlaran/bewley/progress"
)

// Solve bisects on the interest rate until the asset market clears.
//
// Contract:
//   - proc, grid and rule must be valid; Options are validated on entry,
//     including any CobbDouglas technology passed as the rule.
//   - Each candidate rate triggers a full household solve followed by a
//     distribution iteration; their inner state never leaks across
//     candidates (each starts from scratch).
//   - |excess| < TolR terminates with Converged=true. Exhausting MaxIter
//     returns Converged=false carrying the last iterate and residual.
//   - ctx is consulted between outer iterations only; a canceled context
//     surfaces as ErrCanceled.
//
// Complexity: MaxIter outer steps, each dominated by the two inner solves.
func Solve(ctx context.Context, proc *income.Process, grid assetgrid.Grid, rule SupplyRule, opts ...Option) (*Result, error) {
	// Stage 1: validation.
	if proc == nil {
		return nil, ErrNilProcess
	}
	if grid.Len() < 2 {
		return nil, ErrEmptyGrid
	}
	if rule == nil {
		return nil, ErrNilSupplyRule
	}
	if cd, ok := rule.(CobbDouglas); ok {
		if err := cd.Validate(); err != nil {
			return nil, err
		}
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Beta <= 0 || o.Beta >= 1 {
		return nil, household.ErrInvalidDiscount
	}
	if math.IsNaN(o.RHigh) {
		o.RHigh = 1/o.Beta - 1 - betaCeilingShave
	}
	if !(o.RLow < o.RHigh) || math.IsInf(o.RLow, 0) || math.IsInf(o.RHigh, 0) {
		return nil, ErrInvalidBracket
	}
	if o.TolR <= 0 || o.MaxIter < 1 {
		return nil, ErrInvalidTolerance
	}
	if ctx == nil {
		ctx = context.Background()
	}

	// The transition matrix is price-invariant; copy it once for the
	// distribution solves.
	transition := proc.Transition()

	// Stage 2: bisection.
	var (
		lo, hi = o.RLow, o.RHigh
		last   Result
	)
	for iter := 1; iter <= o.MaxIter; iter++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCanceled, err)
		}

		r := (lo + hi) / 2

		hr, err := household.Solve(
			household.Prices{Rate: r, Wage: rule.Wage(r)},
			proc, grid,
			household.WithBeta(o.Beta),
			household.WithGamma(o.Gamma),
			household.WithTolerance(o.TolV, o.MaxIterValue),
			household.WithProgress(o.Sink),
		)
		if err != nil {
			return nil, err
		}
		if !hr.Converged {
			return nil, fmt.Errorf("%w: value iteration at rate %.6g, residual %.3g", ErrInnerSolve, r, hr.Residual)
		}

		dr, err := distribution.Iterate(hr.Policy, transition,
			distribution.WithTolerance(o.TolD, o.MaxIterDist),
			distribution.WithProgress(o.Sink),
		)
		if err != nil {
			return nil, err
		}
		if !dr.Converged {
			return nil, fmt.Errorf("%w: distribution iteration at rate %.6g, residual %.3g", ErrInnerSolve, r, dr.Residual)
		}

		demand := distribution.Mean(dr.Distribution, grid)
		excess := demand - rule.Supply(r)
		o.Sink.Observe(progress.Event{Stage: progress.StageBisection, Iteration: iter, Residual: excess, Rate: r})

		last = Result{
			Rate:         r,
			Aggregate:    demand,
			Residual:     excess,
			Iterations:   iter,
			Value:        hr.Value,
			Policy:       hr.Policy,
			Distribution: dr.Distribution,
		}
		if math.Abs(excess) < o.TolR {
			last.Converged = true

			return &last, nil
		}

		// Monotone bracket update: excess demand rises with the rate, so
		// too much desired saving means the price must fall.
		if excess > 0 {
			hi = r
		} else {
			lo = r
		}
	}

	return &last, nil
}
