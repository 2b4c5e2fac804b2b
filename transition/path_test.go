package transition_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bewley/assetgrid"
	"github.com/katalvlaran/bewley/distribution"
	"github.com/katalvlaran/bewley/household"
	"github.com/katalvlaran/bewley/income"
	"github.com/katalvlaran/bewley/transition"
)

// stationaryEconomy solves the stationary benchmark the path tests anchor
// on: rate 0.02, borrowing limit -1, 40-point log grid capped at 12.
func stationaryEconomy(t *testing.T) (*income.Process, *mat.Dense, float64) {
	t.Helper()
	proc, err := income.Discretize(3, 0.6, 0.2, 0)
	require.NoError(t, err)
	grid, err := assetgrid.Build(-1, 12, 40, true)
	require.NoError(t, err)
	hr, err := household.Solve(household.Prices{Rate: 0.02, Wage: 1}, proc, grid,
		household.WithBeta(0.9), household.WithTolerance(1e-9, 10000))
	require.NoError(t, err)
	require.True(t, hr.Converged)
	dr, err := distribution.Iterate(hr.Policy, proc.Transition(),
		distribution.WithTolerance(1e-12, 50000))
	require.NoError(t, err)
	require.True(t, dr.Converged)

	return proc, dr.Distribution, distribution.Mean(dr.Distribution, grid)
}

// TestSolve_StationaryPathIsAFixedPoint starts a constant-limit path from
// the stationary cross-section with the bond supply set to the stationary
// demand. The path must clear immediately with the rate path unchanged.
func TestSolve_StationaryPathIsAFixedPoint(t *testing.T) {
	proc, dist, demand := stationaryEconomy(t)
	limits := []float64{-1, -1, -1, -1}

	res, err := transition.Solve(context.Background(), proc, limits, 0.02,
		transition.WithGrid(12, 40, true),
		transition.WithPreferences(0.9, 2),
		transition.WithBonds(demand),
		transition.WithInitial(dist),
		transition.WithPathUpdate(0.1, -0.5, 0.08, 1e-3, 50),
	)
	require.NoError(t, err)
	require.True(t, res.Converged)

	assert.Equal(t, 1, res.Iterations, "a stationary seed must clear on the first pass")
	require.Len(t, res.Rates, len(limits))
	for t_, r := range res.Rates {
		assert.InDelta(t, 0.02, r, 1e-12, "rate at period %d must stay terminal", t_)
	}
	for t_, e := range res.Excess {
		assert.InDelta(t, 0.0, e, 1e-3, "period %d must clear", t_)
	}
	require.Len(t, res.Policies, len(limits))
}

// TestSolve_TighteningLimitMovesExcess verifies that a credit crunch (the
// limit jumping from -1 toward zero) shows up in the reported excess path:
// constrained agents are forced to save relative to the stationary seed.
func TestSolve_TighteningLimitMovesExcess(t *testing.T) {
	proc, dist, demand := stationaryEconomy(t)

	// Limit tightens from period 1 onward.
	limits := []float64{-1, -0.2, -0.2, -0.2}
	res, err := transition.Solve(context.Background(), proc, limits, 0.02,
		transition.WithGrid(12, 40, true),
		transition.WithPreferences(0.9, 2),
		transition.WithBonds(demand),
		transition.WithInitial(dist),
		// One outer pass: inspect the raw imbalance, not the fixed point.
		transition.WithPathUpdate(0.1, -0.5, 0.08, 1e-9, 1),
	)
	require.NoError(t, err)
	assert.False(t, res.Converged)
	assert.Greater(t, res.Residual, 0.0, "a tightening limit must unbalance the market")
}

// TestSolve_ValidationErrors covers the sentinel error paths.
func TestSolve_ValidationErrors(t *testing.T) {
	proc, dist, _ := stationaryEconomy(t)
	ctx := context.Background()

	_, err := transition.Solve(ctx, proc, nil, 0.02)
	assert.ErrorIs(t, err, transition.ErrEmptyHorizon)

	_, err = transition.Solve(ctx, proc, []float64{50}, 0.02,
		transition.WithGrid(12, 40, true))
	assert.ErrorIs(t, err, transition.ErrInvalidLimit, "limit above the cap must fail")

	_, err = transition.Solve(ctx, proc, []float64{-1}, 0.02,
		transition.WithPreferences(0.9, 2),
		transition.WithPathUpdate(0, -0.5, 0.08, 1e-3, 10))
	assert.ErrorIs(t, err, transition.ErrInvalidOptions, "zero relaxation must fail")

	wrong := mat.NewDense(3, 3, nil)
	_, err = transition.Solve(ctx, proc, []float64{-1}, 0.02,
		transition.WithGrid(12, 40, true),
		transition.WithPreferences(0.9, 2),
		transition.WithInitial(wrong))
	assert.ErrorIs(t, err, transition.ErrShapeMismatch)

	canceled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = transition.Solve(canceled, proc, []float64{-1}, 0.02,
		transition.WithGrid(12, 40, true),
		transition.WithPreferences(0.9, 2),
		transition.WithInitial(dist))
	assert.ErrorIs(t, err, transition.ErrCanceled)
}

// TestSolve_DoesNotMutateInitial ensures the caller's cross-section
// survives the solve untouched.
func TestSolve_DoesNotMutateInitial(t *testing.T) {
	proc, dist, demand := stationaryEconomy(t)
	snapshot := mat.DenseCopyOf(dist)

	_, err := transition.Solve(context.Background(), proc, []float64{-1, -1}, 0.02,
		transition.WithGrid(12, 40, true),
		transition.WithPreferences(0.9, 2),
		transition.WithBonds(demand),
		transition.WithInitial(dist),
		transition.WithPathUpdate(0.1, -0.5, 0.08, 1e-3, 5),
	)
	require.NoError(t, err)
	assert.True(t, mat.Equal(dist, snapshot), "initial cross-section must not be mutated")
}
