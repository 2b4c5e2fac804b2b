package household_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/bewley/assetgrid"
	"github.com/katalvlaran/bewley/household"
	"github.com/katalvlaran/bewley/income"
)

// BenchmarkSolve measures a mid-sized value-function iteration:
// 200 asset points, 7 income states.
func BenchmarkSolve(b *testing.B) {
	proc, err := income.Discretize(7, 0.9, math.Sqrt(0.015), 0)
	if err != nil {
		b.Fatal(err)
	}
	grid, err := assetgrid.Build(-2, 30, 200, true)
	if err != nil {
		b.Fatal(err)
	}
	prices := household.Prices{Rate: 0.02, Wage: 1}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = household.Solve(prices, proc, grid,
			household.WithBeta(0.95),
			household.WithTolerance(1e-5, 5000),
		); err != nil {
			b.Fatal(err)
		}
	}
}
