package assetgrid

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrInvalidBounds is returned when max does not strictly exceed min,
	// or when a bound is NaN or infinite.
	ErrInvalidBounds = errors.New("assetgrid: max must strictly exceed min and bounds must be finite")

	// ErrTooFewPoints is returned when fewer than two grid points are requested.
	ErrTooFewPoints = errors.New("assetgrid: need at least two grid points")
)

// Grid is an ordered, strictly increasing sequence of asset holdings.
// The zero Grid is empty and unusable; obtain one via Build.
type Grid struct {
	values []float64
}

// Build constructs a grid of count points on [min, max].
//
// With logSpaced=false the points are uniformly spaced. With logSpaced=true
// the points follow exp(linspace(0, log(max-min+1), count)) - 1 + min, so
// resolution is highest near min (the borrowing limit).
//
// The first point equals min exactly and the sequence is strictly
// increasing. Returns ErrInvalidBounds or ErrTooFewPoints on bad input.
//
// Complexity: O(count) time and memory.
func Build(min, max float64, count int, logSpaced bool) (Grid, error) {
	if count < 2 {
		return Grid{}, ErrTooFewPoints
	}
	if math.IsNaN(min) || math.IsNaN(max) || math.IsInf(min, 0) || math.IsInf(max, 0) || max <= min {
		return Grid{}, ErrInvalidBounds
	}

	values := make([]float64, count)
	if logSpaced {
		// Uniform in u over [0, log(span+1)], then mapped back through
		// exp(u)-1+min. u=0 lands on min exactly; exp is strictly
		// increasing, so ordering is preserved.
		span := max - min
		floats.Span(values, 0, math.Log(span+1))
		for i, u := range values {
			values[i] = math.Exp(u) - 1 + min
		}
		// Pin the endpoints: exp/log round-trips drift by a few ulps.
		values[0] = min
		values[count-1] = max
	} else {
		floats.Span(values, min, max)
	}

	return Grid{values: values}, nil
}

// Len returns the number of grid points.
func (g Grid) Len() int { return len(g.values) }

// At returns the asset level at index i. Panics if i is out of range,
// mirroring slice semantics.
func (g Grid) At(i int) float64 { return g.values[i] }

// Min returns the lowest grid point (the borrowing limit).
func (g Grid) Min() float64 { return g.values[0] }

// Max returns the highest grid point.
func (g Grid) Max() float64 { return g.values[len(g.values)-1] }

// Values returns a copy of the grid points. Mutating the copy does not
// affect the Grid.
func (g Grid) Values() []float64 {
	out := make([]float64, len(g.values))
	copy(out, g.values)

	return out
}
