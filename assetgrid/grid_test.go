package assetgrid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/bewley/assetgrid"
)

// TestBuild_Linear verifies uniform spacing, exact endpoints and strict
// monotonicity of a linear grid.
func TestBuild_Linear(t *testing.T) {
	g, err := assetgrid.Build(-3, 24, 50, false)
	require.NoError(t, err)

	assert.Equal(t, 50, g.Len())
	assert.Equal(t, -3.0, g.At(0), "first point must equal the borrowing limit")
	assert.Equal(t, 24.0, g.Max())
	for i := 1; i < g.Len(); i++ {
		assert.Greater(t, g.At(i), g.At(i-1), "grid must be strictly increasing at %d", i)
	}
}

// TestBuild_LogSpaced verifies that log spacing keeps the exact endpoints,
// stays strictly increasing, and concentrates points near the lower bound.
func TestBuild_LogSpaced(t *testing.T) {
	g, err := assetgrid.Build(-2, 20, 40, true)
	require.NoError(t, err)

	assert.Equal(t, -2.0, g.Min(), "log grid must start exactly at min")
	assert.Equal(t, 20.0, g.Max(), "log grid must end exactly at max")
	for i := 1; i < g.Len(); i++ {
		assert.Greater(t, g.At(i), g.At(i-1), "grid must be strictly increasing at %d", i)
	}

	// Density near the constraint: the first gap must be smaller than the last.
	firstGap := g.At(1) - g.At(0)
	lastGap := g.At(g.Len()-1) - g.At(g.Len()-2)
	assert.Less(t, firstGap, lastGap, "log spacing must be denser near min")
}

// TestBuild_Errors covers the sentinel error paths.
func TestBuild_Errors(t *testing.T) {
	_, err := assetgrid.Build(0, 10, 1, false)
	assert.ErrorIs(t, err, assetgrid.ErrTooFewPoints)

	_, err = assetgrid.Build(5, 5, 10, false)
	assert.ErrorIs(t, err, assetgrid.ErrInvalidBounds, "max == min must be rejected")

	_, err = assetgrid.Build(7, 2, 10, true)
	assert.ErrorIs(t, err, assetgrid.ErrInvalidBounds, "max < min must be rejected")
}

// TestGrid_ValuesIsACopy ensures callers cannot mutate grid internals.
func TestGrid_ValuesIsACopy(t *testing.T) {
	g, err := assetgrid.Build(0, 1, 5, false)
	require.NoError(t, err)

	vs := g.Values()
	vs[0] = 99
	assert.Equal(t, 0.0, g.At(0), "Values must return a defensive copy")
}
