package income

import (
	"errors"

	"gonum.org/v1/gonum/mat"
)

// Sentinel errors for AR(1) discretization.
var (
	// ErrInvalidStateCount is returned when fewer than two states are requested.
	ErrInvalidStateCount = errors.New("income: need at least two income states")

	// ErrInvalidPersistence is returned when ρ lies outside (-1, 1).
	ErrInvalidPersistence = errors.New("income: persistence must lie in (-1, 1)")

	// ErrInvalidShockStd is returned when the shock (or baseline) standard
	// deviation is not strictly positive.
	ErrInvalidShockStd = errors.New("income: standard deviation must be positive")

	// ErrDegenerateChain is returned when a transition row underflows to a
	// near-zero sum, or when the stationary vector of the chain cannot be
	// recovered. It indicates the shock deviation is too small relative to
	// the state spread.
	ErrDegenerateChain = errors.New("income: degenerate transition chain")
)

// Option configures Discretize via functional arguments.
type Option func(*Options)

// Options holds the tunables of the discretization.
type Options struct {
	// BaselineStd is the quadrature baseline deviation σ̂ used to place the
	// state grid. Zero selects the Flodén mix w·σ + (1-w)·σ∞, w = 0.5 + ρ/4.
	BaselineStd float64

	// StatTol is the sup-norm tolerance of the stationary-vector power
	// iteration.
	StatTol float64

	// StatMaxIter caps the stationary-vector power iteration.
	StatMaxIter int
}

// DefaultOptions returns the documented defaults: Flodén baseline,
// StatTol=1e-12, StatMaxIter=10000.
func DefaultOptions() Options {
	return Options{
		BaselineStd: 0,
		StatTol:     1e-12,
		StatMaxIter: 10000,
	}
}

// WithBaselineStd overrides the quadrature baseline deviation σ̂.
func WithBaselineStd(s float64) Option {
	return func(o *Options) { o.BaselineStd = s }
}

// WithStationaryTolerance sets the power-iteration tolerance and cap.
func WithStationaryTolerance(tol float64, maxIter int) Option {
	return func(o *Options) {
		o.StatTol = tol
		o.StatMaxIter = maxIter
	}
}

// Process is an immutable discretized income process: n strictly positive
// income levels with stationary mean one, an n×n row-stochastic transition
// matrix, and the chain's stationary probabilities.
type Process struct {
	levels     []float64
	stationary []float64
	transition *mat.Dense
}

// States returns the number of income states n.
func (p *Process) States() int { return len(p.levels) }

// Levels returns a copy of the income levels, ordered low to high.
func (p *Process) Levels() []float64 {
	out := make([]float64, len(p.levels))
	copy(out, p.levels)

	return out
}

// StationaryProbs returns a copy of the stationary probabilities of the chain.
func (p *Process) StationaryProbs() []float64 {
	out := make([]float64, len(p.stationary))
	copy(out, p.stationary)

	return out
}

// Transition returns a copy of the row-stochastic transition matrix.
func (p *Process) Transition() *mat.Dense {
	return mat.DenseCopyOf(p.transition)
}
