package transition

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bewley/progress"
)

// Sentinel errors for the transition-path solver.
var (
	// ErrEmptyHorizon is returned when no per-period borrowing limits are
	// supplied.
	ErrEmptyHorizon = errors.New("transition: horizon must cover at least one period")

	// ErrInvalidLimit is returned when a borrowing limit is not finite or
	// does not leave room below the asset cap.
	ErrInvalidLimit = errors.New("transition: borrowing limit must be finite and below the asset cap")

	// ErrInvalidOptions is returned when preferences, tolerances or the
	// relaxation weight are out of range.
	ErrInvalidOptions = errors.New("transition: invalid solver options")

	// ErrTerminalSolve is returned when the terminal stationary household
	// problem does not converge.
	ErrTerminalSolve = errors.New("transition: terminal household solve did not converge")

	// ErrShapeMismatch is returned when a supplied initial distribution does
	// not match the period-0 grid.
	ErrShapeMismatch = errors.New("transition: initial distribution shape mismatch")

	// ErrCanceled is returned when the context is canceled between outer
	// iterations.
	ErrCanceled = errors.New("transition: canceled")
)

// Option configures Solve via functional arguments.
type Option func(*Options)

// Options holds the grid, preference and path-update tunables.
type Options struct {
	// MaxAssets, GridPoints and LogSpaced shape the per-period asset grids;
	// every period shares the cap and point count while the lower bound
	// follows the limit path.
	MaxAssets  float64
	GridPoints int
	LogSpaced  bool

	// Beta and Gamma are the household preferences.
	Beta  float64
	Gamma float64

	// Bonds is the fixed per-period net asset supply to clear against.
	Bonds float64

	// Relax is the damping weight of the path update, in (0, 1].
	Relax float64

	// RLow and RHigh clamp the updated rates.
	RLow  float64
	RHigh float64

	// TolPath is the worst-period excess-demand tolerance that defines a
	// cleared path.
	TolPath float64

	// MaxIter caps the outer path updates.
	MaxIter int

	// TolV and MaxIterValue tune the terminal stationary household solve.
	TolV         float64
	MaxIterValue int

	// Initial, when non-nil, is the period-0 cross-section over
	// (asset, income) states on the period-0 grid; it is copied. Nil seeds
	// a uniform distribution.
	Initial *mat.Dense

	// Sink receives one progress.Event per outer iteration.
	Sink progress.Sink
}

// DefaultOptions returns the documented defaults: a 100-point log-spaced
// grid capped at 24, Beta=0.96, Gamma=2, zero bonds, Relax=0.1,
// rate clamp [-0.5, 1/β-1), TolPath=1e-3, MaxIter=500.
func DefaultOptions() Options {
	return Options{
		MaxAssets:    24,
		GridPoints:   100,
		LogSpaced:    true,
		Beta:         0.96,
		Gamma:        2,
		Bonds:        0,
		Relax:        0.1,
		RLow:         -0.5,
		RHigh:        1/0.96 - 1 - 1e-4,
		TolPath:      1e-3,
		MaxIter:      500,
		TolV:         1e-6,
		MaxIterValue: 10000,
		Initial:      nil,
		Sink:         progress.NopSink{},
	}
}

// WithGrid shapes the per-period asset grids.
func WithGrid(maxAssets float64, points int, logSpaced bool) Option {
	return func(o *Options) {
		o.MaxAssets = maxAssets
		o.GridPoints = points
		o.LogSpaced = logSpaced
	}
}

// WithPreferences sets the discount factor and risk aversion.
func WithPreferences(beta, gamma float64) Option {
	return func(o *Options) {
		o.Beta = beta
		o.Gamma = gamma
	}
}

// WithBonds sets the fixed per-period net asset supply.
func WithBonds(bonds float64) Option {
	return func(o *Options) { o.Bonds = bonds }
}

// WithPathUpdate sets the damping weight, rate clamp, tolerance and outer
// iteration cap of the path update.
func WithPathUpdate(relax, rLow, rHigh, tol float64, maxIter int) Option {
	return func(o *Options) {
		o.Relax = relax
		o.RLow = rLow
		o.RHigh = rHigh
		o.TolPath = tol
		o.MaxIter = maxIter
	}
}

// WithTerminalTolerance tunes the terminal stationary household solve.
func WithTerminalTolerance(tol float64, maxIter int) Option {
	return func(o *Options) {
		o.TolV = tol
		o.MaxIterValue = maxIter
	}
}

// WithInitial seeds the period-0 cross-section. The matrix is copied.
func WithInitial(initial *mat.Dense) Option {
	return func(o *Options) { o.Initial = initial }
}

// WithProgress registers a sink for per-iteration events.
func WithProgress(sink progress.Sink) Option {
	return func(o *Options) {
		if sink != nil {
			o.Sink = sink
		}
	}
}

// Result is the outcome of the path search. When Converged is false the
// fields hold the last iterate.
type Result struct {
	// Rates is the interest-rate path, one entry per period.
	Rates []float64

	// Excess is the per-period excess demand under Rates.
	Excess []float64

	// Policies maps each period to its M×N next-asset index matrix; period
	// t indices point into the period t+1 grid (the last period points into
	// its own grid).
	Policies [][][]int

	// Residual is the worst absolute per-period excess.
	Residual float64

	Iterations int
	Converged  bool
}
