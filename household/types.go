package household

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bewley/progress"
)

// Sentinel errors for the household solver.
var (
	// ErrNilProcess is returned when the income process is nil.
	ErrNilProcess = errors.New("household: income process is nil")

	// ErrEmptyGrid is returned when the asset grid has fewer than two points.
	ErrEmptyGrid = errors.New("household: asset grid must have at least two points")

	// ErrInvalidDiscount is returned when β lies outside (0, 1).
	ErrInvalidDiscount = errors.New("household: discount factor must lie in (0, 1)")

	// ErrInvalidRiskAversion is returned when γ is not strictly positive.
	ErrInvalidRiskAversion = errors.New("household: risk aversion must be positive")

	// ErrInvalidTolerance is returned when a tolerance or iteration cap is
	// not strictly positive.
	ErrInvalidTolerance = errors.New("household: tolerance and iteration cap must be positive")
)

// Prices carries the prices a household takes as given: the net interest
// rate and the wage per efficiency unit of labor. Endowment economies use
// Wage=1 so income levels enter the budget directly.
type Prices struct {
	Rate float64
	Wage float64
}

// Option configures Solve via functional arguments.
type Option func(*Options)

// Options holds the preference parameters and convergence tunables of the
// value-function iteration.
type Options struct {
	// Beta is the discount factor, in (0, 1).
	Beta float64

	// Gamma is the CRRA risk-aversion coefficient, > 0. Gamma=1 selects
	// log utility.
	Gamma float64

	// TolV is the sup-norm tolerance on successive value functions.
	TolV float64

	// MaxIter caps the number of Bellman sweeps.
	MaxIter int

	// Sink receives one progress.Event per sweep.
	Sink progress.Sink
}

// DefaultOptions returns the documented defaults:
// Beta=0.96, Gamma=2, TolV=1e-6, MaxIter=5000, NopSink.
func DefaultOptions() Options {
	return Options{
		Beta:    0.96,
		Gamma:   2,
		TolV:    1e-6,
		MaxIter: 5000,
		Sink:    progress.NopSink{},
	}
}

// WithBeta sets the discount factor.
func WithBeta(beta float64) Option {
	return func(o *Options) { o.Beta = beta }
}

// WithGamma sets the risk-aversion coefficient.
func WithGamma(gamma float64) Option {
	return func(o *Options) { o.Gamma = gamma }
}

// WithTolerance sets the sup-norm tolerance and the sweep cap.
func WithTolerance(tol float64, maxIter int) Option {
	return func(o *Options) {
		o.TolV = tol
		o.MaxIter = maxIter
	}
}

// WithProgress registers a sink for per-sweep events.
func WithProgress(sink progress.Sink) Option {
	return func(o *Options) {
		if sink != nil {
			o.Sink = sink
		}
	}
}

// Result is the outcome of one value-function iteration.
//
// Value maps (asset index, income index) to expected lifetime utility;
// Policy maps the same pair to the chosen next-period asset index. When the
// sweep cap is exhausted, Converged is false and Value/Policy hold the
// best-so-far iterate together with its residual.
type Result struct {
	Value      *mat.Dense
	Policy     [][]int
	Iterations int
	Residual   float64
	Converged  bool
}
