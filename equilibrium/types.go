package equilibrium

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bewley/progress"
)

// Sentinel errors for the market-clearing search.
var (
	// ErrNilProcess is returned when the income process is nil.
	ErrNilProcess = errors.New("equilibrium: income process is nil")

	// ErrNilSupplyRule is returned when no supply rule is given.
	ErrNilSupplyRule = errors.New("equilibrium: supply rule is nil")

	// ErrEmptyGrid is returned when the asset grid has fewer than two points.
	ErrEmptyGrid = errors.New("equilibrium: asset grid must have at least two points")

	// ErrInvalidBracket is returned when the price bracket is empty or not
	// finite.
	ErrInvalidBracket = errors.New("equilibrium: price bracket must satisfy rLow < rHigh and be finite")

	// ErrInvalidTolerance is returned when a tolerance or iteration cap is
	// not strictly positive.
	ErrInvalidTolerance = errors.New("equilibrium: tolerance and iteration cap must be positive")

	// ErrInvalidTechnology is returned when Cobb–Douglas parameters are out
	// of range.
	ErrInvalidTechnology = errors.New("equilibrium: invalid production technology parameters")

	// ErrInnerSolve is returned when the household or distribution solver
	// exhausts its budget at a candidate rate. Retry with a relaxed inner
	// tolerance or a larger cap.
	ErrInnerSolve = errors.New("equilibrium: inner solver did not converge")

	// ErrCanceled is returned when the context is canceled between outer
	// iterations.
	ErrCanceled = errors.New("equilibrium: canceled")
)

// betaCeilingShave keeps the default upper bracket bound strictly below the
// complete-markets rate 1/β-1, where asset demand diverges.
const betaCeilingShave = 1e-4

// Option configures Solve via functional arguments.
type Option func(*Options)

// Options holds preferences, bracket bounds and all nested tolerances.
type Options struct {
	// Beta and Gamma are forwarded to the household solver.
	Beta  float64
	Gamma float64

	// RLow and RHigh bracket the candidate rate. RHigh defaults to NaN,
	// which resolves to 1/Beta - 1 - betaCeilingShave at solve time.
	RLow  float64
	RHigh float64

	// TolR is the absolute excess-demand tolerance that defines clearing.
	TolR float64

	// MaxIter caps the number of bisection steps.
	MaxIter int

	// TolV and MaxIterValue tune the inner value-function iteration.
	TolV         float64
	MaxIterValue int

	// TolD and MaxIterDist tune the inner distribution iteration.
	TolD        float64
	MaxIterDist int

	// Sink receives one progress.Event per bisection step; it is also
	// forwarded to the inner solvers.
	Sink progress.Sink
}

// DefaultOptions returns the documented defaults: Beta=0.96, Gamma=2,
// bracket [-1, 1/β-1), TolR=1e-3, MaxIter=64, inner tolerances 1e-6/1e-10.
func DefaultOptions() Options {
	return Options{
		Beta:         0.96,
		Gamma:        2,
		RLow:         -1,
		RHigh:        math.NaN(),
		TolR:         1e-3,
		MaxIter:      64,
		TolV:         1e-6,
		MaxIterValue: 5000,
		TolD:         1e-10,
		MaxIterDist:  20000,
		Sink:         progress.NopSink{},
	}
}

// WithPreferences sets the discount factor and risk aversion forwarded to
// the household solver.
func WithPreferences(beta, gamma float64) Option {
	return func(o *Options) {
		o.Beta = beta
		o.Gamma = gamma
	}
}

// WithBracket sets the price bracket [rLow, rHigh].
func WithBracket(rLow, rHigh float64) Option {
	return func(o *Options) {
		o.RLow = rLow
		o.RHigh = rHigh
	}
}

// WithClearingTolerance sets the excess-demand tolerance and the bisection
// step cap.
func WithClearingTolerance(tol float64, maxIter int) Option {
	return func(o *Options) {
		o.TolR = tol
		o.MaxIter = maxIter
	}
}

// WithValueTolerance tunes the inner value-function iteration.
func WithValueTolerance(tol float64, maxIter int) Option {
	return func(o *Options) {
		o.TolV = tol
		o.MaxIterValue = maxIter
	}
}

// WithDistributionTolerance tunes the inner distribution iteration.
func WithDistributionTolerance(tol float64, maxIter int) Option {
	return func(o *Options) {
		o.TolD = tol
		o.MaxIterDist = maxIter
	}
}

// WithProgress registers a sink for per-step events.
func WithProgress(sink progress.Sink) Option {
	return func(o *Options) {
		if sink != nil {
			o.Sink = sink
		}
	}
}

// Result is the outcome of the market-clearing search. When Converged is
// false the fields hold the last bisection iterate and its residual.
type Result struct {
	// Rate is the (candidate) equilibrium interest rate.
	Rate float64

	// Aggregate is the distribution-weighted mean asset holding at Rate.
	Aggregate float64

	// Residual is the excess demand at Rate.
	Residual float64

	Iterations int
	Converged  bool

	// Value, Policy and Distribution are the inner solutions at Rate.
	Value        *mat.Dense
	Policy       [][]int
	Distribution *mat.Dense
}
