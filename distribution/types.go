package distribution

import (
	"errors"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/bewley/progress"
)

// Sentinel errors for distribution iteration.
var (
	// ErrShapeMismatch is returned when the policy, transition matrix and
	// optional initial distribution disagree on dimensions.
	ErrShapeMismatch = errors.New("distribution: policy, transition and initial shapes disagree")

	// ErrPolicyOutOfRange is returned when a policy entry is not a valid
	// asset-grid index.
	ErrPolicyOutOfRange = errors.New("distribution: policy index out of range")

	// ErrInvalidTolerance is returned when a tolerance or iteration cap is
	// not strictly positive.
	ErrInvalidTolerance = errors.New("distribution: tolerance and iteration cap must be positive")

	// ErrInvalidInitial is returned when a supplied initial distribution has
	// negative entries or does not sum to one.
	ErrInvalidInitial = errors.New("distribution: initial distribution must be non-negative with unit mass")
)

// Option configures Iterate via functional arguments.
type Option func(*Options)

// Options holds the convergence tunables of the distribution iteration.
type Options struct {
	// TolD is the sup-norm tolerance on successive distributions.
	TolD float64

	// MaxIter caps the number of sweeps.
	MaxIter int

	// Initial, when non-nil, seeds the iteration (it is copied, never
	// mutated). Nil seeds a uniform distribution.
	Initial *mat.Dense

	// Sink receives one progress.Event per sweep.
	Sink progress.Sink
}

// DefaultOptions returns the documented defaults:
// TolD=1e-10, MaxIter=20000, uniform seed, NopSink.
func DefaultOptions() Options {
	return Options{
		TolD:    1e-10,
		MaxIter: 20000,
		Initial: nil,
		Sink:    progress.NopSink{},
	}
}

// WithTolerance sets the sup-norm tolerance and the sweep cap.
func WithTolerance(tol float64, maxIter int) Option {
	return func(o *Options) {
		o.TolD = tol
		o.MaxIter = maxIter
	}
}

// WithInitial seeds the iteration with a warm-start distribution. The
// matrix is copied before the first sweep.
func WithInitial(initial *mat.Dense) Option {
	return func(o *Options) { o.Initial = initial }
}

// WithProgress registers a sink for per-sweep events.
func WithProgress(sink progress.Sink) Option {
	return func(o *Options) {
		if sink != nil {
			o.Sink = sink
		}
	}
}

// Result is the outcome of one distribution iteration. Distribution is an
// M×N matrix of non-negative probabilities summing to one.
type Result struct {
	Distribution *mat.Dense
	Iterations   int
	Residual     float64
	Converged    bool
}
