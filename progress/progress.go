package progress

// Stage identifiers reported in Event.Stage.
const (
	StageValue        = "value"        // household value-function iteration
	StageDistribution = "distribution" // stationary-distribution iteration
	StageBisection    = "bisection"    // equilibrium price bisection
	StagePath         = "path"         // transition-path outer update
)

// Event describes one sweep of an iterative solver.
type Event struct {
	// Stage names the solver layer emitting the event; one of the Stage*
	// constants above.
	Stage string

	// Iteration is the 1-based sweep index within the stage.
	Iteration int

	// Residual is the stage's convergence measure after the sweep:
	// a sup-norm change for the inner solvers, the excess demand for
	// bisection, the worst per-period excess for the path solver.
	Residual float64

	// Rate is the candidate interest rate, set only for the outer stages.
	Rate float64
}

// Sink consumes iteration events.
type Sink interface {
	Observe(Event)
}

// NopSink discards every event. It is the default sink of all solvers.
type NopSink struct{}

// Observe implements Sink.
func (NopSink) Observe(Event) {}

// SinkFunc adapts a plain function to the Sink interface.
type SinkFunc func(Event)

// Observe implements Sink by calling f.
func (f SinkFunc) Observe(e Event) { f(e) }
