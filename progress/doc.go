// Package progress defines the structured iteration-event sink shared by the
// bewley solvers.
//
// Every iterative kernel (value-function iteration, distribution iteration,
// price bisection, transition-path updates) reports one Event per sweep
// through a caller-supplied Sink instead of writing to a console. Driving
// code decides verbosity and destination: bind a logger, collect events into
// a slice for tests, or pass NopSink to discard them.
//
// Sinks are invoked synchronously from the solver loop; implementations must
// be cheap and must not retain the Event beyond the call.
package progress
