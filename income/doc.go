// Package income discretizes a continuous AR(1) log-income process into a
// finite Markov chain using the Tauchen–Hussey quadrature method.
//
// The process
//
//	log y' = (1-ρ)·μ + ρ·log y + ε,  ε ~ N(0, σ²)
//
// is approximated by n states placed on the Gauss–Hermite nodes scaled into
// income space. Transition probabilities weight each node by the quadrature
// weight times the likelihood ratio of the conditional AR(1) density over
// the baseline density the nodes were drawn from, normalized row by row.
// Income levels are the exponentiated states, rescaled so that the
// stationary-distribution-weighted mean is exactly one.
//
// The quadrature baseline deviation defaults to the Flodén mix
// w·σ + (1-w)·σ∞ with w = 0.5 + ρ/4, which keeps the chain accurate for
// highly persistent processes; override it with WithBaselineStd.
//
// Errors are package sentinels matched with errors.Is. A shock deviation too
// small for the state spread makes transition rows underflow to zero; that
// surfaces as ErrDegenerateChain instead of a silent division by zero.
package income
