// Package distribution computes the stationary cross-sectional distribution
// over (asset, income) states induced by a savings policy and an income
// transition matrix.
//
// The iteration is forward simulation of the distribution itself, not of
// individual agents: mass λ(a, y) flows to (policy(a, y), y') weighted by
// Π(y, y'). Every sweep redistributes into a freshly zeroed target array,
// since many (a, y) pairs can map to the same next-asset index and the
// mapping is not invertible. Convergence is a sup-norm change below
// tolerance; exhausting the sweep cap reports Converged=false with the last
// iterate instead of pretending success.
//
// Total mass is conserved exactly on every sweep because the transition
// rows are stochastic and the policy map is total. A mass drift beyond
// numerical tolerance therefore indicates a programming defect and panics.
package distribution
