// Package transition solves the perfect-foresight transition path of a
// pure-exchange economy whose borrowing limit varies over a finite horizon.
//
// It generalizes the stationary solvers by indexing everything by calendar
// time: a single value function becomes a backward-induction sequence
// anchored at the terminal stationary solution, and a single stationary
// distribution becomes a forward-propagated sequence starting from an
// initial cross-section. Given a guessed interest-rate path, one outer
// iteration runs
//
//  1. backward: V_t from V_{t+1}, one Bellman maximization per period with
//     that period's prices and grids (choices live on the next period's
//     grid, so a tightening limit is enforced one period ahead);
//  2. forward: the initial distribution pushed through the time-indexed
//     policies, yielding per-period aggregate demand and excess demand;
//  3. update: a damped adjustment r_t ← r_t − relax·excess_t, clamped to
//     the configured rate bounds.
//
// No bracket exists for a whole path, so the outer update is the damped
// adjustment rather than bisection; the stationary solver keeps bisection.
// The path has cleared when the worst per-period excess falls below
// tolerance. Exhausting the outer budget returns Converged=false with the
// last path, mirroring the stationary solvers.
package transition
