// Package household solves the savings problem of an agent facing
// idiosyncratic income risk and a borrowing constraint, by value-function
// iteration on a discrete asset grid.
//
// Given prices (an interest rate and a wage), a discretized income process
// and an asset grid, the Bellman recursion
//
//	V(a, y) = max_{a'} [ u((1+r)·a + w·y - a') + β·Σ_{y'} Π(y,y')·V(a', y') ]
//
// is iterated until the sup-norm change falls below tolerance. Utility is
// CRRA with a log branch at γ=1; non-positive consumption receives a large
// negative penalty instead of evaluating the power function, so the
// non-negativity constraint never produces NaNs.
//
// Ties in the argmax break toward the lowest grid index, making policies
// deterministic and reproducible. The inner scan exploits policy
// monotonicity in assets: for a fixed income state the optimal next-asset
// index never decreases as current assets rise, so each scan starts at the
// previous row's maximizer instead of index zero and still selects the same
// maximizer as the full search. The shortcut applies only across rows whose
// maximizer affords positive consumption; a fully constrained row picks the
// best continuation index, which says nothing about richer rows, so the
// next scan restarts from the bottom of the grid.
//
// Exhausting the iteration budget is a recoverable condition: Solve returns
// the best-so-far value and policy with Converged=false rather than an
// error, so an outer loop can retry with relaxed tolerance or abort with
// full context.
package household
