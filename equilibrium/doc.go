// Package equilibrium searches for the interest rate that clears the asset
// market of a heterogeneous-agent economy.
//
// For each candidate rate the solver runs the two inner fixed points — the
// household's value-function iteration and the stationary-distribution
// iteration — reduces the result to a scalar excess demand
//
//	excess(r) = aggregate asset demand(r) - supply(r)
//
// and bisects on the rate. Excess demand is increasing in r, so a positive
// excess (too much desired saving) moves the upper bracket bound down and a
// negative excess moves the lower bound up; the bracket shrinks
// monotonically, with no stochastic search.
//
// The supply side is a pluggable SupplyRule: FixedBondSupply covers the
// pure-exchange (Huggett) economy, CobbDouglas ties capital supply and the
// wage to the rate through a production function (Aiyagari). The same
// household and distribution kernels serve both.
//
// Exhausting the bisection budget reports Converged=false carrying the last
// candidate and residual; an inner solver that fails to converge at a
// candidate aborts with ErrInnerSolve wrapped with the offending rate.
// Cancellation is honored between outer iterations only — inner solves run
// to completion.
package equilibrium
