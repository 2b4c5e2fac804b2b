// Package bewley solves heterogeneous-agent incomplete-markets economies —
// the Aiyagari/Huggett class: a continuum of households facing idiosyncratic
// earnings risk, a single asset, and a price that must clear a market.
//
// 🚀 What is bewley?
//
//	A numerical toolkit that brings together:
//		• Income processes: Tauchen–Hussey AR(1) discretization on quadrature nodes
//		• Asset grids: linear or log-spaced, dense near the borrowing limit
//		• Household problem: CRRA value-function iteration with monotone search
//		• Cross-section: stationary-distribution iteration over the joint state
//		• Equilibrium: bisection on the interest rate against bond or capital supply
//		• Transitions: deterministic paths between stationary economies
//
// ✨ Why choose bewley?
//
//   - Small API – one Solve per concern, functional options everywhere
//   - Honest results – non-convergence is reported, never papered over
//   - Built on gonum – dense linear algebra, quadrature and distributions
//   - Observable – plug a progress sink into any solver loop
//
// Under the hood, everything is organized by solver stage:
//
//	income/       — AR(1) discretization, stationary weights, mean-one levels
//	assetgrid/    — one-dimensional asset grids
//	household/    — Bellman iteration, value and policy
//	distribution/ — forward iteration of the cross-sectional law of motion
//	equilibrium/  — supply rules (fixed bonds, Cobb–Douglas) + bisection
//	transition/   — backward-induction / forward-push path solver
//	progress/     — iteration events for logging and diagnostics
//
// Quick sketch of the fixed point:
//
//	r ──► household policy ──► stationary distribution ──► asset demand
//	▲                                                          │
//	└────────────── bisect until demand = supply ──────────────┘
//
// Dive into the examples/ programs for full pure-credit, production and
// credit-crunch walkthroughs, and cmd/bewley for the CLI.
//
//	go get github.com/katalvlaran/bewley
package bewley
