// Package assetgrid builds the finite, ordered set of feasible asset
// holdings used by the household and distribution solvers.
//
// A Grid spans [min, max] where min is the borrowing limit. Linear spacing
// is uniform; log spacing transforms a uniform grid through
//
//	exp(linspace(0, log(max-min+1), count)) - 1 + min
//
// which concentrates points near the borrowing limit, where the savings
// policy has the most curvature.
//
// Guarantees for every successfully built Grid:
//   - the first point equals min exactly,
//   - points are strictly increasing,
//   - the grid is immutable after construction.
//
// Errors follow the package-sentinel convention: ErrInvalidBounds and
// ErrTooFewPoints, matched with errors.Is.
package assetgrid
