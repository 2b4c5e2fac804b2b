package household

import "math"

const (
	// MinConsumption is the smallest consumption CRRA treats as feasible.
	MinConsumption = 1e-10

	// penaltyUtility replaces u(c) whenever c falls below the floor. It is
	// large enough in magnitude to dominate any feasible continuation value,
	// so a constrained choice never wins the argmax while a feasible one
	// exists.
	penaltyUtility = -1e12
)

// CRRA returns the constant-relative-risk-aversion period utility
// c^(1-γ)/(1-γ), with the log branch at γ=1. Consumption at or below the
// positive floor yields penaltyUtility instead of a NaN or -Inf, enforcing
// the non-negativity constraint locally.
func CRRA(c, gamma float64) float64 {
	if c <= MinConsumption {
		return penaltyUtility
	}
	if gamma == 1 {
		return math.Log(c)
	}

	return math.Pow(c, 1-gamma) / (1 - gamma)
}
