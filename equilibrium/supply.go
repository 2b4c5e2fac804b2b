package equilibrium

import "math"

// SupplyRule links the candidate interest rate to the aggregate asset
// supply households must absorb, and to the wage they earn. It is the
// pluggable boundary between the pure-exchange and production variants of
// the model.
type SupplyRule interface {
	// Supply returns the aggregate asset supply at rate r.
	Supply(r float64) float64

	// Wage returns the wage per efficiency unit of labor at rate r.
	Wage(r float64) float64
}

// FixedBondSupply is the pure-exchange (Huggett) supply side: a fixed stock
// of bonds, zero for a pure credit economy. Income levels enter the budget
// directly, so the wage is one at every rate.
type FixedBondSupply struct {
	Bonds float64
}

// Supply implements SupplyRule.
func (s FixedBondSupply) Supply(float64) float64 { return s.Bonds }

// Wage implements SupplyRule.
func (FixedBondSupply) Wage(float64) float64 { return 1 }

// CobbDouglas is the production (Aiyagari) supply side: firms operate
// A·K^α·L^(1-α) with depreciation δ. The marginal-product condition
// r = α·A·(K/L)^(α-1) - δ pins down the capital-labor ratio at each rate,
// which yields both the capital the market must clear and the competitive
// wage.
type CobbDouglas struct {
	// TFP is total factor productivity A, > 0.
	TFP float64

	// Alpha is the capital share, in (0, 1).
	Alpha float64

	// Delta is the depreciation rate, in [0, 1].
	Delta float64

	// Labor is aggregate effective labor L, > 0. With mean-one income
	// levels this is simply the population size, typically 1.
	Labor float64
}

// Validate reports ErrInvalidTechnology when any parameter is out of range.
func (t CobbDouglas) Validate() error {
	switch {
	case t.TFP <= 0 || math.IsNaN(t.TFP):
		return ErrInvalidTechnology
	case t.Alpha <= 0 || t.Alpha >= 1:
		return ErrInvalidTechnology
	case t.Delta < 0 || t.Delta > 1:
		return ErrInvalidTechnology
	case t.Labor <= 0 || math.IsNaN(t.Labor):
		return ErrInvalidTechnology
	}

	return nil
}

// ratio returns the capital-labor ratio implied by the marginal-product
// condition at rate r. As r approaches -δ from above, capital demand
// diverges; at or below -δ it is +Inf, which a caller-chosen bracket with
// rLow > -δ avoids.
func (t CobbDouglas) ratio(r float64) float64 {
	if r+t.Delta <= 0 {
		return math.Inf(1)
	}

	return math.Pow((r+t.Delta)/(t.Alpha*t.TFP), 1/(t.Alpha-1))
}

// Supply implements SupplyRule: K(r) = L·(K/L)(r).
func (t CobbDouglas) Supply(r float64) float64 {
	return t.Labor * t.ratio(r)
}

// Wage implements SupplyRule: w(r) = (1-α)·A·(K/L)^α.
func (t CobbDouglas) Wage(r float64) float64 {
	return (1 - t.Alpha) * t.TFP * math.Pow(t.ratio(r), t.Alpha)
}
