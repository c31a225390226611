// Package greeks computes option sensitivities.
package greeks

import (
	"fmt"

	"github.com/newthinker/optval/internal/core"
)

// Greeks is an immutable set of option sensitivities. Theta is per calendar
// day, Vega per one volatility point and Rho per one percent of rate.
type Greeks struct {
	Delta float64 `json:"delta"`
	Gamma float64 `json:"gamma"`
	Theta float64 `json:"theta"`
	Vega  float64 `json:"vega"`
	Rho   float64 `json:"rho"`
}

func (g Greeks) String() string {
	return fmt.Sprintf("Δ: %.4f, Γ: %.4f, Θ: %.4f, ν: %.4f, ρ: %.4f",
		g.Delta, g.Gamma, g.Theta, g.Vega, g.Rho)
}

// Calculator computes Greeks for a European option.
//
// Inputs must satisfy spot, strike, years and volatility > 0. Implementations
// are not required to guard against anything else; callers pricing expired or
// same-day contracts must short-circuit first.
type Calculator interface {
	Calculate(side core.OptionSide, spot, strike, years, rate, volatility float64) Greeks
}

// Pricer is implemented by calculators that can also produce a theoretical premium.
type Pricer interface {
	Price(side core.OptionSide, spot, strike, years, rate, volatility float64) float64
}
