package greeks

import (
	"math"

	"github.com/newthinker/optval/internal/core"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	daysPerYear = 365
	percent     = 100
)

// BlackScholes prices non-dividend European options in closed form. It holds
// no state; the zero value is ready to use.
type BlackScholes struct{}

var (
	_ Calculator = (*BlackScholes)(nil)
	_ Pricer     = (*BlackScholes)(nil)
)

// NewBlackScholes returns a fresh calculator.
func NewBlackScholes() *BlackScholes {
	return &BlackScholes{}
}

func cdf(x float64) float64 { return distuv.UnitNormal.CDF(x) }

func pdf(x float64) float64 { return distuv.UnitNormal.Prob(x) }

// d1d2 returns the two standardized moneyness terms.
func d1d2(spot, strike, years, rate, volatility float64) (float64, float64) {
	volSqrtT := volatility * math.Sqrt(years)
	d1 := (math.Log(spot/strike) + (rate+0.5*volatility*volatility)*years) / volSqrtT
	return d1, d1 - volSqrtT
}

// Calculate returns delta, gamma, theta (per day), vega (per vol point) and
// rho (per 1% rate).
func (bs *BlackScholes) Calculate(side core.OptionSide, spot, strike, years, rate, volatility float64) Greeks {
	d1, d2 := d1d2(spot, strike, years, rate, volatility)
	sqrtT := math.Sqrt(years)
	discount := math.Exp(-rate * years)
	pdfD1 := pdf(d1)

	decay := -spot * pdfD1 * volatility / (2 * sqrtT)

	var delta, theta, rho float64
	if side == core.SidePut {
		delta = -cdf(-d1)
		theta = decay + rate*strike*discount*cdf(-d2)
		rho = -strike * years * discount * cdf(-d2)
	} else {
		delta = cdf(d1)
		theta = decay - rate*strike*discount*cdf(d2)
		rho = strike * years * discount * cdf(d2)
	}

	return Greeks{
		Delta: delta,
		Gamma: pdfD1 / (spot * volatility * sqrtT),
		Theta: theta / daysPerYear,
		Vega:  spot * pdfD1 * sqrtT / percent,
		Rho:   rho / percent,
	}
}

// Price returns the Black-Scholes premium.
func (bs *BlackScholes) Price(side core.OptionSide, spot, strike, years, rate, volatility float64) float64 {
	d1, d2 := d1d2(spot, strike, years, rate, volatility)
	discount := math.Exp(-rate * years)
	if side == core.SidePut {
		return strike*discount*cdf(-d2) - spot*cdf(-d1)
	}
	return spot*cdf(d1) - strike*discount*cdf(d2)
}
