package option

import (
	"time"

	"github.com/newthinker/optval/internal/greeks"
	"github.com/newthinker/optval/internal/rules"
)

type greeksConfig struct {
	calculator greeks.Calculator
	rate       float64
	volatility float64
	at         time.Time
}

// GreeksOpt overrides one input of a Greeks computation.
type GreeksOpt func(*greeksConfig)

// WithCalculator replaces the Black-Scholes default.
func WithCalculator(calc greeks.Calculator) GreeksOpt {
	return func(g *greeksConfig) {
		if calc != nil {
			g.calculator = calc
		}
	}
}

// WithRiskFreeRate overrides the configured annual rate.
func WithRiskFreeRate(rate float64) GreeksOpt {
	return func(g *greeksConfig) { g.rate = rate }
}

// WithVolatility overrides the default 30% annual volatility.
func WithVolatility(vol float64) GreeksOpt {
	return func(g *greeksConfig) { g.volatility = vol }
}

// AsOf measures time to expiry from at instead of the current time.
func AsOf(at time.Time) GreeksOpt {
	return func(g *greeksConfig) { g.at = at }
}

// Greeks delegates to a calculator using the live spot and the whole days to
// expiry converted to years. The rate defaults to the underlying's rule set.
// Nothing guards a zero time to expiry: check HasExpired first.
func (c *Contract) Greeks(opts ...GreeksOpt) greeks.Greeks {
	cfg := greeksConfig{
		calculator: greeks.NewBlackScholes(),
		rate:       rules.DefaultRiskFreeRate,
		volatility: DefaultVolatility,
	}
	if c.Underlying != nil {
		cfg.rate = c.Underlying.RiskFreeRate()
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.at.IsZero() {
		cfg.at = time.Now()
	}
	years := float64(c.TimeToExpiryDaysAt(cfg.at)) / daysPerYear
	return cfg.calculator.Calculate(c.Side, c.SpotPrice(), c.Strike, years, cfg.rate, cfg.volatility)
}
