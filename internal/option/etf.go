package option

import "math"

const (
	// LiquiditySpreadLimit is the relative spread at or above which an ETF
	// underlying is considered illiquid.
	LiquiditySpreadLimit = 0.02
	// NAVDeviationLimit is the relative price/NAV gap above which an ETF is
	// flagged.
	NAVDeviationLimit = 0.03
)

// ETFOption is an option on an exchange traded fund.
type ETFOption struct {
	Contract
	BenchmarkIndex string
	// NavDeviation holds the last value computed by HasNavDeviation.
	NavDeviation *float64
}

var _ Option = (*ETFOption)(nil)

func NewETF(c Contract, benchmark string) *ETFOption {
	return &ETFOption{Contract: withDefaultSize(c), BenchmarkIndex: benchmark}
}

func (o *ETFOption) Kind() Kind { return KindETF }

func (o *ETFOption) costPerUnit(ref float64) float64 {
	return o.Premium + percentOf(o.TransactionFee, ref) + percentOf(o.SettlementCost, ref)
}

// Payoff is the net result at spot for the whole contract.
func (o *ETFOption) Payoff(spot float64) float64 {
	spot = o.spotOr(spot)
	return (o.rawPayoff(spot) - o.costPerUnit(spot)) * o.size()
}

func (o *ETFOption) BreakEven() float64 {
	return o.Strike + o.costPerUnit(o.Strike)
}

// IsLiquid reports whether the underlying's spread is below 2% of its last
// price. Without a two-sided quote the fund is treated as illiquid.
func (o *ETFOption) IsLiquid() bool {
	if o.Underlying == nil || o.Underlying.LastPrice <= 0 {
		return false
	}
	spread, ok := o.Underlying.Spread()
	if !ok {
		return false
	}
	return spread/o.Underlying.LastPrice < LiquiditySpreadLimit
}

// HasNavDeviation stores |spot-nav|/nav in NavDeviation and reports whether it
// exceeds 3%. The store happens on every call. Concurrent callers on the same
// option must synchronise externally.
func (o *ETFOption) HasNavDeviation(nav float64) bool {
	deviation := math.Abs(o.SpotPrice()-nav) / nav
	o.NavDeviation = &deviation
	return deviation > NAVDeviationLimit
}
