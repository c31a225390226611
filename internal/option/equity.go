package option

// EquityOption is an option on a single stock.
type EquityOption struct {
	Contract
}

var _ Option = (*EquityOption)(nil)

// NewEquity applies the listed contract size when none is given.
func NewEquity(c Contract) *EquityOption {
	return &EquityOption{Contract: withDefaultSize(c)}
}

func (o *EquityOption) Kind() Kind { return KindEquity }

func (o *EquityOption) costPerUnit(ref float64) float64 {
	return o.Premium + percentOf(o.TransactionFee, ref) + equitySettlement(o.SettlementCost, ref)
}

// Payoff is the per-unit result at spot net of premium, fee and settlement.
// Unlike the fund variants it is not scaled by the contract size.
func (o *EquityOption) Payoff(spot float64) float64 {
	spot = o.spotOr(spot)
	return o.rawPayoff(spot) - o.costPerUnit(spot)
}

// BreakEven adds premium and costs evaluated at the strike.
func (o *EquityOption) BreakEven() float64 {
	return o.Strike + o.costPerUnit(o.Strike)
}
