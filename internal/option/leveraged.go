package option

// DefaultLeverageRatio applies when a leveraged contract is built without one.
const DefaultLeverageRatio = 2.0

// LeveragedETFOption is an option on a leveraged fund; intrinsic value is
// multiplied by the leverage ratio.
type LeveragedETFOption struct {
	Contract
	LeverageRatio float64
}

var _ Option = (*LeveragedETFOption)(nil)

// NewLeveragedETF uses DefaultLeverageRatio when ratio <= 0.
func NewLeveragedETF(c Contract, ratio float64) *LeveragedETFOption {
	if ratio <= 0 {
		ratio = DefaultLeverageRatio
	}
	return &LeveragedETFOption{Contract: withDefaultSize(c), LeverageRatio: ratio}
}

func (o *LeveragedETFOption) Kind() Kind { return KindLeveragedETF }

func (o *LeveragedETFOption) leveragedPayoff(spot float64) float64 {
	return o.rawPayoff(spot) * o.LeverageRatio
}

func (o *LeveragedETFOption) costPerUnit(ref float64) float64 {
	return o.Premium + percentOf(o.TransactionFee, ref) + percentOf(o.SettlementCost, ref)
}

func (o *LeveragedETFOption) Payoff(spot float64) float64 {
	spot = o.spotOr(spot)
	return (o.leveragedPayoff(spot) - o.costPerUnit(spot)) * o.size()
}

func (o *LeveragedETFOption) BreakEven() float64 {
	return o.Strike + o.costPerUnit(o.Strike)
}

// MaxLoss is the full cost of the contract: premium plus fees at the current
// spot (the strike when no spot is known), times the contract size.
func (o *LeveragedETFOption) MaxLoss() float64 {
	ref := o.SpotPrice()
	if ref <= 0 {
		ref = o.Strike
	}
	return o.costPerUnit(ref) * o.size()
}

// MaxGain is the result if the underlying reaches maxSpot. ok is false when no
// ceiling is given.
func (o *LeveragedETFOption) MaxGain(maxSpot float64) (gain float64, ok bool) {
	if maxSpot <= 0 {
		return 0, false
	}
	return o.leveragedPayoff(maxSpot)*o.size() - o.MaxLoss(), true
}
