package option

import "github.com/newthinker/optval/internal/core"

// CryptoOption is an option on crypto spot. It has no fee or contract-size
// model: one contract is one unit.
type CryptoOption struct {
	Contract
}

var _ Option = (*CryptoOption)(nil)

// NewCrypto fixes the contract size at 1 and ignores fee fields.
func NewCrypto(c Contract) *CryptoOption {
	c.ContractSize = 1
	return &CryptoOption{Contract: c}
}

func (o *CryptoOption) Kind() Kind { return KindCrypto }

// Payoff is the intrinsic value at spot.
func (o *CryptoOption) Payoff(spot float64) float64 {
	return o.rawPayoff(o.spotOr(spot))
}

// BreakEven is strike plus premium for calls and strike minus premium for puts.
func (o *CryptoOption) BreakEven() float64 {
	if o.Side == core.SidePut {
		return o.Strike - o.Premium
	}
	return o.Strike + o.Premium
}
