// Package option models options written on an asset.Asset and computes their
// payoff, break-even, moneyness and Greeks. Each asset class has its own
// variant; all of them satisfy Option.
package option

import (
	"fmt"
	"math"
	"time"

	"github.com/newthinker/optval/internal/asset"
	"github.com/newthinker/optval/internal/core"
	"github.com/newthinker/optval/internal/greeks"
)

// Kind tags the option variant.
type Kind string

const (
	KindEquity       Kind = "equity"
	KindETF          Kind = "etf"
	KindLeveragedETF Kind = "leveraged_etf"
	KindCrypto       Kind = "crypto"
)

const (
	// DefaultContractSize is the multiplier of listed contracts.
	DefaultContractSize = 1000
	// DefaultVolatility is the annualised volatility used for Greeks.
	DefaultVolatility = 0.30

	secondsPerDay = 86400
	daysPerYear   = 365
)

// KindFor maps an underlying asset class to the option variant written on it.
// Commodities have no option variant.
func KindFor(class core.AssetClass) (Kind, bool) {
	switch class {
	case core.AssetEquity:
		return KindEquity, true
	case core.AssetETF:
		return KindETF, true
	case core.AssetLeveragedETF:
		return KindLeveragedETF, true
	case core.AssetCrypto:
		return KindCrypto, true
	}
	return "", false
}

// Option is the capability set shared by every variant.
type Option interface {
	Kind() Kind
	Terms() *Contract

	SpotPrice() float64
	TimeToExpiryDays() int
	Status() core.ContractStatus
	IsValid() bool
	HasExpired(at time.Time) bool

	// Payoff returns the economic result at spot. A non-positive spot means
	// the live underlying price.
	Payoff(spot float64) float64
	BreakEven() float64
	Greeks(opts ...GreeksOpt) greeks.Greeks
}

// Contract holds the terms shared by all variants. Spot price and time to
// expiry are never stored: they are read from Underlying and the clock on
// every call.
type Contract struct {
	ID         string
	Side       core.OptionSide
	Strike     float64
	Premium    float64
	Expiry     time.Time
	Underlying *asset.Asset

	Ask *float64
	Bid *float64

	ContractSize int
	// TransactionFee is a percent of the reference price; 0 means none.
	TransactionFee float64
	// SettlementCost is a percent of the reference price, except on equity
	// options where values above 1 are a flat amount.
	SettlementCost float64
}

// Terms returns the shared contract terms.
func (c *Contract) Terms() *Contract { return c }

// SpotPrice is the underlying's last traded price, 0 without an underlying.
func (c *Contract) SpotPrice() float64 {
	if c.Underlying == nil {
		return 0
	}
	return c.Underlying.LastPrice
}

// TimeToExpiryDays is the whole number of days left, rounded up and never negative.
func (c *Contract) TimeToExpiryDays() int {
	return c.TimeToExpiryDaysAt(time.Now())
}

// TimeToExpiryDaysAt is TimeToExpiryDays measured from at.
func (c *Contract) TimeToExpiryDaysAt(at time.Time) int {
	days := int(math.Ceil(c.Expiry.Sub(at).Seconds() / secondsPerDay))
	if days < 0 {
		return 0
	}
	return days
}

func (c *Contract) IsInTheMoney() bool {
	if c.Side == core.SidePut {
		return c.SpotPrice() < c.Strike
	}
	return c.SpotPrice() > c.Strike
}

func (c *Contract) IsOutOfTheMoney() bool {
	if c.Side == core.SidePut {
		return c.SpotPrice() > c.Strike
	}
	return c.SpotPrice() < c.Strike
}

func (c *Contract) IsAtTheMoney() bool {
	return c.SpotPrice() == c.Strike
}

// Status classifies moneyness from the live spot price.
func (c *Contract) Status() core.ContractStatus {
	switch {
	case c.IsInTheMoney():
		return core.InTheMoney
	case c.IsOutOfTheMoney():
		return core.OutOfTheMoney
	}
	return core.AtTheMoney
}

// IsValid checks the contract terms against the current time. Computing on an
// invalid contract is allowed; callers decide whether to trust the result.
func (c *Contract) IsValid() bool {
	return c.Strike > 0 &&
		c.Premium >= 0 &&
		c.Expiry.After(time.Now()) &&
		c.Underlying != nil
}

// HasExpired reports whether at (now when zero) is at or past expiry.
func (c *Contract) HasExpired(at time.Time) bool {
	if at.IsZero() {
		at = time.Now()
	}
	return !at.Before(c.Expiry)
}

// spotOr resolves an explicit spot, falling back to the live price.
func (c *Contract) spotOr(spot float64) float64 {
	if spot > 0 {
		return spot
	}
	return c.SpotPrice()
}

// rawPayoff is the per-unit intrinsic value at spot.
func (c *Contract) rawPayoff(spot float64) float64 {
	if c.Side == core.SidePut {
		return math.Max(0, c.Strike-spot)
	}
	return math.Max(0, spot-c.Strike)
}

func (c *Contract) size() float64 {
	return float64(c.ContractSize)
}

func (c *Contract) String() string {
	return fmt.Sprintf("%s %s %.4g exp %s", c.ID, c.Side, c.Strike, c.Expiry.Format(time.DateOnly))
}

// New builds the variant for kind. Leveraged contracts take their ratio from
// the underlying when it has one.
func New(kind Kind, c Contract) (Option, error) {
	switch kind {
	case KindEquity:
		return NewEquity(c), nil
	case KindETF:
		return NewETF(c, ""), nil
	case KindLeveragedETF:
		var ratio float64
		if c.Underlying != nil {
			ratio = c.Underlying.LeverageRatio
		}
		return NewLeveragedETF(c, ratio), nil
	case KindCrypto:
		return NewCrypto(c), nil
	}
	return nil, core.WrapError(core.ErrInvalidInput, fmt.Errorf("unknown option kind %q", kind))
}

func withDefaultSize(c Contract) Contract {
	if c.ContractSize <= 0 {
		c.ContractSize = DefaultContractSize
	}
	return c
}
