// Package rules holds the static market rule tables consumed by the asset
// and option models: fees, price limits, settlement lag, trading hours and
// the risk-free rate. Lookups never fail; a missing key resolves to a
// neutral value.
package rules

import (
	"github.com/newthinker/optval/internal/core"
)

// DefaultRiskFreeRate is the annual risk-free rate used when none is configured.
const DefaultRiskFreeRate = 0.2

// Lookup is the narrow read interface assets depend on.
type Lookup interface {
	// TransactionFee returns the fee percent for an asset class, 0 if unknown.
	TransactionFee(class core.AssetClass) float64
	// PriceLimit returns the daily price-limit percent for a market, 0 if unlimited.
	PriceLimit(market core.Market) float64
	// SettlementDays returns the settlement lag in business days, 0 if unknown.
	SettlementDays(class core.AssetClass) int
	// TradingHours returns the trading window, AllDay if unknown.
	TradingHours(class core.AssetClass) Window
	// RiskFreeRate returns the annual risk-free rate as a fraction.
	RiskFreeRate() float64
}

// Tables is the in-memory rule set. The zero value and a nil pointer are both
// valid and behave as empty tables.
type Tables struct {
	Fees        map[core.AssetClass]float64
	PriceLimits map[core.Market]float64
	Settlement  map[core.AssetClass]int
	Hours       map[core.AssetClass]Window
	Rate        float64
}

var _ Lookup = (*Tables)(nil)

// Default returns the reference rule set.
func Default() *Tables {
	return &Tables{
		Fees: map[core.AssetClass]float64{
			core.AssetEquity:       1.5,
			core.AssetETF:          0.5,
			core.AssetLeveragedETF: 1.0,
			core.AssetCrypto:       0.2,
			core.AssetCommodity:    0.8,
		},
		PriceLimits: map[core.Market]float64{
			core.MarketTSEFirst:      5.0,
			core.MarketTSESecond:     5.0,
			core.MarketIFBFirst:      5.0,
			core.MarketIFBSecond:     5.0,
			core.MarketIFBThird:      5.0,
			core.MarketIFBInnovation: 10.0,
			core.MarketIFBBaseYellow: 3.0,
			core.MarketIFBBaseOrange: 2.0,
			core.MarketIFBBaseRed:    1.0,
			core.MarketEnergy:        7.0,
			core.MarketCommodity:     10.0,
			core.MarketGlobal:        0.0,
		},
		Settlement: map[core.AssetClass]int{
			core.AssetEquity:       2,
			core.AssetETF:          2,
			core.AssetLeveragedETF: 2,
			core.AssetCrypto:       0,
			core.AssetCommodity:    1,
		},
		Hours: map[core.AssetClass]Window{
			core.AssetEquity:       MustWindow("09:00", "12:30"),
			core.AssetETF:          MustWindow("09:00", "15:00"),
			core.AssetLeveragedETF: MustWindow("09:00", "15:00"),
			core.AssetCrypto:       MustWindow("00:00", "23:59"),
			core.AssetCommodity:    MustWindow("10:00", "15:30"),
		},
		Rate: DefaultRiskFreeRate,
	}
}

func (t *Tables) TransactionFee(class core.AssetClass) float64 {
	if t == nil {
		return 0
	}
	return t.Fees[class]
}

func (t *Tables) PriceLimit(market core.Market) float64 {
	if t == nil {
		return 0
	}
	return t.PriceLimits[market]
}

func (t *Tables) SettlementDays(class core.AssetClass) int {
	if t == nil {
		return 0
	}
	return t.Settlement[class]
}

func (t *Tables) TradingHours(class core.AssetClass) Window {
	if t == nil {
		return AllDay
	}
	if w, ok := t.Hours[class]; ok {
		return w
	}
	return AllDay
}

func (t *Tables) RiskFreeRate() float64 {
	if t == nil {
		return 0
	}
	return t.Rate
}
