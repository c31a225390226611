// Package asset models tradable underlying instruments: equities, ETFs,
// leveraged ETFs, crypto spot and commodities.
package asset

import (
	"time"

	"github.com/newthinker/optval/internal/core"
	"github.com/newthinker/optval/internal/rules"
)

// Snapshot carries the market prices an asset is built from.
type Snapshot struct {
	Name          string
	Symbol        string
	Market        core.Market
	LastPrice     float64
	ClosePrice    float64
	PreviousPrice float64
}

// Asset is one market snapshot of an underlying instrument. Price updates are
// modelled by building a new Asset (see WithPrices), never by mutating one in
// place, so readers holding a pointer always see a consistent snapshot.
type Asset struct {
	Name   string
	Symbol string
	// ISIN is the national identifier, empty when not applicable (crypto).
	ISIN   string
	Class  core.AssetClass
	Market core.Market

	LastPrice     float64
	ClosePrice    float64
	PreviousPrice float64

	// Ask and Bid are independently optional best quotes.
	Ask *float64
	Bid *float64

	// LeverageRatio is only meaningful for leveraged ETFs.
	LeverageRatio float64

	settlementDays int
	tradingHours   rules.Window
	rules          rules.Lookup
}

// Opt customises an Asset at construction.
type Opt func(*Asset)

// WithISIN sets the national identifier.
func WithISIN(isin string) Opt {
	return func(a *Asset) { a.ISIN = isin }
}

// WithAsk sets the best ask.
func WithAsk(ask float64) Opt {
	return func(a *Asset) { a.Ask = &ask }
}

// WithBid sets the best bid.
func WithBid(bid float64) Opt {
	return func(a *Asset) { a.Bid = &bid }
}

// WithQuote sets both sides of the book.
func WithQuote(ask, bid float64) Opt {
	return func(a *Asset) {
		a.Ask = &ask
		a.Bid = &bid
	}
}

// WithLeverage sets the fund leverage ratio.
func WithLeverage(ratio float64) Opt {
	return func(a *Asset) { a.LeverageRatio = ratio }
}

// New builds an asset of the given class. Settlement lag and trading hours are
// read from lookup once and fixed for the lifetime of the asset.
func New(class core.AssetClass, snap Snapshot, lookup rules.Lookup, opts ...Opt) *Asset {
	if lookup == nil {
		lookup = (*rules.Tables)(nil)
	}
	a := &Asset{
		Name:           snap.Name,
		Symbol:         snap.Symbol,
		Class:          class,
		Market:         snap.Market,
		LastPrice:      snap.LastPrice,
		ClosePrice:     snap.ClosePrice,
		PreviousPrice:  snap.PreviousPrice,
		settlementDays: lookup.SettlementDays(class),
		tradingHours:   lookup.TradingHours(class),
		rules:          lookup,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func NewEquity(snap Snapshot, lookup rules.Lookup, opts ...Opt) *Asset {
	return New(core.AssetEquity, snap, lookup, opts...)
}

func NewETF(snap Snapshot, lookup rules.Lookup, opts ...Opt) *Asset {
	return New(core.AssetETF, snap, lookup, opts...)
}

// NewLeveragedETF builds a leveraged fund; ratio <= 0 leaves the leverage unset.
func NewLeveragedETF(snap Snapshot, ratio float64, lookup rules.Lookup, opts ...Opt) *Asset {
	a := New(core.AssetLeveragedETF, snap, lookup, opts...)
	if ratio > 0 {
		a.LeverageRatio = ratio
	}
	return a
}

// NewCrypto builds a crypto spot asset; an empty market defaults to global.
func NewCrypto(snap Snapshot, lookup rules.Lookup, opts ...Opt) *Asset {
	if snap.Market == "" {
		snap.Market = core.MarketGlobal
	}
	return New(core.AssetCrypto, snap, lookup, opts...)
}

func NewCommodity(snap Snapshot, lookup rules.Lookup, opts ...Opt) *Asset {
	return New(core.AssetCommodity, snap, lookup, opts...)
}

// WithPrices returns a copy of the asset carrying new prices. Quotes are
// cleared because they belong to the previous snapshot.
func (a *Asset) WithPrices(last, closePrice, previous float64) *Asset {
	next := *a
	next.LastPrice = last
	next.ClosePrice = closePrice
	next.PreviousPrice = previous
	next.Ask = nil
	next.Bid = nil
	return &next
}

// SettlementDays is the settlement lag in business days.
func (a *Asset) SettlementDays() int { return a.settlementDays }

// TradingHours is the intraday session captured at construction.
func (a *Asset) TradingHours() rules.Window { return a.tradingHours }

// PriceLimit returns the daily price-limit percent of the asset's market.
// Zero means the market has no limit.
func (a *Asset) PriceLimit() float64 {
	return a.rules.PriceLimit(a.Market)
}

// TransactionFee returns the fee percent for the asset's class.
func (a *Asset) TransactionFee() float64 {
	return a.rules.TransactionFee(a.Class)
}

// IsTradingNow reports whether the time of day of at (now when zero) falls in
// the trading window. Dates and holidays are not considered.
func (a *Asset) IsTradingNow(at time.Time) bool {
	if at.IsZero() {
		at = time.Now()
	}
	return a.tradingHours.Contains(at)
}

// HasPriceLimitBreach reports whether price lies strictly outside the band
// close*(1±limit/100). Markets without a limit never breach.
func (a *Asset) HasPriceLimitBreach(price float64) bool {
	limit := a.PriceLimit()
	if limit == 0 {
		return false
	}
	upper := a.ClosePrice * (1 + limit/100)
	lower := a.ClosePrice * (1 - limit/100)
	return price > upper || price < lower
}

// Spread returns ask-bid. ok is false when either side is missing. A crossed
// book yields a negative spread, which is reported as-is.
func (a *Asset) Spread() (spread float64, ok bool) {
	if a.Ask == nil || a.Bid == nil {
		return 0, false
	}
	return *a.Ask - *a.Bid, true
}

// IsValid reports whether both last and close prices are positive.
func (a *Asset) IsValid() bool {
	return a.LastPrice > 0 && a.ClosePrice > 0
}

// RiskFreeRate is the annual rate from the rule set the asset was built with.
func (a *Asset) RiskFreeRate() float64 {
	return a.rules.RiskFreeRate()
}
