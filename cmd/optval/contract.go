package main

import (
	"fmt"
	"time"

	"github.com/newthinker/optval/internal/asset"
	"github.com/newthinker/optval/internal/core"
	"github.com/newthinker/optval/internal/indicator"
	"github.com/newthinker/optval/internal/option"
	"github.com/newthinker/optval/internal/rules"
)

// contractSpec is the flat description of one contract and its underlying, as
// given on the command line or in a batch file. Pointer fields are optional.
type contractSpec struct {
	ID        string   `mapstructure:"id"`
	Class     string   `mapstructure:"class"`
	Side      string   `mapstructure:"side"`
	Symbol    string   `mapstructure:"symbol"`
	Name      string   `mapstructure:"name"`
	Market    string   `mapstructure:"market"`
	Strike    float64  `mapstructure:"strike"`
	Premium   float64  `mapstructure:"premium"`
	Expiry    string   `mapstructure:"expiry"`
	Days      int      `mapstructure:"days"`
	Spot      float64  `mapstructure:"spot"`
	Close     float64  `mapstructure:"close"`
	Previous  float64  `mapstructure:"previous"`
	Ask       *float64 `mapstructure:"ask"`
	Bid       *float64 `mapstructure:"bid"`
	Fee       *float64 `mapstructure:"fee"`
	Settle    float64  `mapstructure:"settle"`
	Size      int      `mapstructure:"size"`
	Leverage  float64  `mapstructure:"leverage"`
	Benchmark string   `mapstructure:"benchmark"`
}

// build resolves the description into an option. The fee defaults to the rule-table
// fee of the asset class, the close price to the spot.
func (s contractSpec) build(tables rules.Lookup, defaultSize int, now time.Time) (option.Option, error) {
	class, err := core.ParseAssetClass(s.Class)
	if err != nil {
		return nil, err
	}
	kind, ok := option.KindFor(class)
	if !ok {
		return nil, core.WrapError(core.ErrInvalidInput, fmt.Errorf("no option contract on %s", class))
	}
	side, err := core.ParseOptionSide(s.Side)
	if err != nil {
		return nil, err
	}

	var market core.Market
	if s.Market != "" {
		if market, err = core.ParseMarket(s.Market); err != nil {
			return nil, err
		}
	}

	expiry, err := s.expiry(now)
	if err != nil {
		return nil, err
	}

	closePrice := s.Close
	if closePrice == 0 {
		closePrice = s.Spot
	}
	snap := asset.Snapshot{
		Name:          s.Name,
		Symbol:        s.Symbol,
		Market:        market,
		LastPrice:     s.Spot,
		ClosePrice:    closePrice,
		PreviousPrice: s.Previous,
	}
	var opts []asset.Opt
	if s.Ask != nil {
		opts = append(opts, asset.WithAsk(*s.Ask))
	}
	if s.Bid != nil {
		opts = append(opts, asset.WithBid(*s.Bid))
	}
	if s.Leverage > 0 {
		opts = append(opts, asset.WithLeverage(s.Leverage))
	}

	var underlying *asset.Asset
	if class == core.AssetCrypto {
		underlying = asset.NewCrypto(snap, tables, opts...)
	} else {
		underlying = asset.New(class, snap, tables, opts...)
	}

	fee := underlying.TransactionFee()
	if s.Fee != nil {
		fee = *s.Fee
	}
	size := s.Size
	if size <= 0 {
		size = defaultSize
	}

	id := s.ID
	if id == "" {
		id = fmt.Sprintf("%s-%s-%g", s.Symbol, side, s.Strike)
	}

	c := option.Contract{
		ID:             id,
		Side:           side,
		Strike:         s.Strike,
		Premium:        s.Premium,
		Expiry:         expiry,
		Underlying:     underlying,
		ContractSize:   size,
		TransactionFee: fee,
		SettlementCost: s.Settle,
	}
	if kind == option.KindETF {
		return option.NewETF(c, s.Benchmark), nil
	}
	return option.New(kind, c)
}

func (s contractSpec) expiry(now time.Time) (time.Time, error) {
	switch {
	case s.Expiry != "":
		t, err := time.ParseInLocation(time.DateOnly, s.Expiry, now.Location())
		if err != nil {
			return time.Time{}, core.WrapError(core.ErrInvalidInput, fmt.Errorf("expiry must be YYYY-MM-DD: %w", err))
		}
		return t, nil
	case s.Days != 0:
		return now.AddDate(0, 0, s.Days), nil
	}
	return time.Time{}, core.WrapError(core.ErrInvalidInput, fmt.Errorf("expiry or days is required"))
}

// historicalVolatility annualises closes by the asset's trading calendar.
// A series too short or flat to estimate from yields 0, leaving the default.
func historicalVolatility(closes []float64, class core.AssetClass) float64 {
	periods := float64(indicator.TradingDaysPerYear)
	if class == core.AssetCrypto {
		periods = indicator.CalendarDaysPerYear
	}
	return indicator.HistoricalVolatility(closes, periods)
}
