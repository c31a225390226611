package option

import (
	"testing"
	"time"

	"github.com/newthinker/optval/internal/asset"
	"github.com/newthinker/optval/internal/core"
	"github.com/newthinker/optval/internal/rules"
	"github.com/stretchr/testify/assert"
)

const tolerance = 1e-6

func TestEquityOption_NoCosts(t *testing.T) {
	o := NewEquity(contractOn(equityUnderlying(150), core.SideCall, 160, 30*24*time.Hour))

	assert.InDelta(t, 165.0, o.BreakEven(), tolerance)
	assert.InDelta(t, 5.0, o.Payoff(170), tolerance)
	assert.InDelta(t, -5.0, o.Payoff(150), tolerance, "premium is lost out of the money")
}

func TestEquityOption_PercentSettlement(t *testing.T) {
	c := contractOn(equityUnderlying(150), core.SideCall, 160, 30*24*time.Hour)
	c.TransactionFee = 5
	c.SettlementCost = 1
	o := NewEquity(c)

	// 160 + 5 + 5% of 160 + 1% of 160
	assert.InDelta(t, 174.6, o.BreakEven(), tolerance)
	// 10 - (5 + 8.5 + 1.7)
	assert.InDelta(t, -5.2, o.Payoff(170), tolerance)
	// 0 - (5 + 7.5 + 1.5)
	assert.InDelta(t, -14.0, o.Payoff(150), tolerance)
}

func TestEquityOption_FlatSettlementAboveOne(t *testing.T) {
	c := contractOn(equityUnderlying(150), core.SideCall, 160, 30*24*time.Hour)
	c.TransactionFee = 5
	c.SettlementCost = 2.5
	o := NewEquity(c)

	assert.InDelta(t, 175.5, o.BreakEven(), tolerance)
}

func TestEquityOption_PayoffNotScaledBySize(t *testing.T) {
	c := contractOn(equityUnderlying(150), core.SideCall, 160, 30*24*time.Hour)
	c.ContractSize = 1000
	o := NewEquity(c)

	assert.InDelta(t, 5.0, o.Payoff(170), tolerance)
}

func TestEquityOption_PutBreakEvenAddsCosts(t *testing.T) {
	c := contractOn(equityUnderlying(150), core.SidePut, 160, 30*24*time.Hour)
	o := NewEquity(c)

	assert.InDelta(t, 165.0, o.BreakEven(), tolerance)
	assert.InDelta(t, 5.0, o.Payoff(150), tolerance)
}

func TestEquityOption_ZeroSpotUsesLivePrice(t *testing.T) {
	o := NewEquity(contractOn(equityUnderlying(170), core.SideCall, 160, 30*24*time.Hour))

	assert.InDelta(t, o.Payoff(170), o.Payoff(0), tolerance)
	assert.InDelta(t, o.Payoff(170), o.Payoff(-1), tolerance)
}

func etfContract(spot float64) Contract {
	u := asset.NewETF(asset.Snapshot{
		Name:       "Kamand Gold Fund",
		Symbol:     "KAMAND",
		Market:     core.MarketTSEFirst,
		LastPrice:  spot,
		ClosePrice: 10900,
	}, rules.Default(), asset.WithQuote(11050, 10950))
	return Contract{
		ID:             "ETF-C",
		Side:           core.SideCall,
		Strike:         10500,
		Premium:        200,
		Expiry:         time.Now().Add(30 * 24 * time.Hour),
		Underlying:     u,
		ContractSize:   1000,
		TransactionFee: 0.5,
		SettlementCost: 1,
	}
}

func TestETFOption_PayoffAndBreakEven(t *testing.T) {
	o := NewETF(etfContract(11000), "gold")

	assert.Equal(t, "gold", o.BenchmarkIndex)
	assert.InDelta(t, 10857.5, o.BreakEven(), tolerance)
	// (500 - 200 - 55 - 110) * 1000
	assert.InDelta(t, 135000.0, o.Payoff(11000), tolerance)
	// (0 - 200 - 50 - 100) * 1000
	assert.InDelta(t, -350000.0, o.Payoff(10000), tolerance)
	assert.InDelta(t, o.Payoff(11000), o.Payoff(0), tolerance)
}

func TestETFOption_IsLiquid(t *testing.T) {
	tests := []struct {
		name     string
		last     float64
		ask, bid *float64
		want     bool
	}{
		{"tight spread", 11000, ptr(11050), ptr(10950), true},
		{"exactly two percent", 100, ptr(101), ptr(99), false},
		{"wide spread", 100, ptr(105), ptr(95), false},
		{"missing ask", 100, nil, ptr(99), false},
		{"missing bid", 100, ptr(101), nil, false},
		{"no price", 0, ptr(101), ptr(99), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := etfContract(tt.last)
			c.Underlying.Ask = tt.ask
			c.Underlying.Bid = tt.bid
			assert.Equal(t, tt.want, NewETF(c, "").IsLiquid())
		})
	}

	c := etfContract(11000)
	c.Underlying = nil
	assert.False(t, NewETF(c, "").IsLiquid())
}

func TestETFOption_HasNavDeviation(t *testing.T) {
	o := NewETF(etfContract(11000), "")
	assert.Nil(t, o.NavDeviation)

	assert.True(t, o.HasNavDeviation(10600))
	if assert.NotNil(t, o.NavDeviation) {
		assert.InDelta(t, 400.0/10600, *o.NavDeviation, 1e-12)
	}

	assert.False(t, o.HasNavDeviation(11000))
	if assert.NotNil(t, o.NavDeviation) {
		assert.Equal(t, 0.0, *o.NavDeviation, "deviation is stored on every call")
	}
}

func leveragedContract(spot float64) Contract {
	u := asset.NewLeveragedETF(asset.Snapshot{
		Name:       "Double Index",
		Symbol:     "X2",
		Market:     core.MarketTSEFirst,
		LastPrice:  spot,
		ClosePrice: 8900,
	}, 2, rules.Default())
	return Contract{
		ID:             "LEV-C",
		Side:           core.SideCall,
		Strike:         8500,
		Premium:        300,
		Expiry:         time.Now().Add(30 * 24 * time.Hour),
		Underlying:     u,
		ContractSize:   1000,
		TransactionFee: 0.5,
		SettlementCost: 1,
	}
}

func TestLeveragedETFOption_PayoffAndBreakEven(t *testing.T) {
	o := NewLeveragedETF(leveragedContract(9000), 2)

	// (500*2 - 300 - 45 - 90) * 1000
	assert.InDelta(t, 565000.0, o.Payoff(9000), tolerance)
	// (0 - 300 - 40 - 80) * 1000
	assert.InDelta(t, -420000.0, o.Payoff(8000), tolerance)
	assert.InDelta(t, 8927.5, o.BreakEven(), tolerance)
}

func TestLeveragedETFOption_MaxLossAndGain(t *testing.T) {
	o := NewLeveragedETF(leveragedContract(9000), 2)

	assert.InDelta(t, 435000.0, o.MaxLoss(), tolerance)

	gain, ok := o.MaxGain(9500)
	assert.True(t, ok)
	assert.InDelta(t, 1565000.0, gain, tolerance)

	_, ok = o.MaxGain(0)
	assert.False(t, ok)
}

func TestLeveragedETFOption_MaxLossFallsBackToStrike(t *testing.T) {
	o := NewLeveragedETF(leveragedContract(0), 2)

	// (300 + 42.5 + 85) * 1000
	assert.InDelta(t, 427500.0, o.MaxLoss(), tolerance)
}

func TestLeveragedETFOption_DefaultRatio(t *testing.T) {
	o := NewLeveragedETF(leveragedContract(9000), 0)
	assert.Equal(t, DefaultLeverageRatio, o.LeverageRatio)
}

func cryptoContract(side core.OptionSide) Contract {
	u := asset.NewCrypto(asset.Snapshot{Name: "Bitcoin", Symbol: "BTC", LastPrice: 31000, ClosePrice: 30500}, rules.Default())
	return Contract{
		ID:             "BTC-30000",
		Side:           side,
		Strike:         30000,
		Premium:        500,
		Expiry:         time.Now().Add(7 * 24 * time.Hour),
		Underlying:     u,
		TransactionFee: 3,
		SettlementCost: 3,
	}
}

func TestCryptoOption(t *testing.T) {
	call := NewCrypto(cryptoContract(core.SideCall))
	assert.Equal(t, core.MarketGlobal, call.Underlying.Market)
	assert.InDelta(t, 2500.0, call.Payoff(32500), tolerance, "fees are ignored")
	assert.InDelta(t, 0.0, call.Payoff(29000), tolerance)
	assert.InDelta(t, 1000.0, call.Payoff(0), tolerance)
	assert.InDelta(t, 30500.0, call.BreakEven(), tolerance)

	put := NewCrypto(cryptoContract(core.SidePut))
	assert.InDelta(t, 29500.0, put.BreakEven(), tolerance)
	assert.InDelta(t, 1000.0, put.Payoff(29000), tolerance)
}

func TestCryptoOption_IntrinsicRoundTrip(t *testing.T) {
	c := cryptoContract(core.SideCall)
	c.Strike = 160
	c.Premium = 5
	o := NewCrypto(c)

	assert.InDelta(t, 165.0, o.BreakEven(), tolerance)
	assert.InDelta(t, 10.0, o.Payoff(170), tolerance)
	assert.InDelta(t, 0.0, o.Payoff(150), tolerance)
}

func TestPayoff_NeverBelowMinusCost(t *testing.T) {
	spots := []float64{1, 5000, 8000, 8500, 9000, 12000}
	for _, side := range []core.OptionSide{core.SideCall, core.SidePut} {
		c := leveragedContract(9000)
		c.Side = side
		o := NewLeveragedETF(c, 2)
		for _, s := range spots {
			floor := -o.costPerUnit(s) * o.size()
			assert.GreaterOrEqual(t, o.Payoff(s), floor-tolerance, "%s at %v", side, s)
		}
	}
}

func ptr(v float64) *float64 { return &v }
