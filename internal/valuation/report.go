package valuation

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/optval/internal/core"
	"github.com/newthinker/optval/internal/greeks"
	"github.com/newthinker/optval/internal/option"
	"github.com/shopspring/decimal"
)

// moneyPlaces is the rounding applied to every currency amount in a report.
const moneyPlaces = 4

// Report is the outcome of one valuation. Business conditions such as an
// expired contract or a breached price band are fields, never errors.
type Report struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	AsOf      time.Time `json:"as_of"`

	Kind     option.Kind     `json:"kind"`
	Contract string          `json:"contract"`
	Symbol   string          `json:"symbol"`
	Market   core.Market     `json:"market"`
	Side     core.OptionSide `json:"side"`
	Expiry   time.Time       `json:"expiry"`

	Spot    decimal.Decimal `json:"spot"`
	Strike  decimal.Decimal `json:"strike"`
	Premium decimal.Decimal `json:"premium"`

	Status       core.ContractStatus `json:"status"`
	Valid        bool                `json:"valid"`
	Expired      bool                `json:"expired"`
	DaysToExpiry int                 `json:"days_to_expiry"`

	Payoff    decimal.Decimal `json:"payoff"`
	BreakEven decimal.Decimal `json:"break_even"`

	TheoreticalPrice *decimal.Decimal `json:"theoretical_price,omitempty"`
	Greeks           *greeks.Greeks   `json:"greeks,omitempty"`
	Volatility       float64          `json:"volatility"`
	RiskFreeRate     float64          `json:"risk_free_rate"`

	PriceLimitBreach bool             `json:"price_limit_breach"`
	TradingNow       bool             `json:"trading_now"`
	Spread           *decimal.Decimal `json:"spread,omitempty"`

	ETF       *ETFReport       `json:"etf,omitempty"`
	Leveraged *LeveragedReport `json:"leveraged,omitempty"`
}

// ETFReport carries the fund checks; NAV fields are set only when a NAV was given.
type ETFReport struct {
	BenchmarkIndex string           `json:"benchmark_index,omitempty"`
	Liquid         bool             `json:"liquid"`
	NavDeviation   *decimal.Decimal `json:"nav_deviation,omitempty"`
	NavFlagged     *bool            `json:"nav_flagged,omitempty"`
}

// LeveragedReport carries the leveraged-fund risk bounds.
type LeveragedReport struct {
	LeverageRatio float64          `json:"leverage_ratio"`
	MaxLoss       decimal.Decimal  `json:"max_loss"`
	MaxGain       *decimal.Decimal `json:"max_gain,omitempty"`
}

func money(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(moneyPlaces)
}

// moneyPtr drops non-finite values instead of reporting a misleading zero.
func moneyPtr(v float64) *decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	d := decimal.NewFromFloat(v).Round(moneyPlaces)
	return &d
}

func finite(g greeks.Greeks) bool {
	for _, v := range []float64{g.Delta, g.Gamma, g.Theta, g.Vega, g.Rho} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
