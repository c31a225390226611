// Package valuation runs every query of an option and its underlying for one
// scenario and assembles the results into a Report.
package valuation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/newthinker/optval/internal/core"
	"github.com/newthinker/optval/internal/greeks"
	"github.com/newthinker/optval/internal/metrics"
	"github.com/newthinker/optval/internal/option"
	"github.com/newthinker/optval/internal/storage/archive"
	"go.uber.org/zap"
)

// ArchivePrefix is the root of archived reports.
const ArchivePrefix = "valuations"

// Config holds engine-wide pricing defaults.
type Config struct {
	// Volatility is the annual volatility for Greeks when a scenario gives none.
	Volatility float64
	// RiskFreeRate overrides the underlying's rule set when non-nil.
	RiskFreeRate *float64
	// Calculator defaults to Black-Scholes.
	Calculator greeks.Calculator
}

// Scenario holds per-valuation overrides. Zero fields fall back to the engine
// configuration.
type Scenario struct {
	At           time.Time
	Volatility   float64
	RiskFreeRate *float64
	// NAV enables the ETF deviation check.
	NAV float64
	// MaxSpot enables the leveraged max-gain bound.
	MaxSpot float64
}

// Engine values options. It is safe for concurrent use as long as callers do
// not share one ETF option between goroutines.
type Engine struct {
	cfg     Config
	logger  *zap.Logger
	metrics *metrics.Registry
	store   archive.Storage
	now     func() time.Time
}

// EngineOpt configures optional collaborators.
type EngineOpt func(*Engine)

// WithMetrics records valuation metrics on reg.
func WithMetrics(reg *metrics.Registry) EngineOpt {
	return func(e *Engine) { e.metrics = reg }
}

// WithArchive writes every report to store.
func WithArchive(store archive.Storage) EngineOpt {
	return func(e *Engine) { e.store = store }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EngineOpt {
	return func(e *Engine) { e.now = now }
}

// New creates an engine.
func New(cfg Config, logger *zap.Logger, opts ...EngineOpt) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Volatility <= 0 {
		cfg.Volatility = option.DefaultVolatility
	}
	if cfg.Calculator == nil {
		cfg.Calculator = greeks.NewBlackScholes()
	}

	e := &Engine{
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Assess values opt under sc. The report is returned even when archiving
// fails, together with an ErrArchiveFailed error.
func (e *Engine) Assess(ctx context.Context, opt option.Option, sc Scenario) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if opt == nil || opt.Terms().Underlying == nil {
		return nil, core.WrapError(core.ErrInvalidInput, fmt.Errorf("option and underlying are required"))
	}

	start := time.Now()
	terms := opt.Terms()
	underlying := terms.Underlying

	at := sc.At
	if at.IsZero() {
		at = e.now()
	}
	vol := e.cfg.Volatility
	if sc.Volatility > 0 {
		vol = sc.Volatility
	}
	rate := underlying.RiskFreeRate()
	if e.cfg.RiskFreeRate != nil {
		rate = *e.cfg.RiskFreeRate
	}
	if sc.RiskFreeRate != nil {
		rate = *sc.RiskFreeRate
	}

	spot := opt.SpotPrice()
	report := &Report{
		ID:           uuid.New(),
		CreatedAt:    e.now().UTC(),
		AsOf:         at,
		Kind:         opt.Kind(),
		Contract:     terms.ID,
		Symbol:       underlying.Symbol,
		Market:       underlying.Market,
		Side:         terms.Side,
		Expiry:       terms.Expiry,
		Spot:         money(spot),
		Strike:       money(terms.Strike),
		Premium:      money(terms.Premium),
		Status:       opt.Status(),
		Valid:        opt.IsValid(),
		Expired:      opt.HasExpired(at),
		DaysToExpiry: terms.TimeToExpiryDaysAt(at),
		Payoff:       money(opt.Payoff(spot)),
		BreakEven:    money(opt.BreakEven()),
		Volatility:   vol,
		RiskFreeRate: rate,

		PriceLimitBreach: underlying.HasPriceLimitBreach(spot),
		TradingNow:       underlying.IsTradingNow(at),
	}
	if spread, ok := underlying.Spread(); ok {
		report.Spread = moneyPtr(spread)
	}

	if report.DaysToExpiry > 0 {
		e.addPricing(report, opt, at, rate, vol)
	}

	switch o := opt.(type) {
	case *option.ETFOption:
		report.ETF = etfReport(o, sc.NAV)
	case *option.LeveragedETFOption:
		report.Leveraged = leveragedReport(o, sc.MaxSpot)
	}

	e.observe(report, time.Since(start))

	if e.store != nil {
		if err := e.archive(ctx, report); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (e *Engine) addPricing(r *Report, opt option.Option, at time.Time, rate, vol float64) {
	terms := opt.Terms()

	start := time.Now()
	g := opt.Greeks(
		option.WithCalculator(e.cfg.Calculator),
		option.WithRiskFreeRate(rate),
		option.WithVolatility(vol),
		option.AsOf(at),
	)
	if e.metrics != nil {
		e.metrics.RecordGreeks(time.Since(start))
	}
	if finite(g) {
		r.Greeks = &g
	} else {
		e.logger.Debug("greeks not finite, omitted",
			zap.String("contract", terms.ID),
			zap.Float64("spot", opt.SpotPrice()))
	}

	if pricer, ok := e.cfg.Calculator.(greeks.Pricer); ok {
		years := float64(r.DaysToExpiry) / 365
		r.TheoreticalPrice = moneyPtr(pricer.Price(terms.Side, opt.SpotPrice(), terms.Strike, years, rate, vol))
	}
}

func etfReport(o *option.ETFOption, nav float64) *ETFReport {
	r := &ETFReport{
		BenchmarkIndex: o.BenchmarkIndex,
		Liquid:         o.IsLiquid(),
	}
	if nav > 0 {
		flagged := o.HasNavDeviation(nav)
		r.NavFlagged = &flagged
		if o.NavDeviation != nil {
			d := money(*o.NavDeviation)
			r.NavDeviation = &d
		}
	}
	return r
}

func leveragedReport(o *option.LeveragedETFOption, maxSpot float64) *LeveragedReport {
	r := &LeveragedReport{
		LeverageRatio: o.LeverageRatio,
		MaxLoss:       money(o.MaxLoss()),
	}
	if gain, ok := o.MaxGain(maxSpot); ok {
		r.MaxGain = moneyPtr(gain)
	}
	return r
}

func (e *Engine) observe(r *Report, elapsed time.Duration) {
	fields := []zap.Field{
		zap.String("id", r.ID.String()),
		zap.String("kind", string(r.Kind)),
		zap.String("contract", r.Contract),
		zap.String("symbol", r.Symbol),
		zap.String("status", string(r.Status)),
		zap.Stringer("payoff", r.Payoff),
		zap.Duration("elapsed", elapsed),
	}

	if !r.Valid {
		e.logger.Warn("valuing invalid contract", fields...)
	}
	if r.PriceLimitBreach {
		e.logger.Warn("spot outside daily price band",
			zap.String("symbol", r.Symbol),
			zap.String("market", string(r.Market)),
			zap.Stringer("spot", r.Spot))
	}
	e.logger.Debug("valuation complete", fields...)

	if e.metrics == nil {
		return
	}
	e.metrics.RecordValuation(string(r.Kind), string(r.Status), elapsed)
	if !r.Valid {
		e.metrics.RecordInvalidContract(string(r.Kind))
	}
	if r.PriceLimitBreach {
		e.metrics.RecordPriceLimitBreach(string(r.Market))
	}
}

func (e *Engine) archive(ctx context.Context, r *Report) error {
	path := ArchivePath(r)

	data, err := json.Marshal(r)
	if err == nil {
		err = e.store.Write(ctx, path, data)
	}
	if e.metrics != nil {
		e.metrics.RecordArchiveWrite(err)
	}
	if err != nil {
		e.logger.Error("archiving report failed", zap.String("path", path), zap.Error(err))
		return core.WrapError(core.ErrArchiveFailed, err)
	}

	e.logger.Debug("report archived", zap.String("path", path))
	return nil
}

// ArchivePath is where a report is stored: valuations/YYYY/MM/DD/<contract>-<id>.json.
// Contracts without an ID use the underlying symbol.
func ArchivePath(r *Report) string {
	name := r.Contract
	if name == "" {
		name = r.Symbol
	}
	return archive.DatedPath(ArchivePrefix, r.CreatedAt, fmt.Sprintf("%s-%s.json", safeName(name), r.ID))
}

var nameReplacer = strings.NewReplacer("/", "_", "\\", "_", " ", "_", "..", "_")

func safeName(s string) string {
	if s == "" {
		return "contract"
	}
	return nameReplacer.Replace(s)
}
