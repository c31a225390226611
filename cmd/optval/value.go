package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/newthinker/optval/internal/valuation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	valueSpec    contractSpec
	valueAsk     float64
	valueBid     float64
	valueFee     float64
	valueNAV     float64
	valueMaxSpot float64
	valueVol     float64
	valueRate    float64
	valueJSON    bool
	valueCloses  []float64
)

var valueCmd = &cobra.Command{
	Use:   "value",
	Short: "Value one option contract",
	Long: `Value one option contract against a snapshot of its underlying and print
the full report: payoff, break-even, moneyness, Greeks and market-rule checks.`,
	Example: `  optval value --class leveraged_etf --side call --symbol X2 --strike 8500 \
    --premium 300 --days 30 --spot 9000 --close 8900 --fee 0.5 --settle 1 --max-spot 9500`,
	RunE: runValue,
}

func init() {
	f := valueCmd.Flags()
	f.StringVar(&valueSpec.ID, "id", "", "contract identifier")
	f.StringVar(&valueSpec.Class, "class", "equity", "underlying asset class (equity, etf, leveraged_etf, crypto)")
	f.StringVar(&valueSpec.Side, "side", "call", "option side (call, put)")
	f.StringVar(&valueSpec.Symbol, "symbol", "", "underlying symbol")
	f.StringVar(&valueSpec.Name, "name", "", "underlying name")
	f.StringVar(&valueSpec.Market, "market", "", "listing market, e.g. tse_first")
	f.Float64Var(&valueSpec.Strike, "strike", 0, "strike price (required)")
	f.Float64Var(&valueSpec.Premium, "premium", 0, "premium per unit")
	f.StringVar(&valueSpec.Expiry, "expiry", "", "expiry date YYYY-MM-DD")
	f.IntVar(&valueSpec.Days, "days", 0, "days to expiry, used when --expiry is not set")
	f.Float64Var(&valueSpec.Spot, "spot", 0, "underlying last price (required)")
	f.Float64Var(&valueSpec.Close, "close", 0, "underlying previous close, defaults to spot")
	f.Float64Var(&valueSpec.Previous, "previous", 0, "underlying price before close")
	f.Float64Var(&valueAsk, "ask", 0, "best ask of the underlying")
	f.Float64Var(&valueBid, "bid", 0, "best bid of the underlying")
	f.Float64Var(&valueFee, "fee", 0, "transaction fee percent, defaults to the rule table")
	f.Float64Var(&valueSpec.Settle, "settle", 0, "settlement cost (percent; flat amount above 1 on equity)")
	f.IntVar(&valueSpec.Size, "size", 0, "contract size, defaults to pricing.contract_size")
	f.Float64Var(&valueSpec.Leverage, "leverage", 0, "leverage ratio of a leveraged ETF")
	f.StringVar(&valueSpec.Benchmark, "benchmark", "", "benchmark index of an ETF")
	f.Float64Var(&valueNAV, "nav", 0, "ETF net asset value for the deviation check")
	f.Float64Var(&valueMaxSpot, "max-spot", 0, "price ceiling for the leveraged max-gain bound")
	f.Float64Var(&valueVol, "vol", 0, "annual volatility override")
	f.Float64SliceVar(&valueCloses, "closes", nil, "daily closes to estimate volatility from when --vol is not set")
	f.Float64Var(&valueRate, "rate", 0, "risk-free rate override")
	f.BoolVar(&valueJSON, "json", false, "print the report as JSON")

	valueCmd.MarkFlagRequired("strike")
	valueCmd.MarkFlagRequired("spot")

	rootCmd.AddCommand(valueCmd)
}

func runValue(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.shutdown()

	f := cmd.Flags()
	spec := valueSpec
	if f.Changed("ask") {
		spec.Ask = &valueAsk
	}
	if f.Changed("bid") {
		spec.Bid = &valueBid
	}
	if f.Changed("fee") {
		spec.Fee = &valueFee
	}

	now := time.Now()
	opt, err := spec.build(rt.tables, rt.cfg.Pricing.ContractSize, now)
	if err != nil {
		return err
	}

	sc := valuation.Scenario{
		At:         now,
		Volatility: valueVol,
		NAV:        valueNAV,
		MaxSpot:    valueMaxSpot,
	}
	if f.Changed("rate") {
		sc.RiskFreeRate = &valueRate
	}
	if sc.Volatility <= 0 && len(valueCloses) > 0 {
		sc.Volatility = historicalVolatility(valueCloses, opt.Terms().Underlying.Class)
		rt.log.Debug("volatility estimated from closes", zap.Int("closes", len(valueCloses)), zap.Float64("volatility", sc.Volatility))
	}

	report, err := rt.engine.Assess(cmd.Context(), opt, sc)
	if report == nil {
		return err
	}

	out := cmd.OutOrStdout()
	if valueJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			return encErr
		}
	} else {
		printReport(out, report)
	}
	return err
}

func printReport(out io.Writer, r *valuation.Report) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	fmt.Fprintf(w, "Report:\t%s\n", r.ID)
	fmt.Fprintf(w, "Contract:\t%s (%s %s)\n", r.Contract, r.Kind, r.Side)
	fmt.Fprintf(w, "Underlying:\t%s %s\n", r.Symbol, r.Market)
	fmt.Fprintf(w, "Expiry:\t%s (%d days)\n", r.Expiry.Format(time.DateOnly), r.DaysToExpiry)
	fmt.Fprintf(w, "Spot / Strike:\t%s / %s\n", r.Spot, r.Strike)
	fmt.Fprintf(w, "Status:\t%s\n", r.Status)
	fmt.Fprintf(w, "Valid / Expired:\t%t / %t\n", r.Valid, r.Expired)
	fmt.Fprintf(w, "Payoff:\t%s\n", r.Payoff)
	fmt.Fprintf(w, "Break-even:\t%s\n", r.BreakEven)
	if r.TheoreticalPrice != nil {
		fmt.Fprintf(w, "Theoretical:\t%s (vol %.2f, rate %.4f)\n", r.TheoreticalPrice, r.Volatility, r.RiskFreeRate)
	}
	if r.Greeks != nil {
		fmt.Fprintf(w, "Greeks:\t%s\n", r.Greeks)
	}
	fmt.Fprintf(w, "Price-limit breach:\t%t\n", r.PriceLimitBreach)
	fmt.Fprintf(w, "Trading now:\t%t\n", r.TradingNow)
	if r.Spread != nil {
		fmt.Fprintf(w, "Spread:\t%s\n", r.Spread)
	}
	if e := r.ETF; e != nil {
		fmt.Fprintf(w, "Liquid:\t%t\n", e.Liquid)
		if e.NavDeviation != nil && e.NavFlagged != nil {
			fmt.Fprintf(w, "NAV deviation:\t%s (flagged %t)\n", e.NavDeviation, *e.NavFlagged)
		}
	}
	if l := r.Leveraged; l != nil {
		fmt.Fprintf(w, "Leverage:\t%gx\n", l.LeverageRatio)
		fmt.Fprintf(w, "Max loss:\t%s\n", l.MaxLoss)
		if l.MaxGain != nil {
			fmt.Fprintf(w, "Max gain:\t%s\n", l.MaxGain)
		}
	}
}
