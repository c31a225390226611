package main

import (
	"fmt"

	"github.com/newthinker/optval/internal/core"
	"github.com/newthinker/optval/internal/greeks"
	"github.com/newthinker/optval/internal/indicator"
	"github.com/spf13/cobra"
)

var (
	greeksSide   string
	greeksSpot   float64
	greeksStrike float64
	greeksDays   int
	greeksRate   float64
	greeksVol    float64
	greeksCloses []float64
)

var greeksCmd = &cobra.Command{
	Use:   "greeks",
	Short: "Compute Black-Scholes Greeks and price from raw inputs",
	RunE:  runGreeks,
}

func init() {
	f := greeksCmd.Flags()
	f.StringVar(&greeksSide, "side", "call", "option side (call, put)")
	f.Float64Var(&greeksSpot, "spot", 0, "underlying price (required)")
	f.Float64Var(&greeksStrike, "strike", 0, "strike price (required)")
	f.IntVar(&greeksDays, "days", 0, "calendar days to expiry (required)")
	f.Float64Var(&greeksRate, "rate", -1, "annual risk-free rate, defaults to the configured rate")
	f.Float64Var(&greeksVol, "vol", 0, "annual volatility, defaults to pricing.volatility")
	f.Float64SliceVar(&greeksCloses, "closes", nil, "daily closes to estimate volatility from when --vol is not set")

	greeksCmd.MarkFlagRequired("spot")
	greeksCmd.MarkFlagRequired("strike")
	greeksCmd.MarkFlagRequired("days")

	rootCmd.AddCommand(greeksCmd)
}

func runGreeks(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.shutdown()

	side, err := core.ParseOptionSide(greeksSide)
	if err != nil {
		return err
	}
	if greeksSpot <= 0 || greeksStrike <= 0 || greeksDays <= 0 {
		return core.WrapError(core.ErrInvalidInput, fmt.Errorf("spot, strike and days must be positive"))
	}

	rate := rt.cfg.Pricing.RiskFreeRate
	if cmd.Flags().Changed("rate") {
		rate = greeksRate
	}
	vol := rt.cfg.Pricing.Volatility
	switch {
	case greeksVol > 0:
		vol = greeksVol
	case len(greeksCloses) > 0:
		if hv := indicator.HistoricalVolatility(greeksCloses, indicator.TradingDaysPerYear); hv > 0 {
			vol = hv
		}
	}

	bs := greeks.NewBlackScholes()
	years := float64(greeksDays) / 365
	g := bs.Calculate(side, greeksSpot, greeksStrike, years, rate, vol)
	price := bs.Price(side, greeksSpot, greeksStrike, years, rate, vol)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %g/%g, %d days, rate %.4f, vol %.2f\n", side, greeksSpot, greeksStrike, greeksDays, rate, vol)
	fmt.Fprintf(out, "Price:  %.4f\n", price)
	fmt.Fprintf(out, "Greeks: %s\n", g)
	return nil
}
