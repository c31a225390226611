package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/newthinker/optval/internal/core"
	"github.com/spf13/cobra"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Print the market rule tables in effect",
	RunE:  runRules,
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}

func runRules(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.shutdown()

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, "CLASS\tFEE %\tSETTLEMENT\tTRADING HOURS")
	for _, class := range core.AssetClasses() {
		fmt.Fprintf(w, "%s\t%g\tT+%d\t%s\n",
			class, rt.tables.TransactionFee(class), rt.tables.SettlementDays(class), rt.tables.TradingHours(class))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "MARKET\tLIMIT %\tNAME")
	for _, market := range core.Markets() {
		limit := "none"
		if l := rt.tables.PriceLimit(market); l > 0 {
			limit = fmt.Sprintf("±%g", l)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", market, limit, market.Label())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nRisk-free rate: %g\n", rt.tables.RiskFreeRate())
	return nil
}
