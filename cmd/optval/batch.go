package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/newthinker/optval/internal/option"
	"github.com/newthinker/optval/internal/valuation"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	batchWorkers int
	batchVol     float64
	batchJSON    bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [file]",
	Short: "Value every contract listed in a YAML or JSON file",
	Long: `Value a book of contracts under one scenario. The file holds a "contracts"
list whose entries take the same fields as the value command's flags.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", valuation.DefaultWorkers, "concurrent valuations")
	batchCmd.Flags().Float64Var(&batchVol, "vol", 0, "annual volatility override")
	batchCmd.Flags().BoolVar(&batchJSON, "json", false, "print reports as JSON")

	rootCmd.AddCommand(batchCmd)
}

func loadBatch(path string) ([]contractSpec, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading batch file: %w", err)
	}

	var specs []contractSpec
	if err := v.UnmarshalKey("contracts", &specs); err != nil {
		return nil, fmt.Errorf("decoding contracts: %w", err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%s lists no contracts", path)
	}
	return specs, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	rt, err := loadRuntime()
	if err != nil {
		return err
	}
	defer rt.shutdown()

	specs, err := loadBatch(args[0])
	if err != nil {
		return err
	}

	now := time.Now()
	opts := make([]option.Option, 0, len(specs))
	for i, spec := range specs {
		opt, err := spec.build(rt.tables, rt.cfg.Pricing.ContractSize, now)
		if err != nil {
			return fmt.Errorf("contract %d: %w", i+1, err)
		}
		opts = append(opts, opt)
	}

	reports, err := rt.engine.AssessAll(cmd.Context(), opts, valuation.Scenario{At: now, Volatility: batchVol}, batchWorkers)

	out := cmd.OutOrStdout()
	if batchJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(reports); encErr != nil {
			return encErr
		}
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CONTRACT\tKIND\tSTATUS\tDAYS\tPAYOFF\tBREAK-EVEN\tDELTA")
	for _, r := range reports {
		if r == nil {
			continue
		}
		delta := "-"
		if r.Greeks != nil {
			delta = fmt.Sprintf("%.4f", r.Greeks.Delta)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			r.Contract, r.Kind, r.Status, r.DaysToExpiry, r.Payoff, r.BreakEven, delta)
	}
	w.Flush()
	return err
}
