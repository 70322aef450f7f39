package cli

import (
	"fmt"
	"strconv"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/internal/output"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type breakdownOptions struct {
	preset string
	years  int
}

// breakdownLine is one row of the breakdown table.
type breakdownLine struct {
	label  string
	value  func(y domain.YearState) string
	detail bool // category lines only shown for the categories model
}

func amountOf(f func(y domain.YearState) decimal.Decimal) func(y domain.YearState) string {
	return func(y domain.YearState) string { return output.FormatAmount(f(y)) }
}

var breakdownLines = []breakdownLine{
	{label: "Tax revenue", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.Tax.Total })},
	{label: "  consumption", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.Tax.Consumption }), detail: true},
	{label: "  income", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.Tax.Income }), detail: true},
	{label: "  corporate", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.Tax.Corporate }), detail: true},
	{label: "  other", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.Tax.Other }), detail: true},
	{label: "Remittance", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.Remittance })},
	{label: "  bond income", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.CentralBankIncome })},
	{label: "  funding cost", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.CentralBankFundingCost })},
	{label: "Other revenue", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.OtherRevenue })},
	{label: "Total revenue", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.TotalRevenue })},
	{label: "Policy expenditure", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.PolicyExpenditure })},
	{label: "Interest expense", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.InterestExpense })},
	{label: "Average coupon", value: func(y domain.YearState) string { return output.FormatRate(y.AverageCoupon) }},
	{label: "Fiscal balance", value: func(y domain.YearState) string { return output.FormatSigned(y.FiscalBalance) }},
	{label: "Debt", value: amountOf(func(y domain.YearState) decimal.Decimal { return y.Debt })},
	{label: "Interest burden", value: func(y domain.YearState) string { return output.FormatPercentage(y.InterestBurden) }},
}

// NewBreakdownCommand creates the breakdown command, which prints the budget lines of
// the first years of a preset for checking against a hand calculation.
func NewBreakdownCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &breakdownOptions{}
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "Show the budget lines of a preset's first years",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBreakdown(cmd, rootOpts, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.preset, "preset", "p", config.BaselinePresetName, "preset scenario name")
	cmd.Flags().IntVar(&opts.years, "years", 3, "number of years to show")
	return cmd
}

func runBreakdown(cmd *cobra.Command, rootOpts *RootOptions, opts *breakdownOptions) error {
	if opts.years < 1 || opts.years > domain.MaxHorizon {
		return WrapExitError(ExitCommandError, "invalid --years",
			fmt.Errorf("must be between 1 and %d, got %d", domain.MaxHorizon, opts.years))
	}
	scenario, err := config.LookupPreset(opts.preset)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading preset", err)
	}

	settings := rootOpts.Settings.ProjectionSettings()
	settings.Horizon = opts.years
	projection, err := calculation.GenerateProjection(scenario.Parameters, settings)
	if err != nil {
		return WrapExitError(ExitFailure, "projecting", err)
	}

	w := cmd.OutOrStdout()
	if rootOpts.wantsJSON() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(projection)
	}

	rates := calculation.DeriveRates(scenario.Parameters)
	fmt.Fprintln(w, RenderTitle(fmt.Sprintf("BREAKDOWN: %s", scenario.Label)))
	fmt.Fprintf(w, "Nominal growth %s, market yield %s, policy rate %s\n\n",
		output.FormatRate(rates.NominalGrowth), output.FormatRate(rates.Market), output.FormatRate(rates.Policy))

	t := Table{Headers: []string{""}, RightAlign: []bool{false}}
	for _, y := range projection {
		h := strconv.Itoa(y.Year)
		if y.Tax.EventApplied {
			h += "*"
		}
		t.Headers = append(t.Headers, h)
		t.RightAlign = append(t.RightAlign, true)
	}
	disaggregated := projection[0].Tax.Disaggregated
	for _, l := range breakdownLines {
		if l.detail && !disaggregated {
			continue
		}
		row := []string{l.label}
		for _, y := range projection {
			row = append(row, l.value(y))
		}
		t.Rows = append(t.Rows, row)
	}
	fmt.Fprint(w, RenderTable(t))
	if scenario.Parameters.Tax.Event != nil {
		fmt.Fprintln(w, mutedStyle.Render("* tax rate event applied"))
	}
	return nil
}
