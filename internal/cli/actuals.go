package cli

import (
	"fmt"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/internal/output"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var actualStatisticsSeries = []string{"tax", "interest_expense", "debt", "interest_burden"}

// NewActualsCommand creates the actuals command, which prints the realised fiscal data.
func NewActualsCommand(rootOpts *RootOptions) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "actuals",
		Short: "Show realised fiscal data used as the historical reference",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" {
				file = rootOpts.Settings.Data.ActualsPath
			}
			m := calculation.NewActualDataManager(file)
			if err := m.Load(); err != nil {
				return WrapExitError(ExitCommandError, "loading actual data", err)
			}
			return printActuals(cmd, rootOpts, m)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "CSV file of actual records (default: bundled dataset)")
	return cmd
}

func printActuals(cmd *cobra.Command, rootOpts *RootOptions, m *calculation.ActualDataManager) error {
	records, err := m.Records()
	if err != nil {
		return err
	}
	issues, err := m.ValidateDataQuality()
	if err != nil {
		return err
	}
	stats := make(map[string]calculation.SeriesStatistics, len(actualStatisticsSeries))
	for _, s := range actualStatisticsSeries {
		if stats[s], err = m.Statistics(s); err != nil {
			return err
		}
	}

	w := cmd.OutOrStdout()
	if rootOpts.wantsJSON() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Source     string                                  `json:"source"`
			Records    []domain.ActualRecord                   `json:"records"`
			Statistics map[string]calculation.SeriesStatistics `json:"statistics"`
			Issues     []string                                `json:"issues,omitempty"`
		}{m.Source(), records, stats, issues})
	}

	t := Table{
		Headers:    []string{"YEAR", "TAX", "REVENUE", "POLICY EXP", "INTEREST", "BALANCE", "DEBT", "BURDEN"},
		RightAlign: []bool{false, true, true, true, true, true, true, true},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, []string{
			fmt.Sprint(r.Year),
			output.FormatAmount(r.Tax.Total),
			output.FormatAmount(r.TotalRevenue),
			output.FormatAmount(r.PolicyExpenditure),
			output.FormatAmount(r.InterestExpense),
			output.FormatAmount(r.FiscalBalance),
			output.FormatAmount(r.Debt),
			output.FormatPercentage(r.InterestBurden),
		})
	}
	fmt.Fprintln(w, RenderTitle("ACTUAL FISCAL DATA ("+m.Source()+")"))
	fmt.Fprint(w, RenderTable(t))
	fmt.Fprintln(w)
	for _, s := range actualStatisticsSeries {
		st := stats[s]
		fmt.Fprintf(w, "  %-18s mean %s  min %s  max %s\n", s, output.FormatAmount(st.Mean), output.FormatAmount(st.Min), output.FormatAmount(st.Max))
	}
	if len(issues) > 0 {
		fmt.Fprintln(w)
		for _, issue := range issues {
			fmt.Fprintln(w, "  "+warnStyle.Render("! "+issue))
		}
	}
	return nil
}
