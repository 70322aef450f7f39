package cli

import (
	"fmt"

	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/fiscalsim/consolidated-fiscal/internal/output"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

// NewScenariosCommand creates the scenarios command, which lists the built-in presets.
func NewScenariosCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List built-in scenario presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.BuiltinScenarios()
			w := cmd.OutOrStdout()
			if rootOpts.wantsJSON() {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(presets)
			}

			t := Table{
				Headers:    []string{"NAME", "TAX MODEL", "INFLATION", "REAL GROWTH", "RISK PREMIUM", "DESCRIPTION"},
				RightAlign: []bool{false, false, true, true, true, false},
			}
			for _, p := range presets {
				params := p.Parameters
				model := string(params.Tax.Kind())
				if params.Tax.Event != nil {
					model += fmt.Sprintf(" (event %d)", params.Tax.Event.Year)
				}
				t.Rows = append(t.Rows, []string{
					p.Name, model,
					output.FormatRate(params.InflationRate),
					output.FormatRate(params.RealGrowthRate),
					output.FormatRate(params.RiskPremium),
					p.Description,
				})
			}
			fmt.Fprintln(w, RenderTitle("SCENARIO PRESETS"))
			fmt.Fprint(w, RenderTable(t))
			return nil
		},
	}
}
