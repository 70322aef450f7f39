package cli

import (
	"fmt"
	"strings"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/internal/output"
	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type optimizeOptions struct {
	preset        string
	file          string
	scenario      string
	params        []string
	maxIterations int
	burdenCap     float64
	deficitStreak int
}

// NewOptimizeCommand creates the optimize command.
func NewOptimizeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &optimizeOptions{}
	keys := make([]string, 0)
	for _, p := range calculation.OptimizableParams() {
		keys = append(keys, string(p.Key))
	}

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Search parameters for the fewest review warnings",
		Long: `Search the selected parameters of one scenario for the combination with the
fewest review warnings plus constraint violations.

Parameters: ` + strings.Join(keys, ", "),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOptimize(cmd, rootOpts, opts)
		},
	}
	cmd.Flags().StringVar(&opts.preset, "preset", config.BaselinePresetName, "preset scenario to start from")
	cmd.Flags().StringVar(&opts.file, "config", "", "scenario file to start from instead of a preset")
	cmd.Flags().StringVar(&opts.scenario, "scenario", "", "scenario name within --config (default: first)")
	cmd.Flags().StringSliceVar(&opts.params, "param", []string{string(calculation.ParamStructuralIncrement), string(calculation.ParamOtherRevenue)}, "parameters to search (repeatable)")
	cmd.Flags().IntVar(&opts.maxIterations, "max-iterations", calculation.DefaultOptimizerOptions().MaxIterations, "search round limit")
	cmd.Flags().Float64Var(&opts.burdenCap, "burden-cap", 30, "interest burden constraint in percent (0 disables)")
	cmd.Flags().IntVar(&opts.deficitStreak, "deficit-streak", 0, "maximum consecutive deficit years (0 disables)")
	return cmd
}

func runOptimize(cmd *cobra.Command, rootOpts *RootOptions, opts *optimizeOptions) error {
	scenario, settings, err := optimizeStart(rootOpts, opts)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading scenario", err)
	}

	keys := make([]calculation.ParamKey, 0, len(opts.params))
	for _, p := range opts.params {
		keys = append(keys, calculation.ParamKey(strings.TrimSpace(p)))
	}

	o := calculation.NewOptimizer(settings)
	o.Logger = rootOpts.Logger
	o.Options.MaxIterations = opts.maxIterations
	o.Constraints.InterestBurden = calculation.ConstraintRule{Enabled: opts.burdenCap > 0, Threshold: decimal.NewFromFloat(opts.burdenCap)}
	o.Constraints.DeficitStreak = calculation.ConstraintRule{Enabled: opts.deficitStreak > 0, Threshold: decimal.NewFromInt(int64(opts.deficitStreak))}

	result, err := o.Optimize(cmd.Context(), scenario.Parameters, keys)
	if err != nil {
		return WrapExitError(ExitCommandError, "optimizing", err)
	}

	w := cmd.OutOrStdout()
	if rootOpts.wantsJSON() {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Fprintln(w, RenderTitle("OPTIMIZATION: "+scenario.DisplayName()))
	fmt.Fprintf(w, "  Score %d -> %d after %d rounds\n\n", result.InitialScore, result.BestScore, result.Iterations)
	if len(result.Changes) == 0 {
		fmt.Fprintln(w, "  No parameter change improves the score.")
		return nil
	}
	t := Table{Headers: []string{"PARAMETER", "FROM", "TO"}, RightAlign: []bool{false, true, true}}
	for _, c := range result.Changes {
		def, _ := calculation.LookupParam(c.Key)
		t.Rows = append(t.Rows, []string{def.Label, formatParam(c.Key, c.From), formatParam(c.Key, c.To)})
	}
	fmt.Fprint(w, RenderTable(t))
	return nil
}

// formatParam shows rates in percent and amounts as they are.
func formatParam(key calculation.ParamKey, v decimal.Decimal) string {
	switch key {
	case calculation.ParamStructuralIncrement, calculation.ParamOtherRevenue, calculation.ParamTaxElasticity:
		return v.String()
	}
	return output.FormatRate(v)
}

func optimizeStart(rootOpts *RootOptions, opts *optimizeOptions) (domain.Scenario, domain.ProjectionSettings, error) {
	settings := rootOpts.Settings.ProjectionSettings()
	if opts.file == "" {
		s, err := config.LookupPreset(opts.preset)
		return s, settings, err
	}

	cfg, err := config.NewInputParser().LoadFromFile(opts.file)
	if err != nil {
		return domain.Scenario{}, settings, err
	}
	if opts.scenario == "" {
		return cfg.Scenarios[0], cfg.Projection, nil
	}
	for _, s := range cfg.Scenarios {
		if s.Name == opts.scenario {
			return s, cfg.Projection, nil
		}
	}
	return domain.Scenario{}, settings, fmt.Errorf("%w: %q in %s", config.ErrScenarioNotFound, opts.scenario, opts.file)
}
