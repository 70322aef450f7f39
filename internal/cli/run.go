package cli

import (
	"errors"
	"fmt"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/internal/output"
	"github.com/spf13/cobra"
)

type runOptions struct {
	presets   []string
	baseYear  int
	horizon   int
	outputDir string
	workers   int
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run [scenarios.yaml]",
		Short: "Project scenarios and write a report",
		Long: `Project the scenarios of a YAML file, or built-in presets, and render a report.

Without a file every preset is projected unless --preset narrows the selection.
With no output directory a single-format report is written to stdout.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProjection(cmd, rootOpts, opts, args)
		},
	}
	cmd.Flags().StringSliceVarP(&opts.presets, "preset", "p", nil, "preset scenario names (repeatable)")
	cmd.Flags().IntVar(&opts.baseYear, "base-year", 0, "first projected year")
	cmd.Flags().IntVar(&opts.horizon, "horizon", 0, "number of projected years")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "write report files to this directory")
	cmd.Flags().IntVar(&opts.workers, "workers", calculation.DefaultWorkers, "scenarios projected concurrently")
	return cmd
}

func runProjection(cmd *cobra.Command, rootOpts *RootOptions, opts *runOptions, args []string) error {
	cfg, err := loadRunConfiguration(rootOpts, opts, args)
	if err != nil {
		return WrapExitError(ExitCommandError, "loading scenarios", err)
	}

	engine := calculation.NewProjectionEngine()
	engine.SetLogger(rootOpts.Logger)
	engine.Workers = opts.workers
	engine.Debug = rootOpts.Verbose

	results, err := engine.RunScenarios(cmd.Context(), cfg)
	if err != nil {
		if errors.Is(err, calculation.ErrAllScenariosFailed) && results != nil {
			for _, name := range results.Analysis.FailedScenarios {
				rootOpts.Logger.Errorf("scenario %s failed", name)
			}
		}
		return WrapExitError(ExitFailure, "projection failed", err)
	}
	results.Assumptions = output.GenerateAssumptions(results.Projection, results.Scenarios)

	format := rootOpts.Settings.Output.Format
	dir := opts.outputDir
	if dir == "" {
		dir = rootOpts.Settings.Output.Directory
	}
	if dir == "" && format != "all" {
		data, err := output.GetFormatterByName(format).Format(results)
		if err != nil {
			return WrapExitError(ExitFailure, "rendering report", err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if dir == "" {
		dir = "."
	}

	files, err := output.GenerateReport(results, format, dir)
	if err != nil {
		return WrapExitError(ExitFailure, "writing report", err)
	}
	for _, f := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", f)
	}
	return nil
}

// loadRunConfiguration reads a scenario file or builds a preset configuration, then
// applies projection window overrides.
func loadRunConfiguration(rootOpts *RootOptions, opts *runOptions, args []string) (*domain.Configuration, error) {
	parser := config.NewInputParser()
	var (
		cfg *domain.Configuration
		err error
	)
	if len(args) == 1 {
		cfg, err = parser.LoadFromFile(args[0])
		if err != nil {
			return nil, err
		}
		for _, name := range opts.presets {
			preset, err := config.LookupPreset(name)
			if err != nil {
				return nil, err
			}
			cfg.Scenarios = append(cfg.Scenarios, preset)
		}
	} else {
		cfg, err = config.PresetConfiguration(rootOpts.Settings.ProjectionSettings(), opts.presets...)
		if err != nil {
			return nil, err
		}
	}

	if opts.baseYear != 0 {
		cfg.Projection.BaseYear = opts.baseYear
	}
	if opts.horizon != 0 {
		cfg.Projection.Horizon = opts.horizon
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
