package calculation

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	// ErrNoScenarios is returned when a run has nothing to project.
	ErrNoScenarios = errors.New("no scenarios to run")
	// ErrAllScenariosFailed is returned alongside the comparison when every scenario aborted.
	ErrAllScenariosFailed = errors.New("all scenarios failed")
)

// DefaultWorkers bounds the number of scenarios projected concurrently.
const DefaultWorkers = 8

// ProjectionEngine orchestrates scenario projections and their review.
type ProjectionEngine struct {
	Thresholds WarningThresholds
	Workers    int
	Debug      bool // trace every projected year at debug level
	Logger     Logger
}

// NewProjectionEngine creates an engine with default thresholds.
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{
		Thresholds: DefaultWarningThresholds(),
		Workers:    DefaultWorkers,
		Logger:     NopLogger{},
	}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (pe *ProjectionEngine) SetLogger(l Logger) {
	if l == nil {
		pe.Logger = NopLogger{}
		return
	}
	pe.Logger = l
}

// RunScenario projects and reviews a single scenario. A panic while projecting is
// returned as an error.
func (pe *ProjectionEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (summary *domain.ScenarioSummary, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			summary = nil
			err = fmt.Errorf("scenario %q: panic: %v", scenario.Name, r)
		}
	}()
	settings := config.Projection.WithDefaults()

	projection, err := pe.GenerateAnnualProjection(scenario, settings)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}

	warnings := ComputeWarnings(projection, pe.Thresholds)
	for _, w := range warnings {
		if w.Kind == domain.WarningNegativeTaxRevenue {
			scenarioLogger(pe.Logger, scenario.Name).Warnf("%d: %s", w.Year, w.Detail)
		}
	}

	summary = summarize(scenario, projection, pe.Thresholds)
	summary.Warnings = warnings
	summary.Grade = Grade(len(warnings))
	return summary, nil
}

// summarize derives the headline metrics of a projection.
func summarize(scenario *domain.Scenario, projection []domain.YearState, th WarningThresholds) *domain.ScenarioSummary {
	summary := &domain.ScenarioSummary{
		Name:       scenario.Name,
		Label:      scenario.Label,
		Parameters: scenario.Parameters,
		Projection: projection,
	}
	if len(projection) == 0 {
		return summary
	}

	first, last := projection[0], projection[len(projection)-1]
	summary.FirstYear = first.Year
	summary.FinalYear = last.Year
	summary.FinalDebt = last.Debt
	summary.FinalInterestBurden = last.InterestBurden
	summary.PeakInterestBurden = first.InterestBurden
	summary.PeakBurdenYear = first.Year

	cumBalance, cumIssuance := decimal.Zero, decimal.Zero
	for _, y := range projection {
		cumBalance = cumBalance.Add(y.FiscalBalance)
		cumIssuance = cumIssuance.Add(y.NewBondIssuance)
		if y.FiscalBalance.IsNegative() {
			summary.DeficitYears++
		}
		if y.InterestBurden.GreaterThan(summary.PeakInterestBurden) {
			summary.PeakInterestBurden = y.InterestBurden
			summary.PeakBurdenYear = y.Year
		}
		if summary.BurdenThresholdYear == 0 && y.InterestBurden.GreaterThan(th.InterestBurden) {
			summary.BurdenThresholdYear = y.Year
		}
	}
	summary.CumulativeBalance = cumBalance
	summary.CumulativeIssuance = cumIssuance
	return summary
}

// failedSummary records an aborted scenario without a projection.
func failedSummary(scenario *domain.Scenario, err error) domain.ScenarioSummary {
	return domain.ScenarioSummary{
		Name:       scenario.Name,
		Label:      scenario.Label,
		Parameters: scenario.Parameters,
		Error:      err.Error(),
	}
}

// RunScenarios projects every scenario concurrently and returns a comparison in input
// order. A failing scenario is recorded on its own summary and does not affect others.
func (pe *ProjectionEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	if len(config.Scenarios) == 0 {
		return nil, ErrNoScenarios
	}

	workers := pe.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	results := make([]domain.ScenarioSummary, len(config.Scenarios))
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)

	for i := range config.Scenarios {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			scenario := &config.Scenarios[idx]
			summary, err := pe.RunScenario(ctx, config, scenario)
			if err != nil {
				pe.Logger.Errorf("RunScenario failed: %v", err)
				results[idx] = failedSummary(scenario, err)
				return
			}
			results[idx] = *summary
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	comparison := &domain.ScenarioComparison{
		GeneratedAt: nowFunc(),
		Projection:  config.Projection.WithDefaults(),
		Scenarios:   results,
	}
	comparison.Analysis = pe.generateComparisonAnalysis(results)

	if len(comparison.Analysis.FailedScenarios) == len(results) {
		return comparison, fmt.Errorf("%w: %d of %d", ErrAllScenariosFailed, len(results), len(results))
	}
	pe.Logger.Infof("projected %d scenarios (%d failed)", len(results), len(comparison.Analysis.FailedScenarios))
	return comparison, nil
}
