package output

import (
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario, measured
// against the first successful scenario of the run.
type Recommendation struct {
	ScenarioName     string
	Reference        string
	Grade            string
	Warnings         int
	FinalDebt        decimal.Decimal
	DebtChange       decimal.Decimal
	PercentageChange decimal.Decimal
}

// AnalyzeScenarios picks the recommended scenario. It uses the engine's analysis when
// present and otherwise ranks by warning count, then final debt.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	var reference, best *domain.ScenarioSummary
	for i := range results.Scenarios {
		sc := &results.Scenarios[i]
		if sc.Failed() {
			continue
		}
		if reference == nil {
			reference = sc
		}
		if results.Analysis.RecommendedScenario != "" {
			if sc.Name == results.Analysis.RecommendedScenario {
				best = sc
			}
			continue
		}
		if best == nil || len(sc.Warnings) < len(best.Warnings) ||
			(len(sc.Warnings) == len(best.Warnings) && sc.FinalDebt.LessThan(best.FinalDebt)) {
			best = sc
		}
	}
	if best == nil {
		return Recommendation{}
	}

	delta := best.FinalDebt.Sub(reference.FinalDebt)
	pct := decimal.Zero
	if !reference.FinalDebt.IsZero() {
		pct = delta.Div(reference.FinalDebt.Abs()).Mul(hundred)
	}
	return Recommendation{
		ScenarioName:     best.Name,
		Reference:        reference.Name,
		Grade:            best.Grade,
		Warnings:         len(best.Warnings),
		FinalDebt:        best.FinalDebt,
		DebtChange:       delta,
		PercentageChange: pct,
	}
}
