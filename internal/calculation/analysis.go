package calculation

import (
	"fmt"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
)

// generateComparisonAnalysis ranks the successful scenarios. Ties keep input order.
func (pe *ProjectionEngine) generateComparisonAnalysis(scenarios []domain.ScenarioSummary) domain.ComparisonAnalysis {
	analysis := domain.ComparisonAnalysis{KeyConsiderations: []string{}}

	var lowestDebt, lowestBurden, fewestWarnings, recommended *domain.ScenarioSummary
	for i := range scenarios {
		sc := &scenarios[i]
		if sc.Failed() {
			analysis.FailedScenarios = append(analysis.FailedScenarios, sc.Name)
			analysis.KeyConsiderations = append(analysis.KeyConsiderations,
				fmt.Sprintf("%s could not be projected: %s", sc.DisplayName(), sc.Error))
			continue
		}
		if lowestDebt == nil || sc.FinalDebt.LessThan(lowestDebt.FinalDebt) {
			lowestDebt = sc
		}
		if lowestBurden == nil || sc.PeakInterestBurden.LessThan(lowestBurden.PeakInterestBurden) {
			lowestBurden = sc
		}
		if fewestWarnings == nil || len(sc.Warnings) < len(fewestWarnings.Warnings) {
			fewestWarnings = sc
		}
		if recommended == nil || betterScenario(sc, recommended) {
			recommended = sc
		}

		if sc.BurdenThresholdYear != 0 {
			analysis.KeyConsiderations = append(analysis.KeyConsiderations,
				fmt.Sprintf("%s: interest burden exceeds %s%% of tax revenue from %d", sc.DisplayName(), pe.Thresholds.InterestBurden.String(), sc.BurdenThresholdYear))
		}
		if sc.DeficitYears > 0 {
			analysis.KeyConsiderations = append(analysis.KeyConsiderations,
				fmt.Sprintf("%s: fiscal deficit in %d of %d years", sc.DisplayName(), sc.DeficitYears, len(sc.Projection)))
		}
	}

	if lowestDebt != nil {
		analysis.LowestFinalDebt = lowestDebt.Name
		analysis.LowestPeakBurden = lowestBurden.Name
		analysis.FewestWarnings = fewestWarnings.Name
		analysis.RecommendedScenario = recommended.Name
	}
	return analysis
}

// betterScenario prefers fewer warnings, then lower final debt.
func betterScenario(a, b *domain.ScenarioSummary) bool {
	if len(a.Warnings) != len(b.Warnings) {
		return len(a.Warnings) < len(b.Warnings)
	}
	return a.FinalDebt.LessThan(b.FinalDebt)
}
