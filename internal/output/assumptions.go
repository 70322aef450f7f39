package output

import (
	"fmt"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/yearutil"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Amounts in trillion yen; rates held constant over the horizon",
	"Nominal growth = inflation + real growth; market rate = nominal growth + risk premium",
	"Policy rate = market rate - spread, floored at 0%",
	fmt.Sprintf("Average coupon rolls toward the market rate over a %d-year average maturity", calculation.AverageMaturityYears),
	"Central bank remittance is floored at zero; losses are not carried forward",
	"Interest burden = interest expense as a share of tax revenue",
}

// GenerateAssumptions creates the assumptions list for a run from its settings and
// scenario parameters.
func GenerateAssumptions(settings domain.ProjectionSettings, scenarios []domain.ScenarioSummary) []string {
	settings = settings.WithDefaults()
	out := []string{
		fmt.Sprintf("Projection window: %d-%d (%d years)", settings.BaseYear, yearutil.LastYear(settings.BaseYear, settings.Horizon), settings.Horizon),
	}
	out = append(out, DefaultAssumptions...)
	for _, sc := range scenarios {
		p := sc.Parameters
		out = append(out, fmt.Sprintf("%s: inflation %s, real growth %s, risk premium %s, %s tax model",
			sc.DisplayName(), FormatRate(p.InflationRate), FormatRate(p.RealGrowthRate), FormatRate(p.RiskPremium), p.Tax.Kind()))
		if ev := p.Tax.Event; ev != nil {
			out = append(out, fmt.Sprintf("%s: %s tax rate %s -> %s in %d", sc.DisplayName(), ev.Target(),
				FormatRate(ev.BaselineRate), FormatRate(ev.NewRate), ev.Year))
		}
	}
	return out
}

// assumptionsFor returns the comparison's assumptions, generating them when absent.
func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) > 0 {
		return results.Assumptions
	}
	return GenerateAssumptions(results.Projection, results.Scenarios)
}
