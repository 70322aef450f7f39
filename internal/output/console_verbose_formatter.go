package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report: assumptions, a yearly
// table per scenario, review warnings and the comparison.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

const rule = "================================================================================================================"

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "CONSOLIDATED FISCAL PROJECTION")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, scenario := range results.Scenarios {
		title := fmt.Sprintf("SCENARIO %d: %s", i+1, scenario.DisplayName())
		fmt.Fprintln(&buf, title)
		fmt.Fprintln(&buf, strings.Repeat("=", len(title)))
		if scenario.Failed() {
			fmt.Fprintf(&buf, "  FAILED: %s\n\n", scenario.Error)
			continue
		}
		writeParameters(&buf, scenario.Parameters)
		writeYearTable(&buf, scenario.Projection)
		writeWarnings(&buf, scenario.Warnings)

		fmt.Fprintln(&buf, "OUTCOME:")
		fmt.Fprintf(&buf, "  Final Debt (%d):          %s\n", scenario.FinalYear, FormatAmount(scenario.FinalDebt))
		fmt.Fprintf(&buf, "  Final Interest Burden:     %s\n", FormatPercentage(scenario.FinalInterestBurden))
		fmt.Fprintf(&buf, "  Peak Interest Burden:      %s (%d)\n", FormatPercentage(scenario.PeakInterestBurden), scenario.PeakBurdenYear)
		fmt.Fprintf(&buf, "  Cumulative Balance:        %s\n", FormatSigned(scenario.CumulativeBalance))
		fmt.Fprintf(&buf, "  Deficit Years:             %d of %d\n", scenario.DeficitYears, len(scenario.Projection))
		fmt.Fprintf(&buf, "  Grade:                     %s (%d warnings)\n", scenario.Grade, len(scenario.Warnings))
		fmt.Fprintln(&buf)
	}

	writeAnalysis(&buf, results.Analysis)

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf, "SUMMARY & RECOMMENDATIONS")
		fmt.Fprintln(&buf, "=========================")
		fmt.Fprintf(&buf, "Best scenario: %s (grade %s)\n", rec.ScenarioName, rec.Grade)
		if rec.Reference != rec.ScenarioName {
			fmt.Fprintf(&buf, "Final debt vs %s: %s (%s)\n", rec.Reference, FormatSigned(rec.DebtChange), FormatPercentage(rec.PercentageChange))
		}
	}

	return buf.Bytes(), nil
}

func writeParameters(buf *bytes.Buffer, p domain.Parameters) {
	fmt.Fprintln(buf, "PARAMETERS:")
	fmt.Fprintf(buf, "  Inflation %s | Real growth %s | Risk premium %s | Policy spread %s\n",
		FormatRate(p.InflationRate), FormatRate(p.RealGrowthRate), FormatRate(p.RiskPremium), FormatRate(p.PolicyRateSpread))
	fmt.Fprintf(buf, "  Initial debt %s | Policy expenditure %s (+%s/yr) | Coupon %s\n",
		FormatAmount(p.InitialDebt), FormatAmount(p.InitialPolicyExpenditure), FormatAmount(p.StructuralIncrement), FormatRate(p.InitialAverageCoupon))
	fmt.Fprintf(buf, "  Central bank reserves %s | Bond yield %s | Other revenue %s | Tax model %s\n",
		FormatAmount(p.CentralBankCurrentAccount), FormatRate(p.CentralBankBondYield), FormatAmount(p.OtherRevenue), p.Tax.Kind())
	fmt.Fprintln(buf)
}

func writeYearTable(buf *bytes.Buffer, projection []domain.YearState) {
	fmt.Fprintf(buf, "%-6s %10s %10s %10s %10s %8s %10s %10s %10s %10s %9s\n",
		"YEAR", "TAX", "REMIT", "REVENUE", "POLICY", "COUPON", "INTEREST", "COST", "BALANCE", "DEBT", "BURDEN")
	fmt.Fprintln(buf, strings.Repeat("-", 112))
	for _, y := range projection {
		marker := ""
		if y.Tax.EventApplied {
			marker = " *"
		}
		fmt.Fprintf(buf, "%-6d %10s %10s %10s %10s %8s %10s %10s %10s %10s %9s%s\n",
			y.Year,
			FormatAmount(y.Tax.Total),
			FormatAmount(y.Remittance),
			FormatAmount(y.TotalRevenue),
			FormatAmount(y.PolicyExpenditure),
			FormatRate(y.AverageCoupon),
			FormatAmount(y.InterestExpense),
			FormatAmount(y.TotalCost),
			FormatAmount(y.FiscalBalance),
			FormatAmount(y.Debt),
			FormatPercentage(y.InterestBurden),
			marker,
		)
	}
	fmt.Fprintln(buf)
}

func writeWarnings(buf *bytes.Buffer, warnings []domain.Warning) {
	if len(warnings) == 0 {
		fmt.Fprintln(buf, "WARNINGS: none")
		fmt.Fprintln(buf)
		return
	}
	fmt.Fprintf(buf, "WARNINGS (%d):\n", len(warnings))
	for _, w := range warnings {
		prefix := ""
		if w.Severity == domain.SeverityCritical {
			prefix = "CRITICAL "
		}
		fmt.Fprintf(buf, "  %d %s[%s] %s\n", w.Year, prefix, w.Kind, w.Detail)
	}
	fmt.Fprintln(buf)
}

func writeAnalysis(buf *bytes.Buffer, a domain.ComparisonAnalysis) {
	if a.RecommendedScenario == "" && len(a.FailedScenarios) == 0 {
		return
	}
	fmt.Fprintln(buf, "COMPARISON")
	fmt.Fprintln(buf, "==========")
	if a.LowestFinalDebt != "" {
		fmt.Fprintf(buf, "Lowest final debt:        %s\n", a.LowestFinalDebt)
		fmt.Fprintf(buf, "Lowest peak burden:       %s\n", a.LowestPeakBurden)
		fmt.Fprintf(buf, "Fewest warnings:          %s\n", a.FewestWarnings)
	}
	if len(a.FailedScenarios) > 0 {
		fmt.Fprintf(buf, "Failed:                   %s\n", strings.Join(a.FailedScenarios, ", "))
	}
	for _, k := range a.KeyConsiderations {
		fmt.Fprintf(buf, "• %s\n", k)
	}
	fmt.Fprintln(buf)
}
