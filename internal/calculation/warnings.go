package calculation

import (
	"fmt"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/shopspring/decimal"
)

// WarningThresholds configures the post-run review.
type WarningThresholds struct {
	InterestBurden decimal.Decimal // percent of tax revenue
	DeficitStreak  int             // consecutive deficit years before flagging
	AbruptChange   decimal.Decimal // year-over-year change ratio, 1.0 = 100%
	TailYears      int             // window for the debt spiral check
}

// DefaultWarningThresholds returns the standard review thresholds.
func DefaultWarningThresholds() WarningThresholds {
	return WarningThresholds{
		InterestBurden: decimal.NewFromInt(30),
		DeficitStreak:  5,
		AbruptChange:   decimal.NewFromInt(1),
		TailYears:      5,
	}
}

type monitoredSeries struct {
	label string
	value func(domain.YearState) decimal.Decimal
}

var monitored = []monitoredSeries{
	{"tax revenue", func(y domain.YearState) decimal.Decimal { return y.Tax.Total }},
	{"interest expense", func(y domain.YearState) decimal.Decimal { return y.InterestExpense }},
	{"fiscal balance", func(y domain.YearState) decimal.Decimal { return y.FiscalBalance }},
	{"remittance", func(y domain.YearState) decimal.Decimal { return y.Remittance }},
	{"policy expenditure", func(y domain.YearState) decimal.Decimal { return y.PolicyExpenditure }},
}

// ComputeWarnings reviews a finished projection. It never alters the projection.
func ComputeWarnings(projection []domain.YearState, th WarningThresholds) []domain.Warning {
	warnings := []domain.Warning{}
	deficitStreak := 0

	for i, y := range projection {
		if y.InterestBurden.GreaterThan(th.InterestBurden) {
			warnings = append(warnings, domain.Warning{
				Year:     y.Year,
				Kind:     domain.WarningInterestBurden,
				Detail:   fmt.Sprintf("interest burden %s%% exceeds %s%% of tax revenue", y.InterestBurden.StringFixed(1), th.InterestBurden.String()),
				Severity: domain.SeverityNormal,
			})
		}

		if y.FiscalBalance.IsNegative() {
			deficitStreak++
		} else {
			deficitStreak = 0
		}
		if th.DeficitStreak > 0 && deficitStreak >= th.DeficitStreak {
			warnings = append(warnings, domain.Warning{
				Year:     y.Year,
				Kind:     domain.WarningChronicDeficit,
				Detail:   fmt.Sprintf("fiscal deficit for %d consecutive years (balance %s)", deficitStreak, y.FiscalBalance.StringFixed(1)),
				Severity: domain.SeverityNormal,
			})
		}

		if negativeTax(y.Tax) {
			warnings = append(warnings, domain.Warning{
				Year:     y.Year,
				Kind:     domain.WarningNegativeTaxRevenue,
				Detail:   fmt.Sprintf("tax revenue is negative (%s); check elasticities and growth rates", y.Tax.Total.StringFixed(1)),
				Severity: domain.SeverityNormal,
			})
		}

		if i == 0 {
			continue
		}
		prev := projection[i-1]
		for _, s := range monitored {
			curr, before := s.value(y), s.value(prev)
			if ratio, ok := changeRatio(before, curr); ok && ratio.GreaterThan(th.AbruptChange) {
				warnings = append(warnings, domain.Warning{
					Year:     y.Year,
					Kind:     domain.WarningAbruptChange,
					Detail:   fmt.Sprintf("%s changed %s%% year over year (%s -> %s)", s.label, ratio.Shift(2).StringFixed(0), before.StringFixed(1), curr.StringFixed(1)),
					Severity: domain.SeverityNormal,
				})
			}
		}
	}

	if w, ok := debtSpiral(projection, th.TailYears); ok {
		warnings = append(warnings, w)
	}
	return warnings
}

// changeRatio is |curr-prev|/|prev| for two non-zero values of the same sign.
func changeRatio(prev, curr decimal.Decimal) (decimal.Decimal, bool) {
	if prev.IsZero() || curr.IsZero() || prev.Sign() != curr.Sign() {
		return decimal.Zero, false
	}
	return curr.Sub(prev).Abs().Div(prev.Abs()), true
}

func negativeTax(t domain.TaxRevenue) bool {
	if t.Total.IsNegative() {
		return true
	}
	if !t.Disaggregated {
		return false
	}
	for _, cat := range domain.TaxCategories() {
		if t.Category(cat).IsNegative() {
			return true
		}
	}
	return false
}

// debtSpiral flags a projection whose final years are all deficits with a strictly
// rising interest burden.
func debtSpiral(projection []domain.YearState, window int) (domain.Warning, bool) {
	if window <= 1 || len(projection) < window {
		return domain.Warning{}, false
	}
	tail := projection[len(projection)-window:]
	for i, y := range tail {
		if !y.FiscalBalance.IsNegative() {
			return domain.Warning{}, false
		}
		if i > 0 && !y.InterestBurden.GreaterThan(tail[i-1].InterestBurden) {
			return domain.Warning{}, false
		}
	}
	last := tail[len(tail)-1]
	return domain.Warning{
		Year: last.Year,
		Kind: domain.WarningDebtSpiral,
		Detail: fmt.Sprintf("deficits in each of the final %d years with interest burden rising to %s%% (debt %s)",
			window, last.InterestBurden.StringFixed(1), last.Debt.StringFixed(0)),
		Severity: domain.SeverityCritical,
	}, true
}
