package calculation

import (
	"testing"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// baselineParams is the central scenario: 2% inflation, 0.5% real growth, 0.5% risk
// premium, aggregate tax model.
func baselineParams() domain.Parameters {
	return domain.Parameters{
		InflationRate:             dec("0.02"),
		RealGrowthRate:            dec("0.005"),
		RiskPremium:               dec("0.005"),
		InitialDebt:               dec("1100"),
		InitialPolicyExpenditure:  dec("80"),
		InitialAverageCoupon:      dec("0.008"),
		CentralBankCurrentAccount: dec("550"),
		CentralBankBondYield:      dec("0.002"),
		PolicyRateSpread:          dec("0.01"),
		OtherRevenue:              dec("15"),
		StructuralIncrement:       dec("0.5"),
		Tax: domain.TaxParameters{
			Model:      domain.TaxModelAggregate,
			Initial:    dec("75"),
			Elasticity: dec("1.2"),
		},
	}
}

func categoryParams(event *domain.TaxRateEvent) domain.Parameters {
	p := baselineParams()
	p.Tax = domain.TaxParameters{
		Model: domain.TaxModelCategories,
		Categories: domain.CategoryTaxParameters{
			Consumption: domain.CategoryTax{Initial: dec("24"), Elasticity: dec("1.0")},
			Income:      domain.CategoryTax{Initial: dec("22"), Elasticity: dec("1.4")},
			Corporate:   domain.CategoryTax{Initial: dec("17"), Elasticity: dec("1.0")},
			Other:       domain.CategoryTax{Initial: dec("12"), Elasticity: dec("0.8")},
		},
		Event: event,
	}
	return p
}

func defaultSettings() domain.ProjectionSettings {
	return domain.ProjectionSettings{BaseYear: 2026, Horizon: 30}
}

func mustProject(t *testing.T, p domain.Parameters, s domain.ProjectionSettings) []domain.YearState {
	t.Helper()
	projection, err := GenerateProjection(p, s)
	if err != nil {
		t.Fatalf("GenerateProjection: %v", err)
	}
	return projection
}

func assertDecimal(t *testing.T, name string, want, got decimal.Decimal) {
	t.Helper()
	if !want.Equal(got) {
		t.Fatalf("%s: expected %s, got %s", name, want.String(), got.String())
	}
}
