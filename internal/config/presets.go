package config

import (
	"errors"
	"fmt"
	"sort"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrScenarioNotFound is returned for an unknown preset name.
var ErrScenarioNotFound = errors.New("scenario not found")

// BaselinePresetName is the preset used when a scenario extends nothing.
const BaselinePresetName = "baseline"

// DefaultStatutoryRate is the consumption tax rate a rate event is measured against (percent).
var DefaultStatutoryRate = decimal.NewFromInt(10)

// presetSpec is a preset in the percent units users write.
type presetSpec struct {
	name, label, description string

	inflation, realGrowth, riskPremium, spread string
	initialTax, elasticity, otherRevenue       string
	structuralIncrement, policyExpenditure     string

	categories bool
	event      *domain.TaxRateEvent
}

// Balance sheet and central bank values shared by every preset (trillion yen, percent).
const (
	presetInitialDebt      = "1100"
	presetInitialCoupon    = "0.8"
	presetCurrentAccount   = "550"
	presetCentralBankYield = "0.2"
)

var presetSpecs = []presetSpec{
	{
		name: "baseline", label: "Baseline",
		description: "Moderate inflation and weak real growth with a small risk premium",
		inflation:   "2.0", realGrowth: "0.5", riskPremium: "0.5", spread: "1.0",
		initialTax: "75", elasticity: "1.2", otherRevenue: "15",
		structuralIncrement: "0.5", policyExpenditure: "80",
	},
	{
		name: "high-growth", label: "High growth",
		description: "Productivity-led real growth with contained yields",
		inflation:   "2.0", realGrowth: "2.0", riskPremium: "0.3", spread: "1.0",
		initialTax: "75", elasticity: "1.3", otherRevenue: "16",
		structuralIncrement: "0.5", policyExpenditure: "80",
	},
	{
		name: "stagflation", label: "Stagflation",
		description: "High inflation, no real growth and weak tax elasticity",
		inflation:   "4.0", realGrowth: "0.0", riskPremium: "1.0", spread: "0.5",
		initialTax: "75", elasticity: "0.8", otherRevenue: "15",
		structuralIncrement: "1.0", policyExpenditure: "80",
	},
	{
		name: "rate-spike", label: "Rate spike",
		description: "Bond market repricing lifts the risk premium to 2%",
		inflation:   "2.5", realGrowth: "0.3", riskPremium: "2.0", spread: "1.0",
		initialTax: "75", elasticity: "1.2", otherRevenue: "15",
		structuralIncrement: "0.5", policyExpenditure: "80",
	},
	{
		name: "consolidation", label: "Fiscal consolidation",
		description: "Spending restraint with higher revenue and steady growth",
		inflation:   "1.5", realGrowth: "1.0", riskPremium: "0.3", spread: "1.0",
		initialTax: "80", elasticity: "1.2", otherRevenue: "17",
		structuralIncrement: "0.3", policyExpenditure: "75",
	},
	{
		name: "categories-baseline", label: "Baseline (tax by category)",
		description: "Baseline macro path with consumption, income, corporate and other taxes projected separately",
		inflation:   "2.0", realGrowth: "0.5", riskPremium: "0.5", spread: "1.0",
		otherRevenue: "15", structuralIncrement: "0.5", policyExpenditure: "80",
		categories: true,
	},
	{
		name: "consumption-tax-hike", label: "Consumption tax to 15% in 2029",
		description: "Category model with the consumption tax rate raised from 10% to 15% in 2029",
		inflation:   "2.0", realGrowth: "0.5", riskPremium: "0.5", spread: "1.0",
		otherRevenue: "15", structuralIncrement: "0.5", policyExpenditure: "80",
		categories: true,
		event: &domain.TaxRateEvent{
			Year:         2029,
			Category:     domain.TaxCategoryConsumption,
			NewRate:      money.MustParse("0.15"),
			BaselineRate: money.MustParse("0.10"),
		},
	},
}

// DefaultCategoryTaxParameters returns the category seeds (trillion yen) and elasticities.
func DefaultCategoryTaxParameters() domain.CategoryTaxParameters {
	return domain.CategoryTaxParameters{
		Consumption: domain.CategoryTax{Initial: decimal.NewFromInt(24), Elasticity: money.MustParse("1.0")},
		Income:      domain.CategoryTax{Initial: decimal.NewFromInt(22), Elasticity: money.MustParse("1.4")},
		Corporate:   domain.CategoryTax{Initial: decimal.NewFromInt(17), Elasticity: money.MustParse("1.0")},
		Other:       domain.CategoryTax{Initial: decimal.NewFromInt(12), Elasticity: money.MustParse("0.8")},
	}
}

func pctToFraction(s string) decimal.Decimal {
	return money.FromPercent(money.MustParse(s))
}

func (s presetSpec) scenario() domain.Scenario {
	p := domain.Parameters{
		InflationRate:             pctToFraction(s.inflation),
		RealGrowthRate:            pctToFraction(s.realGrowth),
		RiskPremium:               pctToFraction(s.riskPremium),
		InitialDebt:               money.MustParse(presetInitialDebt),
		InitialPolicyExpenditure:  money.MustParse(s.policyExpenditure),
		InitialAverageCoupon:      pctToFraction(presetInitialCoupon),
		CentralBankCurrentAccount: money.MustParse(presetCurrentAccount),
		CentralBankBondYield:      pctToFraction(presetCentralBankYield),
		PolicyRateSpread:          pctToFraction(s.spread),
		OtherRevenue:              money.MustParse(s.otherRevenue),
		StructuralIncrement:       money.MustParse(s.structuralIncrement),
	}
	if s.categories {
		p.Tax = domain.TaxParameters{Model: domain.TaxModelCategories, Categories: DefaultCategoryTaxParameters()}
		if s.event != nil {
			ev := *s.event
			p.Tax.Event = &ev
		}
	} else {
		p.Tax = domain.TaxParameters{
			Model:      domain.TaxModelAggregate,
			Initial:    money.MustParse(s.initialTax),
			Elasticity: money.MustParse(s.elasticity),
		}
	}
	return domain.Scenario{Name: s.name, Label: s.label, Description: s.description, Parameters: p}
}

// BuiltinScenarios returns fresh copies of every preset in display order.
func BuiltinScenarios() []domain.Scenario {
	out := make([]domain.Scenario, 0, len(presetSpecs))
	for _, s := range presetSpecs {
		out = append(out, s.scenario())
	}
	return out
}

// LookupPreset returns a preset by name.
func LookupPreset(name string) (domain.Scenario, error) {
	for _, s := range presetSpecs {
		if s.name == name {
			return s.scenario(), nil
		}
	}
	names := PresetNames()
	sort.Strings(names)
	return domain.Scenario{}, fmt.Errorf("%w: %q (available: %v)", ErrScenarioNotFound, name, names)
}

// PresetNames lists preset names in display order.
func PresetNames() []string {
	names := make([]string, 0, len(presetSpecs))
	for _, s := range presetSpecs {
		names = append(names, s.name)
	}
	return names
}

// PresetConfiguration builds a configuration from preset names; no names selects every preset.
func PresetConfiguration(settings domain.ProjectionSettings, names ...string) (*domain.Configuration, error) {
	cfg := &domain.Configuration{Projection: settings.WithDefaults()}
	if len(names) == 0 {
		cfg.Scenarios = BuiltinScenarios()
		return cfg, nil
	}
	for _, n := range names {
		s, err := LookupPreset(n)
		if err != nil {
			return nil, err
		}
		cfg.Scenarios = append(cfg.Scenarios, s)
	}
	return cfg, nil
}
