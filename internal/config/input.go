package config

import (
	"fmt"
	"os"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FileConfiguration is the YAML layout of a scenario file. Rates are written in percent.
type FileConfiguration struct {
	Projection ProjectionInput `yaml:"projection" json:"projection"`
	Presets    []string        `yaml:"presets,omitempty" json:"presets,omitempty"`
	Scenarios  []ScenarioInput `yaml:"scenarios" json:"scenarios"`
}

// ProjectionInput sets the shared projection window.
type ProjectionInput struct {
	BaseYear int `yaml:"base_year,omitempty" json:"base_year,omitempty"`
	Horizon  int `yaml:"horizon,omitempty" json:"horizon,omitempty"`
}

// ScenarioInput describes one scenario. Unset fields inherit from the preset named in
// Extends, or from the baseline preset.
type ScenarioInput struct {
	Name        string `yaml:"name" json:"name"`
	Label       string `yaml:"label,omitempty" json:"label,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
	Extends     string `yaml:"extends,omitempty" json:"extends,omitempty"`

	InflationRatePct  *decimal.Decimal `yaml:"inflation_rate_pct,omitempty" json:"inflation_rate_pct,omitempty"`
	RealGrowthRatePct *decimal.Decimal `yaml:"real_growth_rate_pct,omitempty" json:"real_growth_rate_pct,omitempty"`
	RiskPremiumPct    *decimal.Decimal `yaml:"risk_premium_pct,omitempty" json:"risk_premium_pct,omitempty"`

	InitialDebt              *decimal.Decimal `yaml:"initial_debt,omitempty" json:"initial_debt,omitempty"`
	InitialPolicyExpenditure *decimal.Decimal `yaml:"initial_policy_expenditure,omitempty" json:"initial_policy_expenditure,omitempty"`
	InitialAverageCouponPct  *decimal.Decimal `yaml:"initial_average_coupon_pct,omitempty" json:"initial_average_coupon_pct,omitempty"`

	CentralBankCurrentAccount *decimal.Decimal `yaml:"central_bank_current_account,omitempty" json:"central_bank_current_account,omitempty"`
	CentralBankBondYieldPct   *decimal.Decimal `yaml:"central_bank_bond_yield_pct,omitempty" json:"central_bank_bond_yield_pct,omitempty"`
	PolicyRateSpreadPct       *decimal.Decimal `yaml:"policy_rate_spread_pct,omitempty" json:"policy_rate_spread_pct,omitempty"`
	OtherRevenue              *decimal.Decimal `yaml:"other_revenue,omitempty" json:"other_revenue,omitempty"`
	StructuralIncrement       *decimal.Decimal `yaml:"structural_increment,omitempty" json:"structural_increment,omitempty"`

	Tax *TaxInput `yaml:"tax,omitempty" json:"tax,omitempty"`
}

// TaxInput configures the tax model.
type TaxInput struct {
	Model      string           `yaml:"model,omitempty" json:"model,omitempty"`
	Initial    *decimal.Decimal `yaml:"initial,omitempty" json:"initial,omitempty"`
	Elasticity *decimal.Decimal `yaml:"elasticity,omitempty" json:"elasticity,omitempty"`

	Consumption *CategoryInput `yaml:"consumption,omitempty" json:"consumption,omitempty"`
	Income      *CategoryInput `yaml:"income,omitempty" json:"income,omitempty"`
	Corporate   *CategoryInput `yaml:"corporate,omitempty" json:"corporate,omitempty"`
	Other       *CategoryInput `yaml:"other,omitempty" json:"other,omitempty"`

	Event *TaxEventInput `yaml:"event,omitempty" json:"event,omitempty"`
}

// CategoryInput overrides one tax category.
type CategoryInput struct {
	Initial    *decimal.Decimal `yaml:"initial,omitempty" json:"initial,omitempty"`
	Elasticity *decimal.Decimal `yaml:"elasticity,omitempty" json:"elasticity,omitempty"`
}

// TaxEventInput is a one-off statutory rate change in percent.
type TaxEventInput struct {
	Year            int              `yaml:"year" json:"year"`
	Category        string           `yaml:"category,omitempty" json:"category,omitempty"`
	NewRatePct      decimal.Decimal  `yaml:"new_rate_pct" json:"new_rate_pct"`
	BaselineRatePct *decimal.Decimal `yaml:"baseline_rate_pct,omitempty" json:"baseline_rate_pct,omitempty"`
}

// InputParser handles parsing and validation of scenario files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads and validates a YAML scenario file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates YAML scenario data
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var file FileConfiguration
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config, err := ip.Resolve(&file)
	if err != nil {
		return nil, err
	}

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// Resolve turns a file layout into domain scenarios without validating them.
func (ip *InputParser) Resolve(file *FileConfiguration) (*domain.Configuration, error) {
	config := &domain.Configuration{
		Projection: domain.ProjectionSettings{BaseYear: file.Projection.BaseYear, Horizon: file.Projection.Horizon}.WithDefaults(),
	}
	for _, name := range file.Presets {
		preset, err := LookupPreset(name)
		if err != nil {
			return nil, err
		}
		config.Scenarios = append(config.Scenarios, preset)
	}
	for i := range file.Scenarios {
		sc, err := file.Scenarios[i].Resolve()
		if err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
		config.Scenarios = append(config.Scenarios, sc)
	}
	return config, nil
}

// Resolve applies the input's overrides on top of its base preset.
func (in ScenarioInput) Resolve() (domain.Scenario, error) {
	baseName := in.Extends
	if baseName == "" {
		baseName = BaselinePresetName
	}
	base, err := LookupPreset(baseName)
	if err != nil {
		return domain.Scenario{}, err
	}

	sc := domain.Scenario{Name: in.Name, Label: in.Label, Description: in.Description, Parameters: base.Parameters}
	if sc.Name == "" && in.Extends != "" {
		sc.Name = base.Name
	}
	if sc.Label == "" && in.Extends != "" && sc.Name == base.Name {
		sc.Label = base.Label
	}

	p := &sc.Parameters
	setPct(&p.InflationRate, in.InflationRatePct)
	setPct(&p.RealGrowthRate, in.RealGrowthRatePct)
	setPct(&p.RiskPremium, in.RiskPremiumPct)
	set(&p.InitialDebt, in.InitialDebt)
	set(&p.InitialPolicyExpenditure, in.InitialPolicyExpenditure)
	setPct(&p.InitialAverageCoupon, in.InitialAverageCouponPct)
	set(&p.CentralBankCurrentAccount, in.CentralBankCurrentAccount)
	setPct(&p.CentralBankBondYield, in.CentralBankBondYieldPct)
	setPct(&p.PolicyRateSpread, in.PolicyRateSpreadPct)
	set(&p.OtherRevenue, in.OtherRevenue)
	set(&p.StructuralIncrement, in.StructuralIncrement)

	if in.Tax != nil {
		if err := in.Tax.apply(&p.Tax); err != nil {
			return domain.Scenario{}, err
		}
	}
	return sc, nil
}

func (t *TaxInput) apply(tp *domain.TaxParameters) error {
	if t.Model != "" {
		kind := domain.TaxModelKind(t.Model)
		if kind != domain.TaxModelAggregate && kind != domain.TaxModelCategories {
			return fmt.Errorf("tax model must be %q or %q, got %q", domain.TaxModelAggregate, domain.TaxModelCategories, t.Model)
		}
		if kind == domain.TaxModelCategories && tp.Kind() != domain.TaxModelCategories {
			tp.Categories = DefaultCategoryTaxParameters()
		}
		if kind == domain.TaxModelAggregate && tp.Kind() != domain.TaxModelAggregate {
			tp.Initial = tp.Categories.InitialTotal()
			tp.Elasticity = money.MustParse("1.2")
			tp.Event = nil
		}
		tp.Model = kind
	}
	set(&tp.Initial, t.Initial)
	set(&tp.Elasticity, t.Elasticity)
	t.Consumption.apply(&tp.Categories.Consumption)
	t.Income.apply(&tp.Categories.Income)
	t.Corporate.apply(&tp.Categories.Corporate)
	t.Other.apply(&tp.Categories.Other)

	if t.Event != nil {
		category := domain.TaxCategory(t.Event.Category)
		if category == "" {
			category = domain.TaxCategoryConsumption
		}
		baseline := DefaultStatutoryRate
		if t.Event.BaselineRatePct != nil {
			baseline = *t.Event.BaselineRatePct
		}
		tp.Event = &domain.TaxRateEvent{
			Year:         t.Event.Year,
			Category:     category,
			NewRate:      money.FromPercent(t.Event.NewRatePct),
			BaselineRate: money.FromPercent(baseline),
		}
	}
	return nil
}

func (c *CategoryInput) apply(ct *domain.CategoryTax) {
	if c == nil {
		return
	}
	set(&ct.Initial, c.Initial)
	set(&ct.Elasticity, c.Elasticity)
}

func set(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

func setPct(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = money.FromPercent(*v)
	}
}

// ValidateConfiguration validates the resolved configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if config.Projection.Horizon < 1 || config.Projection.Horizon > domain.MaxHorizon {
		return fmt.Errorf("projection horizon must be between 1 and %d, got %d", domain.MaxHorizon, config.Projection.Horizon)
	}
	if config.Projection.BaseYear < 1900 || config.Projection.BaseYear > 2200 {
		return fmt.Errorf("projection base year must be between 1900 and 2200, got %d", config.Projection.BaseYear)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i := range config.Scenarios {
		sc := &config.Scenarios[i]
		if sc.Name == "" {
			return fmt.Errorf("scenario %d validation failed: scenario name is required", i)
		}
		if seen[sc.Name] {
			return fmt.Errorf("duplicate scenario name %q", sc.Name)
		}
		seen[sc.Name] = true
		if err := ValidateParameters(sc.Parameters); err != nil {
			return fmt.Errorf("scenario %q validation failed: %w", sc.Name, err)
		}
	}
	return nil
}

var (
	minGrowthRate = money.MustParse("-0.5")
	maxRate       = money.MustParse("1")
)

// ValidateParameters rejects out-of-domain inputs before they reach the engine.
func ValidateParameters(p domain.Parameters) error {
	nonNegative := []struct {
		name  string
		value decimal.Decimal
	}{
		{"initial debt", p.InitialDebt},
		{"initial policy expenditure", p.InitialPolicyExpenditure},
		{"initial average coupon", p.InitialAverageCoupon},
		{"central bank current account", p.CentralBankCurrentAccount},
		{"central bank bond yield", p.CentralBankBondYield},
		{"policy rate spread", p.PolicyRateSpread},
		{"risk premium", p.RiskPremium},
		{"other revenue", p.OtherRevenue},
		{"structural increment", p.StructuralIncrement},
	}
	for _, f := range nonNegative {
		if f.value.IsNegative() {
			return fmt.Errorf("%s cannot be negative", f.name)
		}
	}

	rates := []struct {
		name  string
		value decimal.Decimal
	}{
		{"inflation rate", p.InflationRate},
		{"real growth rate", p.RealGrowthRate},
	}
	for _, r := range rates {
		if r.value.LessThan(minGrowthRate) || r.value.GreaterThan(maxRate) {
			return fmt.Errorf("%s must be between -50%% and 100%%, got %s%%", r.name, money.ToPercent(r.value).String())
		}
	}
	for _, r := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"risk premium", p.RiskPremium},
		{"initial average coupon", p.InitialAverageCoupon},
		{"central bank bond yield", p.CentralBankBondYield},
		{"policy rate spread", p.PolicyRateSpread},
	} {
		if r.value.GreaterThan(maxRate) {
			return fmt.Errorf("%s cannot exceed 100%%", r.name)
		}
	}

	return validateTax(p.Tax)
}

func validateTax(tp domain.TaxParameters) error {
	switch tp.Kind() {
	case domain.TaxModelAggregate:
		if tp.Initial.IsNegative() {
			return fmt.Errorf("initial tax revenue cannot be negative")
		}
		if tp.Elasticity.IsNegative() {
			return fmt.Errorf("tax elasticity cannot be negative")
		}
		if tp.Event != nil {
			return fmt.Errorf("tax rate events require the %q tax model", domain.TaxModelCategories)
		}
	case domain.TaxModelCategories:
		for _, cat := range domain.TaxCategories() {
			ct, _ := tp.Categories.Get(cat)
			if ct.Initial.IsNegative() {
				return fmt.Errorf("%s tax initial revenue cannot be negative", cat)
			}
			if ct.Elasticity.IsNegative() {
				return fmt.Errorf("%s tax elasticity cannot be negative", cat)
			}
		}
		if ev := tp.Event; ev != nil {
			if _, ok := tp.Categories.Get(ev.Target()); !ok {
				return fmt.Errorf("tax rate event category %q is unknown", ev.Category)
			}
			if !ev.BaselineRate.IsPositive() {
				return fmt.Errorf("tax rate event baseline rate must be positive")
			}
			if ev.NewRate.IsNegative() {
				return fmt.Errorf("tax rate event new rate cannot be negative")
			}
			if ev.Year < 1900 || ev.Year > 2200 {
				return fmt.Errorf("tax rate event year %d is out of range", ev.Year)
			}
		}
	default:
		return fmt.Errorf("tax model must be %q or %q, got %q", domain.TaxModelAggregate, domain.TaxModelCategories, tp.Model)
	}
	return nil
}

// CreateExampleConfiguration returns a file layout covering both tax models and a rate event
func (ip *InputParser) CreateExampleConfiguration() *FileConfiguration {
	pct := func(s string) *decimal.Decimal { v := money.MustParse(s); return &v }
	return &FileConfiguration{
		Projection: ProjectionInput{BaseYear: domain.DefaultBaseYear, Horizon: domain.DefaultHorizon},
		Presets:    []string{"baseline", "rate-spike"},
		Scenarios: []ScenarioInput{
			{
				Name:              "higher-growth-baseline",
				Label:             "Baseline with 1% real growth",
				Extends:           "baseline",
				RealGrowthRatePct: pct("1.0"),
			},
			{
				Name:        "income-tax-reform",
				Label:       "Category model, income tax elasticity 1.6",
				Description: "Income tax responds more strongly to nominal growth",
				Extends:     "categories-baseline",
				Tax: &TaxInput{
					Income: &CategoryInput{Elasticity: pct("1.6")},
				},
			},
			{
				Name:    "consumption-tax-2030",
				Label:   "Consumption tax to 12% in 2030",
				Extends: "categories-baseline",
				Tax: &TaxInput{
					Event: &TaxEventInput{Year: 2030, Category: string(domain.TaxCategoryConsumption), NewRatePct: money.MustParse("12")},
				},
			},
		},
	}
}

// SaveConfiguration writes a scenario file layout as YAML
func SaveConfiguration(file *FileConfiguration, filename string) error {
	b, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := os.WriteFile(filename, b, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
