package domain

import (
	"github.com/shopspring/decimal"
)

// TaxModelKind selects how tax revenue is projected.
type TaxModelKind string

const (
	// TaxModelAggregate grows a single tax line with nominal growth times an elasticity.
	TaxModelAggregate TaxModelKind = "aggregate"
	// TaxModelCategories grows consumption, income, corporate and other taxes separately.
	TaxModelCategories TaxModelKind = "categories"
)

// TaxCategory names one line of the disaggregated tax model.
type TaxCategory string

const (
	TaxCategoryConsumption TaxCategory = "consumption"
	TaxCategoryIncome      TaxCategory = "income"
	TaxCategoryCorporate   TaxCategory = "corporate"
	TaxCategoryOther       TaxCategory = "other"
)

// TaxCategories lists the categories in reporting order.
func TaxCategories() []TaxCategory {
	return []TaxCategory{TaxCategoryConsumption, TaxCategoryIncome, TaxCategoryCorporate, TaxCategoryOther}
}

// CategoryTax is the seed value and elasticity of one tax category.
type CategoryTax struct {
	Initial    decimal.Decimal `json:"initial"`
	Elasticity decimal.Decimal `json:"elasticity"`
}

// CategoryTaxParameters configures the disaggregated tax model.
type CategoryTaxParameters struct {
	Consumption CategoryTax `json:"consumption"`
	Income      CategoryTax `json:"income"`
	Corporate   CategoryTax `json:"corporate"`
	Other       CategoryTax `json:"other"`
}

// Get returns the configuration of a single category.
func (c CategoryTaxParameters) Get(cat TaxCategory) (CategoryTax, bool) {
	switch cat {
	case TaxCategoryConsumption:
		return c.Consumption, true
	case TaxCategoryIncome:
		return c.Income, true
	case TaxCategoryCorporate:
		return c.Corporate, true
	case TaxCategoryOther:
		return c.Other, true
	}
	return CategoryTax{}, false
}

// InitialTotal is the sum of the category seeds.
func (c CategoryTaxParameters) InitialTotal() decimal.Decimal {
	return c.Consumption.Initial.Add(c.Income.Initial).Add(c.Corporate.Initial).Add(c.Other.Initial)
}

// TaxRateEvent is a one-off statutory rate change. A nil *TaxRateEvent means no event.
type TaxRateEvent struct {
	Year         int             `json:"year"`
	Category     TaxCategory     `json:"category"`
	NewRate      decimal.Decimal `json:"new_rate"`
	BaselineRate decimal.Decimal `json:"baseline_rate"`
}

// Target returns the affected category, defaulting to consumption.
func (e *TaxRateEvent) Target() TaxCategory {
	if e == nil || e.Category == "" {
		return TaxCategoryConsumption
	}
	return e.Category
}

// Multiplier is the one-time level adjustment NewRate/BaselineRate.
func (e *TaxRateEvent) Multiplier() decimal.Decimal {
	if e == nil || e.BaselineRate.IsZero() {
		return decimal.NewFromInt(1)
	}
	return e.NewRate.Div(e.BaselineRate)
}

// FiresIn reports whether the event applies in the given calendar year.
// An event dated at or before the first projected year fires in that first year.
func (e *TaxRateEvent) FiresIn(year, baseYear int) bool {
	if e == nil {
		return false
	}
	if e.Year <= baseYear {
		return year == baseYear
	}
	return year == e.Year
}

// TaxParameters selects and configures the tax revenue model.
type TaxParameters struct {
	Model      TaxModelKind          `json:"model"`
	Initial    decimal.Decimal       `json:"initial"`
	Elasticity decimal.Decimal       `json:"elasticity"`
	Categories CategoryTaxParameters `json:"categories"`
	Event      *TaxRateEvent         `json:"event,omitempty"`
}

// Kind returns the configured model, defaulting to the aggregate model.
func (t TaxParameters) Kind() TaxModelKind {
	if t.Model == "" {
		return TaxModelAggregate
	}
	return t.Model
}

// Parameters is the full, immutable input of one projection run. Rates are fractions
// (0.02 for 2%); amounts are trillion yen.
type Parameters struct {
	InflationRate  decimal.Decimal `json:"inflation_rate"`
	RealGrowthRate decimal.Decimal `json:"real_growth_rate"`
	RiskPremium    decimal.Decimal `json:"risk_premium"`

	InitialDebt              decimal.Decimal `json:"initial_debt"`
	InitialPolicyExpenditure decimal.Decimal `json:"initial_policy_expenditure"`
	InitialAverageCoupon     decimal.Decimal `json:"initial_average_coupon"`

	CentralBankCurrentAccount decimal.Decimal `json:"central_bank_current_account"`
	CentralBankBondYield      decimal.Decimal `json:"central_bank_bond_yield"`
	PolicyRateSpread          decimal.Decimal `json:"policy_rate_spread"`

	OtherRevenue        decimal.Decimal `json:"other_revenue"`
	StructuralIncrement decimal.Decimal `json:"structural_increment"`

	Tax TaxParameters `json:"tax"`
}
