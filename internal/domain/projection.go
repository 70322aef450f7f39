package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRevenue is one year of tax revenue. Category fields are zero when the aggregate
// model produced the year.
type TaxRevenue struct {
	Total         decimal.Decimal `json:"total"`
	Consumption   decimal.Decimal `json:"consumption"`
	Income        decimal.Decimal `json:"income"`
	Corporate     decimal.Decimal `json:"corporate"`
	Other         decimal.Decimal `json:"other"`
	Disaggregated bool            `json:"disaggregated"`
	EventApplied  bool            `json:"event_applied"`
}

// CategorySum adds the four category lines.
func (t TaxRevenue) CategorySum() decimal.Decimal {
	return t.Consumption.Add(t.Income).Add(t.Corporate).Add(t.Other)
}

// SetCategory overwrites a single category line.
func (t *TaxRevenue) SetCategory(cat TaxCategory, v decimal.Decimal) {
	switch cat {
	case TaxCategoryConsumption:
		t.Consumption = v
	case TaxCategoryIncome:
		t.Income = v
	case TaxCategoryCorporate:
		t.Corporate = v
	case TaxCategoryOther:
		t.Other = v
	}
}

// Category returns a single category line.
func (t TaxRevenue) Category(cat TaxCategory) decimal.Decimal {
	switch cat {
	case TaxCategoryConsumption:
		return t.Consumption
	case TaxCategoryIncome:
		return t.Income
	case TaxCategoryCorporate:
		return t.Corporate
	case TaxCategoryOther:
		return t.Other
	}
	return decimal.Zero
}

// YearState is the complete fiscal state of one projected year.
type YearState struct {
	Year int `json:"year"`

	// Derived rates (fractions)
	NominalGrowthRate decimal.Decimal `json:"nominal_growth_rate"`
	MarketRate        decimal.Decimal `json:"market_rate"`
	PolicyRate        decimal.Decimal `json:"policy_rate"`

	// Revenue
	Tax                    TaxRevenue      `json:"tax"`
	CentralBankIncome      decimal.Decimal `json:"central_bank_income"`
	CentralBankFundingCost decimal.Decimal `json:"central_bank_funding_cost"`
	Remittance             decimal.Decimal `json:"remittance"`
	OtherRevenue           decimal.Decimal `json:"other_revenue"`
	TotalRevenue           decimal.Decimal `json:"total_revenue"`

	// Cost
	PolicyExpenditure decimal.Decimal `json:"policy_expenditure"`
	AverageCoupon     decimal.Decimal `json:"average_coupon"`
	InterestExpense   decimal.Decimal `json:"interest_expense"`
	TotalCost         decimal.Decimal `json:"total_cost"`

	// Balance and stock
	FiscalBalance   decimal.Decimal `json:"fiscal_balance"`
	Debt            decimal.Decimal `json:"debt"`
	NewBondIssuance decimal.Decimal `json:"new_bond_issuance"`
	InterestBurden  decimal.Decimal `json:"interest_burden"` // percent of tax revenue
}

// ScenarioSummary is the outcome of running one scenario.
type ScenarioSummary struct {
	Name       string      `json:"name"`
	Label      string      `json:"label,omitempty"`
	Parameters Parameters  `json:"parameters"`
	Projection []YearState `json:"projection"`
	Warnings   []Warning   `json:"warnings"`
	Grade      string      `json:"grade"`
	Error      string      `json:"error,omitempty"`
	FirstYear  int         `json:"first_year"`
	FinalYear  int         `json:"final_year"`

	FinalDebt           decimal.Decimal `json:"final_debt"`
	FinalInterestBurden decimal.Decimal `json:"final_interest_burden"`
	PeakInterestBurden  decimal.Decimal `json:"peak_interest_burden"`
	PeakBurdenYear      int             `json:"peak_burden_year"`
	CumulativeBalance   decimal.Decimal `json:"cumulative_balance"`
	CumulativeIssuance  decimal.Decimal `json:"cumulative_issuance"`
	DeficitYears        int             `json:"deficit_years"`
	BurdenThresholdYear int             `json:"burden_threshold_year,omitempty"` // first year above the review threshold, 0 if never
}

// Failed reports whether the scenario aborted.
func (s *ScenarioSummary) Failed() bool {
	return s.Error != ""
}

// DisplayName prefers the label over the machine name.
func (s *ScenarioSummary) DisplayName() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}

// ScenarioComparison collects every scenario of one run.
type ScenarioComparison struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Projection  ProjectionSettings `json:"projection"`
	Scenarios   []ScenarioSummary  `json:"scenarios"`
	Analysis    ComparisonAnalysis `json:"analysis"`
	Assumptions []string           `json:"assumptions"`
}

// ComparisonAnalysis ranks the successful scenarios of a comparison.
type ComparisonAnalysis struct {
	LowestFinalDebt     string   `json:"lowest_final_debt"`
	LowestPeakBurden    string   `json:"lowest_peak_burden"`
	FewestWarnings      string   `json:"fewest_warnings"`
	RecommendedScenario string   `json:"recommended_scenario"`
	FailedScenarios     []string `json:"failed_scenarios,omitempty"`
	KeyConsiderations   []string `json:"key_considerations"`
}
