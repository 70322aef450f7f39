package domain

import "github.com/shopspring/decimal"

// ActualRecord is one year of realised fiscal data used as a historical reference
// alongside projections. Records are read-only once loaded.
type ActualRecord struct {
	Year              int             `json:"year"`
	Tax               TaxRevenue      `json:"tax"`
	Remittance        decimal.Decimal `json:"remittance"`
	OtherRevenue      decimal.Decimal `json:"other_revenue"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	PolicyExpenditure decimal.Decimal `json:"policy_expenditure"`
	InterestExpense   decimal.Decimal `json:"interest_expense"`
	TotalCost         decimal.Decimal `json:"total_cost"`
	FiscalBalance     decimal.Decimal `json:"fiscal_balance"`
	Debt              decimal.Decimal `json:"debt"`
	AverageCoupon     decimal.Decimal `json:"average_coupon"`  // fraction
	InterestBurden    decimal.Decimal `json:"interest_burden"` // percent of tax revenue
	BondIssuance      decimal.Decimal `json:"bond_issuance"`
}

// TimelinePoint is one calendar year on a merged actual/projected timeline.
// Exactly one of Actual and Projected is set unless the year is a gap.
type TimelinePoint struct {
	Year      int           `json:"year"`
	Actual    *ActualRecord `json:"actual,omitempty"`
	Projected *YearState    `json:"projected,omitempty"`
}

// IsGap reports whether no data exists for the year.
func (p TimelinePoint) IsGap() bool {
	return p.Actual == nil && p.Projected == nil
}
