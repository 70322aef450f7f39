package calculation

import (
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/shopspring/decimal"
)

// BalanceResult is one year's consolidated budget outcome.
type BalanceResult struct {
	TotalRevenue    decimal.Decimal
	TotalCost       decimal.Decimal
	FiscalBalance   decimal.Decimal
	Debt            decimal.Decimal
	NewBondIssuance decimal.Decimal
	InterestBurden  decimal.Decimal
}

// BudgetLines are the revenue and cost lines that feed the accumulator.
type BudgetLines struct {
	Tax               decimal.Decimal
	Remittance        decimal.Decimal
	OtherRevenue      decimal.Decimal
	PolicyExpenditure decimal.Decimal
	InterestExpense   decimal.Decimal
}

// Accumulate totals a year's budget and rolls the debt stock forward. A surplus
// retires debt; issuance is floored at zero.
func Accumulate(priorDebt decimal.Decimal, lines BudgetLines) BalanceResult {
	revenue := money.Sum(lines.Tax, lines.Remittance, lines.OtherRevenue)
	cost := lines.PolicyExpenditure.Add(lines.InterestExpense)
	shortfall := cost.Sub(revenue)

	return BalanceResult{
		TotalRevenue:    revenue,
		TotalCost:       cost,
		FiscalBalance:   revenue.Sub(cost),
		Debt:            priorDebt.Add(shortfall),
		NewBondIssuance: money.FloorZero(shortfall),
		InterestBurden:  money.PercentOf(lines.InterestExpense, lines.Tax),
	}
}
