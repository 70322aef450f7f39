package calculation

import (
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/shopspring/decimal"
)

// RemittanceResult breaks down the central bank's payment to the treasury.
type RemittanceResult struct {
	Income      decimal.Decimal // coupon income on the central bank's bond holdings
	FundingCost decimal.Decimal // interest paid on reserve balances
	Payment     decimal.Decimal // remittance, never negative
}

// CalculateRemittance computes the central bank remittance from the prior year's debt.
// A loss-making year remits zero; the loss is not carried forward.
func CalculateRemittance(priorDebt, bondYield, currentAccount, policyRate decimal.Decimal) RemittanceResult {
	income := money.Round(priorDebt.Mul(bondYield))
	cost := money.Round(currentAccount.Mul(policyRate))
	return RemittanceResult{
		Income:      income,
		FundingCost: cost,
		Payment:     money.FloorZero(income.Sub(cost)),
	}
}
