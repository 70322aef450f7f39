package calculation

import (
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/shopspring/decimal"
)

// AverageMaturityYears is the average maturity of the outstanding bond stock. Each
// year 1/AverageMaturityYears of the stock is refinanced at the market rate.
const AverageMaturityYears = 9

// NextPolicyExpenditure indexes policy spending to inflation and adds the structural increment.
func NextPolicyExpenditure(prev, inflation, increment decimal.Decimal) decimal.Decimal {
	return money.Round(prev.Mul(decimal.NewFromInt(1).Add(inflation)).Add(increment))
}

// NextAverageCoupon moves the stock's average coupon toward the market rate as
// maturing bonds are refinanced.
func NextAverageCoupon(prev, market decimal.Decimal) decimal.Decimal {
	retained := prev.Mul(decimal.NewFromInt(AverageMaturityYears - 1))
	return money.Round(retained.Add(market).Div(decimal.NewFromInt(AverageMaturityYears)))
}

// InterestExpense is the prior year's debt times this year's average coupon.
func InterestExpense(priorDebt, coupon decimal.Decimal) decimal.Decimal {
	return money.Round(priorDebt.Mul(coupon))
}
