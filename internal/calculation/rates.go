package calculation

import (
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/shopspring/decimal"
)

// Rates are the macro rates implied by a parameter set. They are constant over the
// horizon.
type Rates struct {
	Inflation     decimal.Decimal
	RealGrowth    decimal.Decimal
	NominalGrowth decimal.Decimal
	Market        decimal.Decimal
	Policy        decimal.Decimal
}

// DeriveRates computes nominal growth, the market yield and the floored policy rate.
func DeriveRates(p domain.Parameters) Rates {
	nominal := p.InflationRate.Add(p.RealGrowthRate)
	market := nominal.Add(p.RiskPremium)
	return Rates{
		Inflation:     p.InflationRate,
		RealGrowth:    p.RealGrowthRate,
		NominalGrowth: nominal,
		Market:        market,
		Policy:        money.FloorZero(market.Sub(p.PolicyRateSpread)),
	}
}
