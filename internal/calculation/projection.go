package calculation

import (
	"errors"
	"fmt"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/yearutil"
	"github.com/shopspring/decimal"
)

// ErrInvalidHorizon is returned when a projection is asked for fewer than one year.
var ErrInvalidHorizon = errors.New("projection horizon must be at least one year")

// GenerateProjection folds the yearly sub-models over the horizon. It returns exactly
// settings.Horizon records; identical inputs always yield identical output.
func GenerateProjection(p domain.Parameters, settings domain.ProjectionSettings) ([]domain.YearState, error) {
	if settings.Horizon <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, settings.Horizon)
	}
	taxModel, err := NewTaxRevenueModel(p.Tax, settings.BaseYear)
	if err != nil {
		return nil, err
	}

	rates := DeriveRates(p)
	projection := make([]domain.YearState, 0, settings.Horizon)

	debt := p.InitialDebt
	policyExp := p.InitialPolicyExpenditure
	coupon := p.InitialAverageCoupon
	var prevTax *domain.TaxRevenue

	for i, year := range yearutil.Horizon(settings.BaseYear, settings.Horizon) {

		tax := taxModel.Next(year, prevTax, rates)
		if i > 0 {
			policyExp = NextPolicyExpenditure(policyExp, rates.Inflation, p.StructuralIncrement)
			coupon = NextAverageCoupon(coupon, rates.Market)
		}
		remittance := CalculateRemittance(debt, p.CentralBankBondYield, p.CentralBankCurrentAccount, rates.Policy)
		interest := InterestExpense(debt, coupon)

		balance := Accumulate(debt, BudgetLines{
			Tax:               tax.Total,
			Remittance:        remittance.Payment,
			OtherRevenue:      p.OtherRevenue,
			PolicyExpenditure: policyExp,
			InterestExpense:   interest,
		})

		projection = append(projection, domain.YearState{
			Year:                   year,
			NominalGrowthRate:      rates.NominalGrowth,
			MarketRate:             rates.Market,
			PolicyRate:             rates.Policy,
			Tax:                    tax,
			CentralBankIncome:      remittance.Income,
			CentralBankFundingCost: remittance.FundingCost,
			Remittance:             remittance.Payment,
			OtherRevenue:           p.OtherRevenue,
			TotalRevenue:           balance.TotalRevenue,
			PolicyExpenditure:      policyExp,
			AverageCoupon:          coupon,
			InterestExpense:        interest,
			TotalCost:              balance.TotalCost,
			FiscalBalance:          balance.FiscalBalance,
			Debt:                   balance.Debt,
			NewBondIssuance:        balance.NewBondIssuance,
			InterestBurden:         balance.InterestBurden,
		})

		debt = balance.Debt
		carried := tax
		prevTax = &carried
	}

	return projection, nil
}

// GenerateAnnualProjection runs GenerateProjection for a scenario and traces each year
// when the engine is in debug mode.
func (pe *ProjectionEngine) GenerateAnnualProjection(scenario *domain.Scenario, settings domain.ProjectionSettings) ([]domain.YearState, error) {
	log := scenarioLogger(pe.Logger, scenario.Name)
	projection, err := GenerateProjection(scenario.Parameters, settings)
	if err != nil {
		return nil, err
	}
	if pe.Debug {
		for _, y := range projection {
			log.Debugf("year %d: tax=%s remit=%s rev=%s policy=%s coupon=%s interest=%s balance=%s debt=%s burden=%s%%",
				y.Year, fixed(y.Tax.Total), fixed(y.Remittance), fixed(y.TotalRevenue), fixed(y.PolicyExpenditure),
				y.AverageCoupon.StringFixed(4), fixed(y.InterestExpense), fixed(y.FiscalBalance), fixed(y.Debt), fixed(y.InterestBurden))
		}
	}
	return projection, nil
}

func fixed(d decimal.Decimal) string { return d.StringFixed(2) }
