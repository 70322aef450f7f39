package calculation

import (
	"errors"
	"fmt"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrUnknownTaxModel is returned for an unrecognised tax model kind.
var ErrUnknownTaxModel = errors.New("unknown tax model")

// Weights of real growth and inflation in the corporate tax base.
var (
	corporateRealWeight      = decimal.NewFromInt(2)
	corporateInflationWeight = decimal.NewFromFloat(0.5)
)

// TaxRevenueModel produces one year of tax revenue. prev is nil for the first
// projected year, which returns the configured seed values.
type TaxRevenueModel interface {
	Name() string
	Next(year int, prev *domain.TaxRevenue, rates Rates) domain.TaxRevenue
}

// NewTaxRevenueModel selects the tax strategy configured on the parameters.
func NewTaxRevenueModel(tp domain.TaxParameters, baseYear int) (TaxRevenueModel, error) {
	switch tp.Kind() {
	case domain.TaxModelAggregate:
		return AggregateTaxModel{Initial: tp.Initial, Elasticity: tp.Elasticity}, nil
	case domain.TaxModelCategories:
		return CategoryTaxModel{Params: tp.Categories, Event: tp.Event, BaseYear: baseYear}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTaxModel, tp.Model)
}

// AggregateTaxModel grows total tax revenue with nominal growth scaled by an elasticity.
type AggregateTaxModel struct {
	Initial    decimal.Decimal
	Elasticity decimal.Decimal
}

func (AggregateTaxModel) Name() string { return string(domain.TaxModelAggregate) }

func (m AggregateTaxModel) Next(year int, prev *domain.TaxRevenue, rates Rates) domain.TaxRevenue {
	if prev == nil {
		return domain.TaxRevenue{Total: m.Initial}
	}
	growth := money.GrowthFactor(rates.NominalGrowth, m.Elasticity)
	return domain.TaxRevenue{Total: money.Round(prev.Total.Mul(growth))}
}

// CategoryTaxModel grows each tax category on its own macro driver and applies an
// optional one-off rate event.
type CategoryTaxModel struct {
	Params   domain.CategoryTaxParameters
	Event    *domain.TaxRateEvent
	BaseYear int
}

func (CategoryTaxModel) Name() string { return string(domain.TaxModelCategories) }

// categoryDriver returns the macro rate a category's elasticity applies to.
func categoryDriver(cat domain.TaxCategory, r Rates) decimal.Decimal {
	switch cat {
	case domain.TaxCategoryConsumption:
		return r.Inflation
	case domain.TaxCategoryCorporate:
		return r.RealGrowth.Mul(corporateRealWeight).Add(r.Inflation.Mul(corporateInflationWeight))
	default:
		return r.NominalGrowth
	}
}

func (m CategoryTaxModel) Next(year int, prev *domain.TaxRevenue, rates Rates) domain.TaxRevenue {
	out := domain.TaxRevenue{Disaggregated: true}
	fires := m.Event.FiresIn(year, m.BaseYear)

	for _, cat := range domain.TaxCategories() {
		cfg, _ := m.Params.Get(cat)
		var v decimal.Decimal
		if prev == nil {
			v = cfg.Initial
		} else {
			v = money.Round(prev.Category(cat).Mul(money.GrowthFactor(categoryDriver(cat, rates), cfg.Elasticity)))
		}
		if fires && cat == m.Event.Target() {
			v = money.Round(v.Mul(m.Event.Multiplier()))
			out.EventApplied = true
		}
		out.SetCategory(cat, v)
	}
	out.Total = out.CategorySum()
	return out
}
