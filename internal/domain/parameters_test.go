package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxRateEvent_FiresIn(t *testing.T) {
	testCases := []struct {
		desc     string
		event    *TaxRateEvent
		year     int
		expected bool
	}{
		{desc: "nil event never fires", event: nil, year: 2026, expected: false},
		{desc: "fires in trigger year", event: &TaxRateEvent{Year: 2030}, year: 2030, expected: true},
		{desc: "not before trigger year", event: &TaxRateEvent{Year: 2030}, year: 2029, expected: false},
		{desc: "not after trigger year", event: &TaxRateEvent{Year: 2030}, year: 2031, expected: false},
		{desc: "past trigger fires in first year", event: &TaxRateEvent{Year: 2019}, year: 2026, expected: true},
		{desc: "past trigger fires only once", event: &TaxRateEvent{Year: 2019}, year: 2027, expected: false},
		{desc: "trigger equal to base year", event: &TaxRateEvent{Year: 2026}, year: 2026, expected: true},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.event.FiresIn(tc.year, 2026))
		})
	}
}

func TestTaxRateEvent_Multiplier(t *testing.T) {
	e := &TaxRateEvent{NewRate: decimal.NewFromFloat(0.15), BaselineRate: decimal.NewFromFloat(0.10)}
	assert.True(t, e.Multiplier().Equal(decimal.NewFromFloat(1.5)), "got %s", e.Multiplier())

	var none *TaxRateEvent
	assert.True(t, none.Multiplier().Equal(decimal.NewFromInt(1)))
	assert.Equal(t, TaxCategoryConsumption, none.Target())

	zeroBase := &TaxRateEvent{NewRate: decimal.NewFromFloat(0.15), Category: TaxCategoryIncome}
	assert.True(t, zeroBase.Multiplier().Equal(decimal.NewFromInt(1)))
	assert.Equal(t, TaxCategoryIncome, zeroBase.Target())
}

func TestTaxParameters_Kind(t *testing.T) {
	assert.Equal(t, TaxModelAggregate, TaxParameters{}.Kind())
	assert.Equal(t, TaxModelCategories, TaxParameters{Model: TaxModelCategories}.Kind())
}

func TestCategoryTaxParameters(t *testing.T) {
	c := CategoryTaxParameters{
		Consumption: CategoryTax{Initial: decimal.NewFromInt(24)},
		Income:      CategoryTax{Initial: decimal.NewFromInt(22)},
		Corporate:   CategoryTax{Initial: decimal.NewFromInt(17)},
		Other:       CategoryTax{Initial: decimal.NewFromInt(12)},
	}
	assert.True(t, c.InitialTotal().Equal(decimal.NewFromInt(75)))

	for _, cat := range TaxCategories() {
		_, ok := c.Get(cat)
		assert.True(t, ok, string(cat))
	}
	_, ok := c.Get("payroll")
	assert.False(t, ok)
}

func TestTaxRevenue_CategorySum(t *testing.T) {
	tr := TaxRevenue{
		Consumption: decimal.NewFromInt(1),
		Income:      decimal.NewFromInt(2),
		Corporate:   decimal.NewFromInt(3),
		Other:       decimal.NewFromInt(4),
	}
	assert.True(t, tr.CategorySum().Equal(decimal.NewFromInt(10)))
	assert.True(t, tr.Category(TaxCategoryCorporate).Equal(decimal.NewFromInt(3)))
	assert.True(t, tr.Category("unknown").IsZero())
}

func TestProjectionSettings_WithDefaults(t *testing.T) {
	s := ProjectionSettings{}.WithDefaults()
	assert.Equal(t, DefaultBaseYear, s.BaseYear)
	assert.Equal(t, DefaultHorizon, s.Horizon)

	s = ProjectionSettings{BaseYear: 2030, Horizon: 50}.WithDefaults()
	assert.Equal(t, 2030, s.BaseYear)
	assert.Equal(t, 50, s.Horizon)
}
