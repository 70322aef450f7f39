package calculation

import (
	"errors"
	"reflect"
	"testing"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/shopspring/decimal"
)

func TestGenerateProjection_BaselineFirstYears(t *testing.T) {
	projection := mustProject(t, baselineParams(), defaultSettings())
	if len(projection) != 30 {
		t.Fatalf("expected 30 years, got %d", len(projection))
	}

	y1 := projection[0]
	if y1.Year != 2026 {
		t.Fatalf("expected first year 2026, got %d", y1.Year)
	}
	assertDecimal(t, "remittance", decimal.Zero, y1.Remittance)
	assertDecimal(t, "tax", dec("75"), y1.Tax.Total)
	assertDecimal(t, "revenue", dec("90"), y1.TotalRevenue)
	assertDecimal(t, "policy expenditure", dec("80"), y1.PolicyExpenditure)
	assertDecimal(t, "coupon", dec("0.008"), y1.AverageCoupon)
	assertDecimal(t, "interest", dec("8.8"), y1.InterestExpense)
	assertDecimal(t, "cost", dec("88.8"), y1.TotalCost)
	assertDecimal(t, "balance", dec("1.2"), y1.FiscalBalance)
	assertDecimal(t, "debt", dec("1098.8"), y1.Debt)
	if got := y1.InterestBurden.StringFixed(2); got != "11.73" {
		t.Fatalf("burden: expected 11.73, got %s", got)
	}

	y2 := projection[1]
	assertDecimal(t, "year two tax", dec("77.25"), y2.Tax.Total)
	assertDecimal(t, "year two policy expenditure", dec("82.1"), y2.PolicyExpenditure)
	assertDecimal(t, "year two coupon", dec("0.0104444444"), y2.AverageCoupon)
	assertDecimal(t, "year two interest", dec("11.4763555067"), y2.InterestExpense)
	assertDecimal(t, "year two debt", dec("1100.1263555067"), y2.Debt)
}

func TestGenerateProjection_AccountingIdentities(t *testing.T) {
	for _, p := range []domain.Parameters{baselineParams(), categoryParams(nil)} {
		projection := mustProject(t, p, defaultSettings())
		prevDebt := p.InitialDebt
		for _, y := range projection {
			revenue := money.Sum(y.Tax.Total, y.Remittance, y.OtherRevenue)
			assertDecimal(t, "revenue decomposition", revenue, y.TotalRevenue)
			assertDecimal(t, "cost decomposition", y.PolicyExpenditure.Add(y.InterestExpense), y.TotalCost)
			assertDecimal(t, "balance", y.TotalRevenue.Sub(y.TotalCost), y.FiscalBalance)
			assertDecimal(t, "debt identity", prevDebt.Sub(y.FiscalBalance), y.Debt)
			assertDecimal(t, "issuance", money.FloorZero(y.FiscalBalance.Neg()), y.NewBondIssuance)
			if y.Remittance.IsNegative() {
				t.Fatalf("%d: remittance negative: %s", y.Year, y.Remittance)
			}
			if y.PolicyRate.IsNegative() {
				t.Fatalf("%d: policy rate negative: %s", y.Year, y.PolicyRate)
			}
			if y.Tax.Disaggregated {
				assertDecimal(t, "category sum", y.Tax.CategorySum(), y.Tax.Total)
			}
			prevDebt = y.Debt
		}
	}
}

func TestGenerateProjection_CouponConvergesToMarketRate(t *testing.T) {
	tests := []struct {
		horizon   int
		tolerance string
	}{
		{30, "0.001"},
		{60, "0.00003"},
	}
	for _, tt := range tests {
		projection := mustProject(t, baselineParams(), domain.ProjectionSettings{BaseYear: 2026, Horizon: tt.horizon})
		last := projection[len(projection)-1]
		gap := last.AverageCoupon.Sub(last.MarketRate).Abs()
		if gap.GreaterThan(dec(tt.tolerance)) {
			t.Fatalf("horizon %d: coupon %s still %s from market rate %s", tt.horizon, last.AverageCoupon, gap, last.MarketRate)
		}
	}
}

func TestGenerateProjection_ElasticityRaisesTax(t *testing.T) {
	low := baselineParams()
	high := baselineParams()
	high.Tax.Elasticity = dec("1.5")

	lowProj := mustProject(t, low, defaultSettings())
	highProj := mustProject(t, high, defaultSettings())
	for i := 1; i < len(lowProj); i++ {
		if !highProj[i].Tax.Total.GreaterThan(lowProj[i].Tax.Total) {
			t.Fatalf("%d: higher elasticity should raise tax (%s vs %s)", lowProj[i].Year, highProj[i].Tax.Total, lowProj[i].Tax.Total)
		}
	}
}

func TestGenerateProjection_CategoryElasticityRaisesThatCategory(t *testing.T) {
	base := mustProject(t, categoryParams(nil), defaultSettings())
	baseLast := base[len(base)-1].Tax

	for _, cat := range domain.TaxCategories() {
		t.Run(string(cat), func(t *testing.T) {
			p := categoryParams(nil)
			cfg, ok := p.Tax.Categories.Get(cat)
			if !ok {
				t.Fatalf("category %s missing", cat)
			}
			cfg.Elasticity = cfg.Elasticity.Add(dec("0.5"))
			setCategory(&p.Tax.Categories, cat, cfg)

			proj := mustProject(t, p, defaultSettings())
			last := proj[len(proj)-1].Tax
			if !last.Category(cat).GreaterThan(baseLast.Category(cat)) {
				t.Fatalf("%s: terminal value %s not above %s", cat, last.Category(cat), baseLast.Category(cat))
			}
			if !last.Total.GreaterThan(baseLast.Total) {
				t.Fatalf("%s: total %s not above %s", cat, last.Total, baseLast.Total)
			}
			for _, other := range domain.TaxCategories() {
				if other != cat {
					assertDecimal(t, string(other), baseLast.Category(other), last.Category(other))
				}
			}
		})
	}
}

func TestGenerateProjection_CorporateElasticityTerminalValue(t *testing.T) {
	p := categoryParams(nil)
	low := mustProject(t, p, defaultSettings())
	p.Tax.Categories.Corporate.Elasticity = dec("1.5")
	high := mustProject(t, p, defaultSettings())

	if got := low[len(low)-1].Tax.Corporate.StringFixed(2); got != "30.19" {
		t.Fatalf("corporate at elasticity 1.0: expected 30.19, got %s", got)
	}
	if got := high[len(high)-1].Tax.Corporate.StringFixed(2); got != "40.06" {
		t.Fatalf("corporate at elasticity 1.5: expected 40.06, got %s", got)
	}
}

func setCategory(c *domain.CategoryTaxParameters, cat domain.TaxCategory, v domain.CategoryTax) {
	switch cat {
	case domain.TaxCategoryConsumption:
		c.Consumption = v
	case domain.TaxCategoryIncome:
		c.Income = v
	case domain.TaxCategoryCorporate:
		c.Corporate = v
	case domain.TaxCategoryOther:
		c.Other = v
	}
}

func TestGenerateProjection_ZeroTaxBurden(t *testing.T) {
	p := baselineParams()
	p.Tax.Initial = decimal.Zero
	projection := mustProject(t, p, domain.ProjectionSettings{BaseYear: 2026, Horizon: 5})
	for _, y := range projection {
		if !y.InterestBurden.IsZero() {
			t.Fatalf("%d: burden should be 0 with zero tax, got %s", y.Year, y.InterestBurden)
		}
	}
}

func TestGenerateProjection_Deterministic(t *testing.T) {
	a := mustProject(t, categoryParams(nil), defaultSettings())
	b := mustProject(t, categoryParams(nil), defaultSettings())
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs produced different projections")
	}
}

func TestGenerateProjection_InvalidInputs(t *testing.T) {
	if _, err := GenerateProjection(baselineParams(), domain.ProjectionSettings{BaseYear: 2026}); !errors.Is(err, ErrInvalidHorizon) {
		t.Fatalf("expected ErrInvalidHorizon, got %v", err)
	}

	p := baselineParams()
	p.Tax.Model = "flat"
	if _, err := GenerateProjection(p, defaultSettings()); !errors.Is(err, ErrUnknownTaxModel) {
		t.Fatalf("expected ErrUnknownTaxModel, got %v", err)
	}
}

func TestGenerateProjection_TaxRateEvent(t *testing.T) {
	event := &domain.TaxRateEvent{
		Year:         2029,
		Category:     domain.TaxCategoryConsumption,
		NewRate:      dec("0.15"),
		BaselineRate: dec("0.10"),
	}
	projection := mustProject(t, categoryParams(event), domain.ProjectionSettings{BaseYear: 2026, Horizon: 5})

	assertDecimal(t, "2028 consumption", dec("24.9696"), projection[2].Tax.Consumption)
	assertDecimal(t, "2029 consumption", dec("38.203488"), projection[3].Tax.Consumption)
	assertDecimal(t, "2030 consumption", dec("38.96755776"), projection[4].Tax.Consumption)
	assertDecimal(t, "2029 total", dec("93.37031325"), projection[3].Tax.Total)

	for i, y := range projection {
		if y.Tax.EventApplied != (i == 3) {
			t.Fatalf("%d: EventApplied = %v", y.Year, y.Tax.EventApplied)
		}
	}

	plain := mustProject(t, categoryParams(nil), domain.ProjectionSettings{BaseYear: 2026, Horizon: 5})
	assertDecimal(t, "income unaffected", plain[3].Tax.Income, projection[3].Tax.Income)
}

func TestGenerateProjection_EventBeforeBaseYearFiresInFirstYear(t *testing.T) {
	event := &domain.TaxRateEvent{Year: 2020, NewRate: dec("0.15"), BaselineRate: dec("0.10")}
	projection := mustProject(t, categoryParams(event), domain.ProjectionSettings{BaseYear: 2026, Horizon: 3})

	assertDecimal(t, "2026 consumption", dec("36"), projection[0].Tax.Consumption)
	assertDecimal(t, "2027 consumption", dec("36.72"), projection[1].Tax.Consumption)
	if !projection[0].Tax.EventApplied || projection[1].Tax.EventApplied {
		t.Fatal("event should apply in the first projected year only")
	}
}

func TestGenerateAnnualProjection_DebugTrace(t *testing.T) {
	rec := &recordingLogger{}
	pe := NewProjectionEngine()
	pe.Debug = true
	pe.SetLogger(rec)

	scenario := &domain.Scenario{Name: "baseline", Parameters: baselineParams()}
	projection, err := pe.GenerateAnnualProjection(scenario, domain.ProjectionSettings{BaseYear: 2026, Horizon: 4})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rec.debug) != len(projection) {
		t.Fatalf("expected one debug line per year, got %d", len(rec.debug))
	}
	if want := "[baseline] year 2026:"; len(rec.debug[0]) < len(want) || rec.debug[0][:len(want)] != want {
		t.Fatalf("unexpected trace line %q", rec.debug[0])
	}
}
