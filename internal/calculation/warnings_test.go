package calculation

import (
	"testing"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// year builds a minimal projected year for review tests.
func year(y int, tax, interest, balance, burden string) domain.YearState {
	return domain.YearState{
		Year:              y,
		Tax:               domain.TaxRevenue{Total: dec(tax)},
		InterestExpense:   dec(interest),
		FiscalBalance:     dec(balance),
		InterestBurden:    dec(burden),
		Remittance:        dec("1"),
		PolicyExpenditure: dec("80"),
		Debt:              dec("1000"),
	}
}

func countKind(ws []domain.Warning, kind domain.WarningKind) int {
	n := 0
	for _, w := range ws {
		if w.Kind == kind {
			n++
		}
	}
	return n
}

func TestComputeWarnings_QuietProjection(t *testing.T) {
	projection := []domain.YearState{
		year(2026, "75", "8", "1", "10.7"),
		year(2027, "76", "8.5", "0.5", "11.2"),
	}
	ws := ComputeWarnings(projection, DefaultWarningThresholds())
	require.NotNil(t, ws)
	assert.Empty(t, ws)
}

func TestComputeWarnings_InterestBurden(t *testing.T) {
	projection := []domain.YearState{
		year(2026, "75", "22", "1", "29.3"),
		year(2027, "75", "22.6", "1", "30.1"),
		year(2028, "75", "22.5", "1", "30"),
	}
	ws := ComputeWarnings(projection, DefaultWarningThresholds())
	require.Len(t, ws, 1)
	assert.Equal(t, domain.WarningInterestBurden, ws[0].Kind)
	assert.Equal(t, 2027, ws[0].Year)
	assert.Equal(t, domain.SeverityNormal, ws[0].Severity)
}

func TestComputeWarnings_ChronicDeficit(t *testing.T) {
	var projection []domain.YearState
	for i := 0; i < 7; i++ {
		projection = append(projection, year(2026+i, "75", "8", "-2", "10"))
	}
	// break the streak, then restart it
	projection[5].FiscalBalance = dec("1")

	ws := ComputeWarnings(projection, DefaultWarningThresholds())
	assert.Equal(t, 1, countKind(ws, domain.WarningChronicDeficit), "only the fifth consecutive deficit year is flagged")
	assert.Equal(t, 2030, ws[0].Year)
}

func TestComputeWarnings_AbruptChange(t *testing.T) {
	projection := []domain.YearState{
		year(2026, "75", "8", "-2", "10"),
		year(2027, "75", "8", "-5", "10"), // balance +150%, same sign
		year(2028, "75", "8", "3", "10"),  // sign flip is not a ratio
		year(2029, "75", "17", "6", "10"), // interest +112%, balance +100% exactly
		year(2030, "75", "17", "0", "10"), // zero is skipped
	}
	ws := ComputeWarnings(projection, DefaultWarningThresholds())
	require.Equal(t, 2, countKind(ws, domain.WarningAbruptChange))

	var years []int
	for _, w := range ws {
		if w.Kind == domain.WarningAbruptChange {
			years = append(years, w.Year)
		}
	}
	assert.Equal(t, []int{2027, 2029}, years)
}

func TestComputeWarnings_NegativeTax(t *testing.T) {
	projection := []domain.YearState{year(2026, "75", "8", "1", "10")}
	projection[0].Tax = domain.TaxRevenue{Total: dec("70"), Consumption: dec("-1"), Income: dec("71"), Disaggregated: true}

	ws := ComputeWarnings(projection, DefaultWarningThresholds())
	require.Len(t, ws, 1)
	assert.Equal(t, domain.WarningNegativeTaxRevenue, ws[0].Kind)
}

func TestComputeWarnings_DebtSpiral(t *testing.T) {
	rising := []domain.YearState{
		year(2026, "75", "8", "-1", "20"),
		year(2027, "75", "8", "-1", "21"),
		year(2028, "75", "8", "-1", "22"),
		year(2029, "75", "8", "-1", "23"),
		year(2030, "75", "8", "-1", "24"),
	}
	th := DefaultWarningThresholds()
	th.DeficitStreak = 0

	ws := ComputeWarnings(rising, th)
	require.Len(t, ws, 1)
	assert.Equal(t, domain.WarningDebtSpiral, ws[0].Kind)
	assert.Equal(t, domain.SeverityCritical, ws[0].Severity)
	assert.Equal(t, 2030, ws[0].Year)

	flat := append([]domain.YearState(nil), rising...)
	flat[3].InterestBurden = dec("24")
	assert.Empty(t, ComputeWarnings(flat, th), "burden must rise strictly")

	short := rising[:4]
	assert.Empty(t, ComputeWarnings(short, th))
}

func TestComputeWarnings_DoesNotMutate(t *testing.T) {
	projection := mustProject(t, baselineParams(), defaultSettings())
	before := append([]domain.YearState(nil), projection...)
	_ = ComputeWarnings(projection, DefaultWarningThresholds())
	assert.Equal(t, before, projection)
}

func TestComputeWarnings_Presets(t *testing.T) {
	stagflation := baselineParams()
	stagflation.InflationRate = dec("0.04")
	stagflation.RealGrowthRate = dec("0")
	stagflation.RiskPremium = dec("0.01")
	stagflation.PolicyRateSpread = dec("0.005")
	stagflation.StructuralIncrement = dec("1.0")
	stagflation.Tax.Elasticity = dec("0.8")

	tests := []struct {
		name      string
		params    domain.Parameters
		wantCount int
		wantGrade string
	}{
		{"baseline", baselineParams(), 26, "D"},
		{"categories", categoryParams(nil), 45, "D"},
		{"stagflation", stagflation, 53, "D"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := ComputeWarnings(mustProject(t, tt.params, defaultSettings()), DefaultWarningThresholds())
			assert.Len(t, ws, tt.wantCount)
			assert.Equal(t, tt.wantGrade, Grade(len(ws)))
		})
	}
}

func TestGrade(t *testing.T) {
	tests := []struct {
		warnings int
		want     string
	}{
		{0, "A+"},
		{1, "A"},
		{5, "A"},
		{6, "B+"},
		{10, "B+"},
		{11, "B"},
		{15, "B"},
		{16, "C"},
		{25, "C"},
		{26, "D"},
		{400, "D"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.warnings), "warnings=%d", tt.warnings)
	}
}
