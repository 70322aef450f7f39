package integration

import (
	"context"
	"testing"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scenarioFile = "../testdata/scenarios.yaml"

func runFile(t *testing.T) *domain.ScenarioComparison {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(scenarioFile)
	require.NoError(t, err)

	results, err := calculation.NewProjectionEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	return results
}

func TestEndToEndCalculation(t *testing.T) {
	results := runFile(t)
	require.Len(t, results.Scenarios, 4)

	names := []string{}
	for _, sc := range results.Scenarios {
		assert.False(t, sc.Failed(), sc.Error)
		assert.Len(t, sc.Projection, 30)
		names = append(names, sc.Name)
	}
	assert.Equal(t, []string{"baseline", "consolidation", "early-vat", "tight-spread"}, names)

	baseline := results.Scenarios[0]
	assert.Equal(t, "1503.8841889816", baseline.FinalDebt.String())
	assert.Equal(t, "D", baseline.Grade)
	assert.Equal(t, "A+", results.Scenarios[1].Grade)

	require.NotEmpty(t, results.Analysis.RecommendedScenario)
	var recommended *domain.ScenarioSummary
	fewest := -1
	for i := range results.Scenarios {
		sc := &results.Scenarios[i]
		if sc.Name == results.Analysis.RecommendedScenario {
			recommended = sc
		}
		if fewest < 0 || len(sc.Warnings) < fewest {
			fewest = len(sc.Warnings)
		}
	}
	require.NotNil(t, recommended)
	assert.Equal(t, fewest, len(recommended.Warnings))
}

func TestEventDatedBeforeWindowFiresInFirstYear(t *testing.T) {
	results := runFile(t)
	vat := results.Scenarios[2]
	require.Equal(t, "early-vat", vat.Name)

	assert.True(t, decimal.NewFromInt(36).Equal(vat.Projection[0].Tax.Consumption), vat.Projection[0].Tax.Consumption.String())
	assert.True(t, decimal.RequireFromString("36.72").Equal(vat.Projection[1].Tax.Consumption), vat.Projection[1].Tax.Consumption.String())

	applied := 0
	for _, y := range vat.Projection {
		if y.Tax.EventApplied {
			applied++
			assert.Equal(t, 2026, y.Year)
		}
	}
	assert.Equal(t, 1, applied)
}

func TestAccountingIdentitiesHold(t *testing.T) {
	results := runFile(t)
	for _, sc := range results.Scenarios {
		prevDebt := sc.Parameters.InitialDebt
		for _, y := range sc.Projection {
			assert.True(t, y.TotalRevenue.Equal(y.Tax.Total.Add(y.Remittance).Add(y.OtherRevenue)), "%s %d revenue", sc.Name, y.Year)
			assert.True(t, y.TotalCost.Equal(y.PolicyExpenditure.Add(y.InterestExpense)), "%s %d cost", sc.Name, y.Year)
			assert.True(t, y.FiscalBalance.Equal(y.TotalRevenue.Sub(y.TotalCost)), "%s %d balance", sc.Name, y.Year)
			assert.True(t, y.Debt.Equal(prevDebt.Sub(y.FiscalBalance)), "%s %d debt", sc.Name, y.Year)
			assert.False(t, y.Remittance.IsNegative(), "%s %d remittance", sc.Name, y.Year)
			assert.False(t, y.PolicyRate.IsNegative(), "%s %d policy rate", sc.Name, y.Year)
			prevDebt = y.Debt
		}
	}
}

func TestConfigurationValidation(t *testing.T) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(scenarioFile)
	require.NoError(t, err)
	assert.NoError(t, parser.ValidateConfiguration(cfg))

	tight := cfg.Scenarios[3].Parameters
	assert.True(t, tight.PolicyRateSpread.IsZero())
	spike, err := config.LookupPreset("rate-spike")
	require.NoError(t, err)
	assert.True(t, spike.Parameters.RiskPremium.Equal(tight.RiskPremium))
}
