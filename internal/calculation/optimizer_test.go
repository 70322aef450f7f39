package calculation

import (
	"context"
	"testing"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateSpikeParams() domain.Parameters {
	p := baselineParams()
	p.InflationRate = dec("0.025")
	p.RealGrowthRate = dec("0.003")
	p.RiskPremium = dec("0.02")
	return p
}

func TestOptimizer_Score(t *testing.T) {
	o := NewOptimizer(defaultSettings())

	score, err := o.Score(baselineParams())
	require.NoError(t, err)
	assert.Equal(t, 26, score)

	// 26 burden years count once as warnings and once as constraint violations
	score, err = o.Score(rateSpikeParams())
	require.NoError(t, err)
	assert.Equal(t, 79, score)
}

func TestOptimizer_LowersRiskPremium(t *testing.T) {
	o := NewOptimizer(defaultSettings())
	base := rateSpikeParams()

	result, err := o.Optimize(context.Background(), base, []ParamKey{ParamRiskPremium})
	require.NoError(t, err)

	assert.Equal(t, 79, result.InitialScore)
	assert.Equal(t, 26, result.BestScore)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, ParamRiskPremium, result.Changes[0].Key)
	assert.True(t, dec("0.02").Equal(result.Changes[0].From))
	assert.True(t, dec("0.004").Equal(result.Changes[0].To))

	// base parameters are left untouched
	assert.True(t, dec("0.02").Equal(base.RiskPremium))
	assert.True(t, result.Parameters.RiskPremium.Equal(result.Changes[0].To))
}

func TestOptimizer_ReachesZero(t *testing.T) {
	o := NewOptimizer(defaultSettings())
	result, err := o.Optimize(context.Background(), baselineParams(), []ParamKey{ParamStructuralIncrement, ParamOtherRevenue})
	require.NoError(t, err)

	assert.Equal(t, 0, result.BestScore)
	assert.LessOrEqual(t, result.Iterations, o.Options.MaxIterations)
	for _, c := range result.Changes {
		def, err := LookupParam(c.Key)
		require.NoError(t, err)
		assert.False(t, c.To.LessThan(def.Min), "%s below range", c.Key)
		assert.False(t, c.To.GreaterThan(def.Max), "%s above range", c.Key)
	}
}

func TestOptimizer_AlreadyClean(t *testing.T) {
	o := NewOptimizer(defaultSettings())
	result, err := o.Optimize(context.Background(), consolidationParams(), []ParamKey{ParamRiskPremium})
	require.NoError(t, err)
	assert.Equal(t, 0, result.InitialScore)
	assert.Equal(t, 0, result.Iterations)
	assert.Empty(t, result.Changes)
}

func TestOptimizer_Deterministic(t *testing.T) {
	o := NewOptimizer(defaultSettings())
	keys := []ParamKey{ParamRiskPremium, ParamPolicyRateSpread, ParamTaxElasticity}

	a, err := o.Optimize(context.Background(), rateSpikeParams(), keys)
	require.NoError(t, err)
	b, err := o.Optimize(context.Background(), rateSpikeParams(), keys)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOptimizer_Errors(t *testing.T) {
	o := NewOptimizer(defaultSettings())

	_, err := o.Optimize(context.Background(), baselineParams(), []ParamKey{"debt_ceiling"})
	assert.ErrorIs(t, err, ErrUnknownParameter)

	_, err = o.Optimize(context.Background(), categoryParams(nil), []ParamKey{ParamRiskPremium, ParamTaxElasticity})
	assert.ErrorIs(t, err, ErrParameterNotApplicable)
	assert.Contains(t, err.Error(), `scenario uses "categories"`)

	_, err = o.Optimize(context.Background(), baselineParams(), []ParamKey{ParamTaxElasticity})
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = o.Optimize(ctx, baselineParams(), []ParamKey{ParamRiskPremium})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConstraintViolations(t *testing.T) {
	projection := []domain.YearState{
		year(2026, "75", "8", "-1", "31"),
		year(2027, "75", "8", "-1", "29"),
		year(2028, "75", "8", "-1", "35"),
	}

	c := DefaultConstraints()
	assert.Equal(t, 2, ConstraintViolations(projection, c))

	c.InterestBurden.Enabled = false
	c.DeficitStreak = ConstraintRule{Enabled: true, Threshold: dec("1")}
	assert.Equal(t, 2, ConstraintViolations(projection, c), "years two and three exceed a one-year streak")
}

func TestOptimizableParams(t *testing.T) {
	params := OptimizableParams()
	require.NotEmpty(t, params)
	for _, p := range params {
		assert.True(t, p.Min.LessThan(p.Max), p.Key)
		assert.True(t, p.Step.IsPositive(), p.Key)
	}

	// callers get a copy
	params[0].Label = "changed"
	assert.NotEqual(t, "changed", OptimizableParams()[0].Label)
}
