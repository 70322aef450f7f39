package calculation

import (
	"context"
	"errors"
	"fmt"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/shopspring/decimal"
)

// ErrUnknownParameter is returned when an optimizer key is not searchable.
var ErrUnknownParameter = errors.New("unknown optimizable parameter")

// ErrParameterNotApplicable is returned when a parameter has no effect on the scenario's
// tax model.
var ErrParameterNotApplicable = errors.New("parameter does not apply to this scenario")

// ParamKey names a searchable parameter.
type ParamKey string

const (
	ParamInflationRate       ParamKey = "inflation_rate"
	ParamRealGrowthRate      ParamKey = "real_growth_rate"
	ParamRiskPremium         ParamKey = "risk_premium"
	ParamPolicyRateSpread    ParamKey = "policy_rate_spread"
	ParamStructuralIncrement ParamKey = "structural_increment"
	ParamOtherRevenue        ParamKey = "other_revenue"
	ParamTaxElasticity       ParamKey = "tax_elasticity"
)

// OptimizableParam is a parameter's search range. Rates are fractions.
type OptimizableParam struct {
	Key   ParamKey
	Label string
	Min   decimal.Decimal
	Max   decimal.Decimal
	Step  decimal.Decimal
}

var pct = money.MustParse

var optimizableParams = []OptimizableParam{
	{ParamInflationRate, "Inflation rate", pct("0"), pct("0.10"), pct("0.001")},
	{ParamRealGrowthRate, "Real growth rate", pct("-0.02"), pct("0.05"), pct("0.001")},
	{ParamRiskPremium, "Risk premium", pct("0"), pct("0.03"), pct("0.001")},
	{ParamPolicyRateSpread, "Policy rate spread", pct("0"), pct("0.03"), pct("0.001")},
	{ParamStructuralIncrement, "Structural expenditure increment", pct("0"), pct("2"), pct("0.1")},
	{ParamOtherRevenue, "Other revenue", pct("10"), pct("25"), pct("0.5")},
	{ParamTaxElasticity, "Aggregate tax elasticity", pct("0.5"), pct("2"), pct("0.05")},
}

// OptimizableParams lists every searchable parameter.
func OptimizableParams() []OptimizableParam {
	out := make([]OptimizableParam, len(optimizableParams))
	copy(out, optimizableParams)
	return out
}

// LookupParam finds a searchable parameter by key.
func LookupParam(key ParamKey) (OptimizableParam, error) {
	for _, p := range optimizableParams {
		if p.Key == key {
			return p, nil
		}
	}
	return OptimizableParam{}, fmt.Errorf("%w: %q", ErrUnknownParameter, key)
}

func getParam(p domain.Parameters, key ParamKey) decimal.Decimal {
	switch key {
	case ParamInflationRate:
		return p.InflationRate
	case ParamRealGrowthRate:
		return p.RealGrowthRate
	case ParamRiskPremium:
		return p.RiskPremium
	case ParamPolicyRateSpread:
		return p.PolicyRateSpread
	case ParamStructuralIncrement:
		return p.StructuralIncrement
	case ParamOtherRevenue:
		return p.OtherRevenue
	case ParamTaxElasticity:
		return p.Tax.Elasticity
	}
	return decimal.Zero
}

func setParam(p *domain.Parameters, key ParamKey, v decimal.Decimal) {
	switch key {
	case ParamInflationRate:
		p.InflationRate = v
	case ParamRealGrowthRate:
		p.RealGrowthRate = v
	case ParamRiskPremium:
		p.RiskPremium = v
	case ParamPolicyRateSpread:
		p.PolicyRateSpread = v
	case ParamStructuralIncrement:
		p.StructuralIncrement = v
	case ParamOtherRevenue:
		p.OtherRevenue = v
	case ParamTaxElasticity:
		p.Tax.Elasticity = v
	}
}

// ConstraintRule is a user-selected limit counted once per violating year.
type ConstraintRule struct {
	Enabled   bool            `json:"enabled"`
	Threshold decimal.Decimal `json:"threshold"`
}

// Constraints are extra objectives for the optimizer.
type Constraints struct {
	InterestBurden ConstraintRule `json:"interest_burden"` // max percent of tax revenue
	DeficitStreak  ConstraintRule `json:"deficit_streak"`  // max consecutive deficit years
}

// DefaultConstraints caps interest burden at 30% and leaves the deficit streak off.
func DefaultConstraints() Constraints {
	return Constraints{
		InterestBurden: ConstraintRule{Enabled: true, Threshold: decimal.NewFromInt(30)},
		DeficitStreak:  ConstraintRule{Enabled: false, Threshold: decimal.NewFromInt(5)},
	}
}

// ConstraintViolations counts the violating years of a projection.
func ConstraintViolations(projection []domain.YearState, c Constraints) int {
	violations := 0
	streak := 0
	for _, y := range projection {
		if c.InterestBurden.Enabled && y.InterestBurden.GreaterThan(c.InterestBurden.Threshold) {
			violations++
		}
		if c.DeficitStreak.Enabled {
			if y.FiscalBalance.IsNegative() {
				streak++
			} else {
				streak = 0
			}
			if decimal.NewFromInt(int64(streak)).GreaterThan(c.DeficitStreak.Threshold) {
				violations++
			}
		}
	}
	return violations
}

// OptimizerOptions bounds the search.
type OptimizerOptions struct {
	MaxIterations      int
	NoImprovementLimit int
}

// DefaultOptimizerOptions returns 80 iterations with a 15-round patience.
func DefaultOptimizerOptions() OptimizerOptions {
	return OptimizerOptions{MaxIterations: 80, NoImprovementLimit: 15}
}

// ParameterChange reports one moved parameter.
type ParameterChange struct {
	Key  ParamKey        `json:"key"`
	From decimal.Decimal `json:"from"`
	To   decimal.Decimal `json:"to"`
}

// OptimizationResult is the best parameter set found.
type OptimizationResult struct {
	Parameters   domain.Parameters `json:"parameters"`
	InitialScore int               `json:"initial_score"`
	BestScore    int               `json:"best_score"`
	Iterations   int               `json:"iterations"`
	Changes      []ParameterChange `json:"changes"`
}

// Optimizer searches selected parameters for the fewest warnings plus constraint
// violations. The search is deterministic.
type Optimizer struct {
	Settings    domain.ProjectionSettings
	Thresholds  WarningThresholds
	Constraints Constraints
	Options     OptimizerOptions
	Logger      Logger
}

// NewOptimizer creates an optimizer with default thresholds, constraints and options.
func NewOptimizer(settings domain.ProjectionSettings) *Optimizer {
	return &Optimizer{
		Settings:    settings.WithDefaults(),
		Thresholds:  DefaultWarningThresholds(),
		Constraints: DefaultConstraints(),
		Options:     DefaultOptimizerOptions(),
		Logger:      NopLogger{},
	}
}

// Score is the number of warnings plus constraint violations of a parameter set.
func (o *Optimizer) Score(p domain.Parameters) (int, error) {
	projection, err := GenerateProjection(p, o.Settings)
	if err != nil {
		return 0, err
	}
	return len(ComputeWarnings(projection, o.Thresholds)) + ConstraintViolations(projection, o.Constraints), nil
}

// Optimize runs a coordinate search over the selected keys. Each round tries every
// parameter one offset down and one offset up and takes the first strict
// improvement. A round without improvement doubles the offset; an improvement
// resets it to one step.
func (o *Optimizer) Optimize(ctx context.Context, base domain.Parameters, keys []ParamKey) (*OptimizationResult, error) {
	defs := make([]OptimizableParam, 0, len(keys))
	for _, k := range keys {
		def, err := LookupParam(k)
		if err != nil {
			return nil, err
		}
		if k == ParamTaxElasticity && base.Tax.Kind() != domain.TaxModelAggregate {
			return nil, fmt.Errorf("%w: %s needs the %q tax model, scenario uses %q",
				ErrParameterNotApplicable, k, domain.TaxModelAggregate, base.Tax.Kind())
		}
		defs = append(defs, def)
	}

	initial, err := o.Score(base)
	if err != nil {
		return nil, fmt.Errorf("scoring base parameters: %w", err)
	}
	result := &OptimizationResult{Parameters: base, InitialScore: initial, BestScore: initial}
	if len(defs) == 0 {
		return result, nil
	}

	current := base
	best := initial
	multiplier := int64(1)
	noImprove := 0

	for result.Iterations < o.Options.MaxIterations && best > 0 && noImprove < o.Options.NoImprovementLimit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		result.Iterations++

		improved := false
		for _, def := range defs {
			if improved {
				break
			}
			old := getParam(current, def.Key)
			offset := def.Step.Mul(decimal.NewFromInt(multiplier))
			for _, candidate := range []decimal.Decimal{old.Sub(offset), old.Add(offset)} {
				candidate = clampDecimal(candidate, def.Min, def.Max)
				if candidate.Equal(old) {
					continue
				}
				next := current
				setParam(&next, def.Key, candidate)
				score, err := o.Score(next)
				if err != nil {
					return nil, err
				}
				if score < best {
					current, best = next, score
					improved = true
					o.Logger.Debugf("optimizer round %d: %s %s -> %s score %d", result.Iterations, def.Key, old.String(), candidate.String(), score)
					break
				}
			}
		}

		if improved {
			multiplier = 1
			noImprove = 0
		} else {
			multiplier *= 2
			noImprove++
		}
	}

	result.Parameters = current
	result.BestScore = best
	for _, def := range defs {
		from, to := getParam(base, def.Key), getParam(current, def.Key)
		if !from.Equal(to) {
			result.Changes = append(result.Changes, ParameterChange{Key: def.Key, From: from, To: to})
		}
	}
	o.Logger.Infof("optimizer finished after %d rounds: score %d -> %d", result.Iterations, initial, best)
	return result, nil
}

func clampDecimal(v, lo, hi decimal.Decimal) decimal.Decimal {
	if v.LessThan(lo) {
		return lo
	}
	if v.GreaterThan(hi) {
		return hi
	}
	return v
}
