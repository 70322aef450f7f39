package domain

const (
	DefaultBaseYear = 2026
	DefaultHorizon  = 30
	MaxHorizon      = 100
)

// Scenario is a named parameter set.
type Scenario struct {
	Name        string     `json:"name"`
	Label       string     `json:"label,omitempty"`
	Description string     `json:"description,omitempty"`
	Parameters  Parameters `json:"parameters"`
}

// DisplayName prefers the label over the machine name.
func (s Scenario) DisplayName() string {
	if s.Label != "" {
		return s.Label
	}
	return s.Name
}

// ProjectionSettings fixes the calendar window of every scenario in a run.
type ProjectionSettings struct {
	BaseYear int `json:"base_year"`
	Horizon  int `json:"horizon"`
}

// WithDefaults fills zero fields with the default window.
func (p ProjectionSettings) WithDefaults() ProjectionSettings {
	if p.BaseYear == 0 {
		p.BaseYear = DefaultBaseYear
	}
	if p.Horizon == 0 {
		p.Horizon = DefaultHorizon
	}
	return p
}

// Configuration is a validated set of scenarios sharing one projection window.
type Configuration struct {
	Projection ProjectionSettings `json:"projection"`
	Scenarios  []Scenario         `json:"scenarios"`
}
