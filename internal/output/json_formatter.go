package output

import (
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/goccy/go-json"
)

// JSONFormatter serializes the scenario comparison as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	out := *results
	out.Assumptions = assumptionsFor(results)
	return json.MarshalIndent(&out, "", "  ")
}
