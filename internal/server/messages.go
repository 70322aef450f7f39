package server

import (
	"time"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/google/uuid"
)

// ProjectionRequest asks for one scenario. Unset scenario fields inherit from the
// preset named in Extends (baseline by default).
type ProjectionRequest struct {
	Projection     config.ProjectionInput `json:"projection"`
	Scenario       config.ScenarioInput   `json:"scenario"`
	IncludeActuals bool                   `json:"include_actuals,omitempty"`
}

// CalculationMetadata stamps every computed response.
type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
	CalculationOutcome     string `json:"calculation_outcome"`
}

const (
	OutcomeSuccess = "SUCCESS"
	OutcomePartial = "PARTIAL"
)

// ProjectionResponse is the result of POST /projection.
type ProjectionResponse struct {
	CalculationMetadata CalculationMetadata     `json:"calculation_metadata"`
	Result              *domain.ScenarioSummary `json:"result"`
	Timeline            []domain.TimelinePoint  `json:"timeline,omitempty"`
}

// ComparisonResponse is the result of POST /comparison.
type ComparisonResponse struct {
	CalculationMetadata CalculationMetadata        `json:"calculation_metadata"`
	Result              *domain.ScenarioComparison `json:"result"`
}

// PresetInfo describes a built-in scenario.
type PresetInfo struct {
	Name        string            `json:"name"`
	Label       string            `json:"label"`
	Description string            `json:"description,omitempty"`
	Parameters  domain.Parameters `json:"parameters"`
}

// ActualsResponse is the result of GET /actuals.
type ActualsResponse struct {
	Source     string                                  `json:"source"`
	Records    []domain.ActualRecord                   `json:"records"`
	Statistics map[string]calculation.SeriesStatistics `json:"statistics,omitempty"`
	Issues     []string                                `json:"issues,omitempty"`
}

// ErrorResponse is written for every failed request.
type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func newMetadata(start time.Time, outcome string) CalculationMetadata {
	now := time.Now().UTC()
	return CalculationMetadata{
		CalculationID:          uuid.New().String(),
		CalculationStartedAt:   start.UTC().Format(time.RFC3339),
		CalculationCompletedAt: now.Format(time.RFC3339),
		CalculationDurationMs:  now.Sub(start).Milliseconds(),
		CalculationOutcome:     outcome,
	}
}
