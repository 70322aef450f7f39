package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/fiscalsim/consolidated-fiscal/internal/calculation"
	"github.com/fiscalsim/consolidated-fiscal/internal/config"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
)

const maxRequestBytes = 1 << 20

var statisticsSeries = []string{"tax", "interest_expense", "debt", "fiscal_balance", "interest_burden", "policy_expenditure"}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenarios(w http.ResponseWriter, r *http.Request) {
	presets := config.BuiltinScenarios()
	out := make([]PresetInfo, 0, len(presets))
	for _, p := range presets {
		out = append(out, PresetInfo{Name: p.Name, Label: p.Label, Description: p.Description, Parameters: p.Parameters})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	p, err := config.LookupPreset(mux.Vars(r)["name"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, PresetInfo{Name: p.Name, Label: p.Label, Description: p.Description, Parameters: p.Parameters})
}

func (s *Server) handleActuals(w http.ResponseWriter, r *http.Request) {
	records, err := s.actuals.Records()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	resp := ActualsResponse{Source: s.actuals.Source(), Records: records, Statistics: map[string]calculation.SeriesStatistics{}}
	for _, series := range statisticsSeries {
		stats, err := s.actuals.Statistics(series)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp.Statistics[series] = stats
	}
	if resp.Issues, err = s.actuals.ValidateDataQuality(); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleProjection(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var req ProjectionRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	scenario, err := req.Scenario.Resolve()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if scenario.Name == "" {
		scenario.Name = "scenario"
	}
	cfg := &domain.Configuration{Projection: s.window(req.Projection), Scenarios: []domain.Scenario{scenario}}
	if err := s.parser.ValidateConfiguration(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	summary, err := s.engine.RunScenario(r.Context(), cfg, &cfg.Scenarios[0])
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp := ProjectionResponse{Result: summary}
	if req.IncludeActuals {
		records, err := s.actuals.Records()
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		resp.Timeline = calculation.MergeTimeline(records, summary.Projection)
	}
	resp.CalculationMetadata = newMetadata(start, OutcomeSuccess)
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleComparison(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	var file config.FileConfiguration
	if err := decodeBody(w, r, &file); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	window := s.window(file.Projection)
	file.Projection = config.ProjectionInput{BaseYear: window.BaseYear, Horizon: window.Horizon}

	cfg, err := s.parser.Resolve(&file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.parser.ValidateConfiguration(cfg); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	comparison, err := s.engine.RunScenarios(r.Context(), cfg)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, calculation.ErrAllScenariosFailed) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	outcome := OutcomeSuccess
	if len(comparison.Analysis.FailedScenarios) > 0 {
		outcome = OutcomePartial
	}
	writeJSON(w, http.StatusOK, ComparisonResponse{CalculationMetadata: newMetadata(start, outcome), Result: comparison})
}

// window fills an omitted projection window from the server defaults.
func (s *Server) window(in config.ProjectionInput) domain.ProjectionSettings {
	out := s.opts.Projection
	if in.BaseYear != 0 {
		out.BaseYear = in.BaseYear
	}
	if in.Horizon != 0 {
		out.Horizon = in.Horizon
	}
	return out
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected data after JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Status: status, Message: message})
}
