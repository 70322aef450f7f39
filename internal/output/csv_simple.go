package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Label", "TaxModel", "Grade", "Warnings", "FirstYear", "FinalYear", "FinalDebt", "FinalInterestBurdenPct", "PeakInterestBurdenPct", "PeakBurdenYear", "BurdenThresholdYear", "CumulativeBalance", "CumulativeIssuance", "DeficitYears", "Error"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		row := []string{
			sc.Name,
			sc.Label,
			string(sc.Parameters.Tax.Kind()),
			sc.Grade,
			intToString(len(sc.Warnings)),
			intToString(sc.FirstYear),
			intToString(sc.FinalYear),
			fixed2(sc.FinalDebt),
			fixed2(sc.FinalInterestBurden),
			fixed2(sc.PeakInterestBurden),
			intToString(sc.PeakBurdenYear),
			intToString(sc.BurdenThresholdYear),
			fixed2(sc.CumulativeBalance),
			fixed2(sc.CumulativeIssuance),
			intToString(sc.DeficitYears),
			sc.Error,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
