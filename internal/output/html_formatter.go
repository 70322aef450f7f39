package output

import (
	"bytes"
	_ "embed"
	"html/template"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/goccy/go-json"
)

// HTMLFormatter produces a self-contained HTML report with a debt chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"amt":    FormatAmount,
	"pct":    FormatPercentage,
	"rate":   FormatRate,
	"signed": FormatSigned,
	"add":    func(i, j int) int { return i + j },
	"json":   marshalJS,
}).Parse(htmlTemplateSource))

// marshalJS encodes v for a script block. An encoding error aborts the template.
func marshalJS(v interface{}) (template.JS, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// chartSeries is the per-scenario data the report's chart script plots.
type chartSeries struct {
	Name   string    `json:"name"`
	Years  []int     `json:"years"`
	Debt   []float64 `json:"debt"`
	Burden []float64 `json:"burden"`
}

func buildChartSeries(results *domain.ScenarioComparison) []chartSeries {
	series := make([]chartSeries, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		if sc.Failed() {
			continue
		}
		s := chartSeries{Name: sc.DisplayName()}
		for _, y := range sc.Projection {
			s.Years = append(s.Years, y.Year)
			s.Debt = append(s.Debt, y.Debt.Round(2).InexactFloat64())
			s.Burden = append(s.Burden, y.InterestBurden.Round(2).InexactFloat64())
		}
		series = append(series, s)
	}
	return series
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ScenarioComparison
		Settings       domain.ProjectionSettings
		Recommendation Recommendation
		Assumptions    []string
		Chart          []chartSeries
	}{results, results.Projection.WithDefaults(), AnalyzeScenarios(results), assumptionsFor(results), buildChartSeries(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
