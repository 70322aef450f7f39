package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
)

var (
	colorText   = lipgloss.Color("#FFFCF0")
	colorAccent = lipgloss.Color("#3AA99F")
	colorDim    = lipgloss.Color("#575653")
	colorGreen  = lipgloss.Color("#879A39")
	colorOrange = lipgloss.Color("#DA702C")
	colorRed    = lipgloss.Color("#D14D41")
)

var (
	liteTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorDim).
			Padding(0, 1)

	liteHeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	liteDimStyle = lipgloss.NewStyle().
			Foreground(colorDim)
)

// gradeStyle colours a grade from green (A+) to red (D).
func gradeStyle(grade string) lipgloss.Style {
	switch {
	case strings.HasPrefix(grade, "A"):
		return lipgloss.NewStyle().Bold(true).Foreground(colorGreen)
	case strings.HasPrefix(grade, "B"):
		return lipgloss.NewStyle().Bold(true).Foreground(colorOrange)
	default:
		return lipgloss.NewStyle().Bold(true).Foreground(colorRed)
	}
}

// ConsoleFormatter provides a concise, styled console summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	settings := results.Projection.WithDefaults()
	fmt.Fprintln(&buf, liteTitleStyle.Render(fmt.Sprintf("FISCAL PROJECTION SUMMARY %d-%d", settings.BaseYear, settings.BaseYear+settings.Horizon-1)))
	fmt.Fprintln(&buf)

	header := fmt.Sprintf("%-28s %6s %9s %12s %12s %12s", "SCENARIO", "GRADE", "WARNINGS", "FINAL DEBT", "FINAL BURDEN", "PEAK BURDEN")
	fmt.Fprintln(&buf, liteHeaderStyle.Render(header))
	fmt.Fprintln(&buf, liteDimStyle.Render(strings.Repeat("─", len(header))))

	for _, sc := range sortedScenarios(results) {
		name := sc.DisplayName()
		if len(name) > 28 {
			name = name[:27] + "…"
		}
		if sc.Failed() {
			fmt.Fprintf(&buf, "%-28s %s\n", name, gradeStyle("D").Render("failed: "+sc.Error))
			continue
		}
		grade := gradeStyle(sc.Grade).Render(fmt.Sprintf("%6s", sc.Grade))
		fmt.Fprintf(&buf, "%-28s %s %9d %12s %12s %12s\n",
			name, grade, len(sc.Warnings),
			FormatAmount(sc.FinalDebt), FormatPercentage(sc.FinalInterestBurden), FormatPercentage(sc.PeakInterestBurden))
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ debt %s / %s)\n", rec.ScenarioName, FormatSigned(rec.DebtChange), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}
