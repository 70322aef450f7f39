package output

import (
	"bytes"
	"encoding/csv"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
)

// CSVDetailedExporter provides the full annual projection per scenario/year. Rates are
// written in percent.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{
		"Scenario", "Year", "NominalGrowthPct", "MarketRatePct", "PolicyRatePct",
		"Tax", "ConsumptionTax", "IncomeTax", "CorporateTax", "OtherTax", "TaxEvent",
		"CentralBankIncome", "CentralBankFundingCost", "Remittance", "OtherRevenue", "TotalRevenue",
		"PolicyExpenditure", "AverageCouponPct", "InterestExpense", "TotalCost",
		"FiscalBalance", "Debt", "NewBondIssuance", "InterestBurdenPct",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		for _, y := range sc.Projection {
			row := []string{
				sc.Name,
				intToString(y.Year),
				fixedRate(y.NominalGrowthRate),
				fixedRate(y.MarketRate),
				fixedRate(y.PolicyRate),
				fixed2(y.Tax.Total),
				fixed2(y.Tax.Consumption),
				fixed2(y.Tax.Income),
				fixed2(y.Tax.Corporate),
				fixed2(y.Tax.Other),
				boolToString(y.Tax.EventApplied),
				fixed2(y.CentralBankIncome),
				fixed2(y.CentralBankFundingCost),
				fixed2(y.Remittance),
				fixed2(y.OtherRevenue),
				fixed2(y.TotalRevenue),
				fixed2(y.PolicyExpenditure),
				fixedRate(y.AverageCoupon),
				fixed2(y.InterestExpense),
				fixed2(y.TotalCost),
				fixed2(y.FiscalBalance),
				fixed2(y.Debt),
				fixed2(y.NewBondIssuance),
				fixed2(y.InterestBurden),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
