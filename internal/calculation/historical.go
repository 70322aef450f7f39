package calculation

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/fiscalsim/consolidated-fiscal/internal/domain"
	"github.com/fiscalsim/consolidated-fiscal/pkg/money"
	"github.com/fiscalsim/consolidated-fiscal/pkg/yearutil"
	"github.com/shopspring/decimal"
)

//go:embed data/actuals.csv
var bundledActuals []byte

// BundledSource identifies the embedded actual dataset.
const BundledSource = "bundled"

var requiredActualColumns = []string{
	"year", "tax", "remittance", "other_revenue", "total_revenue", "policy_expenditure",
	"interest_expense", "total_cost", "fiscal_balance", "debt",
}

// SeriesStatistics summarises one column of the actual dataset.
type SeriesStatistics struct {
	Mean  decimal.Decimal `json:"mean"`
	Min   decimal.Decimal `json:"min"`
	Max   decimal.Decimal `json:"max"`
	Count int             `json:"count"`
}

// ActualDataManager loads realised fiscal records. Records are handed out as copies.
type ActualDataManager struct {
	DataPath string `json:"data_path"` // empty loads the bundled dataset
	IsLoaded bool   `json:"is_loaded"`

	records      []domain.ActualRecord
	missingYears []int
}

// NewActualDataManager creates a manager for a CSV file, or the bundled dataset when
// dataPath is empty.
func NewActualDataManager(dataPath string) *ActualDataManager {
	return &ActualDataManager{DataPath: dataPath}
}

// Source describes where records are loaded from.
func (m *ActualDataManager) Source() string {
	if m.DataPath == "" {
		return BundledSource
	}
	return m.DataPath
}

// Load reads and indexes the dataset.
func (m *ActualDataManager) Load() error {
	if m.IsLoaded {
		return nil
	}

	var r io.Reader
	if m.DataPath == "" {
		r = bytes.NewReader(bundledActuals)
	} else {
		f, err := os.Open(m.DataPath)
		if err != nil {
			return fmt.Errorf("failed to open actual data %s: %w", m.DataPath, err)
		}
		defer f.Close()
		r = f
	}

	records, err := ParseActualRecords(r)
	if err != nil {
		return fmt.Errorf("failed to load actual data from %s: %w", m.Source(), err)
	}

	m.records = records
	m.missingYears = missingYears(records)
	m.IsLoaded = true
	return nil
}

// Records returns a copy of the loaded records in year order.
func (m *ActualDataManager) Records() ([]domain.ActualRecord, error) {
	if !m.IsLoaded {
		return nil, fmt.Errorf("actual data not loaded")
	}
	out := make([]domain.ActualRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

// Record returns the record for a single year.
func (m *ActualDataManager) Record(year int) (domain.ActualRecord, error) {
	if !m.IsLoaded {
		return domain.ActualRecord{}, fmt.Errorf("actual data not loaded")
	}
	for _, r := range m.records {
		if r.Year == year {
			return r, nil
		}
	}
	return domain.ActualRecord{}, fmt.Errorf("no actual data for year %d", year)
}

// YearRange returns the first and last loaded year.
func (m *ActualDataManager) YearRange() (int, int, error) {
	if !m.IsLoaded || len(m.records) == 0 {
		return 0, 0, fmt.Errorf("actual data not loaded")
	}
	return m.records[0].Year, m.records[len(m.records)-1].Year, nil
}

var actualSeries = map[string]func(domain.ActualRecord) decimal.Decimal{
	"tax":                func(r domain.ActualRecord) decimal.Decimal { return r.Tax.Total },
	"interest_expense":   func(r domain.ActualRecord) decimal.Decimal { return r.InterestExpense },
	"debt":               func(r domain.ActualRecord) decimal.Decimal { return r.Debt },
	"fiscal_balance":     func(r domain.ActualRecord) decimal.Decimal { return r.FiscalBalance },
	"interest_burden":    func(r domain.ActualRecord) decimal.Decimal { return r.InterestBurden },
	"policy_expenditure": func(r domain.ActualRecord) decimal.Decimal { return r.PolicyExpenditure },
}

// Statistics summarises a named series (tax, interest_expense, debt, fiscal_balance,
// interest_burden, policy_expenditure).
func (m *ActualDataManager) Statistics(series string) (SeriesStatistics, error) {
	if !m.IsLoaded {
		return SeriesStatistics{}, fmt.Errorf("actual data not loaded")
	}
	get, ok := actualSeries[series]
	if !ok {
		return SeriesStatistics{}, fmt.Errorf("unknown series %q", series)
	}
	if len(m.records) == 0 {
		return SeriesStatistics{}, nil
	}

	stats := SeriesStatistics{Min: get(m.records[0]), Max: get(m.records[0]), Count: len(m.records)}
	sum := decimal.Zero
	for _, r := range m.records {
		v := get(r)
		sum = sum.Add(v)
		stats.Min = money.Min(stats.Min, v)
		stats.Max = money.Max(stats.Max, v)
	}
	stats.Mean = money.Round(sum.Div(decimal.NewFromInt(int64(len(m.records)))))
	return stats, nil
}

// identityTolerance absorbs the one-decimal rounding of published figures.
var identityTolerance = decimal.NewFromFloat(0.15)

// ValidateDataQuality reports gaps and accounting identities that do not hold.
func (m *ActualDataManager) ValidateDataQuality() ([]string, error) {
	if !m.IsLoaded {
		return nil, fmt.Errorf("actual data not loaded")
	}

	var issues []string
	if len(m.missingYears) > 0 {
		issues = append(issues, fmt.Sprintf("missing years: %v", m.missingYears))
	}
	for _, r := range m.records {
		revenue := money.Sum(r.Tax.Total, r.Remittance, r.OtherRevenue)
		if revenue.Sub(r.TotalRevenue).Abs().GreaterThan(identityTolerance) {
			issues = append(issues, fmt.Sprintf("%d: total revenue %s differs from components %s", r.Year, r.TotalRevenue, revenue))
		}
		cost := r.PolicyExpenditure.Add(r.InterestExpense)
		if cost.Sub(r.TotalCost).Abs().GreaterThan(identityTolerance) {
			issues = append(issues, fmt.Sprintf("%d: total cost %s differs from components %s", r.Year, r.TotalCost, cost))
		}
		if r.Tax.Disaggregated && r.Tax.CategorySum().Sub(r.Tax.Total).Abs().GreaterThan(identityTolerance) {
			issues = append(issues, fmt.Sprintf("%d: tax categories sum to %s, total is %s", r.Year, r.Tax.CategorySum(), r.Tax.Total))
		}
	}
	return issues, nil
}

// ParseActualRecords reads a header-led CSV of actual records. Category tax columns,
// average_coupon_pct, interest_burden_pct and bond_issuance are optional; a missing
// interest burden is derived from interest and tax.
func ParseActualRecords(r io.Reader) ([]domain.ActualRecord, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredActualColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("missing required column %q", c)
		}
	}

	var records []domain.ActualRecord
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rec, err := parseActualRow(row, cols)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("no records found")
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Year < records[j].Year })
	for i := 1; i < len(records); i++ {
		if records[i].Year == records[i-1].Year {
			return nil, fmt.Errorf("duplicate year %d", records[i].Year)
		}
	}
	return records, nil
}

func parseActualRow(row []string, cols map[string]int) (domain.ActualRecord, error) {
	field := func(name string) (decimal.Decimal, bool, error) {
		idx, ok := cols[name]
		if !ok || idx >= len(row) || strings.TrimSpace(row[idx]) == "" {
			return decimal.Zero, false, nil
		}
		v, err := decimal.NewFromString(strings.TrimSpace(row[idx]))
		if err != nil {
			return decimal.Zero, false, fmt.Errorf("column %s: %w", name, err)
		}
		return v, true, nil
	}

	var rec domain.ActualRecord
	year, err := strconv.Atoi(strings.TrimSpace(row[cols["year"]]))
	if err != nil {
		return rec, fmt.Errorf("invalid year %q: %w", row[cols["year"]], err)
	}
	rec.Year = year

	targets := []struct {
		name string
		dst  *decimal.Decimal
	}{
		{"tax", &rec.Tax.Total},
		{"remittance", &rec.Remittance},
		{"other_revenue", &rec.OtherRevenue},
		{"total_revenue", &rec.TotalRevenue},
		{"policy_expenditure", &rec.PolicyExpenditure},
		{"interest_expense", &rec.InterestExpense},
		{"total_cost", &rec.TotalCost},
		{"fiscal_balance", &rec.FiscalBalance},
		{"debt", &rec.Debt},
		{"bond_issuance", &rec.BondIssuance},
		{"interest_burden_pct", &rec.InterestBurden},
	}
	for _, t := range targets {
		v, _, err := field(t.name)
		if err != nil {
			return rec, err
		}
		*t.dst = v
	}

	coupon, ok, err := field("average_coupon_pct")
	if err != nil {
		return rec, err
	}
	if ok {
		rec.AverageCoupon = money.FromPercent(coupon)
	}
	if _, ok := cols["interest_burden_pct"]; !ok {
		rec.InterestBurden = money.PercentOf(rec.InterestExpense, rec.Tax.Total)
	}

	disaggregated := true
	for _, cat := range domain.TaxCategories() {
		v, ok, err := field(string(cat) + "_tax")
		if err != nil {
			return rec, err
		}
		if !ok {
			disaggregated = false
		}
		rec.Tax.SetCategory(cat, v)
	}
	rec.Tax.Disaggregated = disaggregated
	return rec, nil
}

func missingYears(records []domain.ActualRecord) []int {
	if len(records) < 2 {
		return nil
	}
	present := make(map[int]bool, len(records))
	for _, r := range records {
		present[r.Year] = true
	}
	var missing []int
	for _, y := range yearutil.Span(records[0].Year, records[len(records)-1].Year) {
		if !present[y] {
			missing = append(missing, y)
		}
	}
	return missing
}
