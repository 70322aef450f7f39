package domain

// WarningKind classifies a review warning.
type WarningKind string

const (
	WarningInterestBurden     WarningKind = "interest_burden"
	WarningChronicDeficit     WarningKind = "chronic_deficit"
	WarningAbruptChange       WarningKind = "abrupt_change"
	WarningNegativeTaxRevenue WarningKind = "negative_tax_revenue"
	WarningDebtSpiral         WarningKind = "debt_spiral"
)

// Severity of a warning.
type Severity string

const (
	SeverityNormal   Severity = "normal"
	SeverityCritical Severity = "critical"
)

// Warning is a post-run review finding. Warnings never change the projection.
type Warning struct {
	Year     int         `json:"year"`
	Kind     WarningKind `json:"kind"`
	Detail   string      `json:"detail"`
	Severity Severity    `json:"severity"`
}
