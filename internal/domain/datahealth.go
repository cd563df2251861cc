package domain

// CheckStatus is the outcome of a single data-quality check.
type CheckStatus string

const (
	CheckPassing CheckStatus = "Passing"
	CheckWarning CheckStatus = "Warning"
	CheckFailing CheckStatus = "Failing"
)

// Freshness labels for recent interaction activity.
const (
	FreshnessGood           = "Good"
	FreshnessNeedsAttention = "Needs Attention"
)

// HealthMetrics is the top-level metrics block of the data-health report.
type HealthMetrics struct {
	OverallHealth       int    `json:"overallHealth"`
	ProfileCompleteness int    `json:"profileCompleteness"`
	MissingEmails       int    `json:"missingEmails"`
	DataFreshness       string `json:"dataFreshness"`
}

// QualityChecks holds the four named check statuses.
type QualityChecks struct {
	EmailValidation     CheckStatus `json:"emailValidation"`
	PhoneFormatting     CheckStatus `json:"phoneFormatting"`
	AddressCompleteness CheckStatus `json:"addressCompleteness"`
	DuplicateDetection  CheckStatus `json:"duplicateDetection"`
}

// ActionItem is one remediation suggestion in the report.
type ActionItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// DataHealthReport is a point-in-time data-quality snapshot. It is recomputed
// on every request and never persisted.
type DataHealthReport struct {
	Metrics       HealthMetrics `json:"metrics"`
	QualityChecks QualityChecks `json:"qualityChecks"`
	ActionItems   []ActionItem  `json:"actionItems"`
}
