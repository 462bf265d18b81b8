package domain

// Severity ranks compliance impact. Order matters when several flags apply
// to the same recommendation: the warning takes the maximum.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

var severityRank = map[Severity]int{
	SeverityLow:      1,
	SeverityMedium:   2,
	SeverityHigh:     3,
	SeverityCritical: 4,
}

// Rank returns the numeric ordering of a severity, unknown values rank lowest.
func (s Severity) Rank() int {
	return severityRank[s]
}

// CostRecommendation is the classifier's view of a cost-saving
// recommendation: just enough text to match control keywords against.
type CostRecommendation struct {
	ID             string
	Title          string
	Description    string
	ResourceType   string
	MonthlySavings float64
}

// ComplianceFlag marks one control bucket a recommendation matched.
// Controls is populated for control-catalog frameworks, Requirement for
// requirement-catalog frameworks.
type ComplianceFlag struct {
	Framework   string
	Controls    []string
	Requirement string
	Impact      string
	Warning     string
	Severity    Severity
}

// ComplianceWarning summarizes all flags raised against one recommendation.
type ComplianceWarning struct {
	RecommendationID    string
	RecommendationTitle string
	Severity            Severity
	Frameworks          []string
	Flags               []ComplianceFlag
	ActionRequired      string
}

// FlaggedRecommendation pairs a recommendation with the flags it accumulated.
type FlaggedRecommendation struct {
	CostRecommendation
	Flags          []ComplianceFlag
	RequiresReview bool
}

// OverlaySummary counts the flagged/safe partition of one classifier run.
type OverlaySummary struct {
	TotalRecommendations int
	FlaggedCount         int
	SafeCount            int
}

// OverlayReport is the full result of applying the compliance overlay.
type OverlayReport struct {
	Flagged  []FlaggedRecommendation
	Safe     []CostRecommendation
	Warnings []ComplianceWarning
	Summary  OverlaySummary
}
