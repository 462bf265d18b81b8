package api

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type CostRecommendation struct {
	Id             string  `json:"id"`
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	ResourceType   string  `json:"resource_type,omitempty"`
	MonthlySavings float64 `json:"monthly_savings,omitempty"`
}

type OverlayRequest struct {
	Recommendations []CostRecommendation `json:"recommendations"`
	CheckISO27001   *bool                `json:"check_iso_27001,omitempty"`
	CheckNIAQatar   *bool                `json:"check_nia_qatar,omitempty"`
}

type ComplianceFlag struct {
	Framework   string   `json:"framework"`
	Controls    []string `json:"controls,omitempty"`
	Requirement string   `json:"requirement,omitempty"`
	Impact      string   `json:"impact,omitempty"`
	Warning     string   `json:"warning"`
	Severity    Severity `json:"severity"`
}

type FlaggedRecommendation struct {
	CostRecommendation
	Flags          []ComplianceFlag `json:"compliance_flags"`
	RequiresReview bool             `json:"requires_review"`
}

type ComplianceWarning struct {
	RecommendationID    string           `json:"recommendation_id"`
	RecommendationTitle string           `json:"recommendation_title"`
	Severity            Severity         `json:"severity"`
	Frameworks          []string         `json:"frameworks"`
	Flags               []ComplianceFlag `json:"flags"`
	ActionRequired      string           `json:"action_required"`
}

type OverlaySummary struct {
	TotalRecommendations int `json:"total_recommendations"`
	FlaggedCount         int `json:"flagged_count"`
	SafeCount            int `json:"safe_count"`
}

type OverlayReport struct {
	Flagged  []FlaggedRecommendation `json:"flagged_recommendations"`
	Safe     []CostRecommendation    `json:"safe_recommendations"`
	Warnings []ComplianceWarning     `json:"compliance_warnings"`
	Summary  OverlaySummary          `json:"summary"`
}
