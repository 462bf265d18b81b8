package domain

// Category is an Azure Advisor recommendation category.
type Category string

const (
	CategorySecurity         Category = "Security"
	CategoryCost             Category = "Cost"
	CategoryPerformance      Category = "Performance"
	CategoryHighAvailability Category = "HighAvailability"
	CategoryOperationalExc   Category = "OperationalExcellence"
)

// Impact is the business impact attributed to a recommendation by Advisor.
type Impact string

const (
	ImpactHigh   Impact = "High"
	ImpactMedium Impact = "Medium"
	ImpactLow    Impact = "Low"
)

// Recommendation is a raw advisory record supplied by the recommendation
// collaborator. Optional fields are empty rather than absent.
type Recommendation struct {
	ID                 string
	SubscriptionID     string
	Category           Category
	Impact             Impact
	Problem            string
	Solution           string
	ExtendedProperties map[string]string
	ImpactedResource   string
}

// RiskFactors collects the compliance framework context attached to a
// recommendation while it is being scored.
type RiskFactors struct {
	ISOControls           []string
	FrameworkRequirements []string
	CostImpact            string
	SecurityImpact        string
}

// ScoredRecommendation is a Recommendation with its composite risk score.
// RiskScore is always within [0, 10].
type ScoredRecommendation struct {
	Recommendation
	RiskScore            int
	RiskFactors          RiskFactors
	RemediationSteps     []string
	EstimatedCost        float64
	EstimatedEffortHours float64
}

// GovernanceSummary describes the filtered recommendation set by risk tier.
type GovernanceSummary struct {
	TotalRecommendations    int
	HighRiskCount           int
	MediumRiskCount         int
	LowRiskCount            int
	PotentialMonthlySavings float64
	PotentialAnnualSavings  float64
}

// GovernanceReport is the outcome of one risk-scoring run.
type GovernanceReport struct {
	Recommendations []ScoredRecommendation
	Summary         GovernanceSummary
	MinRiskScore    int
}
