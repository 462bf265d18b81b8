package api

type RiskFactors struct {
	ISO27001Controls     []string `json:"iso_27001_controls"`
	NIAQatarRequirements []string `json:"nia_qatar_requirements"`
	CostImpact           string   `json:"cost_impact"`
	SecurityImpact       string   `json:"security_impact"`
}

type ScoredRecommendation struct {
	Id                   string      `json:"id"`
	SubscriptionID       string      `json:"subscription_id"`
	Category             string      `json:"category"`
	Title                string      `json:"title"`
	Description          string      `json:"description"`
	RiskScore            int         `json:"risk_score"`
	RiskFactors          RiskFactors `json:"risk_factors"`
	RemediationSteps     []string    `json:"remediation_steps"`
	EstimatedCost        float64     `json:"estimated_cost"`
	EstimatedEffortHours float64     `json:"estimated_effort_hours"`
	ImpactedResource     string      `json:"impacted_resource"`
}

type GovernanceSummary struct {
	TotalRecommendations    int     `json:"total_recommendations"`
	HighRiskCount           int     `json:"high_risk_count"`
	MediumRiskCount         int     `json:"medium_risk_count"`
	LowRiskCount            int     `json:"low_risk_count"`
	PotentialMonthlySavings float64 `json:"potential_monthly_savings"`
	PotentialAnnualSavings  float64 `json:"potential_annual_savings"`
}

type GovernanceReport struct {
	Recommendations []ScoredRecommendation `json:"recommendations"`
	Summary         GovernanceSummary      `json:"summary"`
	MinRiskScore    int                    `json:"min_risk_score"`
}
