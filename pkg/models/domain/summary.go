package domain

import "time"

// SummaryMetrics are the headline numbers of an executive report.
type SummaryMetrics struct {
	TotalMonthlySavings float64
	TotalAnnualSavings  float64
	AnomalyCount        int
	ExcessSpend         float64
	HighRiskCount       int
	RecommendationCount int
}

// ExecutiveSummary is a rendered FinOps ROI report for stakeholders.
type ExecutiveSummary struct {
	Markdown    string
	Metrics     SummaryMetrics
	GeneratedAt time.Time
	Period      string
}
