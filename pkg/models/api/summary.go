package api

import "time"

type SummaryMetrics struct {
	TotalSavingsPotential float64 `json:"total_savings_potential"`
	AnomalyCount          int     `json:"anomaly_count"`
	ExcessSpend           float64 `json:"excess_spend"`
	HighRiskItems         int     `json:"high_risk_items"`
	RecommendationCount   int     `json:"recommendation_count"`
}

type ExecutiveSummary struct {
	MarkdownReport string         `json:"markdown_report"`
	SummaryMetrics SummaryMetrics `json:"summary_metrics"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Period         string         `json:"period"`
}
