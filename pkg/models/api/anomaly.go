package api

import "time"

type Anomaly struct {
	SubscriptionID string  `json:"subscription_id"`
	ResourceGroup  string  `json:"resource_group"`
	ServiceName    string  `json:"service_name"`
	ActualCost     float64 `json:"actual_cost"`
	AverageCost    float64 `json:"average_cost"`
	VariancePct    float64 `json:"variance_percent"`
	Date           string  `json:"date"`
}

type AnomalyReport struct {
	Anomalies        []Anomaly `json:"anomalies"`
	TotalAnomalies   int       `json:"total_anomalies"`
	TotalExcessSpend float64   `json:"total_excess_spend"`
	Threshold        float64   `json:"threshold"`
	AnalysisDate     time.Time `json:"analysis_date"`
}
