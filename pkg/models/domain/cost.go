package domain

import "time"

// CostRecord is a single daily cost observation returned by the cost
// management collaborator. Records are immutable once fetched.
type CostRecord struct {
	SubscriptionID string
	ResourceGroup  string
	ServiceName    string
	Cost           float64
	Date           string
}

// AnomalyRecord is a cost observation that exceeded its historical baseline.
type AnomalyRecord struct {
	SubscriptionID string
	ResourceGroup  string
	ServiceName    string
	ActualCost     float64
	AverageCost    float64
	VariancePct    float64
	Date           string
}

// AnomalyReport aggregates anomalies detected across subscriptions,
// ordered by variance percent descending.
type AnomalyReport struct {
	Anomalies        []AnomalyRecord
	TotalAnomalies   int
	TotalExcessSpend float64
	Threshold        float64
	AnalysisDate     time.Time
}
