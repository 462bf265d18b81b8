package adapters

import (
	"github.com/finopslab/sentinel/pkg/models/api"
	"github.com/finopslab/sentinel/pkg/models/domain"
)

func MapExecutiveSummaryDomainToApi(summary domain.ExecutiveSummary) api.ExecutiveSummary {
	return api.ExecutiveSummary{
		MarkdownReport: summary.Markdown,
		SummaryMetrics: api.SummaryMetrics{
			TotalSavingsPotential: summary.Metrics.TotalMonthlySavings,
			AnomalyCount:          summary.Metrics.AnomalyCount,
			ExcessSpend:           summary.Metrics.ExcessSpend,
			HighRiskItems:         summary.Metrics.HighRiskCount,
			RecommendationCount:   summary.Metrics.RecommendationCount,
		},
		GeneratedAt: summary.GeneratedAt,
		Period:      summary.Period,
	}
}
