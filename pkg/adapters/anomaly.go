package adapters

import (
	"github.com/finopslab/sentinel/pkg/models/api"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/money"
)

func MapAnomalyReportDomainToApi(report domain.AnomalyReport) api.AnomalyReport {
	apiReport := api.AnomalyReport{
		Anomalies:        []api.Anomaly{},
		TotalAnomalies:   report.TotalAnomalies,
		TotalExcessSpend: report.TotalExcessSpend,
		Threshold:        report.Threshold,
		AnalysisDate:     report.AnalysisDate,
	}
	for _, a := range report.Anomalies {
		apiReport.Anomalies = append(apiReport.Anomalies, MapAnomalyDomainToApi(a))
	}
	return apiReport
}

// MapAnomalyDomainToApi rounds monetary values and the variance to two
// decimals at the serialization boundary; domain records keep full precision.
func MapAnomalyDomainToApi(a domain.AnomalyRecord) api.Anomaly {
	return api.Anomaly{
		SubscriptionID: a.SubscriptionID,
		ResourceGroup:  a.ResourceGroup,
		ServiceName:    a.ServiceName,
		ActualCost:     money.RoundUSD(a.ActualCost),
		AverageCost:    money.RoundUSD(a.AverageCost),
		VariancePct:    money.RoundUSD(a.VariancePct),
		Date:           a.Date,
	}
}
