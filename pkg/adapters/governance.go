package adapters

import (
	"github.com/finopslab/sentinel/pkg/models/api"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/money"
)

func MapGovernanceReportDomainToApi(report domain.GovernanceReport) api.GovernanceReport {
	apiReport := api.GovernanceReport{
		Recommendations: []api.ScoredRecommendation{},
		Summary: api.GovernanceSummary{
			TotalRecommendations:    report.Summary.TotalRecommendations,
			HighRiskCount:           report.Summary.HighRiskCount,
			MediumRiskCount:         report.Summary.MediumRiskCount,
			LowRiskCount:            report.Summary.LowRiskCount,
			PotentialMonthlySavings: report.Summary.PotentialMonthlySavings,
			PotentialAnnualSavings:  report.Summary.PotentialAnnualSavings,
		},
		MinRiskScore: report.MinRiskScore,
	}
	for _, rec := range report.Recommendations {
		apiReport.Recommendations = append(apiReport.Recommendations, MapScoredRecommendationDomainToApi(rec))
	}
	return apiReport
}

func MapScoredRecommendationDomainToApi(rec domain.ScoredRecommendation) api.ScoredRecommendation {
	return api.ScoredRecommendation{
		Id:             rec.ID,
		SubscriptionID: rec.SubscriptionID,
		Category:       string(rec.Category),
		Title:          rec.Problem,
		Description:    rec.Solution,
		RiskScore:      rec.RiskScore,
		RiskFactors: api.RiskFactors{
			ISO27001Controls:     emptyIfNil(rec.RiskFactors.ISOControls),
			NIAQatarRequirements: emptyIfNil(rec.RiskFactors.FrameworkRequirements),
			CostImpact:           rec.RiskFactors.CostImpact,
			SecurityImpact:       rec.RiskFactors.SecurityImpact,
		},
		RemediationSteps:     emptyIfNil(rec.RemediationSteps),
		EstimatedCost:        money.RoundUSD(rec.EstimatedCost),
		EstimatedEffortHours: rec.EstimatedEffortHours,
		ImpactedResource:     rec.ImpactedResource,
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
