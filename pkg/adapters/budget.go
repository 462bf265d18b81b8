package adapters

import (
	"github.com/finopslab/sentinel/pkg/models/api"
	"github.com/finopslab/sentinel/pkg/models/domain"
)

func MapBudgetReportDomainToApi(report domain.BudgetReport) api.BudgetReport {
	apiReport := api.BudgetReport{
		EstimatedMonthlyCost: report.EstimatedMonthlyCost,
		EstimatedAnnualCost:  report.EstimatedAnnualCost,
		BudgetLimit:          report.BudgetLimit,
		WithinBudget:         report.WithinBudget,
		Breakdown:            []api.ResourceCostLine{},
		Warnings:             emptyIfNil(report.Warnings),
		Region:               report.Region,
		ResourcesAnalyzed:    report.ResourcesAnalyzed,
		ResourcesPriced:      report.ResourcesPriced,
	}
	for _, line := range report.Breakdown {
		apiReport.Breakdown = append(apiReport.Breakdown, api.ResourceCostLine{
			ResourceType: line.ResourceType,
			ResourceName: line.ResourceName,
			SKU:          line.SKU,
			MonthlyCost:  line.MonthlyCost,
		})
	}
	return apiReport
}
