package adapters

import (
	"github.com/finopslab/sentinel/pkg/models/api"
	"github.com/finopslab/sentinel/pkg/models/domain"
)

func MapCostRecommendationApiToDomain(rec api.CostRecommendation) domain.CostRecommendation {
	return domain.CostRecommendation{
		ID:             rec.Id,
		Title:          rec.Title,
		Description:    rec.Description,
		ResourceType:   rec.ResourceType,
		MonthlySavings: rec.MonthlySavings,
	}
}

func MapOverlayReportDomainToApi(report domain.OverlayReport) api.OverlayReport {
	apiReport := api.OverlayReport{
		Flagged:  []api.FlaggedRecommendation{},
		Safe:     []api.CostRecommendation{},
		Warnings: []api.ComplianceWarning{},
		Summary: api.OverlaySummary{
			TotalRecommendations: report.Summary.TotalRecommendations,
			FlaggedCount:         report.Summary.FlaggedCount,
			SafeCount:            report.Summary.SafeCount,
		},
	}
	for _, flagged := range report.Flagged {
		apiReport.Flagged = append(apiReport.Flagged, api.FlaggedRecommendation{
			CostRecommendation: mapCostRecommendationDomainToApi(flagged.CostRecommendation),
			Flags:              mapFlags(flagged.Flags),
			RequiresReview:     flagged.RequiresReview,
		})
	}
	for _, safe := range report.Safe {
		apiReport.Safe = append(apiReport.Safe, mapCostRecommendationDomainToApi(safe))
	}
	for _, warning := range report.Warnings {
		apiReport.Warnings = append(apiReport.Warnings, api.ComplianceWarning{
			RecommendationID:    warning.RecommendationID,
			RecommendationTitle: warning.RecommendationTitle,
			Severity:            api.Severity(warning.Severity),
			Frameworks:          emptyIfNil(warning.Frameworks),
			Flags:               mapFlags(warning.Flags),
			ActionRequired:      warning.ActionRequired,
		})
	}
	return apiReport
}

func mapCostRecommendationDomainToApi(rec domain.CostRecommendation) api.CostRecommendation {
	return api.CostRecommendation{
		Id:             rec.ID,
		Title:          rec.Title,
		Description:    rec.Description,
		ResourceType:   rec.ResourceType,
		MonthlySavings: rec.MonthlySavings,
	}
}

func mapFlags(flags []domain.ComplianceFlag) []api.ComplianceFlag {
	apiFlags := make([]api.ComplianceFlag, 0, len(flags))
	for _, flag := range flags {
		apiFlags = append(apiFlags, api.ComplianceFlag{
			Framework:   flag.Framework,
			Controls:    flag.Controls,
			Requirement: flag.Requirement,
			Impact:      flag.Impact,
			Warning:     flag.Warning,
			Severity:    api.Severity(flag.Severity),
		})
	}
	return apiFlags
}
