package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/spf13/cobra"
)

type AdvisorCmd struct {
	subscriptions []string
	minRiskScore  int
	deps          Dependencies
	renderer      Renderer
}

func NewAdvisorCmd(deps Dependencies, renderer Renderer) *cobra.Command {
	ac := &AdvisorCmd{deps: deps, renderer: renderer}
	cmd := &cobra.Command{
		Use:   "advisor",
		Short: "Score Advisor recommendations by governance risk",
		RunE:  ac.run,
	}

	cmd.Flags().StringSliceVar(&ac.subscriptions, "subscriptions", nil, "Subscription IDs to analyze (defaults to the configured profile)")
	cmd.Flags().IntVar(&ac.minRiskScore, "min-risk-score", 5, "Minimum risk score a recommendation must reach to be reported (1-10)")

	return cmd
}

func (ac *AdvisorCmd) run(cmd *cobra.Command, args []string) error {
	if ac.minRiskScore < 1 || ac.minRiskScore > 10 {
		return fmt.Errorf("min-risk-score must be between 1 and 10, got %d", ac.minRiskScore)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	subscriptions := ac.subscriptions
	if len(subscriptions) == 0 {
		subscriptions = ac.deps.Defaults.SubscriptionIDs
	}

	report, err := ac.deps.Governance.Score(ctx, subscriptions, ac.minRiskScore)
	if err != nil {
		return fmt.Errorf("failed to score recommendations: %w", err)
	}

	return ac.renderer.Handle(governanceConsoleReport(report))
}

func governanceConsoleReport(report domain.GovernanceReport) *domain.ConsoleReport {
	details := make([]domain.ReportDetail, 0, len(report.Recommendations))
	for _, rec := range report.Recommendations {
		details = append(details, domain.ReportDetail{
			Name:        truncate(rec.Problem, 38),
			Value:       fmt.Sprintf("%d/10", rec.RiskScore),
			Unit:        string(rec.Category),
			Description: truncate(rec.Solution, 58),
		})
	}

	return &domain.ConsoleReport{
		Title:       "Governance Risk Report",
		GeneratedAt: time.Now(),
		Sections: []domain.ReportSection{
			{
				Title: "Scored Recommendations",
				Summary: map[string]interface{}{
					"Total recommendations": report.Summary.TotalRecommendations,
					"High risk":             report.Summary.HighRiskCount,
					"Medium risk":           report.Summary.MediumRiskCount,
					"Low risk":              report.Summary.LowRiskCount,
					"Minimum score":         report.MinRiskScore,
				},
				Details: details,
			},
		},
		TotalMonthly: report.Summary.PotentialMonthlySavings,
		TotalAnnual:  report.Summary.PotentialAnnualSavings,
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
