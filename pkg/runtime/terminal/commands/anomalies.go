package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/spf13/cobra"
)

type AnomaliesCmd struct {
	subscriptions []string
	threshold     float64
	deps          Dependencies
	renderer      Renderer
}

func NewAnomaliesCmd(deps Dependencies, renderer Renderer) *cobra.Command {
	ac := &AnomaliesCmd{deps: deps, renderer: renderer}
	cmd := &cobra.Command{
		Use:   "anomalies",
		Short: "Detect cost spikes against the trailing weekly baseline",
		RunE:  ac.run,
	}

	cmd.Flags().StringSliceVar(&ac.subscriptions, "subscriptions", nil, "Subscription IDs to analyze (defaults to the configured profile)")
	cmd.Flags().Float64Var(&ac.threshold, "threshold", 1.5, "Variance multiplier above the baseline that flags an anomaly")

	return cmd
}

func (ac *AnomaliesCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 60*time.Second)
	defer cancel()

	subscriptions := ac.subscriptions
	if len(subscriptions) == 0 {
		subscriptions = ac.deps.Defaults.SubscriptionIDs
	}

	report, err := ac.deps.Anomalies.Detect(ctx, subscriptions, ac.threshold)
	if err != nil {
		return fmt.Errorf("failed to detect anomalies: %w", err)
	}

	return ac.renderer.Handle(anomalyConsoleReport(report))
}

func anomalyConsoleReport(report domain.AnomalyReport) *domain.ConsoleReport {
	details := make([]domain.ReportDetail, 0, len(report.Anomalies))
	for _, anomaly := range report.Anomalies {
		details = append(details, domain.ReportDetail{
			Name:  anomaly.ServiceName,
			Value: fmt.Sprintf("$%.2f", anomaly.ActualCost),
			Unit:  "USD/day",
			Description: fmt.Sprintf("%s in %s, avg $%.2f, +%.1f%%",
				anomaly.Date, anomaly.ResourceGroup, anomaly.AverageCost, anomaly.VariancePct),
		})
	}

	return &domain.ConsoleReport{
		Title:       "Cost Anomaly Report",
		GeneratedAt: report.AnalysisDate,
		Sections: []domain.ReportSection{
			{
				Title: "Anomalies",
				Summary: map[string]interface{}{
					"Total anomalies": report.TotalAnomalies,
					"Excess spend":    fmt.Sprintf("$%.2f", report.TotalExcessSpend),
					"Threshold":       fmt.Sprintf("%.1fx", report.Threshold),
				},
				Details: details,
			},
		},
		TotalMonthly: report.TotalExcessSpend,
		TotalAnnual:  report.TotalExcessSpend * 12,
	}
}
