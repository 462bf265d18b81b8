package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/finopslab/sentinel/pkg/adapters"
	"github.com/finopslab/sentinel/pkg/models/api"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/services/compliance"
	"github.com/spf13/cobra"
)

type OverlayCmd struct {
	inputPath string
	iso27001  bool
	niaQatar  bool
	renderer  Renderer
}

func NewOverlayCmd(renderer Renderer) *cobra.Command {
	oc := &OverlayCmd{renderer: renderer}
	cmd := &cobra.Command{
		Use:   "overlay",
		Short: "Flag cost recommendations that carry compliance impact",
		RunE:  oc.run,
	}

	cmd.Flags().StringVar(&oc.inputPath, "input", "", "Path to a JSON file with cost recommendations")
	cmd.Flags().BoolVar(&oc.iso27001, "iso27001", true, "Check recommendations against ISO 27001 controls")
	cmd.Flags().BoolVar(&oc.niaQatar, "nia-qatar", true, "Check recommendations against NIA Qatar requirements")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (oc *OverlayCmd) run(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(oc.inputPath)
	if err != nil {
		return fmt.Errorf("failed to read recommendations file: %w", err)
	}

	var input []api.CostRecommendation
	if err := json.Unmarshal(raw, &input); err != nil {
		return fmt.Errorf("failed to parse recommendations file: %w", err)
	}

	recommendations := make([]domain.CostRecommendation, 0, len(input))
	for _, rec := range input {
		recommendations = append(recommendations, adapters.MapCostRecommendationApiToDomain(rec))
	}

	report := compliance.Apply(recommendations, compliance.Options{
		CheckISO27001: oc.iso27001,
		CheckNIAQatar: oc.niaQatar,
	})

	return oc.renderer.Handle(overlayConsoleReport(report))
}

func overlayConsoleReport(report domain.OverlayReport) *domain.ConsoleReport {
	flagged := make([]domain.ReportDetail, 0, len(report.Flagged))
	var monthlySavings float64
	for _, rec := range report.Flagged {
		frameworks := make([]string, 0, len(rec.Flags))
		var warning string
		for _, flag := range rec.Flags {
			frameworks = append(frameworks, flag.Framework)
			warning = flag.Warning
		}
		flagged = append(flagged, domain.ReportDetail{
			Name:        truncate(rec.Title, 38),
			Value:       strings.Join(frameworks, ", "),
			Unit:        string(highestSeverity(rec.Flags)),
			Description: truncate(warning, 58),
		})
		monthlySavings += rec.MonthlySavings
	}

	safe := make([]domain.ReportDetail, 0, len(report.Safe))
	for _, rec := range report.Safe {
		safe = append(safe, domain.ReportDetail{
			Name:        truncate(rec.Title, 38),
			Value:       fmt.Sprintf("$%.2f", rec.MonthlySavings),
			Unit:        "USD/mo",
			Description: "No compliance impact detected",
		})
		monthlySavings += rec.MonthlySavings
	}

	return &domain.ConsoleReport{
		Title:       "Compliance Overlay Report",
		GeneratedAt: time.Now(),
		Sections: []domain.ReportSection{
			{
				Title: "Flagged Recommendations",
				Summary: map[string]interface{}{
					"Total recommendations": report.Summary.TotalRecommendations,
					"Flagged":               report.Summary.FlaggedCount,
					"Safe":                  report.Summary.SafeCount,
				},
				Details: flagged,
			},
			{
				Title:   "Safe Recommendations",
				Details: safe,
			},
		},
		TotalMonthly: monthlySavings,
		TotalAnnual:  monthlySavings * 12,
	}
}

func highestSeverity(flags []domain.ComplianceFlag) domain.Severity {
	var highest domain.Severity
	for _, flag := range flags {
		if flag.Severity.Rank() > highest.Rank() {
			highest = flag.Severity
		}
	}
	return highest
}
