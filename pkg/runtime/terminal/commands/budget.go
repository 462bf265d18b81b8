package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/services/budget"
	"github.com/spf13/cobra"
)

type BudgetCmd struct {
	templatePath string
	budgetLimit  float64
	region       string
	deps         Dependencies
	renderer     Renderer
}

func NewBudgetCmd(deps Dependencies, renderer Renderer) *cobra.Command {
	bc := &BudgetCmd{deps: deps, renderer: renderer}
	cmd := &cobra.Command{
		Use:   "budget",
		Short: "Estimate a deployment template's cost before it ships",
		RunE:  bc.run,
	}

	cmd.Flags().StringVar(&bc.templatePath, "template", "", "Path to the deployment template JSON")
	cmd.Flags().Float64Var(&bc.budgetLimit, "budget", 0, "Monthly budget limit in USD (0 disables the check)")
	cmd.Flags().StringVar(&bc.region, "region", "", "Pricing region (defaults to the configured profile)")

	_ = cmd.MarkFlagRequired("template")

	return cmd
}

func (bc *BudgetCmd) run(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(bc.templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}

	region := bc.region
	if region == "" {
		region = bc.deps.Defaults.Region
	}

	opts := budget.Options{Region: region}
	if bc.budgetLimit > 0 {
		opts.BudgetLimit = &bc.budgetLimit
	}

	report, err := budget.ValidateRaw(cmd.Context(), raw, opts)
	if err != nil {
		return fmt.Errorf("failed to validate template: %w", err)
	}

	return bc.renderer.Handle(budgetConsoleReport(report))
}

func budgetConsoleReport(report domain.BudgetReport) *domain.ConsoleReport {
	details := make([]domain.ReportDetail, 0, len(report.Breakdown)+len(report.Warnings))
	for _, line := range report.Breakdown {
		details = append(details, domain.ReportDetail{
			Name:        line.ResourceName,
			Value:       fmt.Sprintf("$%.2f", line.MonthlyCost),
			Unit:        "USD/mo",
			Description: fmt.Sprintf("%s (%s)", line.ResourceType, line.SKU),
		})
	}

	warnings := make([]domain.ReportDetail, 0, len(report.Warnings))
	for i, warning := range report.Warnings {
		warnings = append(warnings, domain.ReportDetail{
			Name:        fmt.Sprintf("Warning %d", i+1),
			Description: warning,
		})
	}

	summary := map[string]interface{}{
		"Resources analyzed": report.ResourcesAnalyzed,
		"Resources priced":   report.ResourcesPriced,
		"Region":             report.Region,
		"Within budget":      report.WithinBudget,
	}
	if report.BudgetLimit != nil {
		summary["Budget limit"] = fmt.Sprintf("$%.2f", *report.BudgetLimit)
	}

	sections := []domain.ReportSection{
		{
			Title:   "Cost Breakdown",
			Summary: summary,
			Details: details,
		},
	}
	if len(warnings) > 0 {
		sections = append(sections, domain.ReportSection{
			Title:   "Warnings",
			Details: warnings,
		})
	}

	return &domain.ConsoleReport{
		Title:        "Budget Validation Report",
		GeneratedAt:  time.Now(),
		Sections:     sections,
		TotalMonthly: report.EstimatedMonthlyCost,
		TotalAnnual:  report.EstimatedAnnualCost,
	}
}
