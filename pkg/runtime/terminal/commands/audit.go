package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/spf13/cobra"
)

type AuditCmd struct {
	tenants       []string
	subscriptions []string
	deps          Dependencies
	renderer      Renderer
}

func NewAuditCmd(deps Dependencies, renderer Renderer) *cobra.Command {
	ac := &AuditCmd{deps: deps, renderer: renderer}
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Find unattached disks and idle public IPs across tenants",
		RunE:  ac.run,
	}

	cmd.Flags().StringSliceVar(&ac.tenants, "tenants", nil, "Delegated tenant IDs to audit (defaults to the configured profile)")
	cmd.Flags().StringSliceVar(&ac.subscriptions, "subscriptions", nil, "Subscription IDs to audit (defaults to the configured profile)")

	return cmd
}

func (ac *AuditCmd) run(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), 120*time.Second)
	defer cancel()

	tenants := ac.tenants
	if len(tenants) == 0 {
		tenants = ac.deps.Defaults.TenantIDs
	}
	subscriptions := ac.subscriptions
	if len(subscriptions) == 0 {
		subscriptions = ac.deps.Defaults.SubscriptionIDs
	}

	report, err := ac.deps.Audits.Audit(ctx, tenants, subscriptions)
	if err != nil {
		return fmt.Errorf("failed to audit tenants: %w", err)
	}

	return ac.renderer.Handle(auditConsoleReport(report))
}

func auditConsoleReport(report domain.TenantAuditReport) *domain.ConsoleReport {
	sections := make([]domain.ReportSection, 0, len(report.Tenants))
	for _, tenant := range report.Tenants {
		details := make([]domain.ReportDetail, 0, len(tenant.UnattachedDisks)+len(tenant.IdlePublicIPs))
		for _, disk := range tenant.UnattachedDisks {
			details = append(details, domain.ReportDetail{
				Name:  disk.DiskName,
				Value: fmt.Sprintf("$%.2f", disk.MonthlyCost),
				Unit:  "USD/mo",
				Description: fmt.Sprintf("Unattached %s disk, %d GiB, %s",
					disk.SKU, disk.SizeGB, disk.ResourceGroup),
			})
		}
		for _, ip := range tenant.IdlePublicIPs {
			details = append(details, domain.ReportDetail{
				Name:  ip.IPName,
				Value: fmt.Sprintf("$%.2f", ip.MonthlyCost),
				Unit:  "USD/mo",
				Description: fmt.Sprintf("Idle %s public IP %s, %s",
					ip.SKU, ip.IPAddress, ip.ResourceGroup),
			})
		}

		sections = append(sections, domain.ReportSection{
			Title: fmt.Sprintf("Tenant %s", tenant.TenantName),
			Summary: map[string]interface{}{
				"Subscriptions":    tenant.SubscriptionsCount,
				"Unattached disks": len(tenant.UnattachedDisks),
				"Idle public IPs":  len(tenant.IdlePublicIPs),
				"Monthly savings":  fmt.Sprintf("$%.2f", tenant.TotalMonthlySavings),
			},
			Details: details,
		})
	}

	return &domain.ConsoleReport{
		Title:        "Tenant Waste Audit",
		GeneratedAt:  report.AuditDate,
		Sections:     sections,
		TotalMonthly: report.TotalMonthlySavings,
		TotalAnnual:  report.TotalAnnualSavings,
	}
}
