package adapters

import (
	"github.com/finopslab/sentinel/pkg/models/api"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/money"
)

func MapTenantAuditReportDomainToApi(report domain.TenantAuditReport) api.TenantAuditReport {
	apiReport := api.TenantAuditReport{
		TenantsAudited:       report.TenantsAudited,
		SubscriptionsAudited: report.SubscriptionsAudited,
		TotalMonthlySavings:  report.TotalMonthlySavings,
		TotalAnnualSavings:   report.TotalAnnualSavings,
		Tenants:              []api.TenantAudit{},
		AuditDate:            report.AuditDate,
	}
	for _, tenant := range report.Tenants {
		apiReport.Tenants = append(apiReport.Tenants, MapTenantAuditDomainToApi(tenant))
	}
	return apiReport
}

func MapTenantAuditDomainToApi(tenant domain.TenantAudit) api.TenantAudit {
	audit := api.TenantAudit{
		TenantID:            tenant.TenantID,
		TenantName:          tenant.TenantName,
		SubscriptionsCount:  tenant.SubscriptionsCount,
		TotalMonthlySavings: tenant.TotalMonthlySavings,
		Findings: api.TenantFindings{
			UnattachedDisks: []api.DiskFinding{},
			IdlePublicIPs:   []api.IPFinding{},
		},
	}
	for _, disk := range tenant.UnattachedDisks {
		audit.Findings.UnattachedDisks = append(audit.Findings.UnattachedDisks, api.DiskFinding{
			SubscriptionID: disk.SubscriptionID,
			ResourceGroup:  disk.ResourceGroup,
			DiskName:       disk.DiskName,
			SizeGB:         disk.SizeGB,
			SKU:            disk.SKU,
			MonthlyCost:    money.RoundUSD(disk.MonthlyCost),
			CreatedDate:    disk.CreatedDate,
			Location:       disk.Location,
		})
	}
	for _, ip := range tenant.IdlePublicIPs {
		audit.Findings.IdlePublicIPs = append(audit.Findings.IdlePublicIPs, api.IPFinding{
			SubscriptionID: ip.SubscriptionID,
			ResourceGroup:  ip.ResourceGroup,
			IPName:         ip.IPName,
			IPAddress:      ip.IPAddress,
			SKU:            ip.SKU,
			MonthlyCost:    money.RoundUSD(ip.MonthlyCost),
			Location:       ip.Location,
		})
	}
	return audit
}
