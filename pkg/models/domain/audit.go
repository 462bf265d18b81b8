package domain

import "time"

// DiskFinding is an unattached managed disk discovered during a tenant audit.
type DiskFinding struct {
	SubscriptionID string
	ResourceGroup  string
	DiskName       string
	SizeGB         int32
	SKU            string
	MonthlyCost    float64
	CreatedDate    string
	Location       string
}

// IPFinding is a public IP address with no attached configuration.
type IPFinding struct {
	SubscriptionID string
	ResourceGroup  string
	IPName         string
	IPAddress      string
	SKU            string
	MonthlyCost    float64
	Location       string
}

// TenantAudit holds the findings for a single delegated tenant.
type TenantAudit struct {
	TenantID            string
	TenantName          string
	SubscriptionsCount  int
	UnattachedDisks     []DiskFinding
	IdlePublicIPs       []IPFinding
	TotalMonthlySavings float64
}

// TenantAuditReport aggregates audits across all delegated tenants.
type TenantAuditReport struct {
	TenantsAudited        int
	SubscriptionsAudited  int
	TotalMonthlySavings   float64
	TotalAnnualSavings    float64
	Tenants               []TenantAudit
	AuditDate             time.Time
}
