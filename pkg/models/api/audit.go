package api

import "time"

type DiskFinding struct {
	SubscriptionID string  `json:"subscription_id"`
	ResourceGroup  string  `json:"resource_group"`
	DiskName       string  `json:"disk_name"`
	SizeGB         int32   `json:"size_gb"`
	SKU            string  `json:"sku"`
	MonthlyCost    float64 `json:"monthly_cost"`
	CreatedDate    string  `json:"created_date,omitempty"`
	Location       string  `json:"location"`
}

type IPFinding struct {
	SubscriptionID string  `json:"subscription_id"`
	ResourceGroup  string  `json:"resource_group"`
	IPName         string  `json:"ip_name"`
	IPAddress      string  `json:"ip_address"`
	SKU            string  `json:"sku"`
	MonthlyCost    float64 `json:"monthly_cost"`
	Location       string  `json:"location"`
}

type TenantFindings struct {
	UnattachedDisks []DiskFinding `json:"unattached_disks"`
	IdlePublicIPs   []IPFinding   `json:"idle_public_ips"`
}

type TenantAudit struct {
	TenantID            string         `json:"tenant_id"`
	TenantName          string         `json:"tenant_name"`
	SubscriptionsCount  int            `json:"subscriptions_audited"`
	Findings            TenantFindings `json:"findings"`
	TotalMonthlySavings float64        `json:"total_monthly_savings"`
}

type TenantAuditReport struct {
	TenantsAudited       int           `json:"tenants_audited"`
	SubscriptionsAudited int           `json:"total_subscriptions_audited"`
	TotalMonthlySavings  float64       `json:"total_monthly_savings"`
	TotalAnnualSavings   float64       `json:"total_annual_savings"`
	Tenants              []TenantAudit `json:"tenant_results"`
	AuditDate            time.Time     `json:"audit_date"`
}
