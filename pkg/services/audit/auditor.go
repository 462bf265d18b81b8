package audit

import (
	"context"
	"time"

	"github.com/finopslab/sentinel/pkg/azerr"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/money"
	"github.com/finopslab/sentinel/pkg/services/pricing"
	"github.com/finopslab/sentinel/pkg/services/retry"
	"github.com/rs/zerolog"
)

// DiskAsset is raw managed-disk metadata from the inventory collaborator.
type DiskAsset struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
	SKU            string
	State          string
	SizeGB         int32
	CreatedDate    string
	Location       string
}

// DiskStateUnattached marks a disk with no owning VM.
const DiskStateUnattached = "Unattached"

// IPAsset is raw public-IP metadata from the inventory collaborator.
type IPAsset struct {
	SubscriptionID string
	ResourceGroup  string
	Name           string
	IPAddress      string
	SKU            string
	Attached       bool
	Location       string
}

// DiskInventory lists managed disks for one subscription.
type DiskInventory interface {
	Disks(ctx context.Context, subscriptionID string) ([]DiskAsset, error)
}

// IPInventory lists public IP addresses for one subscription.
type IPInventory interface {
	PublicIPs(ctx context.Context, subscriptionID string) ([]IPAsset, error)
}

// Settings contains the auditor's resilience configuration.
type Settings struct {
	Policy retry.Policy
}

func DefaultSettings() Settings {
	return Settings{Policy: retry.Default()}
}

// Auditor finds wasteful resources (unattached disks, idle public IPs) in
// delegated tenants and prices them with the static catalog.
type Auditor struct {
	disks    DiskInventory
	ips      IPInventory
	settings Settings
}

func NewAuditor(disks DiskInventory, ips IPInventory, settings Settings) *Auditor {
	return &Auditor{disks: disks, ips: ips, settings: settings}
}

// Audit inspects the given subscriptions for every tenant. An empty tenant
// list audits the current tenant. Delegated-tenant enumeration requires
// Lighthouse onboarding, so each tenant is audited against the configured
// subscription set.
func (a *Auditor) Audit(ctx context.Context, tenantIDs, subscriptionIDs []string) (domain.TenantAuditReport, error) {
	if len(subscriptionIDs) == 0 {
		return domain.TenantAuditReport{}, &azerr.ValidationError{
			Message: "no subscription IDs provided, configure AZURE_SUBSCRIPTION_IDS",
		}
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().Int("subscriptions", len(subscriptionIDs)).Msg("starting tenant audit")

	if len(tenantIDs) == 0 {
		tenantIDs = []string{"current"}
	}

	report := domain.TenantAuditReport{AuditDate: time.Now().UTC()}
	totalSavings := 0.0
	for _, tenantID := range tenantIDs {
		tenant := a.auditTenant(ctx, tenantID, subscriptionIDs)
		totalSavings += tenant.TotalMonthlySavings
		report.Tenants = append(report.Tenants, tenant)
		report.SubscriptionsAudited += tenant.SubscriptionsCount
	}

	report.TenantsAudited = len(report.Tenants)
	report.TotalMonthlySavings = money.RoundUSD(totalSavings)
	report.TotalAnnualSavings = money.RoundUSD(totalSavings * 12)

	logger.Info().
		Int("tenants", report.TenantsAudited).
		Float64("monthly_savings", report.TotalMonthlySavings).
		Msg("tenant audit complete")
	return report, nil
}

func (a *Auditor) auditTenant(ctx context.Context, tenantID string, subscriptionIDs []string) domain.TenantAudit {
	logger := zerolog.Ctx(ctx)

	tenant := domain.TenantAudit{
		TenantID:           tenantID,
		TenantName:         tenantID,
		SubscriptionsCount: len(subscriptionIDs),
	}
	if tenantID == "current" {
		tenant.TenantName = "Current Tenant"
	}

	savings := 0.0
	for _, subID := range subscriptionIDs {
		disks, err := a.findUnattachedDisks(ctx, subID)
		if err != nil {
			logger.Error().Err(err).Str("subscription_id", subID).Msg("disk audit failed, skipping")
		} else {
			for _, d := range disks {
				savings += d.MonthlyCost
			}
			tenant.UnattachedDisks = append(tenant.UnattachedDisks, disks...)
		}

		ips, err := a.findIdlePublicIPs(ctx, subID)
		if err != nil {
			logger.Error().Err(err).Str("subscription_id", subID).Msg("public IP audit failed, skipping")
		} else {
			for _, ip := range ips {
				savings += ip.MonthlyCost
			}
			tenant.IdlePublicIPs = append(tenant.IdlePublicIPs, ips...)
		}
	}

	tenant.TotalMonthlySavings = money.RoundUSD(savings)
	return tenant
}

func (a *Auditor) findUnattachedDisks(ctx context.Context, subscriptionID string) ([]domain.DiskFinding, error) {
	assets, err := retry.Do(ctx, a.settings.Policy, func() ([]DiskAsset, error) {
		return a.disks.Disks(ctx, subscriptionID)
	})
	if err != nil {
		return nil, err
	}

	var findings []domain.DiskFinding
	for _, asset := range assets {
		if asset.State != DiskStateUnattached {
			continue
		}
		sizeGB := asset.SizeGB
		if sizeGB <= 0 {
			sizeGB = 128
		}
		monthlyCost, _ := pricing.DiskMonthlyCost(asset.SKU, int(sizeGB))
		findings = append(findings, domain.DiskFinding{
			SubscriptionID: subscriptionID,
			ResourceGroup:  asset.ResourceGroup,
			DiskName:       asset.Name,
			SizeGB:         asset.SizeGB,
			SKU:            asset.SKU,
			MonthlyCost:    monthlyCost,
			CreatedDate:    asset.CreatedDate,
			Location:       asset.Location,
		})
	}
	return findings, nil
}

func (a *Auditor) findIdlePublicIPs(ctx context.Context, subscriptionID string) ([]domain.IPFinding, error) {
	assets, err := retry.Do(ctx, a.settings.Policy, func() ([]IPAsset, error) {
		return a.ips.PublicIPs(ctx, subscriptionID)
	})
	if err != nil {
		return nil, err
	}

	var findings []domain.IPFinding
	for _, asset := range assets {
		if asset.Attached {
			continue
		}
		sku := asset.SKU
		if sku == "" {
			sku = "Standard"
		}
		address := asset.IPAddress
		if address == "" {
			address = "Not allocated"
		}
		findings = append(findings, domain.IPFinding{
			SubscriptionID: subscriptionID,
			ResourceGroup:  asset.ResourceGroup,
			IPName:         asset.Name,
			IPAddress:      address,
			SKU:            sku,
			MonthlyCost:    pricing.PublicIPMonthlyCost(sku),
			Location:       asset.Location,
		})
	}
	return findings, nil
}
