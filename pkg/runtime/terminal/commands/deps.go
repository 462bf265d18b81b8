package commands

import (
	"context"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/services/summary"
)

// Renderer consumes the console report a command assembled. The terminal
// runtime decides which concrete reporter backs it.
type Renderer interface {
	Handle(report *domain.ConsoleReport) error
}

// AnomalyService detects cost spikes across subscriptions.
type AnomalyService interface {
	Detect(ctx context.Context, subscriptionIDs []string, threshold float64) (domain.AnomalyReport, error)
}

// GovernanceService scores Advisor recommendations.
type GovernanceService interface {
	Score(ctx context.Context, subscriptionIDs []string, minRiskScore int) (domain.GovernanceReport, error)
}

// AuditService finds wasteful resources in delegated tenants.
type AuditService interface {
	Audit(ctx context.Context, tenantIDs, subscriptionIDs []string) (domain.TenantAuditReport, error)
}

// SummaryService renders the executive ROI report.
type SummaryService interface {
	Compose(ctx context.Context, opts summary.Options) (domain.ExecutiveSummary, error)
}

// Defaults are applied when a command flag is not set.
type Defaults struct {
	SubscriptionIDs []string
	TenantIDs       []string
	Region          string
}

// Dependencies bundle the services the commands operate on.
type Dependencies struct {
	Anomalies  AnomalyService
	Governance GovernanceService
	Audits     AuditService
	Summaries  SummaryService
	Defaults   Defaults
}
