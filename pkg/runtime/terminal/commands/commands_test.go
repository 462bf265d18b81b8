package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/services/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type capturingRenderer struct {
	report *domain.ConsoleReport
}

func (r *capturingRenderer) Handle(report *domain.ConsoleReport) error {
	r.report = report
	return nil
}

type MockAnomalyService struct {
	mock.Mock
}

func (m *MockAnomalyService) Detect(ctx context.Context, subscriptionIDs []string, threshold float64) (domain.AnomalyReport, error) {
	args := m.Called(ctx, subscriptionIDs, threshold)
	return args.Get(0).(domain.AnomalyReport), args.Error(1)
}

type MockGovernanceService struct {
	mock.Mock
}

func (m *MockGovernanceService) Score(ctx context.Context, subscriptionIDs []string, minRiskScore int) (domain.GovernanceReport, error) {
	args := m.Called(ctx, subscriptionIDs, minRiskScore)
	return args.Get(0).(domain.GovernanceReport), args.Error(1)
}

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Audit(ctx context.Context, tenantIDs, subscriptionIDs []string) (domain.TenantAuditReport, error) {
	args := m.Called(ctx, tenantIDs, subscriptionIDs)
	return args.Get(0).(domain.TenantAuditReport), args.Error(1)
}

type MockSummaryService struct {
	mock.Mock
}

func (m *MockSummaryService) Compose(ctx context.Context, opts summary.Options) (domain.ExecutiveSummary, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(domain.ExecutiveSummary), args.Error(1)
}

func TestAnomaliesCmd(t *testing.T) {
	t.Run("uses default subscriptions and threshold", func(t *testing.T) {
		anomalies := new(MockAnomalyService)
		anomalies.On("Detect", mock.Anything, []string{"sub-1"}, 1.5).
			Return(domain.AnomalyReport{
				Anomalies: []domain.AnomalyRecord{
					{
						ServiceName:   "Virtual Machines",
						ResourceGroup: "rg-prod",
						ActualCost:    150,
						AverageCost:   90,
						VariancePct:   66.67,
						Date:          "2026-08-29",
					},
				},
				TotalAnomalies:   1,
				TotalExcessSpend: 60,
				Threshold:        1.5,
				AnalysisDate:     time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
			}, nil).Once()

		renderer := &capturingRenderer{}
		deps := Dependencies{
			Anomalies: anomalies,
			Defaults:  Defaults{SubscriptionIDs: []string{"sub-1"}},
		}

		cmd := NewAnomaliesCmd(deps, renderer)
		cmd.SetArgs([]string{})
		require.NoError(t, cmd.Execute())

		require.NotNil(t, renderer.report)
		assert.Equal(t, "Cost Anomaly Report", renderer.report.Title)
		require.Len(t, renderer.report.Sections, 1)
		require.Len(t, renderer.report.Sections[0].Details, 1)
		assert.Equal(t, "Virtual Machines", renderer.report.Sections[0].Details[0].Name)
		assert.Equal(t, "$150.00", renderer.report.Sections[0].Details[0].Value)
		assert.Equal(t, 60.0, renderer.report.TotalMonthly)
		assert.Equal(t, 720.0, renderer.report.TotalAnnual)
		anomalies.AssertExpectations(t)
	})

	t.Run("flag overrides threshold and subscriptions", func(t *testing.T) {
		anomalies := new(MockAnomalyService)
		anomalies.On("Detect", mock.Anything, []string{"sub-9"}, 2.0).
			Return(domain.AnomalyReport{Threshold: 2.0}, nil).Once()

		renderer := &capturingRenderer{}
		deps := Dependencies{
			Anomalies: anomalies,
			Defaults:  Defaults{SubscriptionIDs: []string{"sub-1"}},
		}

		cmd := NewAnomaliesCmd(deps, renderer)
		cmd.SetArgs([]string{"--threshold", "2.0", "--subscriptions", "sub-9"})
		require.NoError(t, cmd.Execute())
		anomalies.AssertExpectations(t)
	})
}

func TestAdvisorCmd(t *testing.T) {
	t.Run("renders scored recommendations", func(t *testing.T) {
		governance := new(MockGovernanceService)
		governance.On("Score", mock.Anything, []string{"sub-1"}, 7).
			Return(domain.GovernanceReport{
				Recommendations: []domain.ScoredRecommendation{
					{
						Recommendation: domain.Recommendation{
							Problem:  "VM lacks managed identity",
							Solution: "Enable system-assigned identity",
							Category: domain.CategorySecurity,
						},
						RiskScore: 8,
					},
				},
				Summary:      domain.GovernanceSummary{TotalRecommendations: 1, HighRiskCount: 1, PotentialMonthlySavings: 120, PotentialAnnualSavings: 1440},
				MinRiskScore: 7,
			}, nil).Once()

		renderer := &capturingRenderer{}
		deps := Dependencies{
			Governance: governance,
			Defaults:   Defaults{SubscriptionIDs: []string{"sub-1"}},
		}

		cmd := NewAdvisorCmd(deps, renderer)
		cmd.SetArgs([]string{"--min-risk-score", "7"})
		require.NoError(t, cmd.Execute())

		require.NotNil(t, renderer.report)
		assert.Equal(t, "Governance Risk Report", renderer.report.Title)
		assert.Equal(t, "8/10", renderer.report.Sections[0].Details[0].Value)
		assert.Equal(t, "Security", renderer.report.Sections[0].Details[0].Unit)
		assert.Equal(t, 120.0, renderer.report.TotalMonthly)
		governance.AssertExpectations(t)
	})

	t.Run("rejects out of range score", func(t *testing.T) {
		governance := new(MockGovernanceService)
		cmd := NewAdvisorCmd(Dependencies{Governance: governance}, &capturingRenderer{})
		cmd.SetArgs([]string{"--min-risk-score", "11"})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		err := cmd.Execute()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "min-risk-score must be between 1 and 10")
		governance.AssertNotCalled(t, "Score", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestOverlayCmd(t *testing.T) {
	t.Run("flags data retention recommendations from a file", func(t *testing.T) {
		input := filepath.Join(t.TempDir(), "recommendations.json")
		payload := `[
			{"id": "rec-1", "title": "Delete old backups", "description": "Remove backup data older than 90 days", "monthly_savings": 50},
			{"id": "rec-2", "title": "Resize underutilized VM", "description": "Downsize to D2s_v3", "monthly_savings": 80}
		]`
		require.NoError(t, os.WriteFile(input, []byte(payload), 0o600))

		renderer := &capturingRenderer{}
		cmd := NewOverlayCmd(renderer)
		cmd.SetArgs([]string{"--input", input})
		require.NoError(t, cmd.Execute())

		require.NotNil(t, renderer.report)
		assert.Equal(t, "Compliance Overlay Report", renderer.report.Title)
		summary := renderer.report.Sections[0].Summary
		assert.Equal(t, 2, summary["Total recommendations"])
		assert.Equal(t, 1, summary["Flagged"])
		assert.Equal(t, 1, summary["Safe"])
		assert.Equal(t, 130.0, renderer.report.TotalMonthly)
	})

	t.Run("fails on missing file", func(t *testing.T) {
		cmd := NewOverlayCmd(&capturingRenderer{})
		cmd.SetArgs([]string{"--input", filepath.Join(t.TempDir(), "missing.json")})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		require.Error(t, cmd.Execute())
	})
}

func TestAuditCmd(t *testing.T) {
	audits := new(MockAuditService)
	audits.On("Audit", mock.Anything, []string{"tenant-1"}, []string{"sub-1"}).
		Return(domain.TenantAuditReport{
			TenantsAudited:       1,
			SubscriptionsAudited: 1,
			TotalMonthlySavings:  45.56,
			TotalAnnualSavings:   546.72,
			Tenants: []domain.TenantAudit{
				{
					TenantID:           "tenant-1",
					TenantName:         "Contoso",
					SubscriptionsCount: 1,
					UnattachedDisks: []domain.DiskFinding{
						{DiskName: "disk-orphan", SKU: "Premium_LRS", SizeGB: 256, MonthlyCost: 39.42, ResourceGroup: "rg-data"},
					},
					IdlePublicIPs: []domain.IPFinding{
						{IPName: "ip-idle", SKU: "Standard", IPAddress: "20.1.2.3", MonthlyCost: 3.65, ResourceGroup: "rg-net"},
					},
					TotalMonthlySavings: 43.07,
				},
			},
			AuditDate: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		}, nil).Once()

	renderer := &capturingRenderer{}
	deps := Dependencies{
		Audits:   audits,
		Defaults: Defaults{SubscriptionIDs: []string{"sub-1"}, TenantIDs: []string{"tenant-1"}},
	}

	cmd := NewAuditCmd(deps, renderer)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	require.NotNil(t, renderer.report)
	require.Len(t, renderer.report.Sections, 1)
	section := renderer.report.Sections[0]
	assert.Equal(t, "Tenant Contoso", section.Title)
	require.Len(t, section.Details, 2)
	assert.Equal(t, "disk-orphan", section.Details[0].Name)
	assert.Equal(t, "$39.42", section.Details[0].Value)
	assert.Equal(t, "ip-idle", section.Details[1].Name)
	assert.Equal(t, 45.56, renderer.report.TotalMonthly)
	audits.AssertExpectations(t)
}

func TestBudgetCmd(t *testing.T) {
	t.Run("prices a template and flags budget overruns", func(t *testing.T) {
		template := filepath.Join(t.TempDir(), "deploy.json")
		payload := `{
			"resources": [
				{
					"type": "Microsoft.Compute/disks",
					"name": "data-disk",
					"sku": {"name": "Standard_LRS"},
					"properties": {"diskSizeGB": 128}
				}
			]
		}`
		require.NoError(t, os.WriteFile(template, []byte(payload), 0o600))

		renderer := &capturingRenderer{}
		cmd := NewBudgetCmd(Dependencies{Defaults: Defaults{Region: "eastus"}}, renderer)
		cmd.SetArgs([]string{"--template", template, "--budget", "5.00"})
		require.NoError(t, cmd.Execute())

		require.NotNil(t, renderer.report)
		assert.Equal(t, "Budget Validation Report", renderer.report.Title)
		assert.Equal(t, 6.14, renderer.report.TotalMonthly)
		assert.Equal(t, false, renderer.report.Sections[0].Summary["Within budget"])
		require.Len(t, renderer.report.Sections, 2)
		assert.Contains(t, renderer.report.Sections[1].Details[0].Description, "BUDGET EXCEEDED")
	})

	t.Run("fails on unreadable template", func(t *testing.T) {
		cmd := NewBudgetCmd(Dependencies{}, &capturingRenderer{})
		cmd.SetArgs([]string{"--template", filepath.Join(t.TempDir(), "missing.json")})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		require.Error(t, cmd.Execute())
	})
}

func TestSummaryCmd(t *testing.T) {
	t.Run("writes markdown to stdout", func(t *testing.T) {
		summaries := new(MockSummaryService)
		summaries.On("Compose", mock.Anything, mock.MatchedBy(func(opts summary.Options) bool {
			return opts.Period == summary.PeriodAnnual && !opts.IncludeAudit
		})).Return(domain.ExecutiveSummary{Markdown: "# FinOps ROI Report"}, nil).Once()

		deps := Dependencies{
			Summaries: summaries,
			Defaults:  Defaults{SubscriptionIDs: []string{"sub-1"}},
		}

		var out bytes.Buffer
		cmd := NewSummaryCmd(deps)
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--period", "annual", "--skip-audit"})
		require.NoError(t, cmd.Execute())

		assert.Contains(t, out.String(), "# FinOps ROI Report")
		summaries.AssertExpectations(t)
	})

	t.Run("rejects unknown period", func(t *testing.T) {
		summaries := new(MockSummaryService)
		cmd := NewSummaryCmd(Dependencies{Summaries: summaries})
		cmd.SetArgs([]string{"--period", "weekly"})
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true

		err := cmd.Execute()
		require.Error(t, err)
		summaries.AssertNotCalled(t, "Compose", mock.Anything, mock.Anything)
	})
}
