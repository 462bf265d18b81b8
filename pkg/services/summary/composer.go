package summary

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/money"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const (
	PeriodMonthly = "monthly"
	PeriodAnnual  = "annual"
)

// AnomalySource supplies cost anomaly analysis for the report.
type AnomalySource interface {
	Detect(ctx context.Context, subscriptionIDs []string, threshold float64) (domain.AnomalyReport, error)
}

// AuditSource supplies wasteful-resource findings for the report.
type AuditSource interface {
	Audit(ctx context.Context, tenantIDs, subscriptionIDs []string) (domain.TenantAuditReport, error)
}

// GovernanceSource supplies risk-scored recommendations for the report.
type GovernanceSource interface {
	Score(ctx context.Context, subscriptionIDs []string, minRiskScore int) (domain.GovernanceReport, error)
}

// Options selects which sections the report includes and over what period.
type Options struct {
	SubscriptionIDs  []string
	IncludeAnomalies bool
	IncludeAudit     bool
	IncludeRisks     bool
	Period           string
	AnomalyThreshold float64
	MinRiskScore     int
}

func DefaultOptions(subscriptionIDs []string) Options {
	return Options{
		SubscriptionIDs:  subscriptionIDs,
		IncludeAnomalies: true,
		IncludeAudit:     true,
		IncludeRisks:     true,
		Period:           PeriodMonthly,
		AnomalyThreshold: 1.5,
		MinRiskScore:     5,
	}
}

// Composer renders ROI reports for non-technical stakeholders from the
// analytics services. A failed section is dropped from the report, the
// remaining sections still render.
type Composer struct {
	anomalies  AnomalySource
	audits     AuditSource
	governance GovernanceSource
	now        func() time.Time
}

func NewComposer(anomalies AnomalySource, audits AuditSource, governance GovernanceSource) *Composer {
	return &Composer{
		anomalies:  anomalies,
		audits:     audits,
		governance: governance,
		now:        time.Now,
	}
}

// reportData is the template input assembled from whichever sections loaded.
type reportData struct {
	Date         string
	Period       string
	Multiplier   float64
	Anomalies    *domain.AnomalyReport
	Audit        *domain.TenantAuditReport
	Governance   *domain.GovernanceReport
	TopDisks     []domain.DiskFinding
	TotalSavings float64
}

// Compose gathers data from the configured sources and renders the
// executive Markdown report.
func (c *Composer) Compose(ctx context.Context, opts Options) (domain.ExecutiveSummary, error) {
	logger := zerolog.Ctx(ctx)
	logger.Info().Str("period", opts.Period).Msg("generating executive summary")

	period := opts.Period
	if period != PeriodAnnual {
		period = PeriodMonthly
	}
	multiplier := 1.0
	if period == PeriodAnnual {
		multiplier = 12.0
	}

	data := reportData{
		Date:       c.now().UTC().Format("January 02, 2006"),
		Period:     period,
		Multiplier: multiplier,
	}

	if opts.IncludeAnomalies {
		report, err := c.anomalies.Detect(ctx, opts.SubscriptionIDs, opts.AnomalyThreshold)
		if err != nil {
			logger.Error().Err(err).Msg("anomaly section failed, omitting from report")
		} else {
			data.Anomalies = &report
		}
	}
	if opts.IncludeAudit {
		report, err := c.audits.Audit(ctx, nil, opts.SubscriptionIDs)
		if err != nil {
			logger.Error().Err(err).Msg("audit section failed, omitting from report")
		} else {
			data.Audit = &report
			data.TopDisks = topDisks(report, 5)
		}
	}
	if opts.IncludeRisks {
		report, err := c.governance.Score(ctx, opts.SubscriptionIDs, opts.MinRiskScore)
		if err != nil {
			logger.Error().Err(err).Msg("governance section failed, omitting from report")
		} else {
			data.Governance = &report
		}
	}

	data.TotalSavings = totalSavings(data)

	markdown, err := renderMarkdown(data)
	if err != nil {
		return domain.ExecutiveSummary{}, fmt.Errorf("render executive summary: %w", err)
	}

	result := domain.ExecutiveSummary{
		Markdown:    markdown,
		Metrics:     collectMetrics(data),
		GeneratedAt: c.now().UTC(),
		Period:      period,
	}
	logger.Info().Float64("total_savings", result.Metrics.TotalMonthlySavings).Msg("executive summary generated")
	return result, nil
}

func totalSavings(data reportData) float64 {
	total := 0.0
	if data.Anomalies != nil {
		total += data.Anomalies.TotalExcessSpend
	}
	if data.Audit != nil {
		total += data.Audit.TotalMonthlySavings
	}
	if data.Governance != nil {
		total += data.Governance.Summary.PotentialMonthlySavings
	}
	return total
}

func collectMetrics(data reportData) domain.SummaryMetrics {
	metrics := domain.SummaryMetrics{
		TotalMonthlySavings: money.RoundUSD(data.TotalSavings),
		TotalAnnualSavings:  money.RoundUSD(data.TotalSavings * 12),
	}
	if data.Anomalies != nil {
		metrics.AnomalyCount = data.Anomalies.TotalAnomalies
		metrics.ExcessSpend = data.Anomalies.TotalExcessSpend
	}
	if data.Governance != nil {
		metrics.HighRiskCount = data.Governance.Summary.HighRiskCount
		metrics.RecommendationCount = data.Governance.Summary.TotalRecommendations
	}
	return metrics
}

// topDisks returns the n most expensive unattached disks across all tenants.
func topDisks(report domain.TenantAuditReport, n int) []domain.DiskFinding {
	var disks []domain.DiskFinding
	for _, tenant := range report.Tenants {
		disks = append(disks, tenant.UnattachedDisks...)
	}
	sort.SliceStable(disks, func(i, j int) bool {
		return disks[i].MonthlyCost > disks[j].MonthlyCost
	})
	if len(disks) > n {
		disks = disks[:n]
	}
	return disks
}

func renderMarkdown(data reportData) (string, error) {
	funcMap := template.FuncMap{
		"usd": func(v float64) string {
			return "$" + groupThousands(decimal.NewFromFloat(v).Round(2).StringFixed(2))
		},
		"pct": func(v float64) string {
			return fmt.Sprintf("%.1f%%", v)
		},
		"times": func(v, factor float64) float64 {
			return v * factor
		},
		"capitalize": func(s string) string {
			if s == "" {
				return s
			}
			return strings.ToUpper(s[:1]) + s[1:]
		},
		"truncate": func(s string, n int) string {
			if len(s) <= n {
				return s
			}
			return s[:n] + "..."
		},
		"head": func(n int, recs []domain.ScoredRecommendation) []domain.ScoredRecommendation {
			if len(recs) > n {
				return recs[:n]
			}
			return recs
		},
		"headAnomalies": func(n int, records []domain.AnomalyRecord) []domain.AnomalyRecord {
			if len(records) > n {
				return records[:n]
			}
			return records
		},
	}

	tmpl := `# FinOps ROI Report
**Generated:** {{.Date}}
**Reporting Period:** {{capitalize .Period}}

---

## Executive Summary

This report provides an overview of your Azure cloud financial operations,
highlighting cost optimization opportunities, security risks, and potential ROI.

## Key Metrics
{{if .Anomalies}}
### Cost Anomalies Detected
- **Anomalies Found:** {{.Anomalies.TotalAnomalies}}
- **Excess Spend:** {{usd .Anomalies.TotalExcessSpend}}
- **Potential {{capitalize .Period}} Impact:** {{usd (times .Anomalies.TotalExcessSpend .Multiplier)}}
{{end}}{{if .Audit}}
### Wasteful Resources Identified
- **Monthly Savings Potential:** {{usd .Audit.TotalMonthlySavings}}
- **Annual Savings Potential:** {{usd .Audit.TotalAnnualSavings}}
{{end}}{{if .Governance}}
### Security & Compliance Risks
- **High-Risk Items:** {{.Governance.Summary.HighRiskCount}}
- **Medium-Risk Items:** {{.Governance.Summary.MediumRiskCount}}
- **Compliance Savings:** {{usd .Governance.Summary.PotentialMonthlySavings}}/month
{{end}}
### Total ROI Opportunity
- **{{capitalize .Period}} Savings:** {{usd (times .TotalSavings .Multiplier)}}
- **3-Year Projection:** {{usd (times .TotalSavings 36.0)}}

---

## Detailed Findings
{{if .Anomalies}}{{if .Anomalies.Anomalies}}
### Top Cost Anomalies

| Service | Resource Group | Actual Cost | Variance |
|---------|----------------|-------------|----------|
{{range headAnomalies 5 .Anomalies.Anomalies}}| {{.ServiceName}} | {{.ResourceGroup}} | {{usd .ActualCost}} | +{{pct .VariancePct}} |
{{end}}
**Recommendation:** Investigate these services for unexpected scaling or configuration changes.
{{end}}{{end}}{{if .TopDisks}}
### Top Wasteful Resources

| Resource | Type | Size | Monthly Cost |
|----------|------|------|--------------|
{{range .TopDisks}}| {{.DiskName}} | {{.SKU}} | {{.SizeGB}}GB | {{usd .MonthlyCost}} |
{{end}}
**Recommendation:** Delete or archive these unattached resources to realize immediate savings.
{{end}}{{if .Governance}}{{if .Governance.Recommendations}}
### Top Security & Compliance Risks

| Risk | Category | Impact | Effort |
|------|----------|--------|--------|
{{range head 5 .Governance.Recommendations}}| {{truncate .Problem 50}} | {{.Category}} | Risk {{.RiskScore}}/10 | {{.EstimatedEffortHours}}h |
{{end}}
**Recommendation:** Prioritize high-risk items to maintain compliance and security posture.
{{end}}{{end}}
---

## Recommended Actions

1. **Immediate (This Week)**
   - Review and delete unattached disks and idle public IPs
   - Investigate top cost anomalies
   - Address critical security risks (Risk Score 9-10)

2. **Short-term (This Month)**
   - Implement budget alerts for anomaly-prone services
   - Remediate high-risk compliance items (Risk Score 7-8)
   - Establish monthly FinOps review cadence

3. **Long-term (This Quarter)**
   - Optimize resource sizing based on usage patterns
   - Implement automated cleanup policies
   - Achieve full ISO 27001 and NIA Qatar compliance

---

*This report was generated automatically. For detailed technical analysis,
please consult with your FinOps team.*
`

	t, err := template.New("summary").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// groupThousands inserts commas into the integer part of a fixed-point
// decimal string, matching the report's currency style.
func groupThousands(s string) string {
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")

	var sb strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}

	out := sb.String()
	if fracPart != "" {
		out += "." + fracPart
	}
	if neg {
		out = "-" + out
	}
	return out
}
