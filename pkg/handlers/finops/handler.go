package finops

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/finopslab/sentinel/pkg/adapters"
	"github.com/finopslab/sentinel/pkg/azerr"
	"github.com/finopslab/sentinel/pkg/models/api"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/services/budget"
	"github.com/finopslab/sentinel/pkg/services/compliance"
	"github.com/finopslab/sentinel/pkg/services/summary"
	"github.com/rs/zerolog"
)

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

// Defaults are applied when a request does not override them.
type Defaults struct {
	SubscriptionIDs  []string
	CSPTenantIDs     []string
	AnomalyThreshold float64
	MinRiskScore     int
	Region           string
}

type Handler struct {
	anomalies  AnomalyService
	governance GovernanceService
	audits     AuditService
	summaries  SummaryService
	defaults   Defaults
}

func NewHandler(anomalies AnomalyService, governance GovernanceService, audits AuditService, summaries SummaryService, defaults Defaults) *Handler {
	return &Handler{
		anomalies:  anomalies,
		governance: governance,
		audits:     audits,
		summaries:  summaries,
		defaults:   defaults,
	}
}

func (h *Handler) GetAnomalies(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	threshold := h.defaults.AnomalyThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			writeError(w, r, &azerr.ValidationError{Message: "threshold must be a positive number"})
			return
		}
		threshold = parsed
	}

	report, err := h.anomalies.Detect(ctx, h.subscriptions(r), threshold)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapAnomalyReportDomainToApi(report))
}

func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	minRiskScore := h.defaults.MinRiskScore
	if raw := r.URL.Query().Get("min_risk_score"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 10 {
			writeError(w, r, &azerr.ValidationError{Message: "min_risk_score must be between 1 and 10"})
			return
		}
		minRiskScore = parsed
	}

	report, err := h.governance.Score(ctx, h.subscriptions(r), minRiskScore)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapGovernanceReportDomainToApi(report))
}

func (h *Handler) PostComplianceOverlay(w http.ResponseWriter, r *http.Request) {
	var request api.OverlayRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeError(w, r, &azerr.ValidationError{Message: "invalid overlay request body"})
		return
	}

	opts := compliance.DefaultOptions()
	if request.CheckISO27001 != nil {
		opts.CheckISO27001 = *request.CheckISO27001
	}
	if request.CheckNIAQatar != nil {
		opts.CheckNIAQatar = *request.CheckNIAQatar
	}

	recommendations := make([]domain.CostRecommendation, 0, len(request.Recommendations))
	for _, rec := range request.Recommendations {
		recommendations = append(recommendations, adapters.MapCostRecommendationApiToDomain(rec))
	}

	report := compliance.Apply(recommendations, opts)
	writeJSON(w, r, http.StatusOK, adapters.MapOverlayReportDomainToApi(report))
}

func (h *Handler) GetAudit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	tenantIDs := h.defaults.CSPTenantIDs
	if raw := r.URL.Query().Get("tenants"); raw != "" {
		tenantIDs = splitParam(raw)
	}

	report, err := h.audits.Audit(ctx, tenantIDs, h.subscriptions(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapTenantAuditReportDomainToApi(report))
}

func (h *Handler) PostBudgetValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, r, &azerr.ValidationError{Message: "failed to read request body"})
		return
	}

	var request api.BudgetRequest
	if err := json.Unmarshal(body, &request); err != nil {
		writeError(w, r, &azerr.ValidationError{Message: "invalid budget request body"})
		return
	}
	if len(request.Template) == 0 {
		writeError(w, r, &azerr.ValidationError{Message: "template is required"})
		return
	}

	region := request.Region
	if region == "" {
		region = h.defaults.Region
	}

	report, err := budget.ValidateRaw(ctx, request.Template, budget.Options{
		BudgetLimit: request.BudgetLimit,
		Region:      region,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapBudgetReportDomainToApi(report))
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts := summary.DefaultOptions(h.subscriptions(r))
	opts.AnomalyThreshold = h.defaults.AnomalyThreshold
	opts.MinRiskScore = h.defaults.MinRiskScore
	if period := r.URL.Query().Get("period"); period != "" {
		if period != summary.PeriodMonthly && period != summary.PeriodAnnual {
			writeError(w, r, &azerr.ValidationError{Message: "period must be monthly or annual"})
			return
		}
		opts.Period = period
	}

	result, err := h.summaries.Compose(ctx, opts)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, adapters.MapExecutiveSummaryDomainToApi(result))
}

func (h *Handler) subscriptions(r *http.Request) []string {
	if raw := r.URL.Query().Get("subscriptions"); raw != "" {
		return splitParam(raw)
	}
	return h.defaults.SubscriptionIDs
}

func splitParam(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	zerolog.Ctx(r.Context()).Error().Err(err).Msg("request failed")
	writeJSON(w, r, statusFor(err), azerr.ToFailure(err))
}

func statusFor(err error) int {
	switch azerr.KindOf(err) {
	case azerr.KindAuthenticationExpired:
		return http.StatusUnauthorized
	case azerr.KindRateLimitExceeded:
		return http.StatusTooManyRequests
	case azerr.KindTransient:
		return http.StatusBadGateway
	case azerr.KindNotFound:
		return http.StatusNotFound
	case azerr.KindClient:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
