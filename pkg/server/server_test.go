package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	handlers "github.com/finopslab/sentinel/pkg/handlers/finops"
	"github.com/finopslab/sentinel/pkg/models/api"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/services/summary"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAnomalyService struct {
	mock.Mock
}

func (m *mockAnomalyService) Detect(ctx context.Context, subscriptionIDs []string, threshold float64) (domain.AnomalyReport, error) {
	args := m.Called(ctx, subscriptionIDs, threshold)
	return args.Get(0).(domain.AnomalyReport), args.Error(1)
}

type mockGovernanceService struct {
	mock.Mock
}

func (m *mockGovernanceService) Score(ctx context.Context, subscriptionIDs []string, minRiskScore int) (domain.GovernanceReport, error) {
	args := m.Called(ctx, subscriptionIDs, minRiskScore)
	return args.Get(0).(domain.GovernanceReport), args.Error(1)
}

type mockAuditService struct {
	mock.Mock
}

func (m *mockAuditService) Audit(ctx context.Context, tenantIDs, subscriptionIDs []string) (domain.TenantAuditReport, error) {
	args := m.Called(ctx, tenantIDs, subscriptionIDs)
	return args.Get(0).(domain.TenantAuditReport), args.Error(1)
}

type mockSummaryService struct {
	mock.Mock
}

func (m *mockSummaryService) Compose(ctx context.Context, opts summary.Options) (domain.ExecutiveSummary, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(domain.ExecutiveSummary), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(nil))

	anomalies := new(mockAnomalyService)
	governance := new(mockGovernanceService)
	audits := new(mockAuditService)
	summaries := new(mockSummaryService)

	config := Config{
		Addr:            ":8080",
		ShutdownTimeout: 10 * time.Second,
		Dependencies: Dependencies{
			Anomalies:  anomalies,
			Governance: governance,
			Audits:     audits,
			Summaries:  summaries,
			Defaults: handlers.Defaults{
				SubscriptionIDs:  []string{"sub-1"},
				AnomalyThreshold: 1.5,
				MinRiskScore:     5,
				Region:           "eastus",
			},
		},
	}
	webAPI := NewWebAPI(logger, config)
	testServer := httptest.NewServer(webAPI.Router())
	defer testServer.Close()

	t.Run("GetAnomalies", func(t *testing.T) {
		anomalies.On("Detect", mock.Anything, []string{"sub-1"}, 1.5).
			Return(domain.AnomalyReport{TotalAnomalies: 0, Threshold: 1.5}, nil).Once()

		resp, err := http.Get(testServer.URL + "/api/v1/anomalies")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-Request-Id"))

		var report api.AnomalyReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
		assert.Equal(t, 1.5, report.Threshold)
		assert.NotNil(t, report.Anomalies)
	})

	t.Run("GetRecommendations", func(t *testing.T) {
		governance.On("Score", mock.Anything, []string{"sub-1"}, 5).
			Return(domain.GovernanceReport{MinRiskScore: 5}, nil).Once()

		resp, err := http.Get(testServer.URL + "/api/v1/recommendations")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("GetAudit", func(t *testing.T) {
		audits.On("Audit", mock.Anything, mock.Anything, []string{"sub-1"}).
			Return(domain.TenantAuditReport{TenantsAudited: 1}, nil).Once()

		resp, err := http.Get(testServer.URL + "/api/v1/audit")
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("UnknownRoute", func(t *testing.T) {
		resp, err := http.Get(testServer.URL + "/api/v1/unknown")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, string(body))
	})

	anomalies.AssertExpectations(t)
	governance.AssertExpectations(t)
	audits.AssertExpectations(t)
}
