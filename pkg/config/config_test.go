package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "default", cfg.Azure.Profile)
	assert.Empty(t, cfg.Azure.SubscriptionIDs)
	assert.Equal(t, 1.5, cfg.Analysis.AnomalyThreshold)
	assert.Equal(t, 5, cfg.Analysis.MinRiskScore)
	assert.Equal(t, 4, cfg.Analysis.MaxWorkers)
	assert.Equal(t, "eastus", cfg.Analysis.Region)
	assert.Equal(t, "localhost:8080", cfg.Server.Addr())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("AZURE_SUBSCRIPTION_IDS", "sub-1, sub-2")
	t.Setenv("CSP_TENANT_IDS", "tenant-1")
	t.Setenv("SENTINEL_ANALYSIS_ANOMALY_THRESHOLD", "2.0")
	t.Setenv("SENTINEL_SERVER_PORT", "9090")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, []string{"sub-1", "sub-2"}, cfg.Azure.SubscriptionIDs)
	assert.Equal(t, []string{"tenant-1"}, cfg.Azure.CSPTenantIDs)
	assert.Equal(t, 2.0, cfg.Analysis.AnomalyThreshold)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
azure:
  profile: production
  subscription_ids:
    - sub-a
analysis:
  min_risk_score: 7
server:
  host: 0.0.0.0
  port: 8443
`), 0o644))

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Azure.Profile)
	assert.Equal(t, []string{"sub-a"}, cfg.Azure.SubscriptionIDs)
	assert.Equal(t, 7, cfg.Analysis.MinRiskScore)
	assert.Equal(t, "0.0.0.0:8443", cfg.Server.Addr())
}

func TestLoad_MissingFileFails(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	require.Error(t, err)
}
