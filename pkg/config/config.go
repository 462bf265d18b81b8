package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type AzureConfig struct {
	Profile         string   `mapstructure:"profile"`
	SubscriptionIDs []string `mapstructure:"subscription_ids"`
	CSPTenantIDs    []string `mapstructure:"csp_tenant_ids"`
}

type AnalysisConfig struct {
	AnomalyThreshold float64 `mapstructure:"anomaly_threshold"`
	MinRiskScore     int     `mapstructure:"min_risk_score"`
	MaxWorkers       int     `mapstructure:"max_workers"`
	Region           string  `mapstructure:"region"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type Config struct {
	Azure    AzureConfig    `mapstructure:"azure"`
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Server   ServerConfig   `mapstructure:"server"`
}

func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads configuration from an optional file plus SENTINEL_* environment
// variables. The conventional AZURE_SUBSCRIPTION_IDS and CSP_TENANT_IDS
// variables are honored as well.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("SENTINEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("azure.profile", "default")
	v.SetDefault("azure.subscription_ids", "")
	v.SetDefault("azure.csp_tenant_ids", "")
	v.SetDefault("analysis.anomaly_threshold", 1.5)
	v.SetDefault("analysis.min_risk_score", 5)
	v.SetDefault("analysis.max_workers", 4)
	v.SetDefault("analysis.region", "eastus")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)

	if err := v.BindEnv("azure.subscription_ids", "SENTINEL_AZURE_SUBSCRIPTION_IDS", "AZURE_SUBSCRIPTION_IDS"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}
	if err := v.BindEnv("azure.csp_tenant_ids", "SENTINEL_AZURE_CSP_TENANT_IDS", "CSP_TENANT_IDS"); err != nil {
		return nil, fmt.Errorf("failed to bind environment: %w", err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Comma separated env values arrive as a single element.
	cfg.Azure.SubscriptionIDs = splitList(cfg.Azure.SubscriptionIDs)
	cfg.Azure.CSPTenantIDs = splitList(cfg.Azure.CSPTenantIDs)
	return cfg, nil
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	return out
}
