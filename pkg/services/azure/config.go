package azure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"gopkg.in/ini.v1"
)

const (
	DefaultProfile = "default"
	DefaultRegion  = "eastus"
)

// Config is one Azure profile from ~/.azure/config. A profile can span
// multiple subscriptions and, for CSP partners, multiple delegated tenants.
type Config struct {
	SubscriptionIDs []string
	TenantID        string
	CSPTenantIDs    []string
	ClientID        string
	Region          string
	Credentials     azcore.TokenCredential
}

func LoadConfig(ctx context.Context, profile string) (*Config, error) {
	if profile == "" {
		profile = DefaultProfile
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("unable to get home directory: %w", err)
	}

	configPath := filepath.Join(homeDir, ".azure", "config")
	cfg, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to load Azure config file: %w", err)
	}

	section, err := cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found in Azure config: %w", profile, err)
	}

	config := &Config{
		SubscriptionIDs: splitIDs(section.Key("subscriptions").MustString(section.Key("subscription").String())),
		TenantID:        section.Key("tenant").String(),
		CSPTenantIDs:    splitIDs(section.Key("csp_tenants").String()),
		ClientID:        section.Key("client_id").String(),
		Region:          section.Key("region").MustString(DefaultRegion),
	}

	if len(config.SubscriptionIDs) == 0 {
		return nil, fmt.Errorf("no subscription IDs found in profile %s", profile)
	}

	credentials, err := getCredentials(profile)
	if err != nil {
		return nil, fmt.Errorf("failed to get Azure credentials: %w", err)
	}
	config.Credentials = credentials
	return config, nil
}

// splitIDs parses a comma separated ID list, dropping empty entries.
func splitIDs(raw string) []string {
	var ids []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			ids = append(ids, trimmed)
		}
	}
	return ids
}

func getCredentials(profile string) (azcore.TokenCredential, error) {
	// Set AZURE_PROFILE environment variable to make Azure SDK use the right profile
	if err := os.Setenv("AZURE_PROFILE", profile); err != nil {
		return nil, fmt.Errorf("failed to set Azure profile: %w", err)
	}

	// AzureCLICredential will use the profile specified above
	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}

	return cred, nil
}
