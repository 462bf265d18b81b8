package main

import (
	"context"
	"fmt"
	"os"

	"github.com/finopslab/sentinel/pkg/config"
	"github.com/finopslab/sentinel/pkg/runtime/terminal"
	"github.com/finopslab/sentinel/pkg/runtime/terminal/commands"
	"github.com/finopslab/sentinel/pkg/services/anomaly"
	"github.com/finopslab/sentinel/pkg/services/audit"
	"github.com/finopslab/sentinel/pkg/services/azure"
	"github.com/finopslab/sentinel/pkg/services/governance"
	"github.com/finopslab/sentinel/pkg/services/summary"
	"github.com/rs/zerolog"
)

func main() {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()
	ctx := logger.WithContext(context.Background())

	cfg, err := config.Load(os.Getenv("SENTINEL_CONFIG"))
	if err != nil {
		fail(fmt.Errorf("failed to load configuration: %w", err))
	}

	azureCfg, err := azure.LoadConfig(ctx, cfg.Azure.Profile)
	if err != nil {
		fail(fmt.Errorf("failed to load Azure profile: %w", err))
	}

	subscriptions := cfg.Azure.SubscriptionIDs
	if len(subscriptions) == 0 {
		subscriptions = azureCfg.SubscriptionIDs
	}
	tenants := cfg.Azure.CSPTenantIDs
	if len(tenants) == 0 {
		tenants = azureCfg.CSPTenantIDs
	}

	factory := azure.NewClientFactory(azureCfg.Credentials)
	inventory := azure.NewInventory(factory)

	detectorSettings := anomaly.DefaultSettings()
	detectorSettings.MaxWorkers = cfg.Analysis.MaxWorkers
	detector := anomaly.NewDetector(azure.NewCostQuery(factory), detectorSettings)
	scorer := governance.NewScorer(azure.NewAdvisorQuery(factory), governance.DefaultSettings())
	auditor := audit.NewAuditor(inventory, inventory, audit.DefaultSettings())
	composer := summary.NewComposer(detector, auditor, scorer)

	cli := terminal.NewCLI(terminal.Options{
		Dependencies: commands.Dependencies{
			Anomalies:  detector,
			Governance: scorer,
			Audits:     auditor,
			Summaries:  composer,
			Defaults: commands.Defaults{
				SubscriptionIDs: subscriptions,
				TenantIDs:       tenants,
				Region:          azureCfg.Region,
			},
		},
		Output: os.Stdout,
	})

	if err := cli.ExecuteContext(ctx); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
