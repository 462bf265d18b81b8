package main

import (
	"fmt"
	"os"
	"time"

	"github.com/finopslab/sentinel/pkg/config"
	handlers "github.com/finopslab/sentinel/pkg/handlers/finops"
	"github.com/finopslab/sentinel/pkg/server"
	"github.com/finopslab/sentinel/pkg/services/anomaly"
	"github.com/finopslab/sentinel/pkg/services/audit"
	"github.com/finopslab/sentinel/pkg/services/azure"
	"github.com/finopslab/sentinel/pkg/services/governance"
	"github.com/finopslab/sentinel/pkg/services/summary"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the FinOps analysis web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to an optional sentinel config file (environment variables apply otherwise)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	azureCfg, err := azure.LoadConfig(ctx, cfg.Azure.Profile)
	if err != nil {
		return fmt.Errorf("failed to load Azure profile: %w", err)
	}

	subscriptions := cfg.Azure.SubscriptionIDs
	if len(subscriptions) == 0 {
		subscriptions = azureCfg.SubscriptionIDs
	}
	tenants := cfg.Azure.CSPTenantIDs
	if len(tenants) == 0 {
		tenants = azureCfg.CSPTenantIDs
	}

	logger.Info().
		Str("profile", cfg.Azure.Profile).
		Int("subscriptions", len(subscriptions)).
		Int("csp_tenants", len(tenants)).
		Msg("Azure profile loaded")

	factory := azure.NewClientFactory(azureCfg.Credentials)
	inventory := azure.NewInventory(factory)

	detectorSettings := anomaly.DefaultSettings()
	detectorSettings.MaxWorkers = cfg.Analysis.MaxWorkers
	detector := anomaly.NewDetector(azure.NewCostQuery(factory), detectorSettings)
	scorer := governance.NewScorer(azure.NewAdvisorQuery(factory), governance.DefaultSettings())
	auditor := audit.NewAuditor(inventory, inventory, audit.DefaultSettings())
	composer := summary.NewComposer(detector, auditor, scorer)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            cfg.Server.Addr(),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Anomalies:  detector,
			Governance: scorer,
			Audits:     auditor,
			Summaries:  composer,
			Defaults: handlers.Defaults{
				SubscriptionIDs:  subscriptions,
				CSPTenantIDs:     tenants,
				AnomalyThreshold: cfg.Analysis.AnomalyThreshold,
				MinRiskScore:     cfg.Analysis.MinRiskScore,
				Region:           cfg.Analysis.Region,
			},
		},
	})

	return webAPI.Start()
}
