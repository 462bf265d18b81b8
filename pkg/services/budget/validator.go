package budget

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finopslab/sentinel/pkg/azerr"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/money"
	"github.com/finopslab/sentinel/pkg/services/pricing"
	"github.com/rs/zerolog"
)

// DefaultRegion prices templates that do not pin a region.
const DefaultRegion = "eastus"

const premiumWarningThreshold = 50.0

// Template is the subset of an ARM deployment template the validator reads.
type Template struct {
	Resources []Resource `json:"resources"`
}

// Resource is one ARM template resource definition.
type Resource struct {
	Type       string             `json:"type"`
	Name       string             `json:"name"`
	SKU        *ResourceSKU       `json:"sku,omitempty"`
	Properties ResourceProperties `json:"properties"`
}

type ResourceSKU struct {
	Name string `json:"name"`
}

type ResourceProperties struct {
	HardwareProfile *HardwareProfile `json:"hardwareProfile,omitempty"`
	DiskSizeGB      float64          `json:"diskSizeGB,omitempty"`
}

type HardwareProfile struct {
	VMSize string `json:"vmSize"`
}

// Options tunes a validation run.
type Options struct {
	// BudgetLimit is the monthly USD ceiling. Nil disables the check.
	BudgetLimit *float64
	Region      string
}

// ParseTemplate decodes an ARM template from raw JSON.
func ParseTemplate(raw []byte) (Template, error) {
	var tmpl Template
	if err := json.Unmarshal(raw, &tmpl); err != nil {
		return Template{}, &azerr.ValidationError{
			Message: fmt.Sprintf("invalid JSON in deployment template: %v", err),
		}
	}
	return tmpl, nil
}

// Validate estimates a deployment's monthly cost from the static pricing
// catalog and checks it against an optional budget limit. Templates with no
// resources fail validation, an empty deployment is never intentional.
func Validate(ctx context.Context, tmpl Template, opts Options) (domain.BudgetReport, error) {
	logger := zerolog.Ctx(ctx)

	region := opts.Region
	if region == "" {
		region = DefaultRegion
	}
	logger.Info().Str("region", region).Msg("validating deployment budget")

	if len(tmpl.Resources) == 0 {
		return domain.BudgetReport{}, &azerr.ValidationError{Message: "no resources found in template"}
	}

	report := domain.BudgetReport{
		Region:            region,
		ResourcesAnalyzed: len(tmpl.Resources),
		WithinBudget:      true,
	}

	totalMonthly := 0.0
	for _, resource := range tmpl.Resources {
		estimate, ok := extractEstimate(resource, region)
		if !ok {
			logger.Debug().Str("resource_type", resource.Type).Msg("no SKU information, skipping resource")
			continue
		}

		monthlyCost, priced := pricing.ResourceCost(estimate)
		if !priced {
			logger.Warn().
				Str("resource_type", resource.Type).
				Str("sku", estimate.SKU).
				Msg("no pricing data for resource")
			continue
		}

		report.Breakdown = append(report.Breakdown, domain.ResourceCostLine{
			ResourceType: resource.Type,
			ResourceName: resourceName(resource),
			SKU:          estimate.SKU,
			MonthlyCost:  money.RoundUSD(monthlyCost),
		})
		totalMonthly += monthlyCost

		if strings.Contains(estimate.SKU, "Premium") && monthlyCost > premiumWarningThreshold {
			report.Warnings = append(report.Warnings, fmt.Sprintf(
				"%s: Premium SKU detected - consider Standard for non-production ($%.2f/mo)",
				resourceName(resource), monthlyCost))
		}
	}

	report.ResourcesPriced = len(report.Breakdown)
	report.EstimatedMonthlyCost = money.RoundUSD(totalMonthly)
	report.EstimatedAnnualCost = money.RoundUSD(totalMonthly * 12)

	if opts.BudgetLimit != nil {
		limit := *opts.BudgetLimit
		report.BudgetLimit = &limit
		report.WithinBudget = totalMonthly <= limit
		if !report.WithinBudget {
			overrun := fmt.Sprintf("BUDGET EXCEEDED: Estimated cost $%.2f exceeds budget $%.2f",
				totalMonthly, limit)
			report.Warnings = append([]string{overrun}, report.Warnings...)
		}
	}

	logger.Info().
		Float64("monthly_cost", report.EstimatedMonthlyCost).
		Bool("within_budget", report.WithinBudget).
		Msg("budget validation complete")
	return report, nil
}

// ValidateRaw parses and validates a template in one step.
func ValidateRaw(ctx context.Context, raw []byte, opts Options) (domain.BudgetReport, error) {
	tmpl, err := ParseTemplate(raw)
	if err != nil {
		return domain.BudgetReport{}, err
	}
	return Validate(ctx, tmpl, opts)
}

// extractEstimate maps an ARM resource to a priceable estimate. Resource
// types outside the catalog and SKU-less resources report ok=false.
func extractEstimate(resource Resource, region string) (pricing.Estimate, bool) {
	switch resource.Type {
	case pricing.ResourceTypeVirtualMachine:
		if resource.Properties.HardwareProfile == nil || resource.Properties.HardwareProfile.VMSize == "" {
			return pricing.Estimate{}, false
		}
		return pricing.Estimate{
			ResourceType: resource.Type,
			SKU:          resource.Properties.HardwareProfile.VMSize,
			Region:       region,
		}, true

	case pricing.ResourceTypeDisk:
		if resource.SKU == nil || resource.SKU.Name == "" {
			return pricing.Estimate{}, false
		}
		return pricing.Estimate{
			ResourceType: resource.Type,
			SKU:          resource.SKU.Name,
			SizeGB:       resource.Properties.DiskSizeGB,
			Region:       region,
		}, true

	case pricing.ResourceTypePublicIP:
		sku := "Standard"
		if resource.SKU != nil && resource.SKU.Name != "" {
			sku = resource.SKU.Name
		}
		return pricing.Estimate{ResourceType: resource.Type, SKU: sku, Region: region}, true

	case pricing.ResourceTypeStorageAccount:
		if resource.SKU == nil || resource.SKU.Name == "" {
			return pricing.Estimate{}, false
		}
		return pricing.Estimate{
			ResourceType: resource.Type,
			SKU:          resource.SKU.Name,
			Region:       region,
		}, true
	}
	return pricing.Estimate{}, false
}

func resourceName(resource Resource) string {
	if resource.Name == "" {
		return "Unknown"
	}
	return resource.Name
}
