package api

import "encoding/json"

type BudgetRequest struct {
	Template    json.RawMessage `json:"template"`
	BudgetLimit *float64        `json:"budget_limit,omitempty"`
	Region      string          `json:"region,omitempty"`
}

type ResourceCostLine struct {
	ResourceType string  `json:"resource_type"`
	ResourceName string  `json:"resource_name"`
	SKU          string  `json:"sku"`
	MonthlyCost  float64 `json:"monthly_cost"`
}

type BudgetReport struct {
	EstimatedMonthlyCost float64            `json:"estimated_monthly_cost"`
	EstimatedAnnualCost  float64            `json:"estimated_annual_cost"`
	BudgetLimit          *float64           `json:"budget_limit"`
	WithinBudget         bool               `json:"within_budget"`
	Breakdown            []ResourceCostLine `json:"cost_breakdown"`
	Warnings             []string           `json:"warnings"`
	Region               string             `json:"region"`
	ResourcesAnalyzed    int                `json:"resources_analyzed"`
	ResourcesPriced      int                `json:"resources_priced"`
}
