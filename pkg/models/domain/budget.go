package domain

// ResourceCostLine is the priced portion of one template resource.
type ResourceCostLine struct {
	ResourceType string
	ResourceName string
	SKU          string
	MonthlyCost  float64
}

// BudgetReport is the outcome of validating a deployment template
// against the pricing catalog and an optional budget limit.
type BudgetReport struct {
	EstimatedMonthlyCost float64
	EstimatedAnnualCost  float64
	BudgetLimit          *float64
	WithinBudget         bool
	Breakdown            []ResourceCostLine
	Warnings             []string
	Region               string
	ResourcesAnalyzed    int
	ResourcesPriced      int
}
