package pricing

import (
	"github.com/finopslab/sentinel/pkg/money"
)

// Estimate describes what to price. SizeGB applies to disks and storage
// accounts; Region is accepted for forward compatibility, the catalog is
// single-region today.
type Estimate struct {
	ResourceType string
	SKU          string
	SizeGB       float64
	Region       string
}

// Savings is the aggregated value of a set of wasteful resources.
type Savings struct {
	MonthlySavings float64
	AnnualSavings  float64
}

const (
	defaultDiskSizeGB    = 128
	defaultStorageSizeGB = 100
	defaultPublicIPSKU   = "Standard"
)

// VMMonthlyCost returns the flat monthly estimate for a VM SKU.
func VMMonthlyCost(sku string) (float64, bool) {
	cost, ok := vmMonthlyCost[sku]
	return cost, ok
}

// DiskMonthlyCost prices a managed disk by rounding the requested size up
// to the smallest available tier. A request beyond the largest tier is
// billed at the largest tier rather than failing.
func DiskMonthlyCost(sku string, sizeGB int) (float64, bool) {
	tiers, ok := diskTiers[sku]
	if !ok || len(tiers) == 0 {
		return 0, false
	}
	for _, tier := range tiers {
		if tier.SizeGB >= sizeGB {
			return tier.MonthlyCost, true
		}
	}
	return tiers[len(tiers)-1].MonthlyCost, true
}

// PublicIPMonthlyCost returns the flat monthly estimate for a public IP SKU,
// falling back to the Standard price for unknown SKUs.
func PublicIPMonthlyCost(sku string) float64 {
	if cost, ok := publicIPMonthlyCost[sku]; ok {
		return cost
	}
	return publicIPMonthlyCost[defaultPublicIPSKU]
}

// StorageAccountMonthlyCost is linear in stored size, no tiering.
func StorageAccountMonthlyCost(sku string, sizeGB float64) (float64, bool) {
	perGB, ok := storagePerGBMonth[sku]
	if !ok {
		return 0, false
	}
	return perGB * sizeGB, true
}

// ResourceCost estimates the monthly cost of any supported resource.
// Unknown resource types and SKUs report ok=false; callers treat missing
// pricing as a soft warning, not an error.
func ResourceCost(e Estimate) (float64, bool) {
	switch e.ResourceType {
	case ResourceTypeVirtualMachine:
		return VMMonthlyCost(e.SKU)
	case ResourceTypeDisk:
		sizeGB := int(e.SizeGB)
		if sizeGB <= 0 {
			sizeGB = defaultDiskSizeGB
		}
		return DiskMonthlyCost(e.SKU, sizeGB)
	case ResourceTypePublicIP:
		return PublicIPMonthlyCost(e.SKU), true
	case ResourceTypeStorageAccount:
		sizeGB := e.SizeGB
		if sizeGB <= 0 {
			sizeGB = defaultStorageSizeGB
		}
		return StorageAccountMonthlyCost(e.SKU, sizeGB)
	default:
		return 0, false
	}
}

// SavingsPotential sums the monthly cost of the given resources, skipping
// anything the catalog cannot price, and rounds at the boundary only.
func SavingsPotential(estimates []Estimate) Savings {
	monthly := 0.0
	for _, e := range estimates {
		if cost, ok := ResourceCost(e); ok {
			monthly += cost
		}
	}
	return Savings{
		MonthlySavings: money.RoundUSD(monthly),
		AnnualSavings:  money.RoundUSD(monthly * 12),
	}
}
