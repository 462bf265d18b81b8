package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVMMonthlyCost(t *testing.T) {
	cost, ok := VMMonthlyCost("Standard_D4s_v3")
	require.True(t, ok)
	assert.Equal(t, 192.72, cost)

	_, ok = VMMonthlyCost("Standard_Z99_v9")
	assert.False(t, ok)
}

func TestDiskMonthlyCost_TierRounding(t *testing.T) {
	t.Run("exact tier match", func(t *testing.T) {
		cost, ok := DiskMonthlyCost("Premium_LRS", 128)
		require.True(t, ok)
		assert.Equal(t, 19.71, cost)
	})

	t.Run("rounds up to next tier", func(t *testing.T) {
		cost, ok := DiskMonthlyCost("Premium_LRS", 200)
		require.True(t, ok)
		assert.Equal(t, 39.42, cost) // 256 GB tier
	})

	t.Run("oversized request uses largest tier", func(t *testing.T) {
		cost, ok := DiskMonthlyCost("Standard_LRS", 2000)
		require.True(t, ok)
		assert.Equal(t, 49.15, cost) // 1024 GB tier, never fails
	})

	t.Run("unknown sku reports not found", func(t *testing.T) {
		_, ok := DiskMonthlyCost("UltraMystery_LRS", 128)
		assert.False(t, ok)
	})
}

func TestPublicIPMonthlyCost(t *testing.T) {
	assert.Equal(t, 3.65, PublicIPMonthlyCost("Basic"))
	assert.Equal(t, 3.65, PublicIPMonthlyCost("SomethingElse")) // Standard fallback
}

func TestStorageAccountMonthlyCost(t *testing.T) {
	cost, ok := StorageAccountMonthlyCost("Standard_LRS", 500)
	require.True(t, ok)
	assert.InDelta(t, 9.2, cost, 1e-9)

	_, ok = StorageAccountMonthlyCost("Mystery_ZRS", 500)
	assert.False(t, ok)
}

func TestResourceCost(t *testing.T) {
	tests := []struct {
		name     string
		estimate Estimate
		want     float64
		found    bool
	}{
		{
			name:     "virtual machine",
			estimate: Estimate{ResourceType: ResourceTypeVirtualMachine, SKU: "Standard_B2s"},
			want:     30.37,
			found:    true,
		},
		{
			name:     "disk with default size",
			estimate: Estimate{ResourceType: ResourceTypeDisk, SKU: "Standard_LRS"},
			want:     6.14, // 128 GB default
			found:    true,
		},
		{
			name:     "public ip",
			estimate: Estimate{ResourceType: ResourceTypePublicIP, SKU: "Standard"},
			want:     3.65,
			found:    true,
		},
		{
			name:     "storage account with default size",
			estimate: Estimate{ResourceType: ResourceTypeStorageAccount, SKU: "Premium_LRS"},
			want:     15.0, // 100 GB default
			found:    true,
		},
		{
			name:     "unsupported resource type",
			estimate: Estimate{ResourceType: "Microsoft.Web/sites", SKU: "S1"},
			found:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cost, ok := ResourceCost(tt.estimate)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.InDelta(t, tt.want, cost, 1e-9)
			}
		})
	}
}

func TestSavingsPotential(t *testing.T) {
	savings := SavingsPotential([]Estimate{
		{ResourceType: ResourceTypeVirtualMachine, SKU: "Standard_B1s"},
		{ResourceType: ResourceTypePublicIP, SKU: "Basic"},
		{ResourceType: "Microsoft.Web/sites", SKU: "S1"}, // unpriced, skipped
	})

	assert.Equal(t, 11.24, savings.MonthlySavings)
	assert.Equal(t, 134.88, savings.AnnualSavings)
}
