package pricing

// Azure resource types covered by the static catalog.
const (
	ResourceTypeVirtualMachine = "Microsoft.Compute/virtualMachines"
	ResourceTypeDisk           = "Microsoft.Compute/disks"
	ResourceTypePublicIP       = "Microsoft.Network/publicIPAddresses"
	ResourceTypeStorageAccount = "Microsoft.Storage/storageAccounts"
)

// diskTier is one billable size step of a managed disk SKU.
type diskTier struct {
	SizeGB      int
	MonthlyCost float64
}

// Monthly pay-as-you-go estimates in USD, East US. The catalog is built
// once at process start and never mutated; production deployments would
// refresh it from the Price Sheet API.
var (
	vmMonthlyCost = map[string]float64{
		"Standard_B1s":    7.59,
		"Standard_B2s":    30.37,
		"Standard_D2s_v3": 96.36,
		"Standard_D4s_v3": 192.72,
		"Standard_D8s_v3": 385.44,
		"Standard_E2s_v3": 109.50,
		"Standard_E4s_v3": 219.00,
	}

	// Tiers are kept sorted ascending by size.
	diskTiers = map[string][]diskTier{
		"Standard_LRS": {
			{32, 1.54},
			{64, 3.07},
			{128, 6.14},
			{256, 12.29},
			{512, 24.58},
			{1024, 49.15},
		},
		"Premium_LRS": {
			{32, 4.81},
			{64, 9.62},
			{128, 19.71},
			{256, 39.42},
			{512, 78.85},
			{1024, 157.70},
		},
	}

	publicIPMonthlyCost = map[string]float64{
		"Basic":    3.65,
		"Standard": 3.65,
	}

	// USD per GB per month.
	storagePerGBMonth = map[string]float64{
		"Standard_LRS": 0.0184,
		"Standard_GRS": 0.0368,
		"Premium_LRS":  0.15,
	}
)
