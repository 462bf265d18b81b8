package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/finopslab/sentinel/pkg/azerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDiskInventory is a mock implementation of DiskInventory for testing
type MockDiskInventory struct {
	mock.Mock
}

func (m *MockDiskInventory) Disks(ctx context.Context, subscriptionID string) ([]DiskAsset, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).([]DiskAsset), args.Error(1)
}

// MockIPInventory is a mock implementation of IPInventory for testing
type MockIPInventory struct {
	mock.Mock
}

func (m *MockIPInventory) PublicIPs(ctx context.Context, subscriptionID string) ([]IPAsset, error) {
	args := m.Called(ctx, subscriptionID)
	return args.Get(0).([]IPAsset), args.Error(1)
}

func testSettings() Settings {
	s := DefaultSettings()
	s.Policy.InitialDelay = time.Millisecond
	s.Policy.Sleep = func(time.Duration) {}
	return s
}

func TestAudit_FindsUnattachedDisksAndIdleIPs(t *testing.T) {
	ctx := context.Background()
	disks := new(MockDiskInventory)
	ips := new(MockIPInventory)

	disks.On("Disks", mock.Anything, "sub-1").Return([]DiskAsset{
		{Name: "orphan", ResourceGroup: "rg-1", SKU: "Premium_LRS", State: DiskStateUnattached, SizeGB: 256},
		{Name: "in-use", ResourceGroup: "rg-1", SKU: "Premium_LRS", State: "Attached", SizeGB: 512},
	}, nil)
	ips.On("PublicIPs", mock.Anything, "sub-1").Return([]IPAsset{
		{Name: "idle-ip", ResourceGroup: "rg-1", SKU: "Standard", Attached: false},
		{Name: "nat-ip", ResourceGroup: "rg-1", SKU: "Standard", Attached: true},
	}, nil)

	report, err := NewAuditor(disks, ips, testSettings()).Audit(ctx, nil, []string{"sub-1"})

	require.NoError(t, err)
	require.Len(t, report.Tenants, 1)
	tenant := report.Tenants[0]
	assert.Equal(t, "current", tenant.TenantID)
	assert.Equal(t, "Current Tenant", tenant.TenantName)

	require.Len(t, tenant.UnattachedDisks, 1)
	assert.Equal(t, "orphan", tenant.UnattachedDisks[0].DiskName)
	assert.Equal(t, 39.42, tenant.UnattachedDisks[0].MonthlyCost) // Premium_LRS 256 GiB tier

	require.Len(t, tenant.IdlePublicIPs, 1)
	assert.Equal(t, "idle-ip", tenant.IdlePublicIPs[0].IPName)
	assert.Equal(t, 3.65, tenant.IdlePublicIPs[0].MonthlyCost)
	assert.Equal(t, "Not allocated", tenant.IdlePublicIPs[0].IPAddress)

	assert.Equal(t, 43.07, tenant.TotalMonthlySavings)
	assert.Equal(t, 43.07, report.TotalMonthlySavings)
	assert.Equal(t, 516.84, report.TotalAnnualSavings)
	assert.Equal(t, 1, report.TenantsAudited)
	assert.Equal(t, 1, report.SubscriptionsAudited)
}

func TestAudit_DiskWithUnknownSizeDefaultsTo128GB(t *testing.T) {
	ctx := context.Background()
	disks := new(MockDiskInventory)
	ips := new(MockIPInventory)

	disks.On("Disks", mock.Anything, "sub-1").Return([]DiskAsset{
		{Name: "sizeless", SKU: "Standard_LRS", State: DiskStateUnattached},
	}, nil)
	ips.On("PublicIPs", mock.Anything, "sub-1").Return([]IPAsset{}, nil)

	report, err := NewAuditor(disks, ips, testSettings()).Audit(ctx, nil, []string{"sub-1"})

	require.NoError(t, err)
	require.Len(t, report.Tenants[0].UnattachedDisks, 1)
	assert.Equal(t, 6.14, report.Tenants[0].UnattachedDisks[0].MonthlyCost) // Standard_LRS 128 GiB tier
}

func TestAudit_FailedInventoryCallIsIsolated(t *testing.T) {
	ctx := context.Background()
	disks := new(MockDiskInventory)
	ips := new(MockIPInventory)

	disks.On("Disks", mock.Anything, "sub-bad").
		Return([]DiskAsset{}, &azerr.ClientError{StatusCode: 403, Cause: errors.New("forbidden")})
	ips.On("PublicIPs", mock.Anything, "sub-bad").Return([]IPAsset{
		{Name: "ip-1", SKU: "Basic", Attached: false},
	}, nil)
	disks.On("Disks", mock.Anything, "sub-good").Return([]DiskAsset{
		{Name: "d-1", SKU: "Standard_LRS", State: DiskStateUnattached, SizeGB: 32},
	}, nil)
	ips.On("PublicIPs", mock.Anything, "sub-good").Return([]IPAsset{}, nil)

	report, err := NewAuditor(disks, ips, testSettings()).Audit(ctx, nil, []string{"sub-bad", "sub-good"})

	require.NoError(t, err)
	tenant := report.Tenants[0]
	// The failed disk fetch on sub-bad is skipped, its IP findings and the
	// other subscription's findings still land.
	require.Len(t, tenant.UnattachedDisks, 1)
	assert.Equal(t, "d-1", tenant.UnattachedDisks[0].DiskName)
	require.Len(t, tenant.IdlePublicIPs, 1)
	assert.Equal(t, "ip-1", tenant.IdlePublicIPs[0].IPName)
}

func TestAudit_TransientInventoryErrorsAreRetried(t *testing.T) {
	ctx := context.Background()
	disks := new(MockDiskInventory)
	ips := new(MockIPInventory)

	disks.On("Disks", mock.Anything, "sub-1").
		Return([]DiskAsset{}, &azerr.TransientError{StatusCode: 503, Cause: errors.New("unavailable")}).Once()
	disks.On("Disks", mock.Anything, "sub-1").Return([]DiskAsset{
		{Name: "d-1", SKU: "Standard_LRS", State: DiskStateUnattached, SizeGB: 64},
	}, nil).Once()
	ips.On("PublicIPs", mock.Anything, "sub-1").Return([]IPAsset{}, nil)

	report, err := NewAuditor(disks, ips, testSettings()).Audit(ctx, nil, []string{"sub-1"})

	require.NoError(t, err)
	require.Len(t, report.Tenants[0].UnattachedDisks, 1)
	disks.AssertNumberOfCalls(t, "Disks", 2)
}

func TestAudit_MultipleTenantsAggregateTotals(t *testing.T) {
	ctx := context.Background()
	disks := new(MockDiskInventory)
	ips := new(MockIPInventory)

	disks.On("Disks", mock.Anything, "sub-1").Return([]DiskAsset{}, nil)
	ips.On("PublicIPs", mock.Anything, "sub-1").Return([]IPAsset{
		{Name: "ip-1", SKU: "Standard", Attached: false},
	}, nil)

	report, err := NewAuditor(disks, ips, testSettings()).Audit(ctx, []string{"t-1", "t-2"}, []string{"sub-1"})

	require.NoError(t, err)
	assert.Equal(t, 2, report.TenantsAudited)
	assert.Equal(t, 2, report.SubscriptionsAudited)
	assert.Equal(t, 7.30, report.TotalMonthlySavings)
	assert.Equal(t, "t-1", report.Tenants[0].TenantID)
	assert.Equal(t, "t-1", report.Tenants[0].TenantName)
}

func TestAudit_NoSubscriptionsIsPreconditionFailure(t *testing.T) {
	ctx := context.Background()

	_, err := NewAuditor(new(MockDiskInventory), new(MockIPInventory), testSettings()).Audit(ctx, nil, nil)

	var validationErr *azerr.ValidationError
	require.ErrorAs(t, err, &validationErr)
}
