package azure

import (
	"fmt"
	"sync"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/advisor/armadvisor"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/compute/armcompute/v6"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/network/armnetwork/v6"
)

// ClientFactory builds and caches ARM clients. Cost management is scoped
// per query, the remaining clients are scoped per subscription.
type ClientFactory struct {
	credentials azcore.TokenCredential

	mu          sync.Mutex
	costFactory *armcostmanagement.ClientFactory
	advisor     map[string]*armadvisor.RecommendationsClient
	disks       map[string]*armcompute.DisksClient
	publicIPs   map[string]*armnetwork.PublicIPAddressesClient
}

func NewClientFactory(credentials azcore.TokenCredential) *ClientFactory {
	return &ClientFactory{
		credentials: credentials,
		advisor:     make(map[string]*armadvisor.RecommendationsClient),
		disks:       make(map[string]*armcompute.DisksClient),
		publicIPs:   make(map[string]*armnetwork.PublicIPAddressesClient),
	}
}

func (f *ClientFactory) CostQueryClient() (*armcostmanagement.QueryClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.costFactory == nil {
		factory, err := armcostmanagement.NewClientFactory(f.credentials, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cost management client factory: %w", err)
		}
		f.costFactory = factory
	}
	return f.costFactory.NewQueryClient(), nil
}

func (f *ClientFactory) RecommendationsClient(subscriptionID string) (*armadvisor.RecommendationsClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.advisor[subscriptionID]; ok {
		return client, nil
	}
	client, err := armadvisor.NewRecommendationsClient(subscriptionID, f.credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create advisor client: %w", err)
	}
	f.advisor[subscriptionID] = client
	return client, nil
}

func (f *ClientFactory) DisksClient(subscriptionID string) (*armcompute.DisksClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.disks[subscriptionID]; ok {
		return client, nil
	}
	client, err := armcompute.NewDisksClient(subscriptionID, f.credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create disks client: %w", err)
	}
	f.disks[subscriptionID] = client
	return client, nil
}

func (f *ClientFactory) PublicIPsClient(subscriptionID string) (*armnetwork.PublicIPAddressesClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if client, ok := f.publicIPs[subscriptionID]; ok {
		return client, nil
	}
	client, err := armnetwork.NewPublicIPAddressesClient(subscriptionID, f.credentials, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create public IP client: %w", err)
	}
	f.publicIPs[subscriptionID] = client
	return client, nil
}
