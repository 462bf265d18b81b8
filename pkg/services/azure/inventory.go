package azure

import (
	"context"
	"strings"
	"time"

	"github.com/finopslab/sentinel/pkg/services/audit"
)

// Inventory enumerates managed disks and public IPs for the tenant audit.
type Inventory struct {
	factory *ClientFactory
}

func NewInventory(factory *ClientFactory) *Inventory {
	return &Inventory{factory: factory}
}

func (inv *Inventory) Disks(ctx context.Context, subscriptionID string) ([]audit.DiskAsset, error) {
	client, err := inv.factory.DisksClient(subscriptionID)
	if err != nil {
		return nil, err
	}

	var assets []audit.DiskAsset
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, disk := range page.Value {
			if disk == nil {
				continue
			}
			asset := audit.DiskAsset{
				SubscriptionID: subscriptionID,
				ResourceGroup:  resourceGroupFromID(deref(disk.ID)),
				Name:           deref(disk.Name),
				Location:       deref(disk.Location),
			}
			if disk.SKU != nil && disk.SKU.Name != nil {
				asset.SKU = string(*disk.SKU.Name)
			}
			if disk.Properties != nil {
				if disk.Properties.DiskState != nil {
					asset.State = string(*disk.Properties.DiskState)
				}
				if disk.Properties.DiskSizeGB != nil {
					asset.SizeGB = *disk.Properties.DiskSizeGB
				}
				if disk.Properties.TimeCreated != nil {
					asset.CreatedDate = disk.Properties.TimeCreated.Format(time.RFC3339)
				}
			}
			assets = append(assets, asset)
		}
	}
	return assets, nil
}

func (inv *Inventory) PublicIPs(ctx context.Context, subscriptionID string) ([]audit.IPAsset, error) {
	client, err := inv.factory.PublicIPsClient(subscriptionID)
	if err != nil {
		return nil, err
	}

	var assets []audit.IPAsset
	pager := client.NewListAllPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, ip := range page.Value {
			if ip == nil {
				continue
			}
			asset := audit.IPAsset{
				SubscriptionID: subscriptionID,
				ResourceGroup:  resourceGroupFromID(deref(ip.ID)),
				Name:           deref(ip.Name),
				Location:       deref(ip.Location),
			}
			if ip.SKU != nil && ip.SKU.Name != nil {
				asset.SKU = string(*ip.SKU.Name)
			}
			if ip.Properties != nil {
				// An IP with no IP configuration is not associated with
				// any NIC or load balancer.
				asset.Attached = ip.Properties.IPConfiguration != nil
				asset.IPAddress = deref(ip.Properties.IPAddress)
			}
			assets = append(assets, asset)
		}
	}
	return assets, nil
}

// resourceGroupFromID extracts the resource group segment of an ARM ID.
func resourceGroupFromID(id string) string {
	parts := strings.Split(id, "/")
	for i := 0; i < len(parts)-1; i++ {
		if strings.EqualFold(parts[i], "resourceGroups") {
			return parts[i+1]
		}
	}
	return "Unknown"
}
