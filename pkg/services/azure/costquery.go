package azure

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/costmanagement/armcostmanagement"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/services/anomaly"
)

// CostQuery fetches daily actual costs through the Cost Management API,
// grouped by resource group and service name.
type CostQuery struct {
	factory *ClientFactory
}

func NewCostQuery(factory *ClientFactory) *CostQuery {
	return &CostQuery{factory: factory}
}

func (q *CostQuery) ActualCosts(ctx context.Context, subscriptionID string, window anomaly.QueryWindow) ([]domain.CostRecord, error) {
	client, err := q.factory.CostQueryClient()
	if err != nil {
		return nil, err
	}

	end := time.Now().UTC().AddDate(0, 0, -window.OffsetDays)
	start := end.AddDate(0, 0, -window.Days)

	exportType := armcostmanagement.ExportTypeActualCost
	timeframe := armcostmanagement.TimeframeTypeCustom
	granularity := armcostmanagement.GranularityTypeDaily
	dimension := armcostmanagement.QueryColumnTypeDimension
	sum := armcostmanagement.FunctionTypeSum

	params := armcostmanagement.QueryDefinition{
		Type:      &exportType,
		Timeframe: &timeframe,
		TimePeriod: &armcostmanagement.QueryTimePeriod{
			From: &start,
			To:   &end,
		},
		Dataset: &armcostmanagement.QueryDataset{
			Granularity: &granularity,
			Aggregation: map[string]*armcostmanagement.QueryAggregation{
				"totalCost": {
					Name:     to.Ptr("Cost"),
					Function: &sum,
				},
			},
			Grouping: []*armcostmanagement.QueryGrouping{
				{Name: to.Ptr("ResourceGroupName"), Type: &dimension},
				{Name: to.Ptr("ServiceName"), Type: &dimension},
			},
		},
	}

	scope := fmt.Sprintf("/subscriptions/%s", subscriptionID)
	result, err := client.Usage(ctx, scope, params, nil)
	if err != nil {
		return nil, err
	}

	var records []domain.CostRecord
	// Row format: [cost, resource_group, service_name, date]
	for _, row := range result.Properties.Rows {
		if len(row) < 3 {
			continue
		}
		records = append(records, domain.CostRecord{
			SubscriptionID: subscriptionID,
			ResourceGroup:  stringCell(row[1], "Unassigned"),
			ServiceName:    stringCell(row[2], "Unknown"),
			Cost:           floatCell(row[0]),
			Date:           dateCell(row, start),
		})
	}
	return records, nil
}

func floatCell(cell any) float64 {
	if v, ok := cell.(float64); ok {
		return v
	}
	return 0
}

func stringCell(cell any, fallback string) string {
	if v, ok := cell.(string); ok && v != "" {
		return v
	}
	return fallback
}

func dateCell(row []any, start time.Time) string {
	if len(row) > 3 && row[3] != nil {
		// The API reports dates as numeric yyyymmdd cells.
		if v, ok := row[3].(float64); ok {
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
		return fmt.Sprintf("%v", row[3])
	}
	return start.Format("2006-01-02")
}
