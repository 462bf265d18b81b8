package azure

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/resourcemanager/advisor/armadvisor"
	"github.com/finopslab/sentinel/pkg/models/domain"
)

// AdvisorQuery fetches Azure Advisor recommendations for one subscription.
type AdvisorQuery struct {
	factory *ClientFactory
}

func NewAdvisorQuery(factory *ClientFactory) *AdvisorQuery {
	return &AdvisorQuery{factory: factory}
}

func (q *AdvisorQuery) Recommendations(ctx context.Context, subscriptionID string) ([]domain.Recommendation, error) {
	client, err := q.factory.RecommendationsClient(subscriptionID)
	if err != nil {
		return nil, err
	}

	var recommendations []domain.Recommendation
	pager := client.NewListPager(nil)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range page.Value {
			if item == nil || item.Properties == nil {
				continue
			}
			recommendations = append(recommendations, mapRecommendation(subscriptionID, item))
		}
	}
	return recommendations, nil
}

func mapRecommendation(subscriptionID string, item *armadvisor.ResourceRecommendationBase) domain.Recommendation {
	props := item.Properties

	rec := domain.Recommendation{
		ID:               deref(item.ID),
		SubscriptionID:   subscriptionID,
		ImpactedResource: derefOr(props.ImpactedValue, "Unknown"),
	}
	if props.Category != nil {
		rec.Category = domain.Category(*props.Category)
	}
	if props.Impact != nil {
		rec.Impact = domain.Impact(*props.Impact)
	}
	if props.ShortDescription != nil {
		rec.Problem = derefOr(props.ShortDescription.Problem, "Unknown")
		rec.Solution = deref(props.ShortDescription.Solution)
	} else {
		rec.Problem = "Unknown"
	}
	if len(props.ExtendedProperties) > 0 {
		rec.ExtendedProperties = make(map[string]string, len(props.ExtendedProperties))
		for key, value := range props.ExtendedProperties {
			rec.ExtendedProperties[key] = deref(value)
		}
	}
	return rec
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}
