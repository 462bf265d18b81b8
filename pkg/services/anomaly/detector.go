package anomaly

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/finopslab/sentinel/pkg/azerr"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/money"
	"github.com/finopslab/sentinel/pkg/services/retry"
	"github.com/rs/zerolog"
)

// QueryWindow selects a cost query range: Days of data ending OffsetDays
// before now. {Days: 1} is today, {Days: 7, OffsetDays: 1} is the trailing
// week excluding today.
type QueryWindow struct {
	Days       int
	OffsetDays int
}

// CostQuery is the external cost-management collaborator. It returns
// already-deserialized daily cost rows for one subscription.
type CostQuery interface {
	ActualCosts(ctx context.Context, subscriptionID string, window QueryWindow) ([]domain.CostRecord, error)
}

// Settings contains the detector's resilience and fan-out configuration.
type Settings struct {
	// Policy protects every collaborator call.
	Policy retry.Policy
	// MaxWorkers bounds concurrent per-subscription analysis (default 4).
	MaxWorkers int
}

// DefaultSettings returns the detector defaults.
func DefaultSettings() Settings {
	return Settings{
		Policy:     retry.Default(),
		MaxWorkers: 4,
	}
}

// Detector compares today's spend against a trailing 7-day baseline per
// (resource group, service) and flags observations above the threshold
// multiplier.
type Detector struct {
	costs    CostQuery
	settings Settings
}

func NewDetector(costs CostQuery, settings Settings) *Detector {
	if settings.MaxWorkers <= 0 {
		settings.MaxWorkers = 1
	}
	return &Detector{costs: costs, settings: settings}
}

// Detect analyzes the given subscriptions. A failure in one subscription is
// logged and contributes zero anomalies; it never aborts the others. An
// empty subscription list is a precondition failure for the whole call.
func (d *Detector) Detect(ctx context.Context, subscriptionIDs []string, threshold float64) (domain.AnomalyReport, error) {
	if len(subscriptionIDs) == 0 {
		return domain.AnomalyReport{}, &azerr.ValidationError{
			Message: "no subscription IDs provided, configure AZURE_SUBSCRIPTION_IDS",
		}
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().
		Float64("threshold", threshold).
		Int("subscriptions", len(subscriptionIDs)).
		Msg("starting anomaly detection")

	// Fan out per subscription into pre-sized slots, fan in before sorting.
	results := make([][]domain.AnomalyRecord, len(subscriptionIDs))
	sem := make(chan struct{}, d.settings.MaxWorkers)
	var wg sync.WaitGroup
	for i, subID := range subscriptionIDs {
		wg.Add(1)
		go func(slot int, subID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			anomalies, err := d.analyzeSubscription(ctx, subID, threshold)
			if err != nil {
				logger.Error().Err(err).
					Str("subscription_id", subID).
					Msg("anomaly analysis failed, skipping subscription")
				return
			}
			results[slot] = anomalies
		}(i, subID)
	}
	wg.Wait()

	var all []domain.AnomalyRecord
	excess := 0.0
	for _, anomalies := range results {
		for _, a := range anomalies {
			excess += a.ActualCost - a.AverageCost
		}
		all = append(all, anomalies...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].VariancePct > all[j].VariancePct
	})

	logger.Info().
		Int("anomalies", len(all)).
		Float64("excess_spend", excess).
		Msg("anomaly detection complete")

	return domain.AnomalyReport{
		Anomalies:        all,
		TotalAnomalies:   len(all),
		TotalExcessSpend: money.RoundUSD(excess),
		Threshold:        threshold,
		AnalysisDate:     time.Now().UTC(),
	}, nil
}

type groupKey struct {
	resourceGroup string
	serviceName   string
}

func (d *Detector) analyzeSubscription(ctx context.Context, subscriptionID string, threshold float64) ([]domain.AnomalyRecord, error) {
	actual, err := retry.Do(ctx, d.settings.Policy, func() ([]domain.CostRecord, error) {
		return d.costs.ActualCosts(ctx, subscriptionID, QueryWindow{Days: 1})
	})
	if err != nil {
		return nil, err
	}

	baseline, err := retry.Do(ctx, d.settings.Policy, func() ([]domain.CostRecord, error) {
		return d.costs.ActualCosts(ctx, subscriptionID, QueryWindow{Days: 7, OffsetDays: 1})
	})
	if err != nil {
		return nil, err
	}

	averages := historicalAverages(baseline)

	var anomalies []domain.AnomalyRecord
	for _, record := range actual {
		key := groupKey{record.ResourceGroup, record.ServiceName}
		avg, ok := averages[key]
		// Keys with no baseline or a zero average are never flagged:
		// absence of history is not evidence of anomaly.
		if !ok || avg <= 0 {
			continue
		}
		if record.Cost > avg*threshold {
			anomalies = append(anomalies, domain.AnomalyRecord{
				SubscriptionID: subscriptionID,
				ResourceGroup:  record.ResourceGroup,
				ServiceName:    record.ServiceName,
				ActualCost:     record.Cost,
				AverageCost:    avg,
				VariancePct:    (record.Cost - avg) / avg * 100,
				Date:           record.Date,
			})
		}
	}
	return anomalies, nil
}

// historicalAverages computes the arithmetic mean cost per
// (resource group, service) key over the baseline window.
func historicalAverages(records []domain.CostRecord) map[groupKey]float64 {
	sums := make(map[groupKey]float64)
	counts := make(map[groupKey]int)
	for _, record := range records {
		key := groupKey{record.ResourceGroup, record.ServiceName}
		sums[key] += record.Cost
		counts[key]++
	}

	averages := make(map[groupKey]float64, len(sums))
	for key, sum := range sums {
		averages[key] = sum / float64(counts[key])
	}
	return averages
}
