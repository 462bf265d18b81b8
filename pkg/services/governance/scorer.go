package governance

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/finopslab/sentinel/pkg/azerr"
	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/finopslab/sentinel/pkg/money"
	"github.com/finopslab/sentinel/pkg/services/retry"
	"github.com/rs/zerolog"
)

// AdvisorQuery is the external recommendation-listing collaborator.
type AdvisorQuery interface {
	Recommendations(ctx context.Context, subscriptionID string) ([]domain.Recommendation, error)
}

// Settings contains the scorer's resilience and fan-out configuration.
type Settings struct {
	Policy     retry.Policy
	MaxWorkers int
}

func DefaultSettings() Settings {
	return Settings{
		Policy:     retry.Default(),
		MaxWorkers: 4,
	}
}

// Scorer assigns a composite 0-10 risk score to advisory recommendations,
// mapping them onto ISO 27001 controls and NIA Qatar requirements.
type Scorer struct {
	advisor  AdvisorQuery
	settings Settings
}

func NewScorer(advisor AdvisorQuery, settings Settings) *Scorer {
	if settings.MaxWorkers <= 0 {
		settings.MaxWorkers = 1
	}
	return &Scorer{advisor: advisor, settings: settings}
}

// Score fetches and scores recommendations for all subscriptions, keeping
// only those at or above minRiskScore. A failing subscription is logged and
// contributes nothing; it never aborts the batch.
func (s *Scorer) Score(ctx context.Context, subscriptionIDs []string, minRiskScore int) (domain.GovernanceReport, error) {
	if len(subscriptionIDs) == 0 {
		return domain.GovernanceReport{}, &azerr.ValidationError{
			Message: "no subscription IDs provided, configure AZURE_SUBSCRIPTION_IDS",
		}
	}

	logger := zerolog.Ctx(ctx)
	logger.Info().
		Int("min_risk_score", minRiskScore).
		Int("subscriptions", len(subscriptionIDs)).
		Msg("fetching governance recommendations")

	results := make([][]domain.ScoredRecommendation, len(subscriptionIDs))
	sem := make(chan struct{}, s.settings.MaxWorkers)
	var wg sync.WaitGroup
	for i, subID := range subscriptionIDs {
		wg.Add(1)
		go func(slot int, subID string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			scored, err := s.scoreSubscription(ctx, subID)
			if err != nil {
				logger.Error().Err(err).
					Str("subscription_id", subID).
					Msg("failed to get recommendations, skipping subscription")
				return
			}
			results[slot] = scored
		}(i, subID)
	}
	wg.Wait()

	var filtered []domain.ScoredRecommendation
	for _, scored := range results {
		for _, rec := range scored {
			if rec.RiskScore >= minRiskScore {
				filtered = append(filtered, rec)
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].RiskScore > filtered[j].RiskScore
	})

	summary := summarize(filtered)
	logger.Info().
		Int("recommendations", len(filtered)).
		Int("high_risk", summary.HighRiskCount).
		Msg("governance scoring complete")

	return domain.GovernanceReport{
		Recommendations: filtered,
		Summary:         summary,
		MinRiskScore:    minRiskScore,
	}, nil
}

func (s *Scorer) scoreSubscription(ctx context.Context, subscriptionID string) ([]domain.ScoredRecommendation, error) {
	recommendations, err := retry.Do(ctx, s.settings.Policy, func() ([]domain.Recommendation, error) {
		return s.advisor.Recommendations(ctx, subscriptionID)
	})
	if err != nil {
		return nil, err
	}

	scored := make([]domain.ScoredRecommendation, 0, len(recommendations))
	for _, rec := range recommendations {
		rec.SubscriptionID = subscriptionID
		score, factors := riskScore(rec)
		scored = append(scored, domain.ScoredRecommendation{
			Recommendation:       rec,
			RiskScore:            score,
			RiskFactors:          factors,
			RemediationSteps:     remediationSteps(rec),
			EstimatedCost:        savingsAmount(rec),
			EstimatedEffortHours: effortEstimate(rec),
		})
	}
	return scored, nil
}

const maxRiskScore = 10

// riskScore applies the additive scoring policy. The production bonus and
// the keyword bonuses stack on top of the category base and the sum is
// clamped to 10.
func riskScore(rec domain.Recommendation) (int, domain.RiskFactors) {
	score := 0
	factors := domain.RiskFactors{
		CostImpact:     "Unknown",
		SecurityImpact: "Unknown",
	}

	impact := rec.Impact
	if impact == "" {
		impact = domain.ImpactMedium
	}
	problem := strings.ToLower(rec.Problem)

	switch rec.Category {
	case domain.CategorySecurity:
		switch impact {
		case domain.ImpactHigh:
			score += 4
			factors.SecurityImpact = "Critical"
		case domain.ImpactMedium:
			score += 3
			factors.SecurityImpact = "High"
		default:
			score += 2
			factors.SecurityImpact = "Medium"
		}

		if strings.Contains(problem, "encrypt") {
			factors.ISOControls = append(factors.ISOControls, isoControls["encryption"]...)
			factors.FrameworkRequirements = append(factors.FrameworkRequirements, niaRequirements["encryption_at_rest"])
			score += 2
		}
		if strings.Contains(problem, "access") || strings.Contains(problem, "authentication") {
			factors.ISOControls = append(factors.ISOControls, isoControls["access_control"]...)
			factors.FrameworkRequirements = append(factors.FrameworkRequirements, niaRequirements["multi_factor_auth"])
			score += 2
		}

	case domain.CategoryCost:
		savings := savingsAmount(rec)
		switch {
		case savings > 1000:
			score += 3
			factors.CostImpact = "High"
		case savings > 100:
			score += 2
			factors.CostImpact = "Medium"
		default:
			score += 1
			factors.CostImpact = "Low"
		}

	case domain.CategoryPerformance, domain.CategoryHighAvailability:
		switch impact {
		case domain.ImpactHigh:
			score += 3
		case domain.ImpactMedium:
			score += 2
		default:
			score += 1
		}

	case domain.CategoryOperationalExc:
		score += 1
	}

	if strings.Contains(problem, "prod") {
		score += 2
	}

	if score > maxRiskScore {
		score = maxRiskScore
	}
	return score, factors
}

// savingsAmount reads the numeric savings field from the recommendation's
// free-form metadata. Extraction failures are swallowed, never fatal.
func savingsAmount(rec domain.Recommendation) float64 {
	raw, ok := rec.ExtendedProperties["savingsAmount"]
	if !ok {
		return 0
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return amount
}

func effortEstimate(rec domain.Recommendation) float64 {
	impact := rec.Impact
	if impact == "" {
		impact = domain.ImpactMedium
	}
	if hours, ok := effortHours[effortKey{rec.Category, impact}]; ok {
		return hours
	}
	return defaultEffortHours
}

func remediationSteps(rec domain.Recommendation) []string {
	if rec.Solution != "" {
		return []string{rec.Solution}
	}
	return []string{"Review Azure Advisor recommendation details in Azure Portal"}
}

func summarize(recommendations []domain.ScoredRecommendation) domain.GovernanceSummary {
	summary := domain.GovernanceSummary{
		TotalRecommendations: len(recommendations),
	}

	totalSavings := 0.0
	for _, rec := range recommendations {
		switch {
		case rec.RiskScore >= 7:
			summary.HighRiskCount++
		case rec.RiskScore >= 4:
			summary.MediumRiskCount++
		default:
			summary.LowRiskCount++
		}
		totalSavings += rec.EstimatedCost
	}

	summary.PotentialMonthlySavings = money.RoundUSD(totalSavings)
	summary.PotentialAnnualSavings = money.RoundUSD(totalSavings * 12)
	return summary
}
