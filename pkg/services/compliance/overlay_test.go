package compliance

import (
	"testing"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply_SafeRecommendation(t *testing.T) {
	recs := []domain.CostRecommendation{
		{ID: "r1", Title: "Right-size virtual machine", Description: "Reduce vCPU count"},
	}

	report := Apply(recs, DefaultOptions())

	assert.Empty(t, report.Flagged)
	assert.Empty(t, report.Warnings)
	require.Len(t, report.Safe, 1)
	assert.Equal(t, "r1", report.Safe[0].ID)
	assert.Equal(t, 1, report.Summary.TotalRecommendations)
	assert.Equal(t, 0, report.Summary.FlaggedCount)
	assert.Equal(t, 1, report.Summary.SafeCount)
}

func TestApply_MatchesMultipleBucketsWithoutDedup(t *testing.T) {
	recs := []domain.CostRecommendation{
		{
			ID:           "r1",
			Title:        "Downgrade premium storage disk",
			Description:  "Move to standard storage to save costs",
			ResourceType: "Microsoft.Compute/disks",
		},
	}

	report := Apply(recs, DefaultOptions())

	require.Len(t, report.Flagged, 1)
	// "storage"/"disk"/"premium" hits the ISO encryption bucket and the NIA
	// encryption-at-rest bucket; both flags are kept.
	flags := report.Flagged[0].Flags
	require.Len(t, flags, 2)
	assert.Equal(t, "ISO 27001", flags[0].Framework)
	assert.Equal(t, []string{"A.8.2.3", "A.10.1.1", "A.10.1.2"}, flags[0].Controls)
	assert.Equal(t, "NIA Qatar", flags[1].Framework)
	assert.Equal(t, "All data must be encrypted at rest", flags[1].Requirement)
	assert.True(t, report.Flagged[0].RequiresReview)
}

func TestApply_WarningTakesMaximumSeverity(t *testing.T) {
	recs := []domain.CostRecommendation{
		{
			ID:          "r1",
			Title:       "Disable diagnostic logs in secondary region",
			Description: "Reduce monitoring spend",
		},
	}

	report := Apply(recs, DefaultOptions())

	require.Len(t, report.Warnings, 1)
	warning := report.Warnings[0]
	// ISO monitoring bucket is medium, NIA sovereignty ("region") is
	// critical; the warning reports critical.
	assert.Equal(t, domain.SeverityCritical, warning.Severity)
	assert.Contains(t, warning.ActionRequired, "compliance officer approval")
	assert.ElementsMatch(t, []string{"ISO 27001", "NIA Qatar"}, warning.Frameworks)
}

func TestApply_SeverityActions(t *testing.T) {
	t.Run("high severity requires review", func(t *testing.T) {
		recs := []domain.CostRecommendation{
			{ID: "r1", Title: "Remove zone redundancy", Description: "Single zone deployment"},
		}

		report := Apply(recs, Options{CheckISO27001: true})

		require.Len(t, report.Warnings, 1)
		assert.Equal(t, domain.SeverityHigh, report.Warnings[0].Severity)
		assert.Contains(t, report.Warnings[0].ActionRequired, "REVIEW")
	})

	t.Run("medium severity requires assessment", func(t *testing.T) {
		recs := []domain.CostRecommendation{
			{ID: "r1", Title: "Trim analytics workspace", Description: "Lower ingestion volume"},
		}

		report := Apply(recs, Options{CheckISO27001: true})

		require.Len(t, report.Warnings, 1)
		assert.Equal(t, domain.SeverityMedium, report.Warnings[0].Severity)
		assert.Contains(t, report.Warnings[0].ActionRequired, "ASSESS")
	})
}

func TestApply_FrameworkTogglesAreIndependent(t *testing.T) {
	recs := []domain.CostRecommendation{
		{ID: "r1", Title: "Move workload to cheaper region"},
	}

	isoOnly := Apply(recs, Options{CheckISO27001: true})
	assert.Empty(t, isoOnly.Flagged) // "region" is only an NIA keyword

	niaOnly := Apply(recs, Options{CheckNIAQatar: true})
	require.Len(t, niaOnly.Flagged, 1)
	assert.Equal(t, "NIA Qatar", niaOnly.Flagged[0].Flags[0].Framework)
}

func TestApply_Idempotent(t *testing.T) {
	recs := []domain.CostRecommendation{
		{ID: "r1", Title: "Reduce backup retention", Description: "Shorter snapshot window"},
		{ID: "r2", Title: "Resize compute", Description: "Smaller SKU"},
		{ID: "r3", Title: "Drop geo redundancy", Description: "LRS instead of GRS"},
	}

	first := Apply(recs, DefaultOptions())
	second := Apply(recs, DefaultOptions())

	assert.Equal(t, first, second)
}

func TestApply_EmptyInput(t *testing.T) {
	report := Apply(nil, DefaultOptions())

	assert.Zero(t, report.Summary.TotalRecommendations)
	assert.Empty(t, report.Flagged)
	assert.Empty(t, report.Safe)
}
