package compliance

import (
	"strings"

	"github.com/finopslab/sentinel/pkg/models/domain"
)

// Options selects which frameworks to test. Both default to on.
type Options struct {
	CheckISO27001 bool
	CheckNIAQatar bool
}

func DefaultOptions() Options {
	return Options{CheckISO27001: true, CheckNIAQatar: true}
}

// Apply overlays the control catalogs onto cost-saving recommendations,
// partitioning them into flagged and safe sets. This is a pure function:
// no I/O, no retries, identical input yields identical output.
func Apply(recommendations []domain.CostRecommendation, opts Options) domain.OverlayReport {
	report := domain.OverlayReport{
		Flagged:  []domain.FlaggedRecommendation{},
		Safe:     []domain.CostRecommendation{},
		Warnings: []domain.ComplianceWarning{},
	}

	for _, rec := range recommendations {
		flags := matchFlags(rec, opts)
		if len(flags) == 0 {
			report.Safe = append(report.Safe, rec)
			continue
		}
		report.Flagged = append(report.Flagged, domain.FlaggedRecommendation{
			CostRecommendation: rec,
			Flags:              flags,
			RequiresReview:     true,
		})
		report.Warnings = append(report.Warnings, buildWarning(rec, flags))
	}

	report.Summary = domain.OverlaySummary{
		TotalRecommendations: len(recommendations),
		FlaggedCount:         len(report.Flagged),
		SafeCount:            len(report.Safe),
	}
	return report
}

// matchFlags tests every enabled bucket against the recommendation's text.
// Each matching bucket appends one flag, duplicates included.
func matchFlags(rec domain.CostRecommendation, opts Options) []domain.ComplianceFlag {
	blob := strings.ToLower(rec.Title + " " + rec.Description + " " + rec.ResourceType)

	var flags []domain.ComplianceFlag
	if opts.CheckISO27001 {
		for _, bucket := range isoBuckets {
			if bucket.matches(blob) {
				flags = append(flags, bucket.flag(frameworkISO))
			}
		}
	}
	if opts.CheckNIAQatar {
		for _, bucket := range niaBuckets {
			if bucket.matches(blob) {
				flags = append(flags, bucket.flag(frameworkNIA))
			}
		}
	}
	return flags
}

func (b controlBucket) matches(blob string) bool {
	for _, keyword := range b.keywords {
		if strings.Contains(blob, keyword) {
			return true
		}
	}
	return false
}

func (b controlBucket) flag(framework string) domain.ComplianceFlag {
	return domain.ComplianceFlag{
		Framework:   framework,
		Controls:    b.controls,
		Requirement: b.requirement,
		Impact:      b.impact,
		Warning:     b.warning,
		Severity:    b.severity,
	}
}

// buildWarning synthesizes one warning per flagged recommendation. Its
// severity is the maximum severity among the flags.
func buildWarning(rec domain.CostRecommendation, flags []domain.ComplianceFlag) domain.ComplianceWarning {
	maxSeverity := domain.SeverityLow
	for _, f := range flags {
		if f.Severity.Rank() > maxSeverity.Rank() {
			maxSeverity = f.Severity
		}
	}

	seen := make(map[string]bool)
	var frameworks []string
	for _, f := range flags {
		if !seen[f.Framework] {
			seen[f.Framework] = true
			frameworks = append(frameworks, f.Framework)
		}
	}

	return domain.ComplianceWarning{
		RecommendationID:    rec.ID,
		RecommendationTitle: rec.Title,
		Severity:            maxSeverity,
		Frameworks:          frameworks,
		Flags:               flags,
		ActionRequired:      actionsBySeverity[maxSeverity],
	}
}
