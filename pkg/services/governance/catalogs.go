package governance

import "github.com/finopslab/sentinel/pkg/models/domain"

// ISO 27001 control mappings attached to recommendations during scoring.
var isoControls = map[string][]string{
	"encryption":       {"A.8.2.3", "A.10.1.1"},
	"access_control":   {"A.9.1.1", "A.9.2.1"},
	"backup":           {"A.12.3.1"},
	"monitoring":       {"A.12.4.1"},
	"vulnerability":    {"A.12.6.1"},
	"network_security": {"A.13.1.1"},
	"compliance":       {"A.18.1.1"},
}

// NIA Qatar framework requirements.
var niaRequirements = map[string]string{
	"data_sovereignty":      "Data must be stored in Qatar or approved regions",
	"encryption_at_rest":    "All data must be encrypted at rest",
	"encryption_in_transit": "All data must be encrypted in transit",
	"access_logging":        "All access must be logged and monitored",
	"multi_factor_auth":     "MFA required for all administrative access",
}

type effortKey struct {
	category domain.Category
	impact   domain.Impact
}

// Remediation effort heuristic in hours, keyed by category and impact.
var effortHours = map[effortKey]float64{
	{domain.CategorySecurity, domain.ImpactHigh}:           4,
	{domain.CategorySecurity, domain.ImpactMedium}:         2,
	{domain.CategorySecurity, domain.ImpactLow}:            1,
	{domain.CategoryCost, domain.ImpactHigh}:               2,
	{domain.CategoryCost, domain.ImpactMedium}:             1,
	{domain.CategoryCost, domain.ImpactLow}:                0.5,
	{domain.CategoryPerformance, domain.ImpactHigh}:        3,
	{domain.CategoryPerformance, domain.ImpactMedium}:      2,
	{domain.CategoryPerformance, domain.ImpactLow}:         1,
	{domain.CategoryHighAvailability, domain.ImpactHigh}:   4,
	{domain.CategoryHighAvailability, domain.ImpactMedium}: 3,
	{domain.CategoryHighAvailability, domain.ImpactLow}:    2,
	{domain.CategoryOperationalExc, domain.ImpactHigh}:     2,
	{domain.CategoryOperationalExc, domain.ImpactMedium}:   1,
	{domain.CategoryOperationalExc, domain.ImpactLow}:      0.5,
}

const defaultEffortHours = 2
