package compliance

import "github.com/finopslab/sentinel/pkg/models/domain"

const (
	frameworkISO = "ISO 27001"
	frameworkNIA = "NIA Qatar"
)

// controlBucket is one keyword-driven control set within a framework.
// Buckets are evaluated independently, a recommendation may match any
// number of them across both frameworks.
type controlBucket struct {
	keywords    []string
	controls    []string
	requirement string
	impact      string
	warning     string
	severity    domain.Severity
}

// ISO 27001 controls that cost optimization may impact. Bucket order is
// fixed so flag output stays deterministic.
var isoBuckets = []controlBucket{
	{
		keywords: []string{"encrypt", "storage", "disk", "premium"},
		controls: []string{"A.8.2.3", "A.10.1.1", "A.10.1.2"},
		impact:   "Encryption of information",
		warning:  "Premium storage SKUs required for encryption",
		severity: domain.SeverityHigh,
	},
	{
		keywords: []string{"backup", "snapshot", "retention"},
		controls: []string{"A.12.3.1"},
		impact:   "Information backup",
		warning:  "Backup storage and retention costs",
		severity: domain.SeverityHigh,
	},
	{
		keywords: []string{"monitor", "log", "analytics", "diagnostic"},
		controls: []string{"A.12.4.1", "A.12.4.2"},
		impact:   "Event logging and monitoring",
		warning:  "Log Analytics and monitoring costs",
		severity: domain.SeverityMedium,
	},
	{
		keywords: []string{"redundan", "availability", "zone", "geo"},
		controls: []string{"A.17.1.1", "A.17.2.1"},
		impact:   "Availability of information processing facilities",
		warning:  "Redundancy and high-availability configurations",
		severity: domain.SeverityHigh,
	},
}

// NIA Qatar requirements that cost optimization may impact.
var niaBuckets = []controlBucket{
	{
		keywords:    []string{"region", "location", "geo"},
		requirement: "Data must be stored in Qatar or approved regions",
		warning:     "Qatar region may have higher costs than other regions",
		severity:    domain.SeverityCritical,
	},
	{
		keywords:    []string{"encrypt", "storage", "disk"},
		requirement: "All data must be encrypted at rest",
		warning:     "Premium storage SKUs required",
		severity:    domain.SeverityCritical,
	},
	{
		keywords:    []string{"availability", "redundan", "uptime"},
		requirement: "Critical systems must have 99.9% uptime",
		warning:     "Zone-redundant and geo-redundant configurations",
		severity:    domain.SeverityHigh,
	},
	{
		keywords:    []string{"log", "audit", "retention"},
		requirement: "All access must be logged for 90+ days",
		warning:     "Log retention and storage costs",
		severity:    domain.SeverityMedium,
	},
}

var actionsBySeverity = map[domain.Severity]string{
	domain.SeverityCritical: "STOP: Do not implement without compliance officer approval. May violate regulatory requirements.",
	domain.SeverityHigh:     "REVIEW: Requires security/compliance team review before implementation. May impact critical controls.",
	domain.SeverityMedium:   "ASSESS: Review impact on compliance controls. Document justification if proceeding.",
	domain.SeverityLow:      "MONITOR: Minimal compliance impact. Proceed with standard change management.",
}
