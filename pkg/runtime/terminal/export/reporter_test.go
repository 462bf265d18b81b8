package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/finopslab/sentinel/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Handle(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	report := &domain.ConsoleReport{
		Title:       "Tenant Waste Audit",
		GeneratedAt: time.Date(2026, 8, 30, 10, 30, 0, 0, time.UTC),
		Sections: []domain.ReportSection{
			{
				Title: "Tenant Contoso",
				Summary: map[string]interface{}{
					"Unattached disks": 1,
				},
				Details: []domain.ReportDetail{
					{Name: "disk-orphan", Value: "$39.42", Unit: "USD/mo", Description: "Unattached Premium_LRS disk"},
				},
			},
		},
		TotalMonthly: 39.42,
		TotalAnnual:  473.04,
	}

	require.NoError(t, reporter.Handle(report))

	out := buf.String()
	assert.Contains(t, out, "Tenant Waste Audit")
	assert.Contains(t, out, "Generated: 2026-08-30 10:30")
	assert.Contains(t, out, "Monthly Total: USD 39.42")
	assert.Contains(t, out, "Annual Total: USD 473.04")
	assert.Contains(t, out, "=== Tenant Contoso ===")
	assert.Contains(t, out, "Unattached disks: 1")
	assert.Contains(t, out, "| disk-orphan")
	assert.Contains(t, out, "+-")
}

func TestReporter_Handle_NoDetails(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	report := &domain.ConsoleReport{
		Title:       "Cost Anomaly Report",
		GeneratedAt: time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		Sections: []domain.ReportSection{
			{Title: "Anomalies", Summary: map[string]interface{}{"Total anomalies": 0}},
		},
	}

	require.NoError(t, reporter.Handle(report))

	out := buf.String()
	assert.Contains(t, out, "Total anomalies: 0")
	assert.NotContains(t, out, "| Name")
}
