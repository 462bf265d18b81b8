package domain

import "time"

// ConsoleReport is the renderer-agnostic view of an analysis result that
// the terminal commands assemble for the console reporters.
type ConsoleReport struct {
	Title        string
	GeneratedAt  time.Time
	Sections     []ReportSection
	TotalMonthly float64
	TotalAnnual  float64
}

// ReportSection represents a logical section in the report
type ReportSection struct {
	Title   string
	Summary map[string]interface{}
	Details []ReportDetail
}

// ReportDetail represents detailed information within a section
type ReportDetail struct {
	Name        string
	Value       interface{}
	Unit        string
	Description string
}
