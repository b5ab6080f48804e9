// Package model contains domain models passed between layers.
package model

import (
	"strings"
	"time"
)

// Priority classifies how urgent an activity is.
type Priority string

// Priority values accepted on the wire.
const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ActivityStatus tracks where an activity stands.
type ActivityStatus string

// ActivityStatus values accepted on the wire.
const (
	StatusNotStarted ActivityStatus = "Not Started"
	StatusInProgress ActivityStatus = "In Progress"
	StatusBlocked    ActivityStatus = "Blocked"
	StatusCompleted  ActivityStatus = "Completed"
)

// ReportStatus distinguishes drafts from submitted reports.
type ReportStatus string

// ReportStatus values.
const (
	ReportDraft     ReportStatus = "draft"
	ReportSubmitted ReportStatus = "submitted"
)

// Activity is one unit of work described in a report.
type Activity struct {
	Description string
	Project     string
	Milestone   string
	Priority    Priority
	Status      ActivityStatus
	Progress    float64 // percent, clamped to [0,100]
	Deadline    time.Time
}

// Blocked reports whether the activity is stalled.
func (a Activity) Blocked() bool { return a.Status == StatusBlocked }

// Report is one team member's status report for a period.
type Report struct {
	ID              string
	Author          string
	SubmittedAt     time.Time // zero when the source timestamp was malformed
	Period          string
	Status          ReportStatus
	Activities      []Activity
	Accomplishments []TextItem
	Challenges      string
	Concerns        string
}

// HasTimestamp reports whether the report carries a usable submission time.
// Reports without one are excluded from date-sensitive computations but
// still count toward count-only aggregates.
func (r Report) HasTimestamp() bool { return !r.SubmittedAt.IsZero() }

// ParsePriority maps free-form input to a Priority.
// Unknown input defaults to Medium.
func ParsePriority(s string) Priority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high":
		return PriorityHigh
	case "low":
		return PriorityLow
	default:
		return PriorityMedium
	}
}

// ParseActivityStatus maps free-form input to an ActivityStatus.
// Unknown input defaults to In Progress.
func ParseActivityStatus(s string) ActivityStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "not started":
		return StatusNotStarted
	case "blocked":
		return StatusBlocked
	case "completed":
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

// ParseReportStatus maps free-form input to a ReportStatus.
// Unknown input defaults to submitted.
func ParseReportStatus(s string) ReportStatus {
	if strings.EqualFold(strings.TrimSpace(s), string(ReportDraft)) {
		return ReportDraft
	}
	return ReportSubmitted
}

// ClampProgress bounds a progress value to [0,100].
func ClampProgress(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// timestampLayouts lists the formats reports have been observed to carry.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a report timestamp. Malformed input yields the
// zero time rather than an error; callers treat it per HasTimestamp.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
