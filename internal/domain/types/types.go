// Package types contains the analytics result types shared across the application.
package types

// RiskLevel buckets a numeric risk score.
type RiskLevel string

// Risk levels, lowest to highest. Unknown marks subjects with too little
// history to assess.
const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// PersonRisk is one team member's burnout assessment.
type PersonRisk struct {
	Subject            string    `json:"subject"`
	RiskLevel          RiskLevel `json:"risk_level"`
	RiskScore          int       `json:"risk_score"`
	Confidence         float64   `json:"confidence"`
	Factors            []string  `json:"factors"`
	PositiveIndicators []string  `json:"positive_indicators"`
	Recommendations    []string  `json:"recommendations"`
	WeeksToEvent       *int      `json:"weeks_to_event"`
}

// RecentBlocker is one recently reported blocked activity on a project.
type RecentBlocker struct {
	Description string `json:"description"`
	Date        string `json:"date"` // YYYY-MM-DD, empty when the report had no usable timestamp
	Reporter    string `json:"reporter"`
}

// ProjectRisk is one project's delivery assessment.
type ProjectRisk struct {
	Subject        string          `json:"subject"`
	RiskLevel      RiskLevel       `json:"risk_level"`
	RiskScore      int             `json:"risk_score"`
	Confidence     float64         `json:"confidence"`
	Factors        []string        `json:"factors"`
	TeamSize       int             `json:"team_size"`
	ActivityCount  int             `json:"activity_count"`
	AvgProgress    float64         `json:"avg_progress"`
	RecentBlockers []RecentBlocker `json:"recent_blockers"`
}

// WeeklyCycle describes how reporting activity distributes across weekdays.
type WeeklyCycle struct {
	ProductivityByDay map[string]float64 `json:"productivity_by_day"`
	ReportsByDay      map[string]int     `json:"reports_by_day"`
	PeakDay           string             `json:"peak_day"`
	SlowDay           string             `json:"slow_day"`
}

// KeywordCount is one recurring blocker keyword and how often it appeared.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// RecurringBlockers summarizes blocked-activity language across the team.
type RecurringBlockers struct {
	Keywords     []KeywordCount `json:"keywords"`
	TotalBlocked int            `json:"total_blocked"`
}

// Cluster is a group of people reporting against the same project.
type Cluster struct {
	Project string   `json:"project"`
	Members []string `json:"members"`
	Size    int      `json:"size"`
}

// Collaboration describes who works together and who works alone.
type Collaboration struct {
	Clusters     []Cluster `json:"clusters"`
	SoloProjects []string  `json:"solo_projects"`
}

// Patterns bundles the behavioral findings.
type Patterns struct {
	WeeklyCycle       WeeklyCycle       `json:"weekly_cycle"`
	RecurringBlockers RecurringBlockers `json:"recurring_blockers"`
	Collaboration     Collaboration     `json:"collaboration"`
}

// Insights is the complete output of one analysis run.
type Insights struct {
	PersonRisks     []PersonRisk  `json:"person_risks"`
	ProjectRisks    []ProjectRisk `json:"project_risks"`
	Patterns        Patterns      `json:"patterns"`
	Recommendations []string      `json:"recommendations"`
}
