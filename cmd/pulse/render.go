package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/teampulse/pulse/internal/domain/types"
)

// renderTables prints the insights as terminal tables, one section at a
// time, in the same order the JSON document uses.
func renderTables(w io.Writer, insights types.Insights) {
	renderPersons(w, insights.PersonRisks)
	renderProjects(w, insights.ProjectRisks)
	renderPatterns(w, insights.Patterns)
	renderRecommendations(w, insights.Recommendations)
}

func renderPersons(w io.Writer, risks []types.PersonRisk) {
	fmt.Fprintln(w, "Team members")
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Subject", "Risk", "Score", "Confidence", "Weeks To Event", "Factors"})
	for _, r := range risks {
		weeks := "-"
		if r.WeeksToEvent != nil {
			weeks = strconv.Itoa(*r.WeeksToEvent)
		}
		tw.AppendRow(table.Row{
			r.Subject, r.RiskLevel, r.RiskScore,
			fmt.Sprintf("%.2f", r.Confidence), weeks,
			strings.Join(r.Factors, "; "),
		})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func renderProjects(w io.Writer, risks []types.ProjectRisk) {
	fmt.Fprintln(w, "Projects")
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Subject", "Risk", "Score", "Confidence", "Team", "Activities", "Avg Progress", "Factors"})
	for _, r := range risks {
		tw.AppendRow(table.Row{
			r.Subject, r.RiskLevel, r.RiskScore,
			fmt.Sprintf("%.2f", r.Confidence),
			r.TeamSize, r.ActivityCount,
			fmt.Sprintf("%.1f%%", r.AvgProgress),
			strings.Join(r.Factors, "; "),
		})
	}
	tw.Render()
	fmt.Fprintln(w)
}

func renderPatterns(w io.Writer, p types.Patterns) {
	fmt.Fprintf(w, "Weekly cycle (peak %s, slow %s)\n", orDash(p.WeeklyCycle.PeakDay), orDash(p.WeeklyCycle.SlowDay))
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Day", "Reports", "Avg Productivity"})
	// Walk weekdays Monday first so rows come out in calendar order.
	for i := 0; i < 7; i++ {
		day := time.Weekday((i + 1) % 7).String()
		count, ok := p.WeeklyCycle.ReportsByDay[day]
		if !ok {
			continue
		}
		tw.AppendRow(table.Row{day, count, fmt.Sprintf("%.1f", p.WeeklyCycle.ProductivityByDay[day])})
	}
	tw.Render()
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Recurring blockers (%d blocked activities)\n", p.RecurringBlockers.TotalBlocked)
	tw = table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Keyword", "Count"})
	for _, k := range p.RecurringBlockers.Keywords {
		tw.AppendRow(table.Row{k.Keyword, k.Count})
	}
	tw.Render()
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Collaboration")
	tw = table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"Project", "Members", "Size"})
	for _, c := range p.Collaboration.Clusters {
		tw.AppendRow(table.Row{c.Project, strings.Join(c.Members, ", "), c.Size})
	}
	tw.Render()
	if len(p.Collaboration.SoloProjects) > 0 {
		fmt.Fprintf(w, "Solo projects: %s\n", strings.Join(p.Collaboration.SoloProjects, ", "))
	}
	fmt.Fprintln(w)
}

func renderRecommendations(w io.Writer, recs []string) {
	fmt.Fprintln(w, "Recommendations")
	for i, rec := range recs {
		fmt.Fprintf(w, "%d. %s\n", i+1, rec)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
