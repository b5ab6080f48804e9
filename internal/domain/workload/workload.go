// Package workload rates how loaded a report's activity list is.
package workload

import (
	"math"

	model "github.com/teampulse/pulse/internal/domain/model"
)

// Scoring weights. Every activity costs base load; high-priority and
// blocked items cost extra.
const (
	perActivityWeight  = 10
	highPriorityWeight = 15
	blockedWeight      = 10
	maxScore           = 100
)

// Score rates an activity list on a 0-100 scale. An empty list scores
// zero, not an error.
func Score(activities []model.Activity) float64 {
	if len(activities) == 0 {
		return 0
	}

	var highPriority, blocked int
	for _, a := range activities {
		if a.Priority == model.PriorityHigh {
			highPriority++
		}
		if a.Blocked() {
			blocked++
		}
	}

	total := len(activities)*perActivityWeight +
		highPriority*highPriorityWeight +
		blocked*blockedWeight
	if total > maxScore {
		total = maxScore
	}

	return math.Round(float64(total)*10) / 10
}
