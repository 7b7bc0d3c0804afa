package planner

import (
	"math"

	"manifest/internal/models"
)

// Ratio is the completed share of tasks, 0 for an empty list.
func Ratio(tasks []models.Task) float64 {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return float64(done) / float64(len(tasks))
}

// Percent converts a ratio to a whole display percentage.
func Percent(ratio float64) int {
	return int(math.Round(ratio * 100))
}

// MilestoneProgress is the display percentage of a milestone.
func MilestoneProgress(m models.Milestone) int {
	return Percent(Ratio(m.Tasks))
}

// GoalProgress pools the tasks of every milestone; it does not average
// milestone percentages.
func GoalProgress(g models.Goal) int {
	var all []models.Task
	for _, m := range g.Milestones {
		all = append(all, m.Tasks...)
	}
	return Percent(Ratio(all))
}
