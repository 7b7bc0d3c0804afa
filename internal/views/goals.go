package views

import (
	"manifest/internal/models"
	"manifest/internal/planner"
)

// MilestoneCard is a milestone with its completion percentage.
type MilestoneCard struct {
	models.Milestone
	Progress int `json:"progress"`
}

// GoalCard is a goal with pooled progress and its milestone cards.
type GoalCard struct {
	models.Goal
	Progress   int             `json:"progress"`
	Milestones []MilestoneCard `json:"milestones"`
}

// Goals renders the goal cards of the goals page.
func (v *Views) Goals() []GoalCard {
	v.mu.Lock()
	defer v.mu.Unlock()

	cards := make([]GoalCard, 0, len(v.goals))
	for _, g := range v.goals {
		card := GoalCard{Goal: g, Progress: planner.GoalProgress(g), Milestones: make([]MilestoneCard, 0, len(g.Milestones))}
		card.Goal.Milestones = nil
		for _, m := range g.Milestones {
			m.Tasks = models.CloneTasks(m.Tasks)
			card.Milestones = append(card.Milestones, MilestoneCard{Milestone: m, Progress: planner.MilestoneProgress(m)})
		}
		cards = append(cards, card)
	}
	return cards
}

// ToggleGoalTask sets a task's completion inside the goals page only.
func (v *Views) ToggleGoalTask(id string, completed bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()

	for gi := range v.goals {
		for mi := range v.goals[gi].Milestones {
			if planner.SetCompleted(v.goals[gi].Milestones[mi].Tasks, id, completed) {
				return true
			}
		}
	}
	return false
}
