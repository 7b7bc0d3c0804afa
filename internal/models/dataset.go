package models

import "time"

// Dataset is the flat entity table every view is seeded from. Goals and
// milestones keep their nested slices empty; GoalTree materializes them.
type Dataset struct {
	Goals      []Goal      `json:"goals"`
	Milestones []Milestone `json:"milestones"`
	Tasks      []Task      `json:"tasks"`
}

// Clone returns a deep copy that shares no pointers with d.
func (d Dataset) Clone() Dataset {
	out := Dataset{
		Goals:      make([]Goal, len(d.Goals)),
		Milestones: make([]Milestone, len(d.Milestones)),
		Tasks:      CloneTasks(d.Tasks),
	}
	for i, g := range d.Goals {
		g.Deadline = cloneTime(g.Deadline)
		g.Milestones = nil
		out.Goals[i] = g
	}
	for i, m := range d.Milestones {
		m.DueDate = cloneTime(m.DueDate)
		m.Tasks = nil
		out.Milestones[i] = m
	}
	return out
}

// GoalTree nests milestones under their goals and tasks under their
// milestones, preserving table order at every level. Tasks without a known
// milestone are left out.
func (d Dataset) GoalTree() []Goal {
	tasksByMilestone := make(map[string][]Task, len(d.Milestones))
	for _, t := range d.Tasks {
		tasksByMilestone[t.MilestoneID] = append(tasksByMilestone[t.MilestoneID], CloneTask(t))
	}

	milestonesByGoal := make(map[string][]Milestone, len(d.Goals))
	for _, m := range d.Milestones {
		m.DueDate = cloneTime(m.DueDate)
		m.Tasks = tasksByMilestone[m.ID]
		if m.Tasks == nil {
			m.Tasks = []Task{}
		}
		milestonesByGoal[m.GoalID] = append(milestonesByGoal[m.GoalID], m)
	}

	goals := make([]Goal, 0, len(d.Goals))
	for _, g := range d.Goals {
		g.Deadline = cloneTime(g.Deadline)
		g.Milestones = milestonesByGoal[g.ID]
		if g.Milestones == nil {
			g.Milestones = []Milestone{}
		}
		goals = append(goals, g)
	}
	return goals
}

// CloneTask copies t including its time pointers.
func CloneTask(t Task) Task {
	t.DueDate = cloneTime(t.DueDate)
	t.ScheduledDateTime = cloneTime(t.ScheduledDateTime)
	return t
}

// CloneTasks copies every task in tasks.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = CloneTask(t)
	}
	return out
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
