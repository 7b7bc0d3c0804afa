package models

import "time"

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// ValidPriorities enumerates the priorities shown by the badge component.
var ValidPriorities = map[Priority]struct{}{
	PriorityLow:    {},
	PriorityMedium: {},
	PriorityHigh:   {},
}

// Rank orders priorities by severity: High sorts first.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	}
	return 4
}

const (
	// BrainDumpGoalID is the sentinel bucket for tasks created from the calendar view.
	BrainDumpGoalID = "Brain Dump"
	// NoMilestoneID marks a task that does not belong to any milestone.
	NoMilestoneID = "none"
)

// Task is the atomic unit of work.
//
// ScheduledDateTime is nil while the task sits in the brain dump.
type Task struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	DueDate           *time.Time `json:"dueDate"`
	Priority          Priority   `json:"priority"`
	Completed         bool       `json:"completed"`
	MilestoneID       string     `json:"milestoneId"`
	GoalID            string     `json:"goalId"`
	ScheduledDateTime *time.Time `json:"scheduledDateTime"`
}

// IsScheduled reports whether the task occupies a calendar slot.
func (t Task) IsScheduled() bool {
	return t.ScheduledDateTime != nil
}

// Milestone is a named checkpoint within a goal.
type Milestone struct {
	ID      string     `json:"id"`
	Title   string     `json:"title"`
	DueDate *time.Time `json:"dueDate"`
	GoalID  string     `json:"goalId"`
	Tasks   []Task     `json:"tasks"`
}

// Goal is a top-level objective.
type Goal struct {
	ID         string      `json:"id"`
	Title      string      `json:"title"`
	Deadline   *time.Time  `json:"deadline"`
	Category   string      `json:"category"`
	Milestones []Milestone `json:"milestones"`
}
