package planner

import (
	"slices"
	"time"

	"manifest/internal/models"
)

// SortMode selects how the today list is ordered.
type SortMode string

const (
	SortByPriority SortMode = "priority"
	SortDefault    SortMode = "default"
)

// ParseSortMode validates a sort mode coming from the client.
func ParseSortMode(raw string) (SortMode, bool) {
	switch SortMode(raw) {
	case SortByPriority:
		return SortByPriority, true
	case SortDefault:
		return SortDefault, true
	}
	return "", false
}

// DueOn selects tasks whose due date falls on the same calendar day as today.
func DueOn(tasks []models.Task, today time.Time) []models.Task {
	out := []models.Task{}
	for _, t := range tasks {
		if t.DueDate != nil && SameDay(*t.DueDate, today) {
			out = append(out, models.CloneTask(t))
		}
	}
	return out
}

// SortTasks returns a sorted copy of tasks. Priority order is stable.
func SortTasks(tasks []models.Task, mode SortMode) []models.Task {
	out := models.CloneTasks(tasks)
	if mode == SortByPriority {
		slices.SortStableFunc(out, func(a, b models.Task) int {
			return a.Priority.Rank() - b.Priority.Rank()
		})
	}
	return out
}

// SetCompleted flips the completion flag of the task with id in place.
// It reports false when no task matched.
func SetCompleted(tasks []models.Task, id string, completed bool) bool {
	for i := range tasks {
		if tasks[i].ID == id {
			tasks[i].Completed = completed
			return true
		}
	}
	return false
}

// TodayList is the state behind the today view.
type TodayList struct {
	tasks []models.Task
	sort  SortMode
}

// NewTodayList selects the tasks due on today, sorted by priority.
func NewTodayList(tasks []models.Task, today time.Time) *TodayList {
	return &TodayList{tasks: DueOn(tasks, today), sort: SortByPriority}
}

// Tasks returns the list in the current sort mode.
func (l *TodayList) Tasks() []models.Task {
	return SortTasks(l.tasks, l.sort)
}

// SortMode returns the active sort mode.
func (l *TodayList) SortMode() SortMode {
	return l.sort
}

// SetSortMode switches the sort mode.
func (l *TodayList) SetSortMode(mode SortMode) {
	l.sort = mode
}

// Toggle sets the completion flag of a task in the list.
func (l *TodayList) Toggle(id string, completed bool) bool {
	return SetCompleted(l.tasks, id, completed)
}
