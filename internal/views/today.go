package views

import (
	"manifest/internal/models"
	"manifest/internal/planner"
)

// TodaySnapshot is what the today page renders.
type TodaySnapshot struct {
	SortBy planner.SortMode `json:"sortBy"`
	Tasks  []models.Task    `json:"tasks"`
}

// Today returns the due-today list in the current sort mode.
func (v *Views) Today() TodaySnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return TodaySnapshot{SortBy: v.today.SortMode(), Tasks: v.today.Tasks()}
}

// SetTodaySort changes how the today list is ordered.
func (v *Views) SetTodaySort(mode planner.SortMode) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.today.SetSortMode(mode)
}

// ToggleTodayTask sets a task's completion inside the today page only.
func (v *Views) ToggleTodayTask(id string, completed bool) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.today.Toggle(id, completed)
}
