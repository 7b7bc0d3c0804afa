package views

import (
	"log/slog"
	"time"

	"manifest/internal/models"
	"manifest/internal/planner"
)

// WeekInfo describes the displayed week.
type WeekInfo struct {
	Start time.Time   `json:"start"`
	End   time.Time   `json:"end"`
	Days  []time.Time `json:"days"`
}

// CalendarSnapshot is everything the plan page renders.
type CalendarSnapshot struct {
	SelectedDate time.Time         `json:"selectedDate"`
	Week         WeekInfo          `json:"week"`
	Hours        []int             `json:"hours"`
	DayCounts    []int             `json:"dayCounts"`
	Grid         [][]planner.Cell  `json:"grid"`
	Unscheduled  []models.Task     `json:"unscheduled"`
	Drag         planner.DragState `json:"drag"`
}

// Calendar renders the brain dump and the timebox grid of the selected week.
func (v *Views) Calendar() CalendarSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.calendarSnapshot()
}

func (v *Views) calendarSnapshot() CalendarSnapshot {
	week := planner.WeekOf(v.selected)
	return CalendarSnapshot{
		SelectedDate: v.selected,
		Week:         WeekInfo{Start: week.Start, End: week.End(), Days: week.Days()},
		Hours:        planner.Hours(),
		DayCounts:    v.calendar.DayCounts(week),
		Grid:         v.calendar.Grid(week),
		Unscheduled:  v.calendar.Unscheduled(),
		Drag:         v.drag,
	}
}

// SelectDate moves the calendar to the week containing date, read in the
// planner's location.
func (v *Views) SelectDate(date time.Time) CalendarSnapshot {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.selected = date.In(v.calendar.Location())
	return v.calendarSnapshot()
}

// AddTask appends a brain dump task. Blank titles leave the board unchanged.
func (v *Views) AddTask(title string) (models.Task, bool, CalendarSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	task, ok := v.calendar.AddTask(title)
	if ok {
		v.logger.Debug("task added", slog.String("id", task.ID))
	}
	return task, ok, v.calendarSnapshot()
}

// Drag feeds one drag event through the protocol and applies the resulting
// effect. It reports whether the task table changed.
func (v *Views) Drag(ev planner.Event) (bool, CalendarSnapshot) {
	v.mu.Lock()
	defer v.mu.Unlock()

	var eff planner.Effect
	v.drag, eff = planner.Reduce(v.drag, ev)
	changed := v.calendar.Apply(eff)
	if eff.Kind != planner.EffectNone {
		v.logger.Debug("drag applied",
			slog.String("effect", string(eff.Kind)),
			slog.String("task", eff.TaskID),
			slog.Bool("changed", changed))
	}
	return changed, v.calendarSnapshot()
}
