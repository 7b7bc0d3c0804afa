package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"manifest/internal/models"
)

// Calendar partitions a task table into the brain dump (unscheduled, ordered)
// and the timebox grid (scheduled, keyed by hour slot).
//
// Tasks live in a single slice; index maps ids to positions in it. Slots are
// hours of the wall clock in loc.
type Calendar struct {
	tasks []models.Task
	index map[string]int
	loc   *time.Location
	newID func() string
}

// Cell is one (day, hour) slot of the grid with the tasks it displays.
type Cell struct {
	DateTime time.Time     `json:"dateTime"`
	Hour     int           `json:"hour"`
	Tasks    []models.Task `json:"tasks"`
}

// NewCalendar takes ownership of a copy of tasks. A nil loc means UTC.
func NewCalendar(tasks []models.Task, loc *time.Location) *Calendar {
	if loc == nil {
		loc = time.UTC
	}
	c := &Calendar{
		tasks: models.CloneTasks(tasks),
		loc:   loc,
		newID: func() string { return "task-" + uuid.NewString() },
	}
	c.reindex()
	return c
}

func (c *Calendar) reindex() {
	c.index = make(map[string]int, len(c.tasks))
	for i, t := range c.tasks {
		c.index[t.ID] = i
	}
}

// Tasks returns a copy of the full table in list order.
func (c *Calendar) Tasks() []models.Task {
	return models.CloneTasks(c.tasks)
}

// Task looks a task up by id.
func (c *Calendar) Task(id string) (models.Task, bool) {
	i, ok := c.index[id]
	if !ok {
		return models.Task{}, false
	}
	return models.CloneTask(c.tasks[i]), true
}

// Unscheduled returns the brain dump in list order.
func (c *Calendar) Unscheduled() []models.Task {
	out := []models.Task{}
	for _, t := range c.tasks {
		if !t.IsScheduled() {
			out = append(out, models.CloneTask(t))
		}
	}
	return out
}

// Location returns the zone the grid is laid out in.
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// Schedule groups scheduled tasks by SlotKey, keeping list order inside a slot.
func (c *Calendar) Schedule() map[string][]models.Task {
	out := make(map[string][]models.Task)
	for _, t := range c.tasks {
		if !t.IsScheduled() {
			continue
		}
		key := SlotKey(*t.ScheduledDateTime, c.loc)
		out[key] = append(out[key], models.CloneTask(t))
	}
	return out
}

// Grid lays the week out as rows of hours (FirstHour..LastHour), each row
// holding one cell per day starting Monday.
func (c *Calendar) Grid(w Week) [][]Cell {
	schedule := c.Schedule()
	days := w.In(c.loc).Days()
	rows := make([][]Cell, 0, LastHour-FirstHour+1)
	for _, hour := range Hours() {
		row := make([]Cell, len(days))
		for i, day := range days {
			at := SlotTime(day, hour)
			tasks := schedule[SlotKey(at, c.loc)]
			if tasks == nil {
				tasks = []models.Task{}
			}
			row[i] = Cell{DateTime: at, Hour: hour, Tasks: tasks}
		}
		rows = append(rows, row)
	}
	return rows
}

// DayCounts counts scheduled tasks per day of w.
func (c *Calendar) DayCounts(w Week) []int {
	days := w.In(c.loc).Days()
	counts := make([]int, len(days))
	for _, t := range c.tasks {
		if !t.IsScheduled() {
			continue
		}
		for i, day := range days {
			if SameDay(*t.ScheduledDateTime, day) {
				counts[i]++
				break
			}
		}
	}
	return counts
}

// AddTask appends a new brain dump task. Blank titles are ignored.
func (c *Calendar) AddTask(title string) (models.Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, false
	}
	t := models.Task{
		ID:          c.newID(),
		Title:       title,
		Priority:    models.PriorityMedium,
		MilestoneID: models.NoMilestoneID,
		GoalID:      models.BrainDumpGoalID,
	}
	c.tasks = append(c.tasks, t)
	c.index[t.ID] = len(c.tasks) - 1
	return models.CloneTask(t), true
}

// Apply performs a drag effect and reports whether the table changed.
// Effects that reference unknown tasks or invalid destinations are ignored.
func (c *Calendar) Apply(e Effect) bool {
	switch e.Kind {
	case EffectAssign:
		return c.assign(e.TaskID, e.At)
	case EffectUnschedule:
		return c.unschedule(e.TaskID)
	case EffectReorder:
		return c.reorder(e.TaskID, e.OverID)
	}
	return false
}

func (c *Calendar) assign(id string, at time.Time) bool {
	i, ok := c.index[id]
	if !ok || at.IsZero() {
		return false
	}
	at = StartOfHour(at.In(c.loc))
	if !onGrid(at.Hour()) {
		return false
	}
	if cur := c.tasks[i].ScheduledDateTime; cur != nil && cur.Equal(at) {
		return false
	}
	c.tasks[i].ScheduledDateTime = &at
	return true
}

func (c *Calendar) unschedule(id string) bool {
	i, ok := c.index[id]
	if !ok || !c.tasks[i].IsScheduled() {
		return false
	}
	c.tasks[i].ScheduledDateTime = nil
	return true
}

// reorder moves id to overID's position inside the brain dump. The table
// becomes the reordered brain dump followed by the scheduled tasks.
func (c *Calendar) reorder(id, overID string) bool {
	if id == overID {
		return false
	}
	ai, ok := c.index[id]
	if !ok || c.tasks[ai].IsScheduled() {
		return false
	}
	oi, ok := c.index[overID]
	if !ok || c.tasks[oi].IsScheduled() {
		return false
	}

	var unscheduled, scheduled []models.Task
	from, to := -1, -1
	for _, t := range c.tasks {
		if t.IsScheduled() {
			scheduled = append(scheduled, t)
			continue
		}
		switch t.ID {
		case id:
			from = len(unscheduled)
		case overID:
			to = len(unscheduled)
		}
		unscheduled = append(unscheduled, t)
	}
	if from == to {
		return false
	}

	moved := arrayMove(unscheduled, from, to)
	c.tasks = append(moved, scheduled...)
	c.reindex()
	return true
}

// arrayMove removes the element at from and reinserts it at to.
func arrayMove(tasks []models.Task, from, to int) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	out = append(out, tasks[:from]...)
	out = append(out, tasks[from+1:]...)
	item := tasks[from]
	out = append(out[:to], append([]models.Task{item}, out[to:]...)...)
	return out
}
