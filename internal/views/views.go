package views

import (
	"log/slog"
	"sync"
	"time"

	"manifest/internal/models"
	"manifest/internal/planner"
)

// Views holds the in-memory state of every page. Each page is built from its
// own copy of the seed, so edits made in one page never show up in another.
// All calls are serialized by a single mutex.
type Views struct {
	mu     sync.Mutex
	logger *slog.Logger
	now    func() time.Time

	seed models.Dataset

	goals    []models.Goal
	today    *planner.TodayList
	calendar *planner.Calendar
	selected time.Time
	drag     planner.DragState
	mindmap  []models.Goal
}

// New builds every view from ds. now supplies the current time in the
// location the planner works in.
func New(ds models.Dataset, now func() time.Time, logger *slog.Logger) *Views {
	if logger == nil {
		logger = slog.Default()
	}
	if now == nil {
		now = time.Now
	}
	v := &Views{logger: logger, now: now}
	v.reset(ds)
	return v
}

// Reset discards every edit and rebuilds all views from ds.
func (v *Views) Reset(ds models.Dataset) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.reset(ds)
	v.logger.Info("views reset", slog.Int("goals", len(ds.Goals)), slog.Int("tasks", len(ds.Tasks)))
}

func (v *Views) reset(ds models.Dataset) {
	v.seed = ds.Clone()
	now := v.now()

	v.goals = v.seed.Clone().GoalTree()
	v.today = planner.NewTodayList(v.seed.Clone().Tasks, now)
	v.calendar = planner.NewCalendar(v.seed.Clone().Tasks, now.Location())
	v.selected = now
	v.drag = planner.DragState{}
	v.mindmap = v.seed.Clone().GoalTree()
}

// RolloverToday adopts ds as the seed and reselects the tasks due on the
// current day. The sort mode is kept; completion toggles from the previous
// day are dropped. The other views keep their edits until the next reset.
func (v *Views) RolloverToday(ds models.Dataset) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seed = ds.Clone()
	mode := v.today.SortMode()
	v.today = planner.NewTodayList(v.seed.Clone().Tasks, v.now())
	v.today.SetSortMode(mode)
	v.logger.Info("today list rolled over", slog.Int("tasks", len(v.today.Tasks())))
}

// Now returns the current time in the planner's location.
func (v *Views) Now() time.Time {
	return v.now()
}
