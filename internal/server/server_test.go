package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"manifest/internal/models"
	"manifest/internal/planner"
	"manifest/internal/seed"
	"manifest/internal/views"
)

var now = time.Date(2024, time.March, 6, 15, 30, 0, 0, time.UTC)

type fakeCatalog struct {
	ds  models.Dataset
	err error
}

func (f *fakeCatalog) Load(context.Context) (models.Dataset, error) {
	return f.ds, f.err
}

func setupServer(t *testing.T, staticDir string) (*Server, *fakeCatalog) {
	t.Helper()
	return setupServerAt(t, now, staticDir)
}

func setupServerAt(t *testing.T, clock time.Time, staticDir string) (*Server, *fakeCatalog) {
	t.Helper()
	catalog := &fakeCatalog{ds: seed.Mock(clock)}
	v := views.New(catalog.ds, func() time.Time { return clock }, nil)
	return New(v, catalog, nil, staticDir), catalog
}

func do(t *testing.T, srv *Server, method, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type calendarResponse struct {
	Changed  bool                   `json:"changed"`
	Added    bool                   `json:"added"`
	Task     models.Task            `json:"task"`
	Calendar views.CalendarSnapshot `json:"calendar"`
}

func TestHealth(t *testing.T) {
	srv, _ := setupServer(t, "")
	rec := do(t, srv, http.MethodGet, "/api/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGoalsEndpoints(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := do(t, srv, http.MethodGet, "/api/goals", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[struct {
		Goals []views.GoalCard `json:"goals"`
	}](t, rec)
	require.Len(t, resp.Goals, 3)
	assert.Equal(t, "Learn Next.js 14", resp.Goals[0].Title)
	assert.Equal(t, 50, resp.Goals[0].Progress)

	rec = do(t, srv, http.MethodPut, "/api/goals/tasks/t2", body{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code)
	toggled := decode[struct {
		Changed bool             `json:"changed"`
		Goals   []views.GoalCard `json:"goals"`
	}](t, rec)
	assert.True(t, toggled.Changed)
	assert.Equal(t, 75, toggled.Goals[0].Progress)
	assert.Equal(t, 100, toggled.Goals[0].Milestones[0].Progress)

	rec = do(t, srv, http.MethodPut, "/api/goals/tasks/nope", body{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[struct {
		Changed bool `json:"changed"`
	}](t, rec).Changed)

	rec = do(t, srv, http.MethodPut, "/api/goals/tasks/t2", body{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTodayEndpoints(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := do(t, srv, http.MethodGet, "/api/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	today := decode[views.TodaySnapshot](t, rec)
	assert.Equal(t, planner.SortByPriority, today.SortBy)
	assert.Len(t, today.Tasks, 4)

	rec = do(t, srv, http.MethodPut, "/api/today/sort", body{"sortBy": "default"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, planner.SortDefault, decode[views.TodaySnapshot](t, rec).SortBy)

	rec = do(t, srv, http.MethodPut, "/api/today/sort", body{"sortBy": "title"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPut, "/api/today/tasks/t6", body{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[struct {
		Changed bool                `json:"changed"`
		Today   views.TodaySnapshot `json:"today"`
	}](t, rec)
	assert.True(t, resp.Changed)
	for _, task := range resp.Today.Tasks {
		assert.Equal(t, task.ID == "t6" || task.ID == "t1" || task.ID == "t3" || task.ID == "t8", task.Completed, task.ID)
	}
}

func TestCalendarDragFlow(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := do(t, srv, http.MethodGet, "/api/calendar", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[views.CalendarSnapshot](t, rec)
	assert.Equal(t, []int{0, 0, 2, 1, 0, 0, 0}, snap.DayCounts)
	assert.Len(t, snap.Grid, 15)

	rec = do(t, srv, http.MethodPost, "/api/calendar/drag/start", body{"taskId": "t4"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "t4", decode[calendarResponse](t, rec).Calendar.Drag.TaskID)

	slot := planner.SlotTarget(time.Date(2024, time.March, 10, 20, 0, 0, 0, time.UTC))
	rec = do(t, srv, http.MethodPost, "/api/calendar/drag/end", body{"over": slot})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[calendarResponse](t, rec)
	assert.True(t, resp.Changed)
	assert.Equal(t, []int{0, 0, 2, 1, 0, 0, 1}, resp.Calendar.DayCounts)
	cell := resp.Calendar.Grid[20-planner.FirstHour][6]
	require.Len(t, cell.Tasks, 1)
	assert.Equal(t, "t4", cell.Tasks[0].ID)

	// back to the brain dump
	do(t, srv, http.MethodPost, "/api/calendar/drag/start", body{"taskId": "t4"})
	rec = do(t, srv, http.MethodPost, "/api/calendar/drag/end", body{"over": planner.BrainDumpTarget()})
	resp = decode[calendarResponse](t, rec)
	assert.True(t, resp.Changed)
	assert.Equal(t, []int{0, 0, 2, 1, 0, 0, 0}, resp.Calendar.DayCounts)

	// reorder t4 onto t3
	do(t, srv, http.MethodPost, "/api/calendar/drag/start", body{"taskId": "t4"})
	rec = do(t, srv, http.MethodPost, "/api/calendar/drag/end", body{"over": planner.TaskTarget("t3")})
	resp = decode[calendarResponse](t, rec)
	assert.True(t, resp.Changed)
	require.NotEmpty(t, resp.Calendar.Unscheduled)
	assert.Equal(t, "t4", resp.Calendar.Unscheduled[0].ID)
}

func TestCalendarDragWithoutTarget(t *testing.T) {
	srv, _ := setupServer(t, "")
	before := decode[views.CalendarSnapshot](t, do(t, srv, http.MethodGet, "/api/calendar", nil))

	do(t, srv, http.MethodPost, "/api/calendar/drag/start", body{"taskId": "t3"})
	rec := do(t, srv, http.MethodPost, "/api/calendar/drag/end", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decode[calendarResponse](t, rec)
	assert.False(t, resp.Changed)
	assert.Equal(t, before.Unscheduled, resp.Calendar.Unscheduled)
	assert.False(t, resp.Calendar.Drag.Dragging())

	do(t, srv, http.MethodPost, "/api/calendar/drag/start", body{"taskId": "t3"})
	rec = do(t, srv, http.MethodPost, "/api/calendar/drag/cancel", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, decode[calendarResponse](t, rec).Calendar.Drag.Dragging())
}

func TestCalendarDragEndWithChunkedEmptyBody(t *testing.T) {
	srv, _ := setupServer(t, "")
	do(t, srv, http.MethodPost, "/api/calendar/drag/start", body{"taskId": "t3"})

	// a reader of unknown length leaves ContentLength at -1
	req := httptest.NewRequest(http.MethodPost, "/api/calendar/drag/end", struct{ io.Reader }{strings.NewReader("")})
	require.EqualValues(t, -1, req.ContentLength)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[calendarResponse](t, rec)
	assert.False(t, resp.Changed)
	assert.False(t, resp.Calendar.Drag.Dragging())

	rec = do(t, srv, http.MethodPost, "/api/calendar/drag/end", "not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCalendarSlotDropInPlannerZone(t *testing.T) {
	newYork := time.FixedZone("EST", -5*60*60)

	cases := []struct {
		name     string
		clock    time.Time
		dateTime string
		changed  bool
		hour     int
	}{
		{"offset payload before the grid opens", now, "2024-03-06T08:00:00+02:00", false, 0},
		{"utc payload for the last new york row", now.In(newYork), "2024-03-07T02:00:00Z", true, 21},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv, _ := setupServerAt(t, tc.clock, "")
			do(t, srv, http.MethodPost, "/api/calendar/drag/start", body{"taskId": "t3"})
			rec := do(t, srv, http.MethodPost, "/api/calendar/drag/end",
				body{"over": body{"kind": "slot", "id": "slot-x", "dateTime": tc.dateTime}})
			require.Equal(t, http.StatusOK, rec.Code)
			resp := decode[calendarResponse](t, rec)
			assert.Equal(t, tc.changed, resp.Changed)

			var inGrid []time.Time
			for _, row := range resp.Calendar.Grid {
				for _, cell := range row {
					for _, task := range cell.Tasks {
						if task.ID == "t3" {
							inGrid = append(inGrid, cell.DateTime)
						}
					}
				}
			}
			inBrainDump := false
			for _, task := range resp.Calendar.Unscheduled {
				inBrainDump = inBrainDump || task.ID == "t3"
			}

			if !tc.changed {
				assert.True(t, inBrainDump)
				assert.Empty(t, inGrid)
				assert.Equal(t, []int{0, 0, 2, 1, 0, 0, 0}, resp.Calendar.DayCounts)
				return
			}
			assert.False(t, inBrainDump)
			require.Len(t, inGrid, 1)
			assert.Equal(t, tc.hour, inGrid[0].In(tc.clock.Location()).Hour())
			assert.Equal(t, time.Wednesday, inGrid[0].In(tc.clock.Location()).Weekday())
			assert.Equal(t, []int{0, 0, 3, 1, 0, 0, 0}, resp.Calendar.DayCounts)
		})
	}
}

func TestCalendarAddTask(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := do(t, srv, http.MethodPost, "/api/calendar/tasks", body{"title": "Write tests"})
	require.Equal(t, http.StatusCreated, rec.Code)
	resp := decode[calendarResponse](t, rec)
	assert.True(t, resp.Added)
	assert.Equal(t, "Write tests", resp.Task.Title)
	assert.Equal(t, models.PriorityMedium, resp.Task.Priority)
	assert.Equal(t, models.BrainDumpGoalID, resp.Task.GoalID)
	assert.Len(t, resp.Calendar.Unscheduled, 7)

	rec = do(t, srv, http.MethodPost, "/api/calendar/tasks", body{"title": "   "})
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decode[calendarResponse](t, rec)
	assert.False(t, resp.Added)
	assert.Len(t, resp.Calendar.Unscheduled, 7)
}

func TestCalendarSelectDate(t *testing.T) {
	srv, _ := setupServer(t, "")

	rec := do(t, srv, http.MethodPut, "/api/calendar/date", body{"date": "2024-03-14"})
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[views.CalendarSnapshot](t, rec)
	assert.True(t, snap.Week.Start.Equal(time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, []int{0, 0, 1, 0, 0, 0, 0}, snap.DayCounts)

	rec = do(t, srv, http.MethodPut, "/api/calendar/date", body{"date": "2024-03-04T12:00:00Z"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodPut, "/api/calendar/date", body{"date": "next tuesday"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = do(t, srv, http.MethodPut, "/api/calendar/date", body{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMindmap(t *testing.T) {
	srv, _ := setupServer(t, "")
	rec := do(t, srv, http.MethodGet, "/api/mindmap", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	layout := decode[planner.Layout](t, rec)
	assert.Len(t, layout.Nodes, 19)
	assert.Len(t, layout.Edges, 16)
}

func TestReset(t *testing.T) {
	srv, catalog := setupServer(t, "")

	do(t, srv, http.MethodPost, "/api/calendar/tasks", body{"title": "scratch"})
	rec := do(t, srv, http.MethodPost, "/api/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	snap := decode[views.CalendarSnapshot](t, do(t, srv, http.MethodGet, "/api/calendar", nil))
	assert.Len(t, snap.Unscheduled, 6)

	catalog.err = errors.New("catalog unavailable")
	rec = do(t, srv, http.MethodPost, "/api/reset", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestStaticMount(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>planner</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	srv, _ := setupServer(t, dir)

	for _, page := range []string{"/", "/today", "/calendar", "/mindmap", "/unknown/page"} {
		rec := do(t, srv, http.MethodGet, page, nil)
		assert.Equal(t, http.StatusOK, rec.Code, page)
		assert.Contains(t, rec.Body.String(), "planner", page)
	}

	rec := do(t, srv, http.MethodGet, "/assets/app.js", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/nothing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type body map[string]any
