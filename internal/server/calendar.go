package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"manifest/internal/planner"
)

type dateRequest struct {
	Date string `json:"date"`
}

type addTaskRequest struct {
	Title string `json:"title"`
}

type dragStartRequest struct {
	TaskID string `json:"taskId"`
}

type dragEndRequest struct {
	Over *planner.Target `json:"over"`
}

// handleCalendar returns the brain dump and the grid of the selected week.
func (s *Server) handleCalendar(c *gin.Context) {
	respondSuccess(c, http.StatusOK, s.views.Calendar())
}

// handleSelectDate moves the calendar to another week.
func (s *Server) handleSelectDate(c *gin.Context) {
	var req dateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	date, err := parseDate(req.Date, s.views.Now().Location())
	if err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	respondSuccess(c, http.StatusOK, s.views.SelectDate(date))
}

// handleAddTask appends a task to the brain dump. A blank title is not an
// error; the board simply stays as it was.
func (s *Server) handleAddTask(c *gin.Context) {
	var req addTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	task, added, snap := s.views.AddTask(req.Title)
	if !added {
		respondSuccess(c, http.StatusOK, gin.H{"added": false, "calendar": snap})
		return
	}
	respondSuccess(c, http.StatusCreated, gin.H{"added": true, "task": task, "calendar": snap})
}

// handleDragStart captures the dragged task.
func (s *Server) handleDragStart(c *gin.Context) {
	var req dragStartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	s.respondDrag(c, planner.Event{Kind: planner.DragStart, TaskID: req.TaskID})
}

// handleDragEnd drops the captured task on the resolved target. A missing
// target cancels the gesture.
func (s *Server) handleDragEnd(c *gin.Context) {
	var req dragEndRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	s.respondDrag(c, planner.Event{Kind: planner.DragEnd, Over: req.Over})
}

// handleDragCancel releases the captured task without changes.
func (s *Server) handleDragCancel(c *gin.Context) {
	s.respondDrag(c, planner.Event{Kind: planner.DragCancel})
}

func (s *Server) respondDrag(c *gin.Context, ev planner.Event) {
	changed, snap := s.views.Drag(ev)
	respondSuccess(c, http.StatusOK, gin.H{"changed": changed, "calendar": snap})
}

// parseDate accepts a plain date or an RFC 3339 timestamp.
func parseDate(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errMissing("date")
	}
	if t, err := time.ParseInLocation(time.DateOnly, raw, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", raw)
	}
	return t.In(loc), nil
}
