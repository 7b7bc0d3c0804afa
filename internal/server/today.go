package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"manifest/internal/planner"
)

// handleToday returns the tasks due today.
func (s *Server) handleToday(c *gin.Context) {
	respondSuccess(c, http.StatusOK, s.views.Today())
}

type sortRequest struct {
	SortBy string `json:"sortBy"`
}

// handleTodaySort switches between priority and default order.
func (s *Server) handleTodaySort(c *gin.Context) {
	var req sortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return
	}
	mode, ok := planner.ParseSortMode(req.SortBy)
	if !ok {
		s.respondError(c, http.StatusBadRequest, fmt.Errorf("unknown sort mode %q", req.SortBy))
		return
	}
	s.views.SetTodaySort(mode)
	respondSuccess(c, http.StatusOK, s.views.Today())
}

// handleToggleTodayTask checks or unchecks a task on the today page.
func (s *Server) handleToggleTodayTask(c *gin.Context) {
	completed, ok := s.bindToggle(c)
	if !ok {
		return
	}
	changed := s.views.ToggleTodayTask(c.Param("id"), completed)
	respondSuccess(c, http.StatusOK, gin.H{"changed": changed, "today": s.views.Today()})
}
