package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handleListGoals returns the goal cards with their progress.
func (s *Server) handleListGoals(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{"goals": s.views.Goals()})
}

// handleToggleGoalTask checks or unchecks a task on the goals page.
func (s *Server) handleToggleGoalTask(c *gin.Context) {
	completed, ok := s.bindToggle(c)
	if !ok {
		return
	}
	changed := s.views.ToggleGoalTask(c.Param("id"), completed)
	respondSuccess(c, http.StatusOK, gin.H{"changed": changed, "goals": s.views.Goals()})
}
