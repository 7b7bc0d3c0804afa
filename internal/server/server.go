package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"manifest/internal/models"
	"manifest/internal/views"
)

// Catalog supplies the seed every view is rebuilt from on reset.
type Catalog interface {
	Load(ctx context.Context) (models.Dataset, error)
}

// Server provides HTTP handlers for the planner frontend.
type Server struct {
	engine    *gin.Engine
	views     *views.Views
	catalog   Catalog
	logger    *slog.Logger
	staticDir string
}

// New constructs the HTTP server with routes and middleware configured.
func New(v *views.Views, catalog Catalog, logger *slog.Logger, staticDir string) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithWriter(gin.DefaultWriter, "/api"))

	srv := &Server{
		engine:    router,
		views:     v,
		catalog:   catalog,
		logger:    logger,
		staticDir: staticDir,
	}

	srv.registerRoutes()
	return srv
}

// Engine exposes the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// registerRoutes wires all API and static handlers together.
func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/healthz", s.handleHealth)
		api.POST("/reset", s.handleReset)

		goals := api.Group("/goals")
		{
			goals.GET("", s.handleListGoals)
			goals.PUT("/tasks/:id", s.handleToggleGoalTask)
		}

		today := api.Group("/today")
		{
			today.GET("", s.handleToday)
			today.PUT("/sort", s.handleTodaySort)
			today.PUT("/tasks/:id", s.handleToggleTodayTask)
		}

		calendar := api.Group("/calendar")
		{
			calendar.GET("", s.handleCalendar)
			calendar.PUT("/date", s.handleSelectDate)
			calendar.POST("/tasks", s.handleAddTask)
			calendar.POST("/drag/start", s.handleDragStart)
			calendar.POST("/drag/end", s.handleDragEnd)
			calendar.POST("/drag/cancel", s.handleDragCancel)
		}

		api.GET("/mindmap", s.handleMindmap)
	}

	s.mountStatic()
}

// handleHealth provides a basic readiness endpoint.
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleReset rebuilds every view from the catalog, discarding all edits.
func (s *Server) handleReset(c *gin.Context) {
	ds, err := s.catalog.Load(c.Request.Context())
	if err != nil {
		s.respondError(c, http.StatusInternalServerError, err)
		return
	}
	s.views.Reset(ds)
	respondSuccess(c, http.StatusOK, gin.H{"status": "reset"})
}

// handleMindmap returns the positioned goal graph.
func (s *Server) handleMindmap(c *gin.Context) {
	respondSuccess(c, http.StatusOK, s.views.Mindmap())
}

type toggleRequest struct {
	Completed *bool `json:"completed"`
}

// bindToggle reads the completion flag; the flag is mandatory.
func (s *Server) bindToggle(c *gin.Context) (bool, bool) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.respondError(c, http.StatusBadRequest, err)
		return false, false
	}
	if req.Completed == nil {
		s.respondError(c, http.StatusBadRequest, errMissing("completed"))
		return false, false
	}
	return *req.Completed, true
}

func errMissing(field string) error {
	return fmt.Errorf("%s is required", field)
}

// respondError logs the error and returns a JSON payload.
func (s *Server) respondError(c *gin.Context, status int, err error) {
	if err != nil {
		s.logger.Error("request failed", slog.String("path", c.FullPath()), slog.String("error", err.Error()))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// respondSuccess wraps a payload in a JSON envelope for consistency.
func respondSuccess(c *gin.Context, status int, payload any) {
	if payload == nil {
		c.Status(status)
		return
	}
	c.JSON(status, payload)
}
