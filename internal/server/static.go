package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// pages are the client-side routes of the planner frontend.
var pages = []string{"/", "/today", "/calendar", "/mindmap"}

// mountStatic serves the compiled frontend from the configured directory.
// Every page route answers with index.html and the client router takes over.
func (s *Server) mountStatic() {
	if s.staticDir == "" {
		s.logger.Warn("static directory not configured; API only mode")
		return
	}

	info, err := os.Stat(s.staticDir)
	if err != nil || !info.IsDir() {
		s.logger.Warn("static directory missing", "path", s.staticDir, "error", err)
		return
	}

	indexPath := filepath.Join(s.staticDir, "index.html")
	if _, err := os.Stat(indexPath); err != nil {
		s.logger.Warn("index.html not found", "path", indexPath, "error", err)
	} else {
		serveIndex := func(c *gin.Context) { c.File(indexPath) }
		for _, page := range pages {
			s.engine.GET(page, serveIndex)
		}
		s.engine.NoRoute(func(c *gin.Context) {
			if strings.HasPrefix(c.Request.URL.Path, "/api/") {
				c.JSON(http.StatusNotFound, gin.H{"error": "endpoint not found"})
				return
			}
			serveIndex(c)
		})
	}

	for _, dir := range []string{"assets", "_next"} {
		full := filepath.Join(s.staticDir, dir)
		if _, err := os.Stat(full); err == nil {
			s.engine.StaticFS("/"+dir, gin.Dir(full, false))
		}
	}

	favicon := filepath.Join(s.staticDir, "favicon.ico")
	if _, err := os.Stat(favicon); err == nil {
		s.engine.StaticFile("/favicon.ico", favicon)
	}
}
