package server

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storycraft/agent"
	"storycraft/logbook"
	"storycraft/pipeline"
	"storycraft/render"
)

// Runner is the caller-facing pipeline surface the server binds to.
type Runner interface {
	Stream(ctx context.Context, idea string) <-chan pipeline.Snapshot
	Run(ctx context.Context, idea string) *pipeline.PipelineRun
	QuickRun(ctx context.Context, idea string) (brief, story agent.StageResult)
	Store() pipeline.RunStore
}

// Server exposes the pipeline over HTTP.
type Server struct {
	runner Runner
	log    *logbook.Logbook
	router *gin.Engine
}

func New(runner Runner, log *logbook.Logbook) *Server {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	s := &Server{runner: runner, log: log, router: router}

	api := router.Group("/api")
	{
		api.POST("/runs", s.handleRunStream)
		api.POST("/runs/sync", s.handleRunSync)
		api.POST("/quick", s.handleQuick)
		api.GET("/runs", s.handleRunLookup)
		api.GET("/published", s.handlePublished)
		api.GET("/log", s.handleLogTail)
	}
	return s
}

// Run starts the HTTP server.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

type ideaReq struct {
	Idea string `json:"idea" binding:"required"`
}

// handleRunStream executes the pipeline and streams progress snapshots as
// server-sent events, ending with the terminal snapshot.
func (s *Server) handleRunStream(c *gin.Context) {
	var req ideaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ch := s.runner.Stream(c.Request.Context(), req.Idea)
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(io.Writer) bool {
		snap, ok := <-ch
		if !ok {
			return false
		}
		c.SSEvent("progress", snap)
		return true
	})
}

func (s *Server) handleRunSync(c *gin.Context) {
	var req ideaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	run := s.runner.Run(c.Request.Context(), req.Idea)
	c.JSON(http.StatusOK, run)
}

func (s *Server) handleQuick(c *gin.Context) {
	var req ideaReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	brief, story := s.runner.QuickRun(c.Request.Context(), req.Idea)
	c.JSON(http.StatusOK, gin.H{"brief": brief, "writer": story})
}

// handleRunLookup is cache-only: it never triggers a new run.
func (s *Server) handleRunLookup(c *gin.Context) {
	key := strings.TrimSpace(c.Query("idea"))
	run, ok := s.runner.Store().Get(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached run for idea"})
		return
	}
	c.JSON(http.StatusOK, run)
}

// handlePublished renders the cached publisher Markdown as HTML.
func (s *Server) handlePublished(c *gin.Context) {
	key := strings.TrimSpace(c.Query("idea"))
	run, ok := s.runner.Store().Get(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no cached run for idea"})
		return
	}
	published, ok := run.Results[agent.StagePublisher]
	if !ok || published.Kind != agent.KindText {
		c.JSON(http.StatusConflict, gin.H{"error": "run has no published output"})
		return
	}
	page, err := render.Document(published.Text)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

func (s *Server) handleLogTail(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"lines": s.log.Tail(50)})
}
