// Package server exposes the search and the step-by-step visualiser over HTTP.
package server

import (
	"errors"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	astar "github.com/arcanis/astar-wasm"
	"github.com/arcanis/astar-wasm/internal/board"
	"github.com/arcanis/astar-wasm/internal/maze"
)

// Config holds configuration settings for creating a new Server instance.
type Config struct {
	Addr     string               // Address to listen on
	Mode     string               // Gin mode (debug, release, test)
	Registry *prometheus.Registry // Metrics registry; a fresh one when nil
	Logger   *slog.Logger
	Sessions int // Live session limit; DefaultSessionLimit when zero
}

// DefaultSessionLimit is the live session limit when Config.Sessions is zero.
const DefaultSessionLimit = 256

// Server routes HTTP requests to the search and to stepper sessions.
type Server struct {
	addr     string
	mode     string
	registry *prometheus.Registry
	metrics  *Metrics
	sessions *sessionStore
	logger   *slog.Logger
}

// New creates a Server from config.
func New(config Config) *Server {
	registry := config.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	limit := config.Sessions
	if limit <= 0 {
		limit = DefaultSessionLimit
	}
	mode := config.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	return &Server{
		addr:     config.Addr,
		mode:     mode,
		registry: registry,
		metrics:  NewMetrics(registry),
		sessions: newSessionStore(limit),
		logger:   logger,
	}
}

// Handler builds the gin engine with every route registered.
func (s *Server) Handler() *gin.Engine {
	gin.SetMode(s.mode)
	router := gin.New()
	router.Use(gin.Recovery())
	if s.mode != gin.TestMode {
		router.Use(gin.Logger())
	}

	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	v1 := router.Group("/v1")
	{
		v1.POST("/search", s.search)
		sessions := v1.Group("/sessions")
		sessions.POST("", s.createSession)
		sessions.POST("/:id/step", s.stepSession)
		sessions.GET("/:id/board", s.sessionBoard)
		sessions.DELETE("/:id", s.deleteSession)
	}
	return router
}

// Run serves until the listener fails.
func (s *Server) Run() error {
	s.logger.Info("serving", slog.String("addr", s.addr))
	return s.Handler().Run(s.addr)
}

func (s *Server) search(ctx *gin.Context) {
	var request SearchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	grid, err := astar.NewCostGrid(request.Width, request.Height, request.Cells)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	began := time.Now()
	result, err := astar.Search(grid, request.Start, request.Goal, astar.WithLogger(s.logger))
	s.metrics.observeSearch(result.Found, result.ExpandedNodes, time.Since(began).Seconds())

	if err != nil {
		ctx.JSON(http.StatusUnprocessableEntity, SearchResponse{
			Expanded: result.ExpandedNodes,
			Error:    err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, SearchResponse{
		Found:    true,
		Path:     result.Path,
		Steps:    result.Steps,
		Expanded: result.ExpandedNodes,
	})
}

func (s *Server) createSession(ctx *gin.Context) {
	var request SessionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var (
		grid *astar.CostGrid
		err  error
	)
	if request.Cells != nil {
		grid, err = astar.NewCostGrid(request.Width, request.Height, request.Cells)
	} else {
		seed := rand.Uint64()
		if request.Seed != nil {
			seed = *request.Seed
		}
		grid, err = maze.Generate(request.Width, request.Height, seed)
	}
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	start, goal := maze.Corners(grid)
	if request.Start != nil {
		start = *request.Start
	}
	if request.Goal != nil {
		goal = *request.Goal
	}

	id, evicted := s.sessions.add(&session{
		grid:    grid,
		start:   start,
		goal:    goal,
		stepper: astar.NewStepper(grid, start, goal, astar.WithLogger(s.logger)),
	})
	s.metrics.sessionsActive.Set(float64(s.sessions.count()))
	for _, old := range evicted {
		s.logger.Info("session evicted", slog.String("id", old.String()))
	}
	s.logger.Debug("session created", slog.String("id", id.String()))

	ctx.JSON(http.StatusCreated, SessionResponse{
		ID:     id.String(),
		Width:  grid.Width(),
		Height: grid.Height(),
		Start:  start,
		Goal:   goal,
	})
}

func (s *Server) stepSession(ctx *gin.Context) {
	sess, ok := s.lookup(ctx)
	if !ok {
		return
	}
	ctx.JSON(http.StatusOK, newSnapshotResponse(sess.step()))
}

func (s *Server) sessionBoard(ctx *gin.Context) {
	sess, ok := s.lookup(ctx)
	if !ok {
		return
	}
	ctx.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(board.Render(sess.grid, sess.path())))
}

func (s *Server) deleteSession(ctx *gin.Context) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return
	}
	if err := s.sessions.remove(id); err != nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	s.metrics.sessionsActive.Set(float64(s.sessions.count()))
	ctx.Status(http.StatusNoContent)
}

func (s *Server) lookup(ctx *gin.Context) (*session, bool) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return nil, false
	}
	sess, err := s.sessions.get(id)
	if errors.Is(err, ErrSessionNotFound) {
		ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return sess, true
}
