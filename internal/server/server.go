// Package server exposes missions, the tutor and progress as a JSON API
// for browser front-ends.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/abhisek/mathspace/internal/progress"
	"github.com/abhisek/mathspace/internal/quiz"
	"github.com/abhisek/mathspace/internal/tutor"
)

// MaxMissions bounds the missions held in memory. The oldest is evicted
// first.
const MaxMissions = 256

// Options configures a Server. Source is required; the rest are optional.
type Options struct {
	Source   quiz.Source
	Tutor    *tutor.Service
	Progress *progress.Service
	Journal  *progress.Journal
	Quiz     quiz.Config

	// AllowOrigins lists CORS origins. Empty allows any origin.
	AllowOrigins []string
}

// Server is the HTTP API.
type Server struct {
	opts    Options
	engine  *gin.Engine
	metrics *metrics
	reg     *prometheus.Registry

	mu       sync.Mutex
	missions map[string]*mission
	order    []string
}

// mission is one play-through. Its mutex serializes the session; the
// session itself is single-consumer.
type mission struct {
	mu       sync.Mutex
	session  *quiz.Session
	started  time.Time
	shown    time.Time
	recorded bool
	badges   []progress.Badge
}

// New builds a server and its routes. The default mission size is capped
// at MaxCount.
func New(opts Options) *Server {
	if opts.Quiz.Count <= 0 {
		opts.Quiz = quiz.DefaultConfig()
	}
	if opts.Quiz.Count > MaxCount {
		slog.Warn("default mission size capped", "count", opts.Quiz.Count, "max", MaxCount)
		opts.Quiz.Count = MaxCount
	}
	reg := prometheus.NewRegistry()
	s := &Server{
		opts:     opts,
		metrics:  newMetrics(reg),
		reg:      reg,
		missions: make(map[string]*mission),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	slog.Info("http server listening", "addr", addr)

	select {
	case err := <-errc:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.observe())

	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type", "Content-Length", "Accept", "Origin"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(s.opts.AllowOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.opts.AllowOrigins
	}
	r.Use(cors.New(corsCfg))

	api := r.Group("/api")
	{
		api.GET("/categories", s.listCategories)
		api.POST("/missions", s.createMission)
		api.GET("/missions/:id", s.getMission)
		api.POST("/missions/:id/answer", s.submitAnswer)
		api.POST("/missions/:id/advance", s.advance)
		api.POST("/ask", s.ask)
		api.POST("/speech", s.speech)
		api.GET("/stats", s.stats)
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.reg, promhttp.HandlerOpts{})))
	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	return r
}

// observe records request counts and latency per route template.
func (s *Server) observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requests.WithLabelValues(route, strconv.Itoa(c.Writer.Status())).Inc()
		s.metrics.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func (s *Server) put(m *mission) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := m.session.ID()
	s.missions[id] = m
	s.order = append(s.order, id)
	for len(s.order) > MaxMissions {
		delete(s.missions, s.order[0])
		s.order = s.order[1:]
	}
	s.metrics.active.Set(float64(len(s.missions)))
}

func (s *Server) get(id string) (*mission, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.missions[id]
	return m, ok
}

func errorJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
}
