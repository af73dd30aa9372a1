// Package server is the status listener: a read-only HTTP view over
// the shared topology, the last telemetry snapshot, and working
// memory. It copies state out under the guards and never holds a
// guard across response I/O.
package server

import (
	"context"
	"fmt"
	"math"
	"net"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/organctl/internal/memory"
	"github.com/danmuck/organctl/internal/observability"
	"github.com/danmuck/organctl/internal/organism"
	"github.com/danmuck/organctl/internal/telemetry"
)

// Server owns the listener wiring. All handlers are pure readers.
type Server struct {
	addr      string
	engine    *gin.Engine
	store     *organism.Store
	snapshots *telemetry.SnapshotStore
	mem       *memory.Store
}

// New builds the listener around its read-only collaborators.
func New(addr string, corsOrigins []string, store *organism.Store,
	snapshots *telemetry.SnapshotStore, mem *memory.Store) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(observability.RequestLogger(log.Logger))
	engine.Use(observability.RequestMetrics())
	if len(corsOrigins) > 0 {
		engine.Use(cors.New(cors.Config{
			AllowOrigins: corsOrigins,
			AllowMethods: []string{"GET"},
			AllowHeaders: []string{"Origin", "Content-Type"},
			MaxAge:       12 * time.Hour,
		}))
	}

	s := &Server{
		addr:      addr,
		engine:    engine,
		store:     store,
		snapshots: snapshots,
		mem:       mem,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.handleHome)
	s.engine.GET("/status", s.handleStatus)
	s.engine.GET("/metrics", s.handleMetrics)
	s.engine.GET("/mem", s.handleMem)
	s.engine.GET("/prometheus", gin.WrapH(promhttp.Handler()))
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// Handler exposes the engine for httptest.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start binds the listen address and serves until ctx is cancelled.
// A bind failure is returned immediately; it is the caller's only
// fatal startup condition.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("status listener: %w", err)
	}
	log.Info().Str("addr", s.addr).Msg("status_listener_started")

	srv := &http.Server{Handler: s.engine}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("status_listener_shutdown_failed")
		}
	}()

	go func() {
		if err := srv.Serve(ln); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("status_listener_failed")
		}
	}()
	return nil
}

func (s *Server) handleHome(c *gin.Context) {
	health, awareness := s.store.HealthSnapshot()
	page := homepageData{
		HealthScore:    health,
		HealthLabel:    organism.ClassifyHealth(health),
		AwarenessScore: awareness,
		AwarenessLabel: organism.DescribeAwareness(awareness),
	}
	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := homepageTemplate.Execute(c.Writer, page); err != nil {
		log.Error().Err(err).Msg("homepage_render_failed")
	}
}

func (s *Server) handleStatus(c *gin.Context) {
	health, awareness := s.store.HealthSnapshot()
	c.JSON(http.StatusOK, gin.H{
		"health": gin.H{
			"score": round3(health),
			"label": organism.ClassifyHealth(health),
		},
		"awareness": gin.H{
			"score": round3(awareness),
			"label": organism.DescribeAwareness(awareness),
		},
	})
}

func (s *Server) handleMetrics(c *gin.Context) {
	snap, ok := s.snapshots.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "metrics not yet available"})
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) handleMem(c *gin.Context) {
	c.String(http.StatusOK, s.mem.Dump())
}

func round3(x float64) float64 {
	return math.Round(x*1000) / 1000
}
