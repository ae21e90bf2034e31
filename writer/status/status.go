// Package status exposes the counters of a running stream session over HTTP.
package status

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/ugparu/hevcbs"
	"github.com/ugparu/hevcbs/utils/logger"
)

// StatsSource is anything reporting session counters, usually a hevcbs.StreamReader.
type StatsSource interface {
	Stats() hevcbs.Stats
}

// Server serves /health, /stats and the pprof handlers.
type Server struct {
	server    *http.Server
	router    *gin.Engine
	source    StatsSource
	started   time.Time
	startOnce *sync.Once
	closeOnce *sync.Once
}

type statsResponse struct {
	hevcbs.Stats
	Uptime string `json:"uptime"`
}

// New builds a server listening on addr. Nothing is bound until Start.
func New(addr string, source StatsSource) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	pprof.Register(router)

	s := &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
		},
		router:    router,
		source:    source,
		started:   time.Now(),
		startOnce: &sync.Once{},
		closeOnce: &sync.Once{},
	}

	router.GET("/health", s.getHealth)
	router.GET("/stats", s.getStats)

	logger.Debug(s, "Initialized and set up")
	return s
}

// Handler returns the router, for serving without a listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Close is called. A regular shutdown returns nil.
func (s *Server) Start() error {
	err := errors.New("HTTP server has been started already")
	s.startOnce.Do(func() {
		logger.Infof(s, "Starting listening on %s", s.server.Addr)
		if err = s.server.ListenAndServe(); errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	})
	if err != nil {
		logger.Error(s, err.Error())
	}
	return err
}

// Close stops the listener.
func (s *Server) Close() {
	s.closeOnce.Do(func() {
		logger.Info(s, "Stopping and closing")
		_ = s.server.Close()
	})
}

func (s *Server) getHealth(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (s *Server) getStats(c *gin.Context) {
	if s.source == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, statsResponse{
		Stats:  s.source.Stats(),
		Uptime: time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) String() string {
	return "STATUS"
}
