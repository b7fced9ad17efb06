// Package daemon serves the staged scene files to the device over HTTP,
// along with a small JSON API describing what has been staged.
package daemon

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gearvrf/gvrf-exporter/internal/common"
	"github.com/gearvrf/gvrf-exporter/internal/config"
	"github.com/gearvrf/gvrf-exporter/internal/staging"
)

func NewServer(cfg *config.Config, stager *staging.Stager) *Server {
	return &Server{
		Config:    cfg,
		Stager:    stager,
		StartTime: time.Now().UTC(),
	}
}

// Server is the asset server the device downloads models from
type Server struct {
	Config        *config.Config
	Stager        *staging.Stager
	StartTime     time.Time
	TotalRequests int64
	server        *http.Server
	addr          string
}

func (s *Server) GetVersion() string {
	version, gitCommit, ok := common.GetModuleBuildInfo()
	if !ok {
		return "unknown"
	}
	if short := common.ShortCommit(gitCommit); len(short) > 0 {
		return fmt.Sprintf("%s (git: %s)", version, short)
	}
	return version
}

// Addr returns the address the server is listening on once started
func (s *Server) Addr() string {
	return s.addr
}

// Handler builds the router without starting a listener
func (s *Server) Handler() http.Handler {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	router.Use(RequestIDMiddleware())
	router.Use(requestLogger())
	router.Use(gin.CustomRecovery(
		func(c *gin.Context, err any) {
			logrus.WithField("panic", err).Error("Recovered from panic")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal Server Error"})
		},
	))
	router.Use(s.requestCounterMiddleware())

	// The device fetches with plain GETs; browsers previewing the
	// staged scene may come from anywhere on the LAN.
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowHeaders: []string{
			"Origin",
			"Content-Length",
			"Content-Type",
			"Accept",
			"Range",
			RequestIDHeader,
		},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: false,
	}))

	s.setupRoutes(router)

	return router
}

// Start listens on the configured address and serves in the background
func (s *Server) Start() error {
	addr := s.Config.GetServerAddress()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.Config.Server.Limits.ReadTimeout,
		WriteTimeout: s.Config.Server.Limits.WriteTimeout,
		IdleTimeout:  s.Config.Server.Limits.IdleTimeout,
	}

	s.server = server
	s.addr = listener.Addr().String()

	// Channel to capture startup errors
	errChan := make(chan error, 1)

	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait a moment to see if the server fails to start
	select {
	case err := <-errChan:
		return fmt.Errorf("failed to start server: %w", err)
	case <-time.After(100 * time.Millisecond):
		logrus.WithFields(logrus.Fields{
			"address": s.addr,
			"root":    s.Stager.Root(),
			"url":     s.Stager.BaseURL(),
		}).Infoln("Asset server started")
		return nil
	}
}

func (s *Server) Stop() {
	if s.server == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warnln("Asset server shutdown")
	}
	s.server = nil
	logrus.Debugln("Asset server stopped")
}

// requestCounterMiddleware increments the request counter
func (s *Server) requestCounterMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		atomic.AddInt64(&s.TotalRequests, 1)
		c.Next()
	}
}

// requestLogger logs every request through logrus
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := LogWithRequestID(c).WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"bytes":   c.Writer.Size(),
			"client":  c.ClientIP(),
			"latency": time.Since(start).String(),
		})

		if c.Writer.Status() >= http.StatusBadRequest {
			entry.Warnln("Request failed")
			return
		}
		entry.Debugln("Request served")
	}
}

// setupRoutes configures all the HTTP routes
func (s *Server) setupRoutes(router *gin.Engine) {
	if s.Config.Server.Health.Enabled {
		router.GET(s.Config.Server.Health.Path, s.healthHandler)
	}

	api := router.Group(s.Config.GetApiBasePath())
	{
		api.GET("/assets", s.listAssetsHandler)
		api.GET("/events", s.eventsHandler)
	}

	// Everything else is a staged file
	files := http.Dir(s.Stager.Root())
	router.NoRoute(func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.AbortWithStatus(http.StatusMethodNotAllowed)
			return
		}
		c.FileFromFS(c.Request.URL.Path, files)
	})
}

func (s *Server) rootAvailable() bool {
	info, err := os.Stat(s.Stager.Root())
	return err == nil && info.IsDir()
}
