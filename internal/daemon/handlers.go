package daemon

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/gearvrf/gvrf-exporter/internal/config"
	"github.com/gearvrf/gvrf-exporter/internal/models"
)

const defaultEventLimit = 100

// healthHandler reports whether the staging directory can be served.
// The exporter probes it before asking the device to download anything.
func (s *Server) healthHandler(c *gin.Context) {
	servicesHealth := map[string]models.HealthState{
		"assets": models.HealthStatusHealthy,
	}

	if !s.rootAvailable() {
		servicesHealth["assets"] = models.HealthStatusUnhealthy
	}

	overallStatus := models.HealthStatusHealthy
	statusCode := http.StatusOK

	for _, status := range servicesHealth {
		if status != models.HealthStatusHealthy {
			overallStatus = models.HealthStatusDegraded
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	c.JSON(statusCode, models.HealthResponse{
		Status:      overallStatus,
		ApiBasePath: s.Config.GetApiBasePath(),
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Version:     s.GetVersion(),
		Services:    servicesHealth,
	})
}

func (s *Server) listAssetsHandler(c *gin.Context) {
	assets, err := s.Stager.List()
	if err != nil {
		logrus.WithError(err).Errorln("Failed to list staged assets")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"base_url": s.Stager.BaseURL(),
		"assets":   assets,
	})
}

// eventsHandler returns recent log events. Query parameters: level
// (comma separated), run, since (RFC3339) and limit.
func (s *Server) eventsHandler(c *gin.Context) {
	filter := config.LogFilter{
		Run:   c.Query("run"),
		Limit: defaultEventLimit,
	}

	if levels := c.Query("level"); len(levels) > 0 {
		for _, name := range strings.Split(levels, ",") {
			level, err := logrus.ParseLevel(strings.TrimSpace(name))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			filter.Levels = append(filter.Levels, level)
		}
	}

	if since := c.Query("since"); len(since) > 0 {
		t, err := time.Parse(time.RFC3339, since)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "since must be RFC3339"})
			return
		}
		filter.Since = &t
	}

	if limit := c.Query("limit"); len(limit) > 0 {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative number"})
			return
		}
		filter.Limit = n
	}

	events := s.Config.GetEvents(filter)
	if events == nil {
		events = []*models.LogEntry{}
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}
