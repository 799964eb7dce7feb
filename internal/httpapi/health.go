package httpapi

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/placement-cell/placement_service/internal/database"
)

// healthz is the liveness probe.
func (api *API) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// healthDB round-trips the database and reports pool counters. A failed
// ping answers 503.
func (api *API) healthDB(c *gin.Context) {
	if api.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database not configured",
		})
		return
	}

	if err := database.Ping(c.Request.Context(), api.db); err != nil {
		api.log.Error().Err(err).Msg("database health check failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unavailable",
			"error":  "database unreachable",
		})
		return
	}

	stats := database.Stats(api.db)
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"pool": gin.H{
			"open_connections": stats.OpenConnections,
			"in_use":           stats.InUse,
			"idle":             stats.Idle,
			"wait_count":       stats.WaitCount,
			"wait_duration":    stats.WaitDuration.String(),
		},
	})
}

// health aggregates liveness, database reachability and process stats.
func (api *API) health(c *gin.Context) {
	report := gin.H{
		"status": "ok",
		"uptime": time.Since(api.started).String(),
	}

	dbStatus := "not_configured"
	if api.db != nil {
		dbStatus = "ok"
		if err := database.Ping(c.Request.Context(), api.db); err != nil {
			dbStatus = "unavailable"
		}
	}
	report["database"] = dbStatus

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		procStats := gin.H{}
		if mem, err := proc.MemoryInfo(); err == nil {
			procStats["rss_bytes"] = mem.RSS
		}
		if cpu, err := proc.CPUPercent(); err == nil {
			procStats["cpu_percent"] = cpu
		}
		report["process"] = procStats
	}

	status := http.StatusOK
	if dbStatus == "unavailable" {
		report["status"] = "degraded"
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}
