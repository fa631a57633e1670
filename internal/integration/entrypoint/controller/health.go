package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	cacheHealthChecker func() bool
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance. Either checker may be nil.
func NewHealthController(dbHealthChecker, cacheHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
	}
}

// Check handles GET /health requests.
// The status is degraded when the database is unreachable; the cache only affects chat entry.
func (h *HealthController) Check(c *gin.Context) {
	response := HealthResponse{
		Status:    "ok",
		Database:  connectionStatus(h.dbHealthChecker),
		Cache:     connectionStatus(h.cacheHealthChecker),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	status := http.StatusOK
	if response.Database != "connected" {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, response)
}

func connectionStatus(check func() bool) string {
	if check != nil && check() {
		return "connected"
	}
	return "disconnected"
}
