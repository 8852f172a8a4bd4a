package http

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/libraryhub/library/internal/readonly"
)

const healthMessage = "Library Management System API is running"

type HealthResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Database string `json:"database"`
	Time     string `json:"time"`
	Version  string `json:"version,omitempty"`
	ReadOnly bool   `json:"read_only"`
}

type HealthController struct {
	db      Pinger
	version string
}

func NewHealthController(db Pinger, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:   "OK",
		Message:  healthMessage,
		Database: "ok",
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		ReadOnly: c.GetBool(readonly.ContextKey),
	}

	statusCode := http.StatusOK
	if h.db == nil {
		health.Database = "not configured"
	} else {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.db.Ping(ctx); err != nil {
			log.Printf("Health check: database ping failed: %v", err)
			health.Status = "ERROR"
			health.Message = "Database unavailable"
			health.Database = "unavailable"
			statusCode = http.StatusServiceUnavailable
		}
	}

	c.JSON(statusCode, health)
}
