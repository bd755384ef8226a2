package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/grade-request-portal/internal/models"
	"github.com/noah-isme/grade-request-portal/pkg/response"
)

type healthService interface {
	Health(ctx context.Context) models.HealthReport
	DBStatus(ctx context.Context) models.DBStatusReport
	TestDB(ctx context.Context) models.DBTestReport
}

// HealthHandler exposes the diagnostic endpoints.
type HealthHandler struct {
	service healthService
}

// NewHealthHandler constructs the handler.
func NewHealthHandler(svc healthService) *HealthHandler {
	return &HealthHandler{service: svc}
}

// Health godoc
// @Summary Liveness and database connectivity
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} models.HealthReport
// @Failure 503 {object} models.HealthReport
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	report := h.service.Health(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	response.JSON(c, status, report)
}

// DBStatus godoc
// @Summary Database status with table sizes
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} models.DBStatusReport
// @Failure 503 {object} models.DBStatusReport
// @Router /db-status [get]
func (h *HealthHandler) DBStatus(c *gin.Context) {
	report := h.service.DBStatus(c.Request.Context())
	status := http.StatusOK
	if !report.Connected {
		status = http.StatusServiceUnavailable
	}
	response.JSON(c, status, report)
}

// TestDB godoc
// @Summary Version, count and write probes
// @Tags Diagnostics
// @Produce json
// @Success 200 {object} models.DBTestReport
// @Failure 503 {object} models.DBTestReport
// @Router /test-db [get]
func (h *HealthHandler) TestDB(c *gin.Context) {
	report := h.service.TestDB(c.Request.Context())
	status := http.StatusOK
	if report.Status != "success" {
		status = http.StatusServiceUnavailable
	}
	response.JSON(c, status, report)
}
