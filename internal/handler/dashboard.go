package handler

import (
	"net/http"

	"hostelhub/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler serves role dashboards
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Get handles GET /api/v1/users/:id/dashboard
func (h *DashboardHandler) Get(c *gin.Context) {
	dashboard, err := h.dashboardService.ForUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}
