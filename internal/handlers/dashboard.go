package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/worksys/workforce-api/internal/dto"
	apierrors "github.com/worksys/workforce-api/internal/errors"
	"github.com/worksys/workforce-api/internal/services"
)

// DashboardHandler serves the manager overview.
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetOverview returns pending claims grouped by employee plus the account
// states that need manager attention.
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	overview, err := h.dashboardService.GetOverview()
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, dto.ToDashboardDTO(*overview))
}
