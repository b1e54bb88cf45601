package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lokalingo/toeflplay-backend/internal/response"
	"github.com/lokalingo/toeflplay-backend/internal/service"
)

// DashboardHandler handles the player home screen and admin overview.
type DashboardHandler struct {
	dashboardService *service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// GetPlayerDashboard godoc
// GET /api/v1/player/dashboard
// Returns level progress, rank, per-skill mastery, badges, and recent sessions.
func (h *DashboardHandler) GetPlayerDashboard(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	data, err := h.dashboardService.ForPlayer(c.Request.Context(), playerID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}

// GetAdminDashboard godoc
// GET /api/v1/admin/dashboard
// Returns player, session, and content counts for the stat cards.
func (h *DashboardHandler) GetAdminDashboard(c *gin.Context) {
	data, err := h.dashboardService.ForAdmin(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, data)
}
