package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/response"
	"github.com/lokalingo/toeflplay-backend/internal/service"
)

// PlayerManagementHandler handles admin operations on player accounts.
type PlayerManagementHandler struct {
	playerService *service.PlayerService
	authService   *service.AuthService
}

// NewPlayerManagementHandler creates a new PlayerManagementHandler.
func NewPlayerManagementHandler(playerService *service.PlayerService, authService *service.AuthService) *PlayerManagementHandler {
	return &PlayerManagementHandler{
		playerService: playerService,
		authService:   authService,
	}
}

// ListPlayers godoc
// GET /api/v1/admin/players?class_code=X&page=1&per_page=20
// Returns a paginated player roster, optionally filtered by class.
func (h *PlayerManagementHandler) ListPlayers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	var classCode *string
	if raw := c.Query("class_code"); raw != "" {
		classCode = &raw
	}

	players, pagination, err := h.playerService.ListPlayers(c.Request.Context(), classCode, page, perPage)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"players": players}, pagination)
}

// ResetPlayerSession godoc
// DELETE /api/v1/admin/players/:id/session
// Force-logs a player out of their current device.
func (h *PlayerManagementHandler) ResetPlayerSession(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.authService.ResetPlayerSession(c.Request.Context(), id.String()); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "player session reset"})
}
