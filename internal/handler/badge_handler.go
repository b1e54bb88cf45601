package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/lokalingo/toeflplay-backend/internal/response"
	"github.com/lokalingo/toeflplay-backend/internal/service"
	"github.com/lokalingo/toeflplay-backend/internal/validator"
)

// BadgeHandler handles the badge catalog and per-player earned badges.
type BadgeHandler struct {
	badgeService *service.BadgeService
}

// NewBadgeHandler creates a new BadgeHandler.
func NewBadgeHandler(badgeService *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badgeService: badgeService}
}

// GetCatalog godoc
// GET /api/v1/player/badges
// Returns the full badge catalog in display order.
func (h *BadgeHandler) GetCatalog(c *gin.Context) {
	badges, err := h.badgeService.ListCatalog(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"badges": badges})
}

// GetMyBadges godoc
// GET /api/v1/player/badges/me
// Returns the badges the caller has earned, newest first.
func (h *BadgeHandler) GetMyBadges(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	earned, err := h.badgeService.ListByPlayer(c.Request.Context(), playerID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"badges": earned})
}

// CreateBadge godoc
// POST /api/v1/admin/badges
// Adds a badge to the catalog.
func (h *BadgeHandler) CreateBadge(c *gin.Context) {
	var req model.CreateBadgeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	badge, err := h.badgeService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateBadgeName) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"badge": badge})
}

// DeleteBadge godoc
// DELETE /api/v1/admin/badges/:id
// Removes a badge and any player awards of it.
func (h *BadgeHandler) DeleteBadge(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.badgeService.Delete(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "badge deleted successfully"})
}
