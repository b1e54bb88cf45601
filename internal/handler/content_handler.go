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

// ContentHandler handles the template library and per-mode item banks.
type ContentHandler struct {
	contentService *service.ContentService
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(contentService *service.ContentService) *ContentHandler {
	return &ContentHandler{contentService: contentService}
}

// GetTemplates godoc
// GET /api/v1/player/templates?type=speaking
// Returns answer templates, optionally filtered by type. Shared by the
// player study screens and the admin content manager.
func (h *ContentHandler) GetTemplates(c *gin.Context) {
	var filter *model.TemplateType
	if raw := c.Query("type"); raw != "" {
		tt := model.TemplateType(raw)
		if tt != model.TemplateSpeaking && tt != model.TemplateWriting {
			response.Fail(c, http.StatusBadRequest, response.ErrValidation)
			return
		}
		filter = &tt
	}

	templates, err := h.contentService.ListTemplates(c.Request.Context(), filter)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"templates": templates})
}

// CreateTemplate godoc
// POST /api/v1/admin/templates
// Adds an answer template. Type + number must be unique.
func (h *ContentHandler) CreateTemplate(c *gin.Context) {
	var req model.CreateTemplateRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	tpl, err := h.contentService.CreateTemplate(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateTemplate) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"template": tpl})
}

// DeleteTemplate godoc
// DELETE /api/v1/admin/templates/:id
func (h *ContentHandler) DeleteTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.contentService.DeleteTemplate(c.Request.Context(), id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "template deleted successfully"})
}

// GetItems godoc
// GET /api/v1/admin/games/:mode/items
// Returns the full item bank for a mode.
func (h *ContentHandler) GetItems(c *gin.Context) {
	mode, ok := model.ParseGameMode(c.Param("mode"))
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrModeInvalid)
		return
	}

	items, err := h.contentService.ListItems(c.Request.Context(), mode)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": items})
}

// CreateItem godoc
// POST /api/v1/admin/games/:mode/items
func (h *ContentHandler) CreateItem(c *gin.Context) {
	mode, ok := model.ParseGameMode(c.Param("mode"))
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrModeInvalid)
		return
	}

	var req model.UpsertGameItemRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item, err := h.contentService.CreateItem(c.Request.Context(), mode, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"item": item})
}

// UpdateItem godoc
// PUT /api/v1/admin/games/:mode/items/:id
func (h *ContentHandler) UpdateItem(c *gin.Context) {
	mode, ok := model.ParseGameMode(c.Param("mode"))
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrModeInvalid)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.UpsertGameItemRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	item, err := h.contentService.UpdateItem(c.Request.Context(), mode, id, req)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"item": item})
}

// DeleteItem godoc
// DELETE /api/v1/admin/games/:mode/items/:id
func (h *ContentHandler) DeleteItem(c *gin.Context) {
	mode, ok := model.ParseGameMode(c.Param("mode"))
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrModeInvalid)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	if err := h.contentService.DeleteItem(c.Request.Context(), mode, id); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "item deleted successfully"})
}
