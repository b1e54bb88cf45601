package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/lokalingo/toeflplay-backend/internal/response"
	"github.com/lokalingo/toeflplay-backend/internal/service"
	"github.com/lokalingo/toeflplay-backend/internal/validator"
)

// ChallengeHandler handles daily challenge endpoints.
type ChallengeHandler struct {
	challengeService *service.ChallengeService
	playerService    *service.PlayerService
}

// NewChallengeHandler creates a new ChallengeHandler.
func NewChallengeHandler(challengeService *service.ChallengeService, playerService *service.PlayerService) *ChallengeHandler {
	return &ChallengeHandler{
		challengeService: challengeService,
		playerService:    playerService,
	}
}

// GetToday godoc
// GET /api/v1/player/challenges/today
// Returns today's challenge plus the caller's completion status.
func (h *ChallengeHandler) GetToday(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	challenge, err := h.challengeService.Today(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoChallengeToday) {
			response.Fail(c, http.StatusNotFound, response.ErrChallengeUnavailable)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	status, err := h.challengeService.Status(c.Request.Context(), playerID, challenge.ID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"challenge": challenge,
		"status":    status,
	})
}

// RecordAttempt godoc
// POST /api/v1/player/challenges/today/attempts
// Bumps the attempt counter when the caller starts a challenge run.
func (h *ChallengeHandler) RecordAttempt(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	challenge, err := h.challengeService.Today(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoChallengeToday) {
			response.Fail(c, http.StatusNotFound, response.ErrChallengeUnavailable)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if err := h.challengeService.RecordAttempt(c.Request.Context(), playerID, challenge.ID); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{})
}

// Complete godoc
// POST /api/v1/player/challenges/today/complete
// Credits the challenge reward once. A score of 80 or more also earns
// the bonus points.
func (h *ChallengeHandler) Complete(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	var req model.CompleteChallengeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	challenge, err := h.challengeService.Today(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoChallengeToday) {
			response.Fail(c, http.StatusNotFound, response.ErrChallengeUnavailable)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	player, err := h.playerService.GetByID(c.Request.Context(), playerID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	reward, err := h.challengeService.Complete(c.Request.Context(), player, challenge, req.Score)
	if err != nil {
		if errors.Is(err, service.ErrChallengeAlreadyPlayed) {
			response.Fail(c, http.StatusConflict, response.ErrChallengeAlreadyPlayed)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"points_awarded": reward,
		"player":         player,
	})
}

// CreateChallenge godoc
// POST /api/v1/admin/challenges
// Schedules a daily challenge. One per date.
func (h *ChallengeHandler) CreateChallenge(c *gin.Context) {
	var req model.CreateChallengeRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	challenge, err := h.challengeService.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateChallengeDate) {
			response.Fail(c, http.StatusConflict, response.ErrConflict)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"challenge": challenge})
}
