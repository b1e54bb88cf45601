package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/game"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/response"
	"github.com/lokalingo/toeflplay-backend/internal/service"
	"github.com/lokalingo/toeflplay-backend/internal/validator"
)

// GameHandler exposes the live game session lifecycle over REST. The
// same operations are also reachable over WebSocket via WSHandler.
type GameHandler struct {
	gameService   *service.GameService
	playerService *service.PlayerService
}

// NewGameHandler creates a new GameHandler.
func NewGameHandler(gameService *service.GameService, playerService *service.PlayerService) *GameHandler {
	return &GameHandler{
		gameService:   gameService,
		playerService: playerService,
	}
}

// StartGame godoc
// POST /api/v1/player/games/:mode/sessions
// Opens a live session for the given mode and returns the item set.
func (h *GameHandler) StartGame(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	mode, ok := model.ParseGameMode(c.Param("mode"))
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrModeInvalid)
		return
	}

	player, err := h.playerService.GetByID(c.Request.Context(), playerID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	result, err := h.gameService.Start(c.Request.Context(), player, mode)
	if err != nil {
		if errors.Is(err, service.ErrNoContent) {
			response.Fail(c, http.StatusNotFound, response.ErrNoContent)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if !result.Persisted {
		response.SuccessWithWarning(c, http.StatusCreated, result, response.ErrPersistenceUnavailable)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// SubmitAttempt godoc
// POST /api/v1/player/games/sessions/:session_id/attempts
// Scores an attempt for the current item and moves to feedback.
func (h *GameHandler) SubmitAttempt(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	var req model.GameAttemptRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	result, err := h.gameService.Submit(c.Request.Context(), sessionID, playerID, req)
	if err != nil {
		failGameError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// Advance godoc
// POST /api/v1/player/games/sessions/:session_id/advance
// Leaves the tutorial or the current feedback screen. When the last
// item has been played the response carries the final summary.
func (h *GameHandler) Advance(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.gameService.Advance(c.Request.Context(), sessionID, playerID)
	if err != nil {
		failGameError(c, err)
		return
	}

	if !result.Persisted {
		response.SuccessWithWarning(c, http.StatusOK, result, response.ErrPersistenceUnavailable)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// Retry godoc
// POST /api/v1/player/games/sessions/:session_id/retry
// Replays the current item where the mode allows it.
func (h *GameHandler) Retry(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	result, err := h.gameService.Retry(c.Request.Context(), sessionID, playerID)
	if err != nil {
		failGameError(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// GetState godoc
// GET /api/v1/player/games/sessions/:session_id
// Returns the current phase snapshot for a live session.
func (h *GameHandler) GetState(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return
	}

	state, err := h.gameService.State(sessionID, playerID)
	if err != nil {
		failGameError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"state": state})
}

// failGameError maps session lifecycle errors onto API error codes.
func failGameError(c *gin.Context, err error) {
	var transition *game.InvalidTransitionError
	var noRetry *game.RetryNotAllowedError

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.Fail(c, http.StatusNotFound, response.ErrSessionNotFound)
	case errors.Is(err, service.ErrSessionFinished):
		response.Fail(c, http.StatusConflict, response.ErrSessionCompleted)
	case errors.As(err, &transition):
		response.Fail(c, http.StatusConflict, response.ErrInvalidTransition)
	case errors.As(err, &noRetry):
		response.Fail(c, http.StatusConflict, response.ErrRetryNotAllowed)
	default:
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
