package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/lokalingo/toeflplay-backend/internal/game"
	"github.com/lokalingo/toeflplay-backend/internal/logger"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/service"
	ws "github.com/lokalingo/toeflplay-backend/internal/websocket"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams a live game session over WebSocket. It drives the
// same GameService operations as the REST surface, so a client can mix
// transports freely within one session.
type WSHandler struct {
	gameService *service.GameService
	log         zerolog.Logger
	upgrader    websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(gameService *service.GameService, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		gameService: gameService,
		log:         logger.Component(log, "ws_handler"),
		upgrader:    buildUpgrader(allowedOrigins),
	}
}

// GameSessionStream godoc
// WS /ws/v1/player/games/sessions/:session_id/stream
// Upgrades to WebSocket for low-latency attempt scoring and phase
// transitions during a live game.
func (h *WSHandler) GameSessionStream(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session ID"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	// Verify the session exists and belongs to this player before
	// entering the message loop.
	if _, err := h.gameService.State(sessionID, playerID); err != nil {
		ws.WriteError(conn, "no live session with this ID")
		return
	}

	wsLog := h.log.With().
		Str("player_id", playerID.String()).
		Str("session_id", sessionID.String()).
		Logger()

	wsLog.Info().Msg("Player connected")

	for {
		var msg ws.SubmitRequest
		err := ws.ReadJSON(conn, &msg)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				wsLog.Warn().Err(err).Msg("Unexpected close")
			} else {
				wsLog.Debug().Msg("Connection closed")
			}
			break
		}

		switch msg.Action {
		case ws.ActionSubmit:
			h.handleSubmit(conn, wsLog, sessionID, playerID, &msg)
		case ws.ActionAdvance:
			h.handleAdvance(conn, wsLog, sessionID, playerID)
		case ws.ActionRetry:
			h.handleRetry(conn, sessionID, playerID)
		case ws.ActionState:
			h.handleState(conn, sessionID, playerID)
		case ws.ActionPing:
			ws.WritePong(conn)
		default:
			wsLog.Warn().Str("action", string(msg.Action)).Msg("Unknown action")
			ws.WriteError(conn, "unknown action: "+string(msg.Action))
		}
	}
}

func (h *WSHandler) handleSubmit(conn *websocket.Conn, wsLog zerolog.Logger, sessionID, playerID uuid.UUID, msg *ws.SubmitRequest) {
	req := model.GameAttemptRequest{
		OptionID:         msg.OptionID,
		Text:             msg.Text,
		ElapsedSeconds:   msg.ElapsedSeconds,
		Transcript:       msg.Transcript,
		RecordingSeconds: msg.RecordingSeconds,
	}

	result, err := h.gameService.Submit(context.Background(), sessionID, playerID, req)
	if err != nil {
		ws.WriteError(conn, gameErrorMessage(err))
		return
	}

	wsLog.Debug().
		Int("points", result.Outcome.Points).
		Str("band", result.Outcome.Band).
		Msg("Attempt scored")

	ws.WriteTyped(conn, ws.OutcomeResponse{
		Event:     ws.EventOutcome,
		Outcome:   result.Outcome,
		State:     result.State,
		Persisted: result.Persisted,
	})
}

func (h *WSHandler) handleAdvance(conn *websocket.Conn, wsLog zerolog.Logger, sessionID, playerID uuid.UUID) {
	result, err := h.gameService.Advance(context.Background(), sessionID, playerID)
	if err != nil {
		ws.WriteError(conn, gameErrorMessage(err))
		return
	}

	if result.Summary != nil {
		wsLog.Info().
			Int("score", result.Summary.Score).
			Float64("accuracy", result.Summary.Accuracy).
			Bool("persisted", result.Persisted).
			Msg("Session finished")

		ws.WriteTyped(conn, ws.ResultsResponse{
			Event:     ws.EventResults,
			Summary:   result.Summary,
			Finalize:  result.Finalize,
			Persisted: result.Persisted,
		})
		return
	}

	ws.WriteTyped(conn, ws.StateResponse{
		Event: ws.EventState,
		State: result.State,
	})
}

func (h *WSHandler) handleRetry(conn *websocket.Conn, sessionID, playerID uuid.UUID) {
	result, err := h.gameService.Retry(context.Background(), sessionID, playerID)
	if err != nil {
		ws.WriteError(conn, gameErrorMessage(err))
		return
	}

	ws.WriteTyped(conn, ws.StateResponse{
		Event: ws.EventState,
		State: result.State,
	})
}

func (h *WSHandler) handleState(conn *websocket.Conn, sessionID, playerID uuid.UUID) {
	state, err := h.gameService.State(sessionID, playerID)
	if err != nil {
		ws.WriteError(conn, gameErrorMessage(err))
		return
	}

	ws.WriteTyped(conn, ws.StateResponse{
		Event: ws.EventState,
		State: state,
	})
}

// gameErrorMessage flattens lifecycle errors into short client-facing
// strings. Internal errors keep their detail in the server log only.
func gameErrorMessage(err error) string {
	var transition *game.InvalidTransitionError
	var noRetry *game.RetryNotAllowedError

	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return "session not found"
	case errors.Is(err, service.ErrSessionFinished):
		return "session already finished"
	case errors.As(err, &transition):
		return err.Error()
	case errors.As(err, &noRetry):
		return err.Error()
	default:
		return "internal error"
	}
}
