package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lokalingo/toeflplay-backend/internal/response"
	"github.com/lokalingo/toeflplay-backend/internal/service"
)

// LeaderboardHandler handles leaderboard endpoints.
type LeaderboardHandler struct {
	leaderboardService *service.LeaderboardService
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(leaderboardService *service.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardService: leaderboardService}
}

// GetTop godoc
// GET /api/v1/player/leaderboard
// Returns the top players ordered by total points.
func (h *LeaderboardHandler) GetTop(c *gin.Context) {
	entries, err := h.leaderboardService.Top(c.Request.Context())
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"leaderboard": entries})
}

// GetMyRank godoc
// GET /api/v1/player/leaderboard/me
// Returns the caller's global rank. Rank 0 means not ranked yet.
func (h *LeaderboardHandler) GetMyRank(c *gin.Context) {
	playerID, ok := currentPlayerID(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	rank, err := h.leaderboardService.MyRank(c.Request.Context(), playerID)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"rank": rank})
}
