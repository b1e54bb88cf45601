package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lokalingo/toeflplay-backend/internal/middleware"
)

// currentPlayerID extracts the authenticated player's UUID from the
// JWT claims. The second return is false when there is no valid player
// token on the request.
func currentPlayerID(c *gin.Context) (uuid.UUID, bool) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(claims.PlayerID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
