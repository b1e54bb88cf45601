package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lokalingo/toeflplay-backend/internal/response"
	"github.com/lokalingo/toeflplay-backend/internal/service"
)

// CheckSingleDeviceSession validates the JWT's JTI against the active
// session in Redis. A mismatch means a newer login replaced this device
// (or an admin reset the session), so the token is rejected.
func CheckSingleDeviceSession(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		// Only enforce for player tokens.
		if claims.TokenType != service.TokenTypePlayer {
			c.Next()
			return
		}

		if err := authService.ValidatePlayerSession(c.Request.Context(), claims.PlayerID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}

		c.Next()
	}
}
