package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lokalingo/toeflplay-backend/internal/config"
	"github.com/lokalingo/toeflplay-backend/internal/handler"
	"github.com/lokalingo/toeflplay-backend/internal/middleware"
	"github.com/lokalingo/toeflplay-backend/internal/model"
	"github.com/lokalingo/toeflplay-backend/internal/response"
	"github.com/lokalingo/toeflplay-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth        *handler.AuthHandler
	Game        *handler.GameHandler
	WS          *handler.WSHandler
	Dashboard   *handler.DashboardHandler
	Leaderboard *handler.LeaderboardHandler
	Badge       *handler.BadgeHandler
	Challenge   *handler.ChallengeHandler
	Content     *handler.ContentHandler
	PlayerMgmt  *handler.PlayerManagementHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/player/register", handlers.Auth.PlayerRegister)
		auth.POST("/player/login", handlers.Auth.PlayerLogin)
		auth.POST("/admin/login", handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.POST("/player/logout", middleware.RequirePlayerJWT(authService), handlers.Auth.PlayerLogout)
		auth.GET("/player/me", middleware.RequirePlayerJWT(authService), handlers.Auth.GetPlayerProfile)
		auth.GET("/admin/me", middleware.RequireAdminJWT(authService), handlers.Auth.GetAdminProfile)
	}

	// ─── 2. Player Group (JWT + Single Device) ─────────────────────────
	playerAPI := router.Group("/api/v1/player")
	playerAPI.Use(
		middleware.RequirePlayerJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		playerAPI.GET("/dashboard", handlers.Dashboard.GetPlayerDashboard)

		// Live game sessions
		playerAPI.POST("/games/:mode/sessions", handlers.Game.StartGame)
		playerAPI.GET("/games/sessions/:session_id", handlers.Game.GetState)
		playerAPI.POST("/games/sessions/:session_id/attempts", handlers.Game.SubmitAttempt)
		playerAPI.POST("/games/sessions/:session_id/advance", handlers.Game.Advance)
		playerAPI.POST("/games/sessions/:session_id/retry", handlers.Game.Retry)

		// Study material
		playerAPI.GET("/templates", handlers.Content.GetTemplates)

		// Progression surfaces
		playerAPI.GET("/leaderboard", handlers.Leaderboard.GetTop)
		playerAPI.GET("/leaderboard/me", handlers.Leaderboard.GetMyRank)
		playerAPI.GET("/badges", handlers.Badge.GetCatalog)
		playerAPI.GET("/badges/me", handlers.Badge.GetMyBadges)

		// Daily challenge
		playerAPI.GET("/challenges/today", handlers.Challenge.GetToday)
		playerAPI.POST("/challenges/today/attempts", handlers.Challenge.RecordAttempt)
		playerAPI.POST("/challenges/today/complete", handlers.Challenge.Complete)
	}

	// ─── 3. WebSocket Group (Player WS Auth) ───────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequirePlayerWSAuth(authService))
	{
		ws.GET("/player/games/sessions/:session_id/stream", handlers.WS.GameSessionStream)
	}

	// ─── 4. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.GET("/dashboard", handlers.Dashboard.GetAdminDashboard)

		// Player roster
		adminAPI.GET("/players",
			middleware.RequirePermission(model.PermissionPlayersRead),
			handlers.PlayerMgmt.ListPlayers,
		)
		adminAPI.DELETE("/players/:id/session",
			middleware.RequirePermission(model.PermissionPlayersResetSession),
			handlers.PlayerMgmt.ResetPlayerSession,
		)

		// Template library
		adminAPI.GET("/templates",
			middleware.RequirePermission(model.PermissionContentRead),
			handlers.Content.GetTemplates,
		)
		adminAPI.POST("/templates",
			middleware.RequirePermission(model.PermissionContentWrite),
			handlers.Content.CreateTemplate,
		)
		adminAPI.DELETE("/templates/:id",
			middleware.RequirePermission(model.PermissionContentWrite),
			handlers.Content.DeleteTemplate,
		)

		// Item banks
		adminAPI.GET("/games/:mode/items",
			middleware.RequirePermission(model.PermissionContentRead),
			handlers.Content.GetItems,
		)
		adminAPI.POST("/games/:mode/items",
			middleware.RequirePermission(model.PermissionContentWrite),
			handlers.Content.CreateItem,
		)
		adminAPI.PUT("/games/:mode/items/:id",
			middleware.RequirePermission(model.PermissionContentWrite),
			handlers.Content.UpdateItem,
		)
		adminAPI.DELETE("/games/:mode/items/:id",
			middleware.RequirePermission(model.PermissionContentWrite),
			handlers.Content.DeleteItem,
		)

		// Badge catalog
		adminAPI.POST("/badges",
			middleware.RequirePermission(model.PermissionBadgesWrite),
			handlers.Badge.CreateBadge,
		)
		adminAPI.DELETE("/badges/:id",
			middleware.RequirePermission(model.PermissionBadgesWrite),
			handlers.Badge.DeleteBadge,
		)

		// Daily challenges
		adminAPI.POST("/challenges",
			middleware.RequirePermission(model.PermissionChallengesWrite),
			handlers.Challenge.CreateChallenge,
		)
	}

	return router
}
