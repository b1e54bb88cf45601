package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/lokalingo/toeflplay-backend/internal/config"
	"github.com/lokalingo/toeflplay-backend/internal/database"
	"github.com/lokalingo/toeflplay-backend/internal/handler"
	"github.com/lokalingo/toeflplay-backend/internal/logger"
	"github.com/lokalingo/toeflplay-backend/internal/repository"
	"github.com/lokalingo/toeflplay-backend/internal/router"
	"github.com/lokalingo/toeflplay-backend/internal/scoring"
	"github.com/lokalingo/toeflplay-backend/internal/service"
	"github.com/lokalingo/toeflplay-backend/internal/validator"
	"github.com/lokalingo/toeflplay-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting TOEFLPlay Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	playerRepo := repository.NewPlayerRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	sessionRepo := repository.NewGameSessionRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	badgeRepo := repository.NewBadgeRepository(pool)
	leaderboardRepo := repository.NewLeaderboardRepository(pool)
	contentRepo := repository.NewContentRepository(pool)
	challengeRepo := repository.NewChallengeRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb)
	playerService := service.NewPlayerService(playerRepo)
	adminService := service.NewAdminService(adminRepo)
	contentService := service.NewContentService(contentRepo, rdb)
	progressionService := service.NewProgressionService(playerRepo, sessionRepo, progressRepo, badgeRepo)
	gameService := service.NewGameService(cfg, rdb, contentService, progressionService, sessionRepo, scoring.RandomRecognizer{})
	leaderboardService := service.NewLeaderboardService(cfg, rdb, leaderboardRepo)
	badgeService := service.NewBadgeService(badgeRepo)
	challengeService := service.NewChallengeService(challengeRepo, playerRepo, rdb)
	dashboardService := service.NewDashboardService(playerRepo, sessionRepo, progressRepo, badgeRepo, dashboardRepo, leaderboardService)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService, playerService, adminService),
		Game:        handler.NewGameHandler(gameService, playerService),
		WS:          handler.NewWSHandler(gameService, log, cfg.AllowedOrigins),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		Leaderboard: handler.NewLeaderboardHandler(leaderboardService),
		Badge:       handler.NewBadgeHandler(badgeService),
		Challenge:   handler.NewChallengeHandler(challengeService, playerService),
		Content:     handler.NewContentHandler(contentService),
		PlayerMgmt:  handler.NewPlayerManagementHandler(playerService, authService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	persistWorker := worker.NewSessionPersistWorker(sessionRepo, progressionService, rdb, log)
	leaderboardWorker := worker.NewLeaderboardWorker(leaderboardService, cfg.LeaderboardInterval, log)

	go persistWorker.Start(workerCtx)
	go leaderboardWorker.Start(workerCtx)
	go gameService.RunJanitor(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers and wait for queues to drain.
	workerCancel()
	time.Sleep(2 * time.Second) // Allow workers to drain.

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
