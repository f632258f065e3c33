package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campusMatching/app/echo-server/router"
	"campusMatching/business/bandit"
	"campusMatching/business/club"
	"campusMatching/business/student"
	"campusMatching/internal/middleware"
	psqlRepo "campusMatching/internal/repository/postgres"
	redisRepo "campusMatching/internal/repository/redis"
	"campusMatching/internal/rest"
	"campusMatching/pkg/config"
	"campusMatching/pkg/database"
	redisdb "campusMatching/pkg/database/redis"
	"campusMatching/pkg/logger"
	"campusMatching/pkg/metrics"
	"campusMatching/pkg/utils"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	defer logger.Sync()
	logger.Info("Starting campus club recommender", "version", cfg.App.Version)

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to redis", "error", err)
	}
	defer redisdb.CloseRedisClient(redisClient)

	metrics.Init()

	jwtManager := utils.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.TTL)

	// Init repo
	studentRepo := psqlRepo.NewStudentRepository(db)
	clubRepo := psqlRepo.NewClubRepository(db)
	feedbackRepo := psqlRepo.NewFeedbackRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)

	// Init service
	studentService := student.NewStudentService(studentRepo, sessionRepo, feedbackRepo, jwtManager)
	clubService := club.NewClubService(clubRepo)
	banditService, err := bandit.NewBanditService(studentRepo, clubRepo, feedbackRepo, nil, bandit.Config{
		Alpha:         cfg.Bandit.Alpha,
		Lambda:        cfg.Bandit.Lambda,
		DefaultLimit:  cfg.Bandit.DefaultLimit,
		MaxLimit:      cfg.Bandit.MaxLimit,
		RewardLike:    cfg.Bandit.RewardLike,
		RewardDislike: cfg.Bandit.RewardDislike,
		RewardJoin:    cfg.Bandit.RewardJoin,
	})
	if err != nil {
		logger.Fatal("Failed to init bandit service", "error", err)
	}

	if cfg.Bandit.ReplayOnStart {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		n, err := banditService.ReplayFeedback(ctx)
		cancel()
		if err != nil {
			logger.Error("Feedback replay failed", "applied", n, "error", err)
		}
	}

	// Init handler
	studentHandler := rest.NewStudentHandler(studentService, cfg.Server.RequestTimeout)
	clubHandler := rest.NewClubHandler(clubService)
	banditHandler := rest.NewBanditHandler(banditService)
	banditAdminHandler := rest.NewBanditAdminHandler(banditService)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(middleware.TraceID())
	e.Use(echomiddleware.ContextTimeout(cfg.Server.RequestTimeout))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, middleware.HeaderTraceID},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	authRequired := middleware.AuthMiddleware(jwtManager, studentService)
	adminOnly := middleware.AdminOnly()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupStudentRoutes(api, studentHandler, authRequired)
	router.SetupClubRoutes(api, clubHandler)
	router.SetBanditRoutes(api, banditHandler, authRequired)
	router.SetBanditAdminRoutes(api, banditAdminHandler, authRequired, adminOnly)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}
