package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"civiscore/internal/config"
	"civiscore/internal/database"
	"civiscore/internal/httpapi/handler"
	"civiscore/internal/httpapi/middleware"
	"civiscore/internal/httpapi/repository"
	"civiscore/internal/httpapi/service"
	"civiscore/internal/places"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Connect(cfg, logger)
	if err != nil {
		logger.Error("could not connect to database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)
	countryRepo := repository.NewCountryRepository(db)
	serviceRepo := repository.NewServiceRepository(db)
	evaluationRepo := repository.NewEvaluationRepository(db)
	criteriaRepo := repository.NewCriteriaRepository(db)
	reportRepo := repository.NewReportRepository(db)
	voteRepo := repository.NewVoteRepository(db)

	// External clients
	placesClient := places.NewClient(cfg.PlacesAPIURL, cfg.PlacesAPIKey)
	if placesClient.Enabled() {
		logger.Info("places enrichment enabled")
	}

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	userService := service.NewUserService(userRepo)
	countryService := service.NewCountryService(countryRepo)
	catalogService := service.NewCatalogService(serviceRepo, countryRepo, placesClient)
	evaluationService := service.NewEvaluationService(db, evaluationRepo, serviceRepo, criteriaRepo)
	criteriaService := service.NewCriteriaService(criteriaRepo, evaluationRepo)
	reportService := service.NewReportService(db, reportRepo, evaluationRepo, cfg.ReportFlagThreshold)
	voteService := service.NewVoteService(voteRepo, evaluationRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.AccessTokenTTL)
	userHandler := handler.NewUserHandler(userService)
	countryHandler := handler.NewCountryHandler(countryService)
	serviceHandler := handler.NewServiceHandler(catalogService)
	evaluationHandler := handler.NewEvaluationHandler(evaluationService)
	criteriaHandler := handler.NewCriteriaHandler(criteriaService)
	reportHandler := handler.NewReportHandler(reportService)
	voteHandler := handler.NewVoteHandler(voteService)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimitEnabled {
		rateLimiter, err := middleware.NewRateLimiter(cfg.RedisURL)
		if err != nil {
			logger.Error("could not connect rate limiter", "error", err)
			os.Exit(1)
		}
		defer rateLimiter.Close()
		r.Use(rateLimiter.RateLimitByIP(cfg.RateLimitMax, time.Duration(cfg.RateLimitWindow)*time.Second))
		logger.Info("rate limiting enabled", "max", cfg.RateLimitMax, "window_seconds", cfg.RateLimitWindow)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireAdmin())

	authHandler.RegisterRoutes(api, protected)
	userHandler.RegisterRoutes(admin)
	countryHandler.RegisterRoutes(api, admin)
	serviceHandler.RegisterRoutes(api, protected)
	evaluationHandler.RegisterRoutes(api, protected, admin)
	criteriaHandler.RegisterRoutes(api, protected, admin)
	reportHandler.RegisterRoutes(protected, admin)
	voteHandler.RegisterRoutes(api, protected)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting API server", "addr", addr, "env", cfg.GoEnv)
	if err := r.Run(addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}
