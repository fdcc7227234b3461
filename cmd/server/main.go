package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/phuslu/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"partyplanner/internal/config"
	"partyplanner/internal/handler"
	"partyplanner/internal/places"
	"partyplanner/internal/repository"
	"partyplanner/internal/service"
	"partyplanner/internal/weather"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	setupLogger(cfg.Logging)

	log.Info().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("git_commit", GitCommit).
		Msg("🎂 Party planner venue engine")

	gin.SetMode(cfg.Server.GinMode)
	ctx := context.Background()

	placesClient := places.NewClient(cfg.Places)
	if placesClient.Enabled() {
		log.Info().Str("language", cfg.Places.Language).Float64("rate_limit", cfg.Places.RateLimit).Msg("✅ Places client initialized")
	} else {
		log.Warn().Msg("⚠️  Places is disabled - venue lookups will return no venues")
		log.Warn().Msg("   Set GOOGLE_MAPS_API_KEY or GOOGLE_API_KEY to enable them")
	}

	weatherClient := weather.NewClient(cfg.Weather, weather.WithGeocoder(placesClient))

	llm, err := service.NewTextGenerator(ctx, cfg.LLM)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize language model client")
	}
	if !llm.IsEnabled() {
		log.Warn().Str("provider", cfg.LLM.Provider).Msg("⚠️  Language model is disabled - agents will report failures and venues come from category search only")
	}

	// Optional plan log; interfaces stay nil when no database is configured
	var requests service.RequestLogger
	var feedback handler.FeedbackStore
	var repo *repository.PostgresRepository
	if cfg.PostgreSQL.Enabled {
		repo, err = repository.NewPostgresRepository(
			cfg.GetPostgreSQLDSN(),
			cfg.PostgreSQL.MaxConnections,
			cfg.PostgreSQL.MaxIdleConnections,
		)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to database")
		}
		defer repo.Close()

		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to prepare database schema")
		}
		requests, feedback = repo, repo
		log.Info().Msg("✅ Connected to PostgreSQL database")
	} else {
		log.Info().Msg("ℹ️  No database configured - plan logging and feedback are off")
	}

	venueService := service.NewVenueService(llm, placesClient, weatherClient, requests, cfg.Venue, cfg.Weather.TargetHour)
	planner := service.NewPlanner(llm, venueService, weatherClient, cfg.Weather.TargetHour)

	log.Info().Msg("✅ Services initialized")

	handler.RegisterValidators()
	venueHandler := handler.NewVenueHandler(venueService)
	planHandler := handler.NewPlanHandler(planner)
	feedbackHandler := handler.NewFeedbackHandler(feedback)

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = splitList(cfg.Server.AllowedOrigins)
	corsConfig.AllowMethods = splitList(cfg.Server.AllowedMethods)
	corsConfig.AllowHeaders = splitList(cfg.Server.AllowedHeaders)
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status":     "healthy",
			"service":    "party-planner",
			"version":    Version,
			"places":     placesClient.Enabled(),
			"llm":        llm.IsEnabled(),
			"database":   "disabled",
			"build_time": BuildTime,
		}
		if repo != nil {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := repo.Ping(pingCtx); err != nil {
				status["status"] = "degraded"
				status["database"] = "unreachable"
			} else {
				status["database"] = "ok"
			}
		}
		c.JSON(http.StatusOK, status)
	})

	router.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
			"git_commit": GitCommit,
		})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		apiV1.POST("/venues", venueHandler.Search)
		apiV1.POST("/venues/stream", venueHandler.Stream)

		apiV1.POST("/plans", planHandler.Create)

		apiV1.POST("/feedback", feedbackHandler.Submit)
		apiV1.GET("/plans/:id/feedback", feedbackHandler.List)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("🚀 Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("🛑 Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shut down")
	}
	log.Info().Msg("✅ Server stopped")
}

// setupLogger configures the global logger from LOG_LEVEL and LOG_FORMAT
func setupLogger(cfg config.LoggingConfig) {
	logger := log.Logger{
		Level:      log.ParseLevel(cfg.Level),
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{ColorOutput: true, EndWithMessage: true},
	}
	if strings.EqualFold(cfg.Format, "json") {
		logger.TimeFormat = ""
		logger.Writer = &log.IOWriter{Writer: os.Stdout}
	}
	log.DefaultLogger = logger
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
