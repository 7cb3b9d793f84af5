package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/maxviazov/fantasy-cricket-service/internal/cache"
	"github.com/maxviazov/fantasy-cricket-service/internal/config"
	"github.com/maxviazov/fantasy-cricket-service/internal/handler"
	"github.com/maxviazov/fantasy-cricket-service/internal/logger"
	postgres "github.com/maxviazov/fantasy-cricket-service/internal/repository"
	pgrepo "github.com/maxviazov/fantasy-cricket-service/internal/repository/postgres"
	"github.com/maxviazov/fantasy-cricket-service/internal/service"
	"github.com/maxviazov/fantasy-cricket-service/migrations"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	// Load application config
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}
	zlog.Logger = appLogger
	appLogger.Info().Msg("✅ Logger initialized successfully")

	ctx := context.Background()
	connectPgx, err := postgres.New(ctx, cfg, &appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer connectPgx.Close()

	if cfg.Postgres.AutoMigrate {
		if err := connectPgx.Migrate(ctx, migrations.FS, migrations.Dir); err != nil {
			appLogger.Fatal().Err(err).Msg("❌ Migrations failed")
		}
	}

	readiness := handler.Pingers{"postgres": connectPgx}
	var summaryCache service.SummaryCache = cache.Noop{}
	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			appLogger.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("❌ Redis connection failed")
		}
		defer rdb.Close()
		summaryCache = cache.NewRedisSummaryCache(rdb, time.Duration(cfg.Redis.SummaryTTL)*time.Second)
		readiness["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		appLogger.Info().Str("addr", cfg.Redis.Addr).Msg("summary cache enabled")
	}

	pool := connectPgx.Pool()
	players := pgrepo.NewPlayerRepository(pool)
	playerSvc := service.NewPlayerService(players, pgrepo.NewTxManager(pool), summaryCache, cfg.Fantasy.ImportWorkers, appLogger)
	tournamentSvc := service.NewTournamentService(players, summaryCache, appLogger)
	squadSvc := service.NewSquadService(players, service.SquadRules{
		Budget: cfg.Fantasy.SquadBudget,
		Size:   cfg.Fantasy.SquadSize,
	}, appLogger)

	if cfg.App.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(handler.RequestID(), handler.AccessLog(appLogger), gin.Recovery())
	handler.Register(r, readiness, playerSvc, tournamentSvc, squadSvc)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		appLogger.Info().Int("port", cfg.App.Port).Msg("🚀 Service started")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error().Err(err).Msg("server failed")
		}
	case sig := <-shutdown:
		appLogger.Info().Str("signal", sig.String()).Msg("shutting down")

		// give in-flight requests a deadline before closing connections
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Warn().Err(err).Msg("graceful shutdown failed")
			_ = srv.Close()
		}
	}
	appLogger.Info().Msg("✓ Shutdown complete")
}

// configPath honors CONFIG_PATH so containers can mount the file elsewhere.
func configPath() string {
	if p := os.Getenv("CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}
