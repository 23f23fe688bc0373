package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JNHNG0205/ai-content-workflow/internal/ai"
	"github.com/JNHNG0205/ai-content-workflow/internal/api"
	"github.com/JNHNG0205/ai-content-workflow/internal/config"
	"github.com/JNHNG0205/ai-content-workflow/internal/database"
	"github.com/JNHNG0205/ai-content-workflow/internal/metrics"
	"github.com/JNHNG0205/ai-content-workflow/internal/repository"
	"github.com/JNHNG0205/ai-content-workflow/internal/service"
	"github.com/JNHNG0205/ai-content-workflow/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
)

func main() {
	migrateDown := flag.Bool("migrate-down", false, "roll back the latest migration and exit")
	flag.Parse()

	// A missing .env is fine; the environment wins either way
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "json")
		bootLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting content workflow API server...")

	// Initialize database
	db, err := database.New(&cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if *migrateDown {
		if err := db.MigrateDown(cfg.Server.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("Failed to roll back migration")
		}
		return
	}

	// Run migrations
	if err := db.RunMigrations(cfg.Server.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Initialize session cache
	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid REDIS_URL")
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	pingCtx, pingCancel := context.WithTimeout(context.Background(), cfg.Server.ReadTimeout)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		pingCancel()
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	pingCancel()

	// Initialize repositories
	repos := repository.New(db, rdb, cfg.Redis.KeyPrefix)

	writer := ai.NewFromConfig(cfg.AI)
	if !writer.Configured() {
		log.Warn().Msg("OPENAI_API_KEY not set, AI endpoints will answer 502")
	}

	// Initialize services
	services := service.NewServices(repos, writer, cfg, log)
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	prometheus.MustRegister(db.PoolCollector())

	// Start session sweeper
	go services.Session.StartSweeper(context.Background())

	// Initialize router
	router := api.NewRouter(services, cfg, log,
		api.HealthCheck{Name: "database", Check: db.HealthCheck},
		api.HealthCheck{Name: "redis", Check: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	services.Session.StopSweeper()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited gracefully")
}
