package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/hris-portal/internal/config"
	"github.com/cmlabs-hris/hris-portal/internal/domain/session"
	appHTTP "github.com/cmlabs-hris/hris-portal/internal/handler/http"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/crypto"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/database"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/hrapi"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-portal/internal/pkg/sse"
	"github.com/cmlabs-hris/hris-portal/internal/repository/memory"
	"github.com/cmlabs-hris/hris-portal/internal/repository/postgresql"
	redisRepo "github.com/cmlabs-hris/hris-portal/internal/repository/redis"
	attendanceService "github.com/cmlabs-hris/hris-portal/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/hris-portal/internal/service/dashboard"
	sessionService "github.com/cmlabs-hris/hris-portal/internal/service/session"
	"github.com/redis/go-redis/v9"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to open session store", "driver", cfg.Session.Store, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	sealer, err := crypto.NewSealer(cfg.Session.Secret)
	if err != nil {
		slog.Error("Failed to initialize session sealer", "error", err)
		os.Exit(1)
	}
	sealedStore := crypto.NewSealedStore(store, sealer, session.KeyAuthToken)

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Failed to load timezone", "timezone", cfg.App.Timezone, "error", err)
		os.Exit(1)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.SessionExpiration, cfg.IsProduction())
	hub := sse.NewHub()
	apiClient := hrapi.NewClient(cfg.API.BaseURL, cfg.API.Timeout, hrapi.WithRetries(cfg.API.Retries))

	sessionSvc := sessionService.NewSessionService(sealedStore, JWTService)
	attendanceSvc := attendanceService.NewAttendanceService(apiClient, sessionSvc, hub, loc)
	dashboardSvc := dashboardService.NewDashboardService(sessionSvc, attendanceSvc)

	scheduler := cron.NewScheduler()
	// Purging never reads values, so the jobs work on the unsealed store
	cron.NewSessionJobs(store, JWTService, attendanceSvc, cfg.Session.TTL).
		RegisterJobs(scheduler, cfg.Session.SweepInterval)
	slog.Info("Registered cron jobs", "jobs", scheduler.Jobs())
	scheduler.Start(ctx)
	defer scheduler.Stop()

	sessionHandler := appHTTP.NewSessionHandler(sessionSvc, attendanceSvc, JWTService, hub)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, sessionSvc, JWTService, hub)

	router := appHTTP.NewRouter(
		cfg,
		logger,
		JWTService,
		sealedStore,
		sessionHandler,
		dashboardHandler,
		attendanceHandler,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", srv.Addr, "upstream", cfg.API.BaseURL, "session_store", cfg.Session.Store)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
}

// openStore connects the configured session store driver.
func openStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store := redisRepo.NewSessionStore(client, cfg.Redis.KeyPrefix, cfg.Session.TTL)
		if err := store.Ping(ctx); err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return store, func() { _ = client.Close() }, nil

	case config.StorePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
		if err != nil {
			return nil, nil, err
		}
		store := postgresql.NewSessionStore(db, cfg.Session.TTL)
		if err := ensureSchema(ctx, db, store); err != nil {
			db.Close()
			return nil, nil, err
		}
		return store, db.Close, nil

	default:
		return memory.NewSessionStore(cfg.Session.TTL), func() {}, nil
	}
}

func ensureSchema(ctx context.Context, db *database.DB, store *postgresql.SessionStore) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := store.EnsureSchema(postgresql.WithTx(ctx, tx)); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
