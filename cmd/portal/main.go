package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/grade-request-portal/api/swagger"
	"github.com/noah-isme/grade-request-portal/internal/handler"
	"github.com/noah-isme/grade-request-portal/internal/repository"
	"github.com/noah-isme/grade-request-portal/internal/routes"
	"github.com/noah-isme/grade-request-portal/internal/service"
	"github.com/noah-isme/grade-request-portal/internal/validation"
	"github.com/noah-isme/grade-request-portal/pkg/cache"
	"github.com/noah-isme/grade-request-portal/pkg/config"
	"github.com/noah-isme/grade-request-portal/pkg/database"
	"github.com/noah-isme/grade-request-portal/pkg/logger"
	"github.com/noah-isme/grade-request-portal/pkg/password"
	"github.com/noah-isme/grade-request-portal/pkg/session"
)

// @title Grade Request Portal
// @version 1.0.0
// @description Grade-correction request portal for university students
// @BasePath /
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Session.UsingDefault {
		logr.Warn("SECRET_KEY not set, using the development signing secret")
	}

	db, err := database.NewMySQL(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := database.EnsureSchema(ctx, db); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, login throttling disabled", zap.Error(err))
		redisClient = nil
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var metrics *service.MetricsService
	if cfg.Metrics.Enabled {
		metrics = service.NewMetricsService()
	}

	users := repository.NewUserRepository(db)
	requests := repository.NewRequestRepository(db)
	diagnostics := repository.NewDiagnosticsRepository(db)
	attempts := repository.NewLoginAttemptRepository(redisClient)
	if metrics != nil {
		users.SetObserver(metrics)
		requests.SetObserver(metrics)
		diagnostics.SetObserver(metrics)
	}

	hashOpts := password.DefaultOptions()
	hashOpts.MaxConcurrent = cfg.Hashing.MaxConcurrency
	hasher, err := password.NewHasher(hashOpts)
	if err != nil {
		return err
	}
	codec, err := session.NewCodec(cfg.Session.Secret)
	if err != nil {
		return err
	}

	validate := validation.Default()
	authSvc := service.NewAuthService(users, attempts, hasher, codec, validate, metrics, logr, service.AuthConfig{
		MaxAttempts:   cfg.Login.MaxAttempts,
		AttemptWindow: cfg.Login.AttemptWindow,
	})
	requestSvc := service.NewRequestService(requests, validate, metrics, logr)
	exportSvc := service.NewExportService(requestSvc, nil, nil)
	healthSvc := service.NewHealthService(diagnostics, users, requests, logr)

	cookies := handler.NewCookieHelper(handler.CookieConfig{
		Name:   session.CookieName,
		MaxAge: cfg.Session.MaxAge,
		Secure: cfg.Session.CookieSecure,
	})

	router := routes.New(routes.Options{
		Env:            cfg.Env,
		Logger:         logr,
		Metrics:        metrics,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		CookieName:     cookies.Name(),
		Sessions:       authSvc,
		Auth:           handler.NewAuthHandler(authSvc, cookies),
		Requests:       handler.NewRequestHandler(requestSvc, exportSvc),
		Health:         handler.NewHealthHandler(healthSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
