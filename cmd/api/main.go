package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/BruksfildServices01/eventgenie/internal/audit"
	"github.com/BruksfildServices01/eventgenie/internal/config"
	dbpkg "github.com/BruksfildServices01/eventgenie/internal/db"
	domain "github.com/BruksfildServices01/eventgenie/internal/domain/booking"
	"github.com/BruksfildServices01/eventgenie/internal/handlers"
	"github.com/BruksfildServices01/eventgenie/internal/infra/lock"
	"github.com/BruksfildServices01/eventgenie/internal/middleware"
	"github.com/BruksfildServices01/eventgenie/internal/obs"
	"github.com/BruksfildServices01/eventgenie/internal/routes"
	"github.com/BruksfildServices01/eventgenie/internal/storage"
)

func main() {

	cfg := config.Load()

	logger := newLogger(cfg)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := obs.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint, cfg.AppEnv)
	if err != nil {
		logger.Error("failed to init tracer", "error", err)
		os.Exit(1)
	}

	db := dbpkg.NewDB(cfg)
	if err := dbpkg.SeedAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		logger.Error("failed to seed admin", "error", err)
		os.Exit(1)
	}

	// ======================================================
	// AUDIT SINKS
	// ======================================================
	sinks := []audit.Sink{audit.New(db)}
	var amqpSink *audit.AMQPSink
	if cfg.RabbitURL != "" {
		amqpSink, err = audit.NewAMQPSink(cfg.RabbitURL, cfg.AuditExchange)
		if err != nil {
			logger.Warn("audit events will not be published", "error", err)
		} else {
			sinks = append(sinks, amqpSink)
		}
	}
	dispatcher := audit.NewDispatcher(sinks...)

	// ======================================================
	// BOOKING LOCK
	// ======================================================
	var locker domain.Locker = lock.NewLocalLocker()
	var redisLocker *lock.RedisLocker
	if cfg.RedisURL != "" {
		redisLocker, err = lock.NewRedisLocker(cfg.RedisURL, cfg.LockTTL)
		if err != nil {
			logger.Error("failed to connect redis", "error", err)
			os.Exit(1)
		}
		locker = redisLocker
	} else {
		logger.Info("REDIS_URL not set, booking locks are local to this process")
	}

	var images handlers.ImageUploader
	if cfg.S3Enabled() {
		images = storage.NewImageStore(cfg)
	}

	// ======================================================
	// HTTP
	// ======================================================
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(
		middleware.RequestLogger(logger.WithGroup("http")),
		gin.Recovery(),
		otelgin.Middleware(cfg.ServiceName),
		middleware.TraceAttributes,
		middleware.SlowRequests(logger),
		middleware.CORSMiddleware(cfg),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, routes.Deps{
		Locker: locker,
		Audit:  dispatcher,
		Images: images,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server running", "addr", cfg.Addr(), "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown", "error", err)
	}

	dispatcher.Close()
	if amqpSink != nil {
		_ = amqpSink.Close()
	}
	if redisLocker != nil {
		_ = redisLocker.Close()
	}
	if err := shutdownTracer(shutdownCtx); err != nil {
		logger.Error("tracer shutdown", "error", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsProduction() {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
