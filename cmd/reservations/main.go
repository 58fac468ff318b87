package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sleepr/sleepr/backend/go-services/handlers"
	"github.com/sleepr/sleepr/backend/go-services/internal/config"
	"github.com/sleepr/sleepr/backend/go-services/internal/database"
	"github.com/sleepr/sleepr/backend/go-services/internal/otel"
	"github.com/sleepr/sleepr/backend/go-services/internal/reservation/handler"
	"github.com/sleepr/sleepr/backend/go-services/internal/reservation/repository"
	"github.com/sleepr/sleepr/backend/go-services/internal/reservation/service"
	"github.com/sleepr/sleepr/backend/go-services/pkg/logger"
	"github.com/sleepr/sleepr/backend/go-services/pkg/metrics"
	"github.com/sleepr/sleepr/backend/go-services/pkg/middleware"
)

func main() {
	// LOG_LEVEL: debug|info|warn|error
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.LogLevel != "" {
		logger.Init(cfg.LogLevel)
	}
	logger.Infof("config loaded: database=%s keycloak=%v redis=%v rate_limit=%v", cfg.MongoDB.Database, cfg.Keycloak.URL != "", cfg.Redis.Host != "", cfg.RateLimit.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Tracing)
	if err != nil {
		logger.Fatalf("failed to initialize tracing: %v", err)
	}

	client := connectMongo(ctx, cfg.MongoDB)
	db := client.Database(cfg.MongoDB.Database)

	var rdb *redis.Client
	if cfg.Redis.Host != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     net.JoinHostPort(cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
		} else {
			logger.Infof("connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)

	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Metrics(), gin.Logger(), gin.Recovery())

	// auth runs before the limiter so authenticated callers are keyed by subject
	var routeMW []gin.HandlerFunc
	ver, err := newVerifier(ctx, cfg)
	if err != nil {
		logger.Fatalf("authentication setup failed: %v", err)
	}
	if ver != nil {
		routeMW = append(routeMW, middleware.AuthMiddleware(ver))
	} else {
		logger.Warn("no Keycloak or JWT_SECRET configured: reservation routes are unauthenticated")
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && rdb != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			routeMW = append(routeMW, middleware.RedisRateLimitMiddleware(rdb, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			routeMW = append(routeMW, middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	repo := repository.NewReservationsRepository(db)
	handler.RegisterReservationRoutes(r, service.NewService(repo), routeMW...)

	checks := map[string]handlers.Check{
		"mongodb": func(ctx context.Context) error { return client.Ping(ctx, nil) },
	}
	if rdb != nil && cfg.RateLimit.UseRedis {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	handlers.RegisterHealth(r, 2*time.Second, checks)
	handlers.RegisterSwagger(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logger.Infof("reservations service listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Infof("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("http shutdown: %v", err)
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	if err := client.Disconnect(shutdownCtx); err != nil {
		logger.Errorf("mongo disconnect: %v", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Errorf("tracing shutdown: %v", err)
	}
}

// connectMongo retries with exponential backoff to tolerate startup races with the database container.
func connectMongo(ctx context.Context, cfg config.MongoDBConfig) *mongo.Client {
	const maxAttempts = 5
	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, err := database.ConnectMongo(ctx, cfg.URI, cfg.Timeout, cfg.MaxPoolSize)
		if err == nil {
			logger.Infof("connected to MongoDB database %s", cfg.Database)
			return client
		}
		lastErr = err
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, err)
		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				logger.Fatalf("interrupted while connecting to MongoDB: %v", ctx.Err())
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, lastErr)
	return nil
}
