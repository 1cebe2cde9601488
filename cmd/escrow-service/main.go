package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/app/background"
	"github.com/LavaJover/shvark-escrow-service/internal/app/setup"
	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/delivery/http/handlers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

const (
	shutdownTimeout     = 15 * time.Second
	healthProbeInterval = 10 * time.Second
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the YAML config file")
	pflag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}

	cfg := config.MustLoad(*configPath)

	zlog, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps, err := setup.InitializeDependencies(cfg, zlog)
	if err != nil {
		zlog.Fatal("failed to init dependencies", zap.Error(err))
	}
	defer func() {
		if err := deps.Close(); err != nil {
			zlog.Warn("failed to close dependencies", zap.Error(err))
		}
	}()

	uc, err := setup.InitializeUseCases(ctx, deps)
	if err != nil {
		zlog.Fatal("failed to init usecases", zap.Error(err))
	}

	// Background tasks
	var expiryInterval time.Duration
	if cfg.Expiry.Enabled {
		expiryInterval = cfg.Expiry.Interval
	}
	tasks := background.NewBackgroundTasks(uc.TradeUsecase, expiryInterval, zlog)
	if cfg.Trust.Async && deps.Subscriber != nil {
		tasks.WithTrustConsumer(uc.TrustService, deps.Subscriber, cfg.KafkaService.TrustTopic, cfg.KafkaService.GroupID)
	}
	if err := tasks.StartAll(ctx); err != nil {
		zlog.Fatal("failed to start background tasks", zap.Error(err))
	}

	// HTTP
	h := handlers.New(
		uc.TradeUsecase,
		uc.EscrowUsecase,
		uc.RatingUsecase,
		uc.RatingUsecase,
		uc.CatalogUsecase,
		zlog,
		handlers.Options{
			JWTSecret:      cfg.Auth.JWTSecret,
			AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
			RateRPS:        cfg.RateLimit.RPS,
			RateBurst:      cfg.RateLimit.Burst,
			Gatherer:       deps.Registry,
			Health:         deps.Ping,
		},
	)
	httpServer := &http.Server{
		Addr:         net.JoinHostPort(cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:      h.Routes(),
		ReadTimeout:  cfg.HTTPServer.ReadTimeout,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
	}

	// gRPC health
	grpcServer := grpc.NewServer()
	healthServer := health.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		zlog.Fatal("failed to listen", zap.Error(err))
	}

	go watchHealth(ctx, deps, healthServer, zlog)

	go func() {
		zlog.Info("gRPC server started", zap.String("addr", lis.Addr().String()))
		if err := grpcServer.Serve(lis); err != nil {
			zlog.Error("gRPC server stopped", zap.Error(err))
			stop()
		}
	}()

	go func() {
		zlog.Info("HTTP server started", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Error("HTTP server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")
	healthServer.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zlog.Warn("HTTP shutdown", zap.Error(err))
	}
	grpcServer.GracefulStop()
	tasks.Wait()
}

func watchHealth(ctx context.Context, deps *setup.Dependencies, hs *health.Server, log *zap.Logger) {
	ticker := time.NewTicker(healthProbeInterval)
	defer ticker.Stop()

	for {
		status := healthpb.HealthCheckResponse_SERVING
		if err := deps.Ping(ctx); err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Warn("database ping failed", zap.Error(err))
			status = healthpb.HealthCheckResponse_NOT_SERVING
		}
		hs.SetServingStatus("", status)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
