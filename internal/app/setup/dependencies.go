package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/metrics"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/migrate"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.EscrowConfig
	Logger       *zap.Logger
	DB           *gorm.DB
	Registry     *prometheus.Registry
	Metrics      *metrics.EscrowMetrics
	Publisher    *kafka.DefaultKafkaPublisher
	Subscriber   domain.SubscriberPort
	Repositories *Repositories
}

type Repositories struct {
	TradeRepo  domain.TradeRepository
	UserRepo   domain.UserRepository
	RatingRepo domain.RatingRepository
	ReportRepo domain.ReportRepository
	CryptoRepo domain.CryptoConfigRepository
}

func InitializeDependencies(cfg *config.EscrowConfig, log *zap.Logger) (*Dependencies, error) {
	db := postgres.MustInitDB(cfg, log)

	if err := migrate.RunMigrations(db, cfg.EscrowDB.MigrationsPath, log); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	deps := &Dependencies{
		Config:   cfg,
		Logger:   log,
		DB:       db,
		Registry: reg,
		Metrics:  metrics.NewEscrowMetrics(reg),
		Repositories: &Repositories{
			TradeRepo:  repository.NewDefaultTradeRepository(db),
			UserRepo:   repository.NewDefaultUserRepository(db),
			RatingRepo: repository.NewDefaultRatingRepository(db),
			ReportRepo: repository.NewDefaultReportRepository(db),
			CryptoRepo: repository.NewDefaultCryptoConfigRepository(db),
		},
	}

	if cfg.KafkaService.Enabled {
		deps.Publisher = kafka.NewDefaultKafkaPublisher(cfg.KafkaService.Brokers)
		deps.Subscriber = kafka.NewDefaultKafkaSubscriber(cfg.KafkaService.Brokers, log)
		log.Info("kafka enabled", zap.Strings("brokers", cfg.KafkaService.Brokers))
	}

	return deps, nil
}

// Close flushes the publisher and releases the connection pool.
func (d *Dependencies) Close() error {
	var errs []error
	if d.Publisher != nil {
		errs = append(errs, d.Publisher.Close())
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	} else {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Ping backs the /health endpoint and the gRPC health status.
func (d *Dependencies) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
