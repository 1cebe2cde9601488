package setup

import (
	"context"
	"fmt"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/kafka"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/catalog"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/escrow"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/rating"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/trade"
	"github.com/LavaJover/shvark-escrow-service/internal/usecase/trust"
	"go.uber.org/zap"
)

type UseCases struct {
	TradeUsecase   *trade.DefaultTradeUsecase
	EscrowUsecase  *escrow.DefaultEscrowUsecase
	RatingUsecase  *rating.DefaultRatingUsecase
	CatalogUsecase *catalog.DefaultCatalogUsecase
	TrustService   *trust.Service
}

func InitializeUseCases(ctx context.Context, deps *Dependencies) (*UseCases, error) {
	cfg := deps.Config
	repos := deps.Repositories
	log := deps.Logger

	catalogUsecase := catalog.NewDefaultCatalogUsecase(repos.CryptoRepo, log)
	if _, err := catalogUsecase.SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seed crypto catalog: %w", err)
	}

	var tradeEvents domain.TradeEventPublisher
	if deps.Publisher != nil {
		tradeEvents = kafka.NewTradeEventPublisher(deps.Publisher, cfg.KafkaService.TradeTopic)
	}

	tradeUsecase := trade.NewDefaultTradeUsecase(
		repos.TradeRepo,
		repos.UserRepo,
		catalogUsecase,
		tradeEvents,
		logger.NewPGTradeEventLogger(deps.DB),
		deps.Metrics,
		log,
	)
	if cfg.Expiry.BatchSize > 0 {
		tradeUsecase.ExpiryBatchSize = cfg.Expiry.BatchSize
	}

	escrowUsecase, err := escrow.NewDefaultEscrowUsecase(tradeUsecase, log)
	if err != nil {
		return nil, fmt.Errorf("escrow usecase: %w", err)
	}

	trustService := trust.NewService(repos.UserRepo, repos.RatingRepo, deps.Metrics, log)

	var recompute rating.TrustRecomputer = trustService
	if cfg.Trust.Async && deps.Publisher != nil {
		recompute = kafka.NewTrustQueue(deps.Publisher, cfg.KafkaService.TrustTopic)
		log.Info("trust recompute queued", zap.String("topic", cfg.KafkaService.TrustTopic))
	}

	ratingUsecase := rating.NewDefaultRatingUsecase(
		repos.TradeRepo,
		repos.UserRepo,
		repos.RatingRepo,
		repos.ReportRepo,
		recompute,
		trustService,
		deps.Metrics,
		log,
	)

	return &UseCases{
		TradeUsecase:   tradeUsecase,
		EscrowUsecase:  escrowUsecase,
		RatingUsecase:  ratingUsecase,
		CatalogUsecase: catalogUsecase,
		TrustService:   trustService,
	}, nil
}
