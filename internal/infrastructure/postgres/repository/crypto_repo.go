package repository

import (
	"context"
	"strings"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultCryptoConfigRepository struct {
	DB *gorm.DB
}

func NewDefaultCryptoConfigRepository(db *gorm.DB) *DefaultCryptoConfigRepository {
	return &DefaultCryptoConfigRepository{DB: db}
}

func (r *DefaultCryptoConfigRepository) GetBySymbol(ctx context.Context, symbol string) (*domain.CryptoConfig, error) {
	var model models.CryptoConfigModel
	err := r.DB.WithContext(ctx).
		Where("symbol = ?", strings.ToUpper(symbol)).
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get crypto config %s", symbol)
	}
	return mappers.ToDomainCryptoConfig(&model), nil
}

func (r *DefaultCryptoConfigRepository) ListActive(ctx context.Context) ([]*domain.CryptoConfig, error) {
	var configModels []models.CryptoConfigModel
	if err := r.DB.WithContext(ctx).Where("is_active = ?", true).Order("symbol asc").Find(&configModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list crypto configs")
	}

	configs := make([]*domain.CryptoConfig, len(configModels))
	for i := range configModels {
		configs[i] = mappers.ToDomainCryptoConfig(&configModels[i])
	}
	return configs, nil
}

func (r *DefaultCryptoConfigRepository) Upsert(ctx context.Context, cfg *domain.CryptoConfig) error {
	model := mappers.ToGORMCryptoConfig(cfg)
	model.Symbol = strings.ToUpper(model.Symbol)
	err := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "symbol"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "network", "decimals", "min_amount", "max_amount",
				"fee_percent", "contract_address", "is_testnet", "is_active", "updated_at",
			}),
		}).
		Create(model).Error
	if err != nil {
		return errors.Wrapf(err, "failed to upsert crypto config %s", cfg.Symbol)
	}
	return nil
}

func (r *DefaultCryptoConfigRepository) CreateIfAbsent(ctx context.Context, cfg *domain.CryptoConfig) (bool, error) {
	model := mappers.ToGORMCryptoConfig(cfg)
	model.Symbol = strings.ToUpper(model.Symbol)
	res := r.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "symbol"}},
			DoNothing: true,
		}).
		Create(model)
	if res.Error != nil {
		return false, errors.Wrapf(res.Error, "failed to insert crypto config %s", cfg.Symbol)
	}
	return res.RowsAffected > 0, nil
}
