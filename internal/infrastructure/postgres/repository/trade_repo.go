package repository

import (
	"context"
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/mappers"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type DefaultTradeRepository struct {
	DB *gorm.DB
}

func NewDefaultTradeRepository(db *gorm.DB) *DefaultTradeRepository {
	return &DefaultTradeRepository{DB: db}
}

func (r *DefaultTradeRepository) CreateTrade(ctx context.Context, trade *domain.Trade) error {
	model := mappers.ToGORMTrade(trade)
	model.ID = 0
	model.Version = 1
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateTradeCode
		}
		return errors.Wrap(err, "failed to create trade")
	}
	trade.ID = model.ID
	trade.Version = model.Version
	trade.CreatedAt = model.CreatedAt
	trade.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *DefaultTradeRepository) TradeCodeExists(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.TradeModel{}).Where("code = ?", code).Count(&count).Error; err != nil {
		return false, errors.Wrap(err, "failed to check trade code")
	}
	return count > 0, nil
}

func (r *DefaultTradeRepository) GetTradeByCode(ctx context.Context, code string) (*domain.Trade, error) {
	var model models.TradeModel
	if err := r.DB.WithContext(ctx).Where("code = ?", code).First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get trade %s", code)
	}
	return mappers.ToDomainTrade(&model), nil
}

func (r *DefaultTradeRepository) GetTradeByID(ctx context.Context, id uint) (*domain.Trade, error) {
	var model models.TradeModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get trade %d", id)
	}
	return mappers.ToDomainTrade(&model), nil
}

func (r *DefaultTradeRepository) ListTradesForUser(ctx context.Context, filter domain.TradeFilter) ([]*domain.Trade, int64, error) {
	query := r.DB.WithContext(ctx).Model(&models.TradeModel{}).
		Where("buyer_id = ? OR seller_id = ?", filter.UserID, filter.UserID)
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count trades")
	}

	var tradeModels []models.TradeModel
	if err := query.Order("created_at desc, id desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&tradeModels).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list trades")
	}

	trades := make([]*domain.Trade, len(tradeModels))
	for i := range tradeModels {
		trades[i] = mappers.ToDomainTrade(&tradeModels[i])
	}
	return trades, total, nil
}

func (r *DefaultTradeRepository) CountUserTradesSince(ctx context.Context, userID uint, since time.Time) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&models.TradeModel{}).
		Where("buyer_id = ? OR seller_id = ?", userID, userID).
		Where("created_at >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, errors.Wrap(err, "failed to count recent trades")
	}
	return count, nil
}

func (r *DefaultTradeRepository) UpdateTrade(ctx context.Context, trade *domain.Trade) error {
	if err := updateVersioned(r.DB.WithContext(ctx), trade); err != nil {
		return err
	}
	trade.Version++
	return nil
}

func (r *DefaultTradeRepository) CompleteTrade(ctx context.Context, trade *domain.Trade) error {
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := updateVersioned(tx, trade); err != nil {
			return err
		}

		res := tx.Model(&models.UserModel{}).
			Where("id IN ?", []uint{trade.BuyerID, trade.SellerID}).
			Updates(map[string]interface{}{
				"total_trades":      gorm.Expr("total_trades + 1"),
				"successful_trades": gorm.Expr("successful_trades + 1"),
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "failed to bump completion counters")
		}
		if res.RowsAffected != 2 {
			return errors.Wrapf(domain.ErrNotFound, "completion counters: %d of 2 participants found", res.RowsAffected)
		}
		return nil
	})
	if err != nil {
		return err
	}
	trade.Version++
	return nil
}

func (r *DefaultTradeRepository) FindExpiredTrades(ctx context.Context, now time.Time, limit int) ([]*domain.Trade, error) {
	var tradeModels []models.TradeModel
	err := r.DB.WithContext(ctx).
		Where("(status IN ? AND expires_at < ?) OR (status = ? AND payment_deadline < ?)",
			[]domain.TradeStatus{domain.TradeInitiated, domain.TradeEscrowFunded}, now,
			domain.TradeEscrowFunded, now).
		Order("expires_at asc").
		Limit(limit).
		Find(&tradeModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to find expired trades")
	}

	trades := make([]*domain.Trade, len(tradeModels))
	for i := range tradeModels {
		trades[i] = mappers.ToDomainTrade(&tradeModels[i])
	}
	return trades, nil
}

// updateVersioned writes the mutable columns guarded by the version read
// into trade. It does not touch trade.Version.
func updateVersioned(tx *gorm.DB, trade *domain.Trade) error {
	columns := mappers.TradeMutableColumns(trade)
	columns["version"] = gorm.Expr("version + 1")

	res := tx.Model(&models.TradeModel{}).
		Where("id = ? AND version = ?", trade.ID, trade.Version).
		Updates(columns)
	if res.Error != nil {
		return errors.Wrapf(res.Error, "failed to update trade %s", trade.Code)
	}
	if res.RowsAffected == 0 {
		return domain.ErrConflict
	}
	return nil
}
