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

type DefaultUserRepository struct {
	DB *gorm.DB
}

func NewDefaultUserRepository(db *gorm.DB) *DefaultUserRepository {
	return &DefaultUserRepository{DB: db}
}

func (r *DefaultUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	model := mappers.ToGORMUser(user)
	if err := r.DB.WithContext(ctx).Create(model).Error; err != nil {
		if isUniqueViolation(err) {
			return errors.Wrapf(domain.ErrConflict, "username %s taken", user.Username)
		}
		return errors.Wrap(err, "failed to create user")
	}
	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	return nil
}

func (r *DefaultUserRepository) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	var model models.UserModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrapf(err, "failed to get user %d", id)
	}
	return mappers.ToDomainUser(&model), nil
}

func (r *DefaultUserRepository) FindByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	var model models.UserModel
	err := r.DB.WithContext(ctx).
		Where("username = ? OR telegram_handle = ? OR wallet_address = ?", identifier, identifier, identifier).
		Order("id asc").
		First(&model).Error
	if err != nil {
		if isNotFound(err) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "failed to find user by identifier")
	}
	return mappers.ToDomainUser(&model), nil
}

func (r *DefaultUserRepository) SearchUsers(ctx context.Context, query string, limit int) ([]*domain.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var userModels []models.UserModel
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Where("LOWER(username) LIKE ? OR LOWER(telegram_handle) LIKE ?", pattern, pattern).
		Order("trust_score desc, id asc").
		Limit(limit).
		Find(&userModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to search users")
	}
	return toDomainUsers(userModels), nil
}

func (r *DefaultUserRepository) TopTraders(ctx context.Context, limit int) ([]*domain.User, error) {
	var userModels []models.UserModel
	err := r.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("trust_score desc, successful_trades desc, id asc").
		Limit(limit).
		Find(&userModels).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list top traders")
	}
	return toDomainUsers(userModels), nil
}

func (r *DefaultUserRepository) UpdateTrustScore(ctx context.Context, userID uint, compute domain.TrustScoreFunc) (float64, error) {
	var score float64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.UserModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, "id = ?", userID).Error; err != nil {
			if isNotFound(err) {
				return domain.ErrNotFound
			}
			return errors.Wrapf(err, "failed to lock user %d", userID)
		}

		summary, err := ratingSummary(tx, userID)
		if err != nil {
			return err
		}

		score = compute(mappers.ToDomainUser(&model), summary)
		if err := tx.Model(&models.UserModel{}).Where("id = ?", userID).Update("trust_score", score).Error; err != nil {
			return errors.Wrapf(err, "failed to store trust score for user %d", userID)
		}
		return nil
	})
	return score, err
}

func toDomainUsers(userModels []models.UserModel) []*domain.User {
	users := make([]*domain.User, len(userModels))
	for i := range userModels {
		users[i] = mappers.ToDomainUser(&userModels[i])
	}
	return users
}
