package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainUser(model *models.UserModel) *domain.User {
	return &domain.User{
		ID:               model.ID,
		Username:         model.Username,
		TelegramHandle:   model.TelegramHandle,
		WalletAddress:    model.WalletAddress,
		IsVerified:       model.IsVerified,
		IsActive:         model.IsActive,
		TotalTrades:      model.TotalTrades,
		SuccessfulTrades: model.SuccessfulTrades,
		TrustScore:       model.TrustScore,
		CreatedAt:        model.CreatedAt,
	}
}

func ToGORMUser(user *domain.User) *models.UserModel {
	return &models.UserModel{
		ID:               user.ID,
		Username:         user.Username,
		TelegramHandle:   user.TelegramHandle,
		WalletAddress:    user.WalletAddress,
		IsVerified:       user.IsVerified,
		IsActive:         user.IsActive,
		TotalTrades:      user.TotalTrades,
		SuccessfulTrades: user.SuccessfulTrades,
		TrustScore:       user.TrustScore,
		CreatedAt:        user.CreatedAt,
	}
}
