package mappers

import (
	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
)

func ToDomainCryptoConfig(model *models.CryptoConfigModel) *domain.CryptoConfig {
	return &domain.CryptoConfig{
		Symbol:          model.Symbol,
		Name:            model.Name,
		Network:         model.Network,
		Decimals:        model.Decimals,
		MinAmount:       model.MinAmount,
		MaxAmount:       model.MaxAmount,
		FeePercent:      model.FeePercent,
		ContractAddress: model.ContractAddress,
		IsTestnet:       model.IsTestnet,
		IsActive:        model.IsActive,
	}
}

func ToGORMCryptoConfig(cfg *domain.CryptoConfig) *models.CryptoConfigModel {
	return &models.CryptoConfigModel{
		Symbol:          cfg.Symbol,
		Name:            cfg.Name,
		Network:         cfg.Network,
		Decimals:        cfg.Decimals,
		MinAmount:       cfg.MinAmount,
		MaxAmount:       cfg.MaxAmount,
		FeePercent:      cfg.FeePercent,
		ContractAddress: cfg.ContractAddress,
		IsTestnet:       cfg.IsTestnet,
		IsActive:        cfg.IsActive,
	}
}
