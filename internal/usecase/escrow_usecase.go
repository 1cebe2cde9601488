package usecase

import (
	"context"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	escrowdto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/escrow"
)

type EscrowUsecase interface {
	FundEscrow(ctx context.Context, code string, userID uint, txHash string) (*domain.Trade, error)
	ConfirmPayment(ctx context.Context, code string, userID uint, reference, proof string) (*domain.Trade, error)
	ReleaseEscrow(ctx context.Context, code string, userID uint) (*domain.Trade, error)
	GetEscrowStatus(ctx context.Context, code string, userID uint) (*escrowdto.EscrowStatusOutput, error)
}
