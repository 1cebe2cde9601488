package trade

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/LavaJover/shvark-escrow-service/internal/domain"
	tradedto "github.com/LavaJover/shvark-escrow-service/internal/usecase/dto/trade"
	"go.uber.org/zap"
)

// CreateTrade validates the amount against the catalog, assigns buyer and
// seller from the direction and stores a new INITIATED trade under a fresh code.
func (uc *DefaultTradeUsecase) CreateTrade(ctx context.Context, input *tradedto.CreateTradeInput) (*domain.Trade, error) {
	direction := domain.TradeDirection(strings.ToUpper(strings.TrimSpace(string(input.Direction))))
	if !direction.Valid() {
		return nil, fmt.Errorf("trade direction %q: %w", input.Direction, domain.ErrInvalidInput)
	}
	crypto := normalizeCurrency(input.CryptoCurrency, domain.DefaultCryptoSymbol)
	fiat := normalizeCurrency(input.FiatCurrency, domain.DefaultFiatCurrency)

	if err := uc.validateAmounts(ctx, crypto, input); err != nil {
		return nil, err
	}

	buyerID, sellerID := input.InitiatorID, input.CounterpartyID
	if direction == domain.DirectionSell {
		buyerID, sellerID = sellerID, buyerID
	}
	if err := uc.validateParties(ctx, buyerID, sellerID); err != nil {
		return nil, err
	}

	now := uc.now()
	trade := &domain.Trade{
		BuyerID:         buyerID,
		SellerID:        sellerID,
		CryptoAmount:    input.CryptoAmount,
		CryptoCurrency:  crypto,
		FiatAmount:      input.FiatAmount,
		FiatCurrency:    fiat,
		ExchangeRate:    input.ExchangeRate,
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		Status:          domain.TradeInitiated,
		CreatedAt:       now,
		UpdatedAt:       now,
		ExpiresAt:       now.Add(domain.TradeExpiryWindow),
		PaymentDeadline: now.Add(domain.PaymentWindow),
	}
	if err := uc.insertWithUniqueCode(ctx, trade); err != nil {
		return nil, err
	}

	uc.Metrics.RecordTradeCreated(string(direction), crypto)
	uc.emit(ctx, []domain.TransitionRecord{newRecord(trade, domain.EventCreate, "", input.InitiatorID, now)}, now)
	uc.Logger.Info("trade created",
		zap.String("trade_code", trade.Code),
		zap.String("direction", string(direction)),
		zap.Uint("buyer_id", buyerID),
		zap.Uint("seller_id", sellerID),
		zap.Float64("crypto_amount", trade.CryptoAmount),
		zap.String("crypto_currency", crypto),
	)
	return trade, nil
}

func (uc *DefaultTradeUsecase) validateAmounts(ctx context.Context, crypto string, input *tradedto.CreateTradeInput) error {
	if !positive(input.CryptoAmount) {
		return fmt.Errorf("crypto amount must be positive: %w", domain.ErrInvalidAmount)
	}

	ok, err := uc.Catalog.IsAmountValid(ctx, crypto, input.CryptoAmount)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("unsupported crypto currency %s: %w", crypto, domain.ErrInvalidAmount)
		}
		return err
	}
	if !ok {
		return fmt.Errorf("%v %s is outside the allowed range: %w", input.CryptoAmount, crypto, domain.ErrInvalidAmount)
	}

	if !positive(input.FiatAmount) {
		return fmt.Errorf("fiat amount must be positive: %w", domain.ErrInvalidAmount)
	}
	if !positive(input.ExchangeRate) {
		return fmt.Errorf("exchange rate must be positive: %w", domain.ErrInvalidAmount)
	}
	return nil
}

func (uc *DefaultTradeUsecase) validateParties(ctx context.Context, buyerID, sellerID uint) error {
	if buyerID == domain.SystemActorID || sellerID == domain.SystemActorID {
		return fmt.Errorf("missing counterparty: %w", domain.ErrInvalidParties)
	}
	if buyerID == sellerID {
		return fmt.Errorf("buyer and seller must differ: %w", domain.ErrInvalidParties)
	}

	for _, id := range []uint{buyerID, sellerID} {
		user, err := uc.UserRepo.GetUserByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("user %d does not exist: %w", id, domain.ErrInvalidParties)
			}
			return err
		}
		if !user.IsActive {
			return fmt.Errorf("user %d is inactive: %w", id, domain.ErrInvalidParties)
		}
	}
	return nil
}

// insertWithUniqueCode retries on a taken code, whether seen by the
// existence check or by the unique index on insert.
func (uc *DefaultTradeUsecase) insertWithUniqueCode(ctx context.Context, trade *domain.Trade) error {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := uc.NewCode()
		exists, err := uc.TradeRepo.TradeCodeExists(ctx, code)
		if err != nil {
			return err
		}
		if exists {
			uc.Logger.Warn("trade code collision", zap.String("trade_code", code), zap.Int("attempt", attempt+1))
			continue
		}

		trade.Code = code
		err = uc.TradeRepo.CreateTrade(ctx, trade)
		if errors.Is(err, domain.ErrDuplicateTradeCode) {
			uc.Logger.Warn("trade code taken on insert", zap.String("trade_code", code), zap.Int("attempt", attempt+1))
			continue
		}
		return err
	}
	return fmt.Errorf("no unique trade code after %d attempts: %w", maxCodeAttempts, domain.ErrConflict)
}

func normalizeCurrency(value, fallback string) string {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return fallback
	}
	return value
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
