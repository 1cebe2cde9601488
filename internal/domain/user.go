package domain

import (
	"context"
	"time"
)

// User is the slice of the identity record this service reads and updates.
type User struct {
	ID               uint
	Username         string
	TelegramHandle   string
	WalletAddress    string
	IsVerified       bool
	IsActive         bool
	TotalTrades      int
	SuccessfulTrades int
	TrustScore       float64
	CreatedAt        time.Time
}

// TrustScoreFunc derives a score from the locked user row and its current
// rating aggregate.
type TrustScoreFunc func(user *User, summary RatingSummary) float64

type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id uint) (*User, error)
	// FindByIdentifier matches username, telegram handle or wallet address.
	FindByIdentifier(ctx context.Context, identifier string) (*User, error)
	SearchUsers(ctx context.Context, query string, limit int) ([]*User, error)
	TopTraders(ctx context.Context, limit int) ([]*User, error)
	// UpdateTrustScore locks the user row, re-reads the rating aggregate
	// and stores compute's result in one transaction.
	UpdateTrustScore(ctx context.Context, userID uint, compute TrustScoreFunc) (float64, error)
}
