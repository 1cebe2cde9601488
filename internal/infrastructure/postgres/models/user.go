package models

import "time"

type UserModel struct {
	ID               uint    `gorm:"primaryKey"`
	Username         string  `gorm:"uniqueIndex;size:64;not null"`
	TelegramHandle   string  `gorm:"index;size:64"`
	WalletAddress    string  `gorm:"index;size:128"`
	IsVerified       bool    `gorm:"not null"`
	IsActive         bool    `gorm:"not null"`
	TotalTrades      int     `gorm:"not null"`
	SuccessfulTrades int     `gorm:"not null"`
	TrustScore       float64 `gorm:"not null;index"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (UserModel) TableName() string {
	return "users"
}
