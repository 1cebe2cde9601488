package models

import "gorm.io/gorm"

// AutoMigrate creates the ledger tables. Production schemas come from the
// SQL migrations; this is used by tests and local sqlite runs.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&TradeModel{},
		&RatingModel{},
		&ReportModel{},
		&CryptoConfigModel{},
	)
}
