package postgres

import (
	"time"

	"github.com/LavaJover/shvark-escrow-service/internal/config"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/logger"
	"github.com/LavaJover/shvark-escrow-service/internal/infrastructure/postgres/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.EscrowConfig, log *zap.Logger) *gorm.DB {
	db, err := Open(postgres.Open(cfg.EscrowDB.Dsn))
	if err != nil {
		log.Fatal("failed to init db", zap.Error(err))
	}
	return db
}

// Open connects through any gorm dialector so tests can run on sqlite.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

// AutoMigrate creates the ledger tables and the transition audit table.
func AutoMigrate(db *gorm.DB) error {
	if err := models.AutoMigrate(db); err != nil {
		return err
	}
	return db.AutoMigrate(&logger.TradeTransitionEvent{})
}
