package postgres

import (
	"log"

	"github.com/mathbridge/mathbridge-backend/internal/config"
	"github.com/mathbridge/mathbridge-backend/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.MathBridgeConfig) *gorm.DB {
	dsn := cfg.AppDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(
		&models.UserModel{},
		&models.WalletModel{},
		&models.WalletTransactionModel{},
		&models.GatewayTransactionModel{},
		&models.PackageModel{},
		&models.ContractModel{},
		&models.SessionModel{},
		&models.RescheduleRequestModel{},
		&models.NotificationModel{},
	)

	return db
}
