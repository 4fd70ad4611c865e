package postgres

import (
	"log"

	"github.com/clockvault/timeclock-service/internal/config"
	"github.com/clockvault/timeclock-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.TimeclockConfig) *gorm.DB {
	dsn := cfg.TimeclockDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	db.AutoMigrate(&models.TenantNSRCounterModel{}, &models.TimeRecordModel{}, &models.TimeRecordAdjustmentModel{})

	return db
}
