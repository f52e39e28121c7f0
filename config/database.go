package config

import (
	"fmt"
	"time"

	"salonhub-backend/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// ActiveSlotIndex guarantees at most one non-cancelled appointment per
// professional, date and time.
const ActiveSlotIndex = "ux_appointments_active_slot"

func ConnectDB(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	return db, nil
}

// Migrate creates the schema, the active slot index and the global
// service categories.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(models.Tables...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	ddl := fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s ON appointments (professional_id, slot_date, slot_time) WHERE status <> 'cancelled'`,
		ActiveSlotIndex,
	)
	if err := db.Exec(ddl).Error; err != nil {
		return fmt.Errorf("create %s: %w", ActiveSlotIndex, err)
	}

	created, err := SeedCategories(db)
	if err != nil {
		return err
	}
	logger.Info("database migrated", zap.Int("categories_seeded", created))
	return nil
}

// SeedCategories inserts the hair, skin and nails categories that are
// missing and reports how many were created.
func SeedCategories(db *gorm.DB) (int, error) {
	defaults := models.DefaultCategories()
	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}},
		DoNothing: true,
	}).Create(&defaults)
	if res.Error != nil {
		return 0, fmt.Errorf("seed categories: %w", res.Error)
	}
	return int(res.RowsAffected), nil
}
