package database

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Ayy-man/hottecouture-v2-sub001/internal/config"
	"github.com/Ayy-man/hottecouture-v2-sub001/internal/domain/entity"
	"github.com/Ayy-man/hottecouture-v2-sub001/pkg/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	logger.L().Info("connected to postgres", zap.String("host", cfg.Host), zap.String("database", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	logger.L().Info("running database migrations")

	err := db.AutoMigrate(
		&entity.Client{},
		&entity.CatalogService{},
		&entity.Order{},
		&entity.Garment{},
		&entity.GarmentService{},
		&entity.Task{},

		// System entities
		&entity.EventLog{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.L().Info("database migrations completed")
	return nil
}

// DefaultCatalog is the price list installed on an empty database
func DefaultCatalog() []entity.CatalogService {
	return []entity.CatalogService{
		{Code: "HEM-PANTS", Name: "Ourlet de pantalon", Category: "hem", BasePriceCents: 1800, EstimatedMinutes: 20, Active: true},
		{Code: "HEM-PANTS-CUFF", Name: "Ourlet avec revers", Category: "hem", BasePriceCents: 2500, EstimatedMinutes: 30, Active: true},
		{Code: "HEM-DRESS", Name: "Ourlet de robe", Category: "hem", BasePriceCents: 3500, EstimatedMinutes: 45, Active: true},
		{Code: "TAPER-PANTS", Name: "Ajuster les jambes", Category: "fit", BasePriceCents: 3000, EstimatedMinutes: 40, Active: true},
		{Code: "TAKE-IN-WAIST", Name: "Reprendre la taille", Category: "fit", BasePriceCents: 2800, EstimatedMinutes: 35, Active: true},
		{Code: "SLEEVES-SHORTEN", Name: "Raccourcir les manches", Category: "fit", BasePriceCents: 3200, EstimatedMinutes: 45, Active: true},
		{Code: "ZIPPER-PANTS", Name: "Fermeture éclair de pantalon", Category: "repair", BasePriceCents: 2200, EstimatedMinutes: 25, Active: true},
		{Code: "ZIPPER-JACKET", Name: "Fermeture éclair de manteau", Category: "repair", BasePriceCents: 4500, EstimatedMinutes: 60, Active: true},
		{Code: "PATCH", Name: "Réparation / pièce", Category: "repair", BasePriceCents: 1500, EstimatedMinutes: 15, Active: true},
		{Code: "BUTTON", Name: "Pose de bouton", Category: "repair", BasePriceCents: 300, EstimatedMinutes: 5, Active: true},
		{Code: "CUSTOM-CONSULT", Name: "Consultation sur mesure", Category: "custom", BasePriceCents: 0, EstimatedMinutes: 30, Active: true},
	}
}

// SeedCatalog inserts the default price list. Existing codes are left alone
// so staff edits to prices survive restarts.
func SeedCatalog(db *gorm.DB) error {
	services := DefaultCatalog()
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "code"}},
		DoNothing: true,
	}).Create(&services)
	if result.Error != nil {
		return fmt.Errorf("failed to seed service catalog: %w", result.Error)
	}

	logger.L().Info("service catalog seeded", zap.Int64("inserted", result.RowsAffected))
	return nil
}
