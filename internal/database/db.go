package database

import (
	"fmt"
	"log/slog" // use slog for structured logging

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"civiscore/internal/config"
	"civiscore/internal/httpapi/models"
)

// Connect opens the Postgres connection pool and applies schema migrations.
func Connect(cfg *config.Config, logger *slog.Logger) (*gorm.DB, error) {
	logMode := gormlogger.Warn
	if cfg.IsDevelopment() {
		logMode = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logMode),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		// close the db handle if ping fails to avoid resource leak
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Connected to the database successfully")
	return db, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	// Order matters: referenced tables first so foreign keys resolve.
	err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Country{},
		&models.Service{},
		&models.Evaluation{},
		&models.Criteria{},
		&models.CriteriaScore{},
		&models.EvaluationReport{},
		&models.EvaluationVote{},
	)
	if err != nil {
		return err
	}

	logger.Info("Database migrations applied successfully")
	return nil
}
