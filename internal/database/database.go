package database

import (
	"fmt"
	"time"

	"smartbiz/internal/config"
	"smartbiz/internal/models"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Open connects to postgres, runs migrations and returns the handle. The
// caller owns the *gorm.DB and injects it into the stores.
func Open(cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		// The scheduler's due scan fires every poll tick; logging every
		// occurrence would drown everything else.
		Logger: newFilteredLogger(log, "send_time <="),
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		PrepareStmt: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	maxRetries := 5
	retryDelay := 5 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", i+1).Msg("database connection failed")
		if i < maxRetries-1 {
			time.Sleep(retryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("database: connect after %d attempts: %w", maxRetries, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("database: get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&models.Recipient{},
		&models.Reminder{},
		&models.RegistrationEvent{},
		&models.Invoice{},
		&models.Document{},
	); err != nil {
		return nil, fmt.Errorf("database: migrate: %w", err)
	}

	log.Info().Msg("database connection established and migrations completed")
	return db, nil
}
