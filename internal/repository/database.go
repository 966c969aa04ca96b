package repository

import (
	"context"
	"fmt"

	"github.com/muaishaq001/nacos-hub/config"
	"github.com/muaishaq001/nacos-hub/internal/domain"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// any fixed number works as long as every instance uses the same one
const migrateLockID int64 = 20261016

func OpenDatabase(driver, dsn string) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	}

	switch driver {
	case config.DriverPostgres:
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), gcfg)
	case config.DriverSQLite:
		return gorm.Open(sqlite.Open(dsn), gcfg)
	}
	return nil, fmt.Errorf("no database for driver %q", driver)
}

// Migrate creates the schema and seeds the verification table. On postgres
// the work is serialised across instances with an advisory lock.
func Migrate(ctx context.Context, db *gorm.DB, driver string, log *zap.Logger) error {
	if driver == config.DriverPostgres {
		if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
			return fmt.Errorf("migration lock: %w", err)
		}
		defer func() {
			_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
		}()
	}

	if err := db.WithContext(ctx).AutoMigrate(&domain.VerificationRecord{}); err != nil {
		return fmt.Errorf("migration: %w", err)
	}

	created, err := NewVerificationRepository(db, log).Seed(ctx, domain.SeedVerificationRecords())
	if err != nil {
		return err
	}
	log.Info("verification records seeded", zap.Int("created", created))
	return nil
}

// NewVerificationStore picks the store for the configured driver.
func NewVerificationStore(ctx context.Context, cfg config.Config, log *zap.Logger) (VerificationStore, error) {
	if cfg.DatabaseDriver == config.DriverMemory {
		return NewStaticVerificationStore(domain.SeedVerificationRecords()), nil
	}

	db, err := OpenDatabase(cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("database connection: %w", err)
	}
	log.Info("database connected", zap.String("driver", cfg.DatabaseDriver))

	if err := Migrate(ctx, db, cfg.DatabaseDriver, log); err != nil {
		return nil, err
	}
	return NewVerificationRepository(db, log), nil
}
