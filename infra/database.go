package infra

import (
	"fmt"
	"time"

	"github.com/amirasaad/moneyrates/infra/repository/symbol"
	"github.com/amirasaad/moneyrates/pkg/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens the SQL store named by cfg.Driver and migrates the
// symbol table.
func NewDBConnection(
	cfg *config.Store,
	appEnv string,
) (*gorm.DB, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("STORE_DSN is not set for driver %q", cfg.Driver)
	}

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	case "sqlite":
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", cfg.Driver)
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite" {
		// an in-memory database exists per connection
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(1 * time.Hour)
	}

	if err := symbol.Migrate(connection); err != nil {
		return nil, fmt.Errorf("failed to migrate symbol table: %w", err)
	}
	return connection, nil
}
