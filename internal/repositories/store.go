package repositories

import (
	"fmt"

	"coursehub/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store drivers accepted by OpenUserRepository.
const (
	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// StoreConfig selects and locates the mock auth store.
type StoreConfig struct {
	Driver    string
	UsersFile string
	DSN       string
}

// OpenUserRepository opens the configured store. The returned close function
// is never nil.
func OpenUserRepository(cfg StoreConfig) (UserRepository, func() error, error) {
	noop := func() error { return nil }
	switch cfg.Driver {
	case DriverJSON, "":
		return NewUserJSONRepository(cfg.UsersFile), noop, nil
	case DriverMemory:
		return NewMockUserRepository(), noop, nil
	case DriverSQLite, DriverPostgres:
		var dialector gorm.Dialector
		if cfg.Driver == DriverSQLite {
			dialector = sqlite.Open(cfg.DSN)
		} else {
			dialector = postgres.Open(cfg.DSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
		}
		if err := db.AutoMigrate(&models.User{}); err != nil {
			return nil, noop, fmt.Errorf("failed to auto-migrate database: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to get database handle: %w", err)
		}
		return NewGORMUserRepository(db), sqlDB.Close, nil
	}
	return nil, noop, fmt.Errorf("unknown store driver %q", cfg.Driver)
}
