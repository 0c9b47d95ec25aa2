package db

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// OpenGorm opens the entity store with the configured backend. SQLite is the
// default (single-user deployments); MySQL serves shared setups.
func OpenGorm(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case DriverSQLite, "":
		return OpenGormWithDialector(sqlite.Open(dsn))
	case DriverMySQL:
		return OpenGormWithDialector(mysql.Open(dsn))
	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}
}

func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// surfaces unique-index violations as gorm.ErrDuplicatedKey on both
		// drivers; the remediation pending guard relies on it
		TranslateError: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}
