package db

import (
	"fmt"
	"time"

	"github.com/diewo77/computer-store/internal/config"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the single-file store. The pool holds one connection and,
// for files, no idle one: each operation opens, runs and releases its
// connection so a file swapped in by a restore is seen by the next call.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	level := logger.Silent
	if cfg.Debug {
		level = logger.Info
	}
	gdb, err := gorm.Open(sqlite.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(logrus.StandardLogger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Path, err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if cfg.InMemory() {
		// an in-memory database lives only as long as a connection does
		sqlDB.SetMaxIdleConns(1)
	} else {
		sqlDB.SetMaxIdleConns(0)
	}
	return gdb, nil
}

// Close releases the underlying pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
