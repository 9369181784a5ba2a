package config

import (
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB connects to DB_DSN with the driver named by DB_DRIVER. Unique index violations are
// translated to gorm.ErrDuplicatedKey.
func OpenDB(cfg *Config, entry *logrus.Entry) (*gorm.DB, error) {
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("missing required environment variable: DB_DSN")
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBDSN)
	case "mysql":
		dialector = mysql.Open(cfg.DBDSN)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}

	// In production, suppress SQL logs unless DEBUG_SQL=true.
	logLevel := logger.Info
	if cfg.Production() && !cfg.DebugSQL {
		logLevel = logger.Warn
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(
			log.New(entry.WithField("component", "gorm").WriterLevel(logrus.DebugLevel), "", 0),
			logger.Config{
				LogLevel:                  logLevel,
				SlowThreshold:             500 * time.Millisecond,
				IgnoreRecordNotFoundError: true,
			},
		),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", cfg.DBDriver, err)
	}

	entry.WithField("driver", cfg.DBDriver).Info("Database connected successfully")
	return db, nil
}
