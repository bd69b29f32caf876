package config

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB متغیر برای دسترسی به دیتابیس
var DB *gorm.DB

// OpenDB opens the configured dialect. TranslateError lets repositories see
// gorm.ErrDuplicatedKey instead of driver specific errors.
func OpenDB(driver, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
}

// InitDB اتصال به دیتابیس را راه‌اندازی می‌کند
func InitDB(s *Settings) {
	var err error
	DB, err = OpenDB(s.DBDriver, s.DBDSN, s.AppEnv != "production")
	if err != nil {
		Logger.Fatal("Error connecting to the database", zap.String("driver", s.DBDriver), zap.Error(err))
	}
	Logger.Info("Database connected", zap.String("driver", s.DBDriver))
}
