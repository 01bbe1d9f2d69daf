package database

import (
	"strings"

	"lokalhunt/config"
	"lokalhunt/internal/models"

	"gorm.io/driver/mysql"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "modernc.org/sqlite"
)

// NewDB opens the datastore. MySQL DSNs get the configured pool settings;
// anything else is treated as a SQLite path (used by tests and local runs)
// and pinned to a single connection so an in-memory database stays coherent.
func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	if isSQLite(cfg.DSN) {
		db, err := gorm.Open(gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        cfg.DSN,
		}), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Error),
		})
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

func isSQLite(dsn string) bool {
	return dsn == ":memory:" ||
		strings.HasPrefix(dsn, "file:") ||
		strings.HasSuffix(dsn, ".db") ||
		strings.HasSuffix(dsn, ".sqlite")
}

// AutoMigrate runs gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.JobAd{},
		&models.Application{},
		&models.Notification{},
		&models.NotificationTemplate{},
		&models.UserNotificationPreference{},
		&models.DailyNotificationTracker{},
	)
}
