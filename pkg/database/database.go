package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/bookmarks/config"
	"github.com/d60-Lab/bookmarks/internal/model"
)

// InitDB opens the postgres connection. SQL logging is verbose in debug
// mode and silent in release mode.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	logMode := gormlogger.Default.LogMode(gormlogger.Info)
	if cfg.Server.Mode == "release" {
		logMode = gormlogger.Default.LogMode(gormlogger.Silent)
	}
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{Logger: logMode})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

// AutoMigrate creates / updates all tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Follow{},
		&model.Action{},
		&model.Image{},
		&model.Like{},
	)
}
