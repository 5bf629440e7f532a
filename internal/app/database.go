package app

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dromorongit/Richtymluxe/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Type {
	case "sqlite", "sqlite3":
		dbfile := filepath.Join(workdir, fmt.Sprintf("%s.db", cfg.Name))
		db, err = gorm.Open(sqlite.Open(dbfile+"?_foreign_keys=on"), gormConfig)
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		db, err = gorm.Open(postgres.Open(dsn), gormConfig)
	}
	if err != nil {
		zap.S().Panicf("database connection failed: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Panicf("failed to obtain sql.DB: %v", err)
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
