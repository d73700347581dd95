package database

import (
	"fmt"
	"log"
	"time"

	"file-vault/conf"
	"file-vault/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB global gorm handle used by the DAO layer
var DB *gorm.DB

// InitMySQL connect MySQL and migrate the schema
func InitMySQL() error {
	cfg := conf.Cfg.Database

	db, err := gorm.Open(mysql.Open(cfg.Dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect MySQL: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(
		&model.User{},
		&model.File{},
		&model.FileChunk{},
		&model.FileActivityLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	DB = db
	log.Println("MySQL database connected successfully")
	return nil
}

// CloseMySQL close the underlying connection pool
func CloseMySQL() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
