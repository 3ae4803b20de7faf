package database

import (
	"ai4local/internal/models"
	"ai4local/pkg/logger"

	"gorm.io/gorm"
)

// Migrate 执行数据库迁移
func Migrate() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting database migration...")

	if err := AutoMigrate(DB); err != nil {
		appLogger.Errorf("Database migration failed: %v", err)
		return err
	}

	appLogger.Info("Database migration completed successfully")
	return nil
}

// AutoMigrate 按依赖顺序建表，测试中直接对内存库调用
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Customer{},
		&models.Campaign{},
	)
}
