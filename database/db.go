package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"gasikara/internal/api/auth"
	"gasikara/internal/api/models"
	"gasikara/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDB opens the Postgres connection, applies the pool limits, runs the
// schema migration and the startup seeds. The returned *sql.DB is the same
// pool gorm uses; the games repository issues raw statements through it.
func ConnectDB(cfg *config.Config, logger *slog.Logger) (*gorm.DB, *sql.DB, error) {
	gormLog := gormlogger.Default.LogMode(gormlogger.Warn)
	if cfg.IsDevelopment() {
		gormLog = gormlogger.Default.LogMode(gormlogger.Info)
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get sql.DB instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxIdleTime(cfg.DBConnMaxIdleTime)

	// Verify the connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, logger); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := seed(db, cfg, logger); err != nil {
		sqlDB.Close()
		return nil, nil, fmt.Errorf("failed to seed database: %w", err)
	}

	logger.Info("connected to the database",
		"host", cfg.DBHost,
		"database", cfg.DBName,
		"max_open_conns", cfg.DBMaxOpenConns,
	)
	return db, sqlDB, nil
}

func runMigrations(db *gorm.DB, logger *slog.Logger) error {
	if err := db.AutoMigrate(
		&models.Game{},
		&models.Category{},
		&models.Admin{},
		&models.RefreshToken{},
		&models.Statistic{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}
	logger.Info("database migrations applied")
	return nil
}

func seed(db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	if err := seedCategories(db, logger); err != nil {
		return err
	}
	return seedAdmin(db, cfg, logger)
}

var defaultCategories = []models.Category{
	{Name: "Action", Slug: "action", Color: strPtr("#ff6b6b"), Icon: strPtr("sword")},
	{Name: "Aventure", Slug: "aventure", Color: strPtr("#00f0ff"), Icon: strPtr("map")},
	{Name: "Course", Slug: "course", Color: strPtr("#feca57"), Icon: strPtr("flag")},
	{Name: "Puzzle", Slug: "puzzle", Color: strPtr("#a29bfe"), Icon: strPtr("grid")},
	{Name: "Sport", Slug: "sport", Color: strPtr("#55efc4"), Icon: strPtr("ball")},
	{Name: "Stratégie", Slug: "strategie", Color: strPtr("#fd79a8"), Icon: strPtr("chess")},
}

func seedCategories(db *gorm.DB, logger *slog.Logger) error {
	var n int64
	if err := db.Model(&models.Category{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if err := db.Create(&defaultCategories).Error; err != nil {
		return err
	}
	logger.Info("seeded default categories", "count", len(defaultCategories))
	return nil
}

// seedAdmin creates the bootstrap account when the admins table is empty.
// Without ADMIN_PASSWORD set, no account is created and login stays
// impossible until one is provisioned by hand.
func seedAdmin(db *gorm.DB, cfg *config.Config, logger *slog.Logger) error {
	var n int64
	if err := db.Model(&models.Admin{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	if cfg.AdminPassword == "" {
		logger.Warn("admins table is empty and ADMIN_PASSWORD is not set, skipping bootstrap admin")
		return nil
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := models.Admin{
		Username: cfg.AdminUsername,
		Email:    cfg.AdminEmail,
		Password: hash,
		Role:     "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	logger.Info("seeded bootstrap admin", "username", admin.Username)
	return nil
}

func strPtr(s string) *string { return &s }
