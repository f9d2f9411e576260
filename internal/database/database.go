package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/abdelelgendy/mealmind/backend/config"
	"github.com/abdelelgendy/mealmind/backend/internal/models"
)

// DB bundles the GORM handle with the raw connection the change-feed
// notifier uses.
type DB struct {
	Gorm *gorm.DB
	SQL  *sql.DB
}

// New connects to Postgres, configures the pool and runs migrations.
func New(cfg *config.Config, logger *zap.Logger) (*DB, error) {
	dsn := cfg.DSN()
	logger.Info("connecting to database",
		zap.String("host", cfg.DBHost),
		zap.String("port", cfg.DBPort),
		zap.String("user", cfg.DBUser))

	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("error initializing gorm: %w", err)
	}

	if err := Migrate(gormDB); err != nil {
		return nil, err
	}

	logger.Info("database ready")
	return &DB{Gorm: gormDB, SQL: sqlDB}, nil
}

// Migrate installs extensions and brings the schema up to date.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() == "postgres" {
		if err := db.Exec("CREATE EXTENSION IF NOT EXISTS vector;").Error; err != nil {
			return fmt.Errorf("failed to install pgvector extension: %w", err)
		}
	}
	return db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Recipe{},
		&models.RecipeFavorite{},
		&models.PantryItem{},
		&models.MealPlanEntry{},
		&models.MealTrackingEntry{},
	)
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.SQL.PingContext(ctx)
}
