package database

import (
	"fmt"
	"log/slog"

	"github.com/circle-umd/circleup-v2/internal/auth"
	"github.com/circle-umd/circleup-v2/internal/config"
	"github.com/circle-umd/circleup-v2/internal/event"
	"github.com/circle-umd/circleup-v2/internal/friendship"
	"github.com/circle-umd/circleup-v2/internal/profile"
	"github.com/circle-umd/circleup-v2/internal/rsvp"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresConnection opens a GORM handle against the hosted Postgres
// instance and brings the schema up to date.
func NewPostgresConnection(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.URI
	if dsn == "" {
		dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	if err := addIndexes(db); err != nil {
		return nil, fmt.Errorf("failed to add indexes: %w", err)
	}

	slog.Info("Database connection established")
	return db, nil
}

// Migrate runs schema migrations for all models.
func Migrate(db *gorm.DB) error {
	models := []interface{}{
		&auth.User{},
		&profile.Profile{},
		&event.Event{},
		&rsvp.EventRSVP{},
		&friendship.Friendship{},
		&friendship.Invite{},
	}

	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model: %w", err)
		}
	}
	return nil
}

func addIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		columns string
	}{
		{"users", "email"},
		{"profiles", "username"},
		{"events", "start_time"},
		{"event_rsvps", "event_id"},
		{"friendships", "friend_id"},
	}

	for _, idx := range indexes {
		name := fmt.Sprintf("idx_%s_%s", idx.table, idx.columns)
		stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", name, idx.table, idx.columns)
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
