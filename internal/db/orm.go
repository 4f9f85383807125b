package db

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	gormModels "campus-experiment/clubdesk/internal/models/gorm"
)

var PgDB *gorm.DB

// InitPostgresORM opens the GORM handle and migrates the local tables
// (drafts). Both handles share the same database; GORM serves the draft
// store, sqlx serves the prefs KV queries.
func InitPostgresORM(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := db.AutoMigrate(&gormModels.AttendanceDraft{}); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	PgDB = db
	log.Println("Connected to Postgres via GORM")
	return db, nil
}
