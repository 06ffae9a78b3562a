package gorm

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SchemaMigration records an applied migration
type SchemaMigration struct {
	ID        uint      `gorm:"primaryKey"`
	Version   string    `gorm:"uniqueIndex;size:32;not null"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (SchemaMigration) TableName() string { return "schema_migrations" }

// MigrationEntry is one ordered schema change
type MigrationEntry struct {
	Version string
	Name    string
	Up      func(tx *gorm.DB) error
}

// Migrator applies pending migrations in order, each in its own transaction
type Migrator struct {
	db         *gorm.DB
	migrations []MigrationEntry
	logger     *zap.Logger
}

// NewMigrator creates a migrator for the catalog schema
func NewMigrator(db *gorm.DB, logger *zap.Logger) *Migrator {
	return &Migrator{
		db:         db,
		migrations: catalogMigrations(),
		logger:     logger.Named("migrator"),
	}
}

// Migrate runs all pending migrations
func (m *Migrator) Migrate(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&SchemaMigration{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	pending, err := m.Pending(ctx)
	if err != nil {
		return err
	}

	for _, migration := range pending {
		m.logger.Info("running migration", zap.String("version", migration.Version), zap.String("name", migration.Name))

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := migration.Up(tx); err != nil {
				return err
			}
			return tx.Create(&SchemaMigration{
				Version:   migration.Version,
				Name:      migration.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return fmt.Errorf("failed to run migration %s: %w", migration.Version, err)
		}
	}
	return nil
}

// Pending returns the migrations not applied yet
func (m *Migrator) Pending(ctx context.Context) ([]MigrationEntry, error) {
	db := m.db.WithContext(ctx)
	if !db.Migrator().HasTable(&SchemaMigration{}) {
		return m.migrations, nil
	}

	var applied []SchemaMigration
	if err := db.Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	done := make(map[string]bool, len(applied))
	for _, a := range applied {
		done[a.Version] = true
	}

	var pending []MigrationEntry
	for _, migration := range m.migrations {
		if !done[migration.Version] {
			pending = append(pending, migration)
		}
	}
	return pending, nil
}

// Applied returns the applied migrations, newest first
func (m *Migrator) Applied(ctx context.Context) ([]SchemaMigration, error) {
	db := m.db.WithContext(ctx)
	if !db.Migrator().HasTable(&SchemaMigration{}) {
		return nil, nil
	}
	var applied []SchemaMigration
	if err := db.Order("version DESC").Find(&applied).Error; err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}
	return applied, nil
}

func catalogMigrations() []MigrationEntry {
	return []MigrationEntry{
		{
			Version: "20250101_001",
			Name:    "Create catalog schema",
			Up: func(tx *gorm.DB) error {
				return tx.AutoMigrate(AllModels()...)
			},
		},
		{
			Version: "20250101_002",
			Name:    "Index relation lookups",
			Up: func(tx *gorm.DB) error {
				for _, stmt := range []string{
					"CREATE INDEX IF NOT EXISTS idx_video_categories_category ON video_categories(category_id)",
					"CREATE INDEX IF NOT EXISTS idx_video_genres_genre ON video_genres(genre_id)",
					"CREATE INDEX IF NOT EXISTS idx_video_cast_members_cast_member ON video_cast_members(cast_member_id)",
					"CREATE INDEX IF NOT EXISTS idx_video_medias_status ON video_medias(status)",
				} {
					if err := tx.Exec(stmt).Error; err != nil {
						return fmt.Errorf("failed to create index: %w", err)
					}
				}
				return nil
			},
		},
	}
}
