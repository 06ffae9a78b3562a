package gorm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB creates a new in-memory SQLite database for testing. A single
// connection keeps every query on the same in-memory database.
func NewTestDB(t *testing.T) *gorm.DB {
	logger := zaptest.NewLogger(t)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: newGormLogger(logger, false),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, NewMigrator(db, logger).Migrate(context.Background()))

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}
