// Package testutil provides a migrated sqlite database and seed helpers for tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"chirp/internal/adapters/database"
	"chirp/internal/core/tweet"
	"chirp/internal/core/user"

	"github.com/gofrs/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewTestDB opens a fresh sqlite file under t.TempDir and runs the migrations.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string, role user.Role) *user.User {
	t.Helper()

	u := &user.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		Role:     role,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(u).Error)
	return u
}

// CreateTweet inserts an active tweet with an explicit creation time.
func CreateTweet(t *testing.T, db *gorm.DB, owner *user.User, content string, createdAt time.Time) *tweet.Tweet {
	t.Helper()

	tw := &tweet.Tweet{
		ID:        uuid.Must(uuid.NewV4()),
		Content:   content,
		UserID:    owner.ID,
		Active:    true,
		CreatedAt: createdAt,
	}
	require.NoError(t, db.Create(tw).Error)
	return tw
}
