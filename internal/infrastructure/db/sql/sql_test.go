package sqldb

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every pooled connection to :memory: would get its own empty database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func TestCredentialRepository_CreateFind(t *testing.T) {
	repo := NewCredentialRepository(setupTestDB(t))
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &domain.Credential{Username: "alice", DisplayName: "Alice", PinHash: "h", CreatedAt: created}))

	got, err := repo.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.DisplayName)
	assert.Equal(t, "h", got.PinHash)
	assert.True(t, created.Equal(got.CreatedAt))

	err = repo.Create(ctx, &domain.Credential{Username: "alice", PinHash: "other"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	again, err := repo.Find(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "h", again.PinHash, "conflicting create must not overwrite")
}

func TestCredentialRepository_FindMissing(t *testing.T) {
	_, err := NewCredentialRepository(setupTestDB(t)).Find(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentRepository_LoadSaveReplace(t *testing.T) {
	repo := NewDocumentRepository(setupTestDB(t))
	ctx := context.Background()

	doc, err := repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, doc)
	assert.Empty(t, doc)

	first := domain.Document{
		"2024-03-15": {Custodian: domain.GuardianA},
		"2024-03-16": {Custodian: domain.Unassigned, Notes: "call"},
	}
	require.NoError(t, repo.Save(ctx, "alice", first))

	got, err := repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, first, got)

	second := domain.Document{"2024-04-01": {Custodian: domain.GuardianB}}
	require.NoError(t, repo.Save(ctx, "alice", second))

	got, err = repo.Load(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, second, got)
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(context.Background(), Config{Driver: "oracle"})
	assert.Error(t, err)
}

func TestConnect_SQLite(t *testing.T) {
	db, err := Connect(context.Background(), Config{Driver: "sqlite", DSN: ":memory:", MaxConns: 1, LogLevel: logger.Silent})
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("documents"))
	assert.True(t, db.Migrator().HasTable("credentials"))
}
