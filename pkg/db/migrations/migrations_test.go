package migrations

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/pathways/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openMemory(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	return db
}

func TestMigrateAppliesAllVersions(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	m := NewMigrator(db)

	require.NoError(t, m.Migrate(ctx))
	// Second run is a no-op.
	require.NoError(t, m.Migrate(ctx))

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	for _, s := range statuses {
		assert.True(t, s.Applied(), "version %d", s.Version)
	}
	assert.True(t, db.Migrator().HasTable(&models.Inquiry{}))
	assert.True(t, db.Migrator().HasTable("schema_migrations"))
}

func TestMigrateTo(t *testing.T) {
	ctx := context.Background()
	m := NewMigrator(openMemory(t))

	require.NoError(t, m.MigrateTo(ctx, 1))

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	assert.True(t, statuses[0].Applied())
	assert.False(t, statuses[1].Applied())
	assert.Equal(t, 2, m.Latest())
}

func TestRollbackLastVersion(t *testing.T) {
	ctx := context.Background()
	db := openMemory(t)
	m := NewMigrator(db)

	_, err := m.Rollback(ctx)
	assert.ErrorIs(t, err, ErrNothingToRollback)

	require.NoError(t, m.Migrate(ctx))

	reverted, err := m.Rollback(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, reverted.Version)

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	assert.True(t, statuses[0].Applied())
	assert.False(t, statuses[1].Applied())

	_, err = m.Rollback(ctx)
	require.NoError(t, err)
	assert.False(t, db.Migrator().HasTable(&models.Inquiry{}))

	_, err = m.Rollback(ctx)
	assert.ErrorIs(t, err, ErrNothingToRollback)
}

func TestNewMigratorRejectsBadHistory(t *testing.T) {
	noop := func(*gorm.DB) error { return nil }

	cases := map[string][]Migration{
		"missing version": {{Description: "x", Up: noop, Down: noop}},
		"duplicate":       {{Version: 1, Up: noop, Down: noop}, {Version: 1, Up: noop, Down: noop}},
		"missing down":    {{Version: 1, Up: noop}},
	}
	for name, migrations := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := newMigrator(nil, migrations)
			assert.Error(t, err)
		})
	}

	m, err := newMigrator(nil, []Migration{{Version: 3, Up: noop, Down: noop}, {Version: 1, Up: noop, Down: noop}})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Latest())
	assert.Equal(t, 1, m.migrations[0].Version)
}
