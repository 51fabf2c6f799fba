package migrations

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"gorm.io/gorm"
)

// ErrNothingToRollback is returned by Rollback on an empty history.
var ErrNothingToRollback = errors.New("no applied migrations")

// Migration is one versioned schema step.
type Migration struct {
	Version     int
	Description string
	Up          func(*gorm.DB) error
	Down        func(*gorm.DB) error
}

type migrationHistory struct {
	ID          uint      `gorm:"primaryKey"`
	Version     int       `gorm:"uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	AppliedAt   time.Time `gorm:"not null"`
}

func (migrationHistory) TableName() string {
	return "schema_migrations"
}

// MigrationStatus reports whether a known migration has been applied.
type MigrationStatus struct {
	Version     int        `json:"version"`
	Description string     `json:"description"`
	AppliedAt   *time.Time `json:"applied_at,omitempty"`
}

func (s MigrationStatus) Applied() bool {
	return s.AppliedAt != nil
}

// Migrator applies and reverts versioned migrations and records them in
// the schema_migrations table.
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
	now        func() time.Time
}

// NewMigrator returns a migrator over the inquiry schema.
func NewMigrator(db *gorm.DB) *Migrator {
	m, err := newMigrator(db, schema())
	if err != nil {
		panic(err)
	}
	return m
}

func newMigrator(db *gorm.DB, migrations []Migration) (*Migrator, error) {
	sorted := slices.Clone(migrations)
	slices.SortFunc(sorted, func(a, b Migration) int { return a.Version - b.Version })

	for i, mig := range sorted {
		if mig.Version <= 0 {
			return nil, fmt.Errorf("migration '%s' has no version", mig.Description)
		}
		if i > 0 && sorted[i-1].Version == mig.Version {
			return nil, fmt.Errorf("duplicate migration version %d", mig.Version)
		}
		if mig.Up == nil || mig.Down == nil {
			return nil, fmt.Errorf("migration %d needs both up and down steps", mig.Version)
		}
	}

	return &Migrator{
		db:         db,
		migrations: sorted,
		now:        func() time.Time { return time.Now().UTC() },
	}, nil
}

// Latest is the highest known version.
func (m *Migrator) Latest() int {
	if len(m.migrations) == 0 {
		return 0
	}
	return m.migrations[len(m.migrations)-1].Version
}

// Migrate applies every pending migration.
func (m *Migrator) Migrate(ctx context.Context) error {
	return m.MigrateTo(ctx, m.Latest())
}

// MigrateTo applies pending migrations up to and including target, in order.
// Each migration runs in its own transaction together with its history row.
func (m *Migrator) MigrateTo(ctx context.Context, target int) error {
	applied, err := m.applied(ctx)
	if err != nil {
		return err
	}

	for _, mig := range m.migrations {
		if mig.Version > target {
			break
		}
		if _, ok := applied[mig.Version]; ok {
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", mig.Version, mig.Description, err)
		}
	}
	return nil
}

// Rollback reverts the most recently applied migration and returns it.
func (m *Migrator) Rollback(ctx context.Context) (Migration, error) {
	if err := m.ensureHistory(ctx); err != nil {
		return Migration{}, err
	}

	var last migrationHistory
	err := m.db.WithContext(ctx).Order("version DESC").Take(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Migration{}, ErrNothingToRollback
	}
	if err != nil {
		return Migration{}, fmt.Errorf("failed to query migration history: %w", err)
	}

	idx := slices.IndexFunc(m.migrations, func(mig Migration) bool { return mig.Version == last.Version })
	if idx < 0 {
		return Migration{}, fmt.Errorf("applied migration %d is unknown to this binary", last.Version)
	}
	mig := m.migrations[idx]

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mig.Down(tx); err != nil {
			return err
		}
		return tx.Delete(&last).Error
	})
	if err != nil {
		return Migration{}, fmt.Errorf("rollback of migration %d failed: %w", mig.Version, err)
	}
	return mig, nil
}

// Status lists every known migration with the time it was applied.
func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.applied(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(m.migrations))
	for _, mig := range m.migrations {
		status := MigrationStatus{Version: mig.Version, Description: mig.Description}
		if at, ok := applied[mig.Version]; ok {
			status.AppliedAt = &at
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

func (m *Migrator) ensureHistory(ctx context.Context) error {
	if err := m.db.WithContext(ctx).AutoMigrate(&migrationHistory{}); err != nil {
		return fmt.Errorf("failed to create migration history table: %w", err)
	}
	return nil
}

func (m *Migrator) applied(ctx context.Context) (map[int]time.Time, error) {
	if err := m.ensureHistory(ctx); err != nil {
		return nil, err
	}

	var rows []migrationHistory
	if err := m.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query migration history: %w", err)
	}

	applied := make(map[int]time.Time, len(rows))
	for _, row := range rows {
		applied[row.Version] = row.AppliedAt
	}
	return applied, nil
}

func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := mig.Up(tx); err != nil {
			return err
		}
		return tx.Create(&migrationHistory{
			Version:     mig.Version,
			Description: mig.Description,
			AppliedAt:   m.now(),
		}).Error
	})
}
