package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/pathways/pkg/db/migrations"
	"github.com/mwantia/pathways/pkg/db/models"
	"github.com/mwantia/pathways/pkg/log"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteStore implements InquiryStore on a single SQLite file through gorm.
type SQLiteStore struct {
	db   *gorm.DB
	path string
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	Path string

	// Optional
	Logger        log.LoggerService
	SlowThreshold time.Duration
}

// gormWriter forwards gorm's own log lines to a LoggerService.
type gormWriter struct {
	log log.LoggerService
}

func (w gormWriter) Printf(format string, args ...any) {
	w.log.Warn(format, args...)
}

// newGormLogger reports slow queries and errors through l. A nil l
// silences gorm.
func newGormLogger(l log.LoggerService, slow time.Duration) logger.Interface {
	if l == nil {
		return logger.Discard
	}
	if slow <= 0 {
		slow = 200 * time.Millisecond
	}
	return logger.New(gormWriter{log: l}, logger.Config{
		SlowThreshold:             slow,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

// NewSQLiteStore opens the database file at cfg.Path, creating it if needed.
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	db, err := gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{
		Logger: newGormLogger(cfg.Logger, cfg.SlowThreshold),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	return &SQLiteStore{
		db:   db,
		path: cfg.Path,
	}, nil
}

// Connect pins the pool to a single connection and verifies it.
func (s *SQLiteStore) Connect(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	// One writer; an in-memory database also lives only as long as its connection.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.PingContext(ctx); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Exec("PRAGMA busy_timeout = 5000").Error
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

// Migrator exposes the schema history of this database.
func (s *SQLiteStore) Migrator() *migrations.Migrator {
	return migrations.NewMigrator(s.db)
}

// Migrate applies every pending schema migration.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	return s.Migrator().Migrate(ctx)
}

// Health pings the database.
func (s *SQLiteStore) Health(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite '%s': %w", s.path, err)
	}
	return nil
}

// CreateInquiry stores a new inquiry and fills in its ID.
func (s *SQLiteStore) CreateInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	if err := s.db.WithContext(ctx).Create(inquiry).Error; err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	return nil
}

// GetInquiry returns the inquiry with the given reference or ErrNotFound.
func (s *SQLiteStore) GetInquiry(ctx context.Context, reference string) (*models.Inquiry, error) {
	var inquiry models.Inquiry
	err := s.db.WithContext(ctx).Where("reference = ?", reference).Take(&inquiry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("inquiry '%s': %w", reference, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	return &inquiry, nil
}

// ListInquiries returns the newest inquiries first. A limit of zero means
// no limit.
func (s *SQLiteStore) ListInquiries(ctx context.Context, limit, offset int) ([]models.Inquiry, error) {
	var inquiries []models.Inquiry
	err := s.db.WithContext(ctx).
		Scopes(page(limit, offset)).
		Order("created_at DESC").Order("id DESC").
		Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	return inquiries, nil
}

// CountInquiries returns the number of inquiries that are not deleted.
func (s *SQLiteStore) CountInquiries(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Inquiry{}).Count(&count).Error
	return count, err
}

// DeleteInquiry soft-deletes; the row stays for auditing but is no longer
// listed or counted.
func (s *SQLiteStore) DeleteInquiry(ctx context.Context, reference string) error {
	result := s.db.WithContext(ctx).Where("reference = ?", reference).Delete(&models.Inquiry{})
	if result.Error != nil {
		return fmt.Errorf("delete inquiry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("inquiry '%s': %w", reference, ErrNotFound)
	}
	return nil
}

func page(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit > 0 {
			db = db.Limit(limit)
		}
		if offset > 0 {
			db = db.Offset(offset)
		}
		return db
	}
}
