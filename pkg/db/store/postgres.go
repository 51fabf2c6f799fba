package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mwantia/pathways/pkg/db/migrations"
	"github.com/mwantia/pathways/pkg/db/models"
	"github.com/mwantia/pathways/pkg/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// PostgresStore implements InquiryStore on PostgreSQL through database/sql.
// The schema is versioned by the same gorm migrator the sqlite store uses,
// running on the store's own connection pool.
type PostgresStore struct {
	db    *sql.DB
	gorm  *gorm.DB
	clock func() time.Time
}

// PostgresConfig holds PostgreSQL-specific configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int

	// Optional
	Logger        log.LoggerService
	SlowThreshold time.Duration
}

const inquiryColumns = `id, reference, session_id, first_name, last_name, email, phone,
	student_grade, target_schools, message, agree_to_contact, created_at, updated_at`

// NewPostgresStore opens a pool for the given DSN. No connection is made
// until Connect.
func NewPostgresStore(cfg PostgresConfig) (*PostgresStore, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("postgres dsn is required")
	}

	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger:                 newGormLogger(cfg.Logger, cfg.SlowThreshold),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open postgres database: %w", err)
	}

	return &PostgresStore{
		db:    db,
		gorm:  gdb,
		clock: time.Now,
	}, nil
}

// Connect verifies the DSN by opening one connection.
func (s *PostgresStore) Connect(ctx context.Context) error {
	s.db.SetConnMaxLifetime(time.Hour)
	return s.db.PingContext(ctx)
}

// Close closes the connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// Migrator exposes the schema history of this database.
func (s *PostgresStore) Migrator() *migrations.Migrator {
	return migrations.NewMigrator(s.gorm)
}

// Migrate applies every pending schema migration.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return s.Migrator().Migrate(ctx)
}

// Health pings the database.
func (s *PostgresStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// CreateInquiry stores a new inquiry and fills in its ID and timestamps.
func (s *PostgresStore) CreateInquiry(ctx context.Context, inquiry *models.Inquiry) error {
	now := s.clock().UTC()
	if inquiry.CreatedAt.IsZero() {
		inquiry.CreatedAt = now
	}
	inquiry.UpdatedAt = now

	query := `
		INSERT INTO inquiries (reference, session_id, first_name, last_name, email, phone,
			student_grade, target_schools, message, agree_to_contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`
	var id int64
	err := s.db.QueryRowContext(ctx, query,
		inquiry.Reference, inquiry.SessionID, inquiry.FirstName, inquiry.LastName,
		inquiry.Email, inquiry.Phone, inquiry.StudentGrade, inquiry.TargetSchools,
		inquiry.Message, inquiry.AgreeToContact, inquiry.CreatedAt, inquiry.UpdatedAt,
	).Scan(&id)
	if err != nil {
		return fmt.Errorf("create inquiry: %w", err)
	}
	inquiry.ID = uint(id)
	return nil
}

// GetInquiry returns the inquiry with the given reference or ErrNotFound.
func (s *PostgresStore) GetInquiry(ctx context.Context, reference string) (*models.Inquiry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+inquiryColumns+` FROM inquiries WHERE reference = $1 AND deleted_at IS NULL`, reference)

	inquiry, err := scanInquiry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("inquiry '%s': %w", reference, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get inquiry: %w", err)
	}
	return inquiry, nil
}

// ListInquiries returns the newest inquiries first. A limit of zero means
// no limit.
func (s *PostgresStore) ListInquiries(ctx context.Context, limit, offset int) ([]models.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries WHERE deleted_at IS NULL
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	if offset > 0 {
		args = append(args, offset)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inquiries: %w", err)
	}
	defer rows.Close()

	var inquiries []models.Inquiry
	for rows.Next() {
		inquiry, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("list inquiries: %w", err)
		}
		inquiries = append(inquiries, *inquiry)
	}
	return inquiries, rows.Err()
}

// CountInquiries returns the number of inquiries that are not deleted.
func (s *PostgresStore) CountInquiries(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inquiries WHERE deleted_at IS NULL`).Scan(&count)
	return count, err
}

// DeleteInquiry soft-deletes by setting deleted_at.
func (s *PostgresStore) DeleteInquiry(ctx context.Context, reference string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE inquiries SET deleted_at = $1 WHERE reference = $2 AND deleted_at IS NULL`,
		s.clock().UTC(), reference)
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete inquiry: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("inquiry '%s': %w", reference, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanInquiry(row rowScanner) (*models.Inquiry, error) {
	var (
		inquiry models.Inquiry
		id      int64
	)
	err := row.Scan(&id, &inquiry.Reference, &inquiry.SessionID, &inquiry.FirstName,
		&inquiry.LastName, &inquiry.Email, &inquiry.Phone, &inquiry.StudentGrade,
		&inquiry.TargetSchools, &inquiry.Message, &inquiry.AgreeToContact,
		&inquiry.CreatedAt, &inquiry.UpdatedAt)
	if err != nil {
		return nil, err
	}
	inquiry.ID = uint(id)
	return &inquiry, nil
}
