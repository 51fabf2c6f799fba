package store

import (
	"context"
	"errors"

	"github.com/mwantia/pathways/pkg/db/models"
)

var ErrNotFound = errors.New("record not found")

// InquiryStore defines the interface for consultation request persistence
type InquiryStore interface {
	// Lifecycle
	Connect(ctx context.Context) error
	Close() error
	Migrate(ctx context.Context) error
	Health(ctx context.Context) error

	// Inquiry operations
	CreateInquiry(ctx context.Context, inquiry *models.Inquiry) error
	GetInquiry(ctx context.Context, reference string) (*models.Inquiry, error)
	ListInquiries(ctx context.Context, limit, offset int) ([]models.Inquiry, error)
	CountInquiries(ctx context.Context) (int64, error)
	DeleteInquiry(ctx context.Context, reference string) error
}
