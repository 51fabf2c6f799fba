package inquiry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/pathways/pkg/db/models"
	"github.com/mwantia/pathways/pkg/db/store"
	"github.com/mwantia/pathways/pkg/log"
)

// Submission is a validated form on its way to the business.
type Submission struct {
	Reference   uuid.UUID `json:"reference"`
	SessionID   string    `json:"session_id,omitempty"`
	Form        Form      `json:"form"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// Submitter hands a submission to whatever receives consultation requests.
type Submitter interface {
	Submit(ctx context.Context, sub Submission) error
}

// StoreSubmitter persists submissions in an InquiryStore.
type StoreSubmitter struct {
	store store.InquiryStore
}

func NewStoreSubmitter(s store.InquiryStore) *StoreSubmitter {
	return &StoreSubmitter{store: s}
}

func (s *StoreSubmitter) Submit(ctx context.Context, sub Submission) error {
	return s.store.CreateInquiry(ctx, ToModel(sub))
}

// LogSubmitter only writes submissions to the log.
type LogSubmitter struct {
	log log.LoggerService
}

func NewLogSubmitter(logger log.LoggerService) *LogSubmitter {
	return &LogSubmitter{log: logger}
}

func (s *LogSubmitter) Submit(_ context.Context, sub Submission) error {
	s.log.Info("Consultation request %s from %s %s <%s> (%s)",
		sub.Reference, sub.Form.FirstName, sub.Form.LastName, sub.Form.Email, sub.Form.StudentGrade)
	return nil
}

// ToModel converts a submission into its stored row.
func ToModel(sub Submission) *models.Inquiry {
	return &models.Inquiry{
		Reference:      sub.Reference.String(),
		SessionID:      sub.SessionID,
		FirstName:      sub.Form.FirstName,
		LastName:       sub.Form.LastName,
		Email:          sub.Form.Email,
		Phone:          sub.Form.Phone,
		StudentGrade:   sub.Form.StudentGrade,
		TargetSchools:  sub.Form.TargetSchools,
		Message:        sub.Form.Message,
		AgreeToContact: sub.Form.AgreeToContact,
		CreatedAt:      sub.SubmittedAt,
	}
}

// FromModel restores a submission from its stored row.
func FromModel(m models.Inquiry) (Submission, error) {
	ref, err := uuid.Parse(m.Reference)
	if err != nil {
		return Submission{}, err
	}
	return Submission{
		Reference: ref,
		SessionID: m.SessionID,
		Form: Form{
			FirstName:      m.FirstName,
			LastName:       m.LastName,
			Email:          m.Email,
			Phone:          m.Phone,
			StudentGrade:   m.StudentGrade,
			TargetSchools:  m.TargetSchools,
			Message:        m.Message,
			AgreeToContact: m.AgreeToContact,
		},
		SubmittedAt: m.CreatedAt,
	}, nil
}
