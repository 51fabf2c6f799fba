package inquiry

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/pathways/pkg/log"
	"github.com/mwantia/pathways/pkg/metrics"
	"github.com/mwantia/pathways/pkg/validation"
)

// Service accepts consultation requests.
type Service struct {
	submitter  Submitter
	publishers []Submitter
	log        log.LoggerService
	metrics   *metrics.Metrics
	now       func() time.Time
}

type Option func(*Service)

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithPublishers adds submitters that are notified after the primary
// submitter has accepted a submission. Their failures are logged and
// counted but never fail the request.
func WithPublishers(publishers ...Submitter) Option {
	return func(s *Service) { s.publishers = append(s.publishers, publishers...) }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service that commits submissions through submitter.
func NewService(submitter Submitter, logger log.LoggerService, opts ...Option) *Service {
	s := &Service{
		submitter: submitter,
		log:       logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates form and hands it to the submitter. Invalid forms never
// reach the submitter and come back as validation.Errors.
func (s *Service) Submit(ctx context.Context, form Form, sessionID string) (Submission, error) {
	form = form.Normalize()
	if err := form.Validate(); err != nil {
		s.metrics.IncrementInquiries("rejected")
		if fields, ok := validation.Fields(err); ok {
			s.log.Debug("Rejected consultation request with %d invalid fields", len(fields))
		}
		return Submission{}, err
	}

	grade, _ := ParseGrade(form.StudentGrade)
	form.StudentGrade = string(grade)

	sub := Submission{
		Reference:   uuid.New(),
		SessionID:   sessionID,
		Form:        form,
		SubmittedAt: s.now().UTC(),
	}

	if err := s.submitter.Submit(ctx, sub); err != nil {
		s.metrics.IncrementInquiries("failed")
		s.log.Error("Failed to submit consultation request %s: %v", sub.Reference, err)
		return Submission{}, fmt.Errorf("failed to submit consultation request: %w", err)
	}

	s.metrics.IncrementInquiries("accepted")
	s.log.Info("Accepted consultation request %s", sub.Reference)

	s.publish(ctx, sub)
	return sub, nil
}

// publish runs after the submission is committed; a retry by the client
// would only store a duplicate under a new reference.
func (s *Service) publish(ctx context.Context, sub Submission) {
	for _, p := range s.publishers {
		if err := p.Submit(ctx, sub); err != nil {
			s.metrics.IncrementInquiries("publish_failed")
			s.log.Warn("Failed to publish consultation request %s: %v", sub.Reference, err)
		}
	}
}
