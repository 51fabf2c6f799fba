package inquiry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/pathways/pkg/db/store"
	"github.com/mwantia/pathways/pkg/log"
	"github.com/mwantia/pathways/pkg/metrics"
	"github.com/mwantia/pathways/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSubmitter struct {
	subs []Submission
	err  error
}

func (r *recordingSubmitter) Submit(_ context.Context, sub Submission) error {
	if r.err != nil {
		return r.err
	}
	r.subs = append(r.subs, sub)
	return nil
}

var fixedNow = time.Date(2026, time.October, 1, 9, 30, 0, 0, time.UTC)

func newTestService(sub Submitter, m *metrics.Metrics) *Service {
	return NewService(sub, log.Discard(), WithMetrics(m), WithClock(func() time.Time { return fixedNow }))
}

func TestSubmitAcceptsValidForm(t *testing.T) {
	rec := &recordingSubmitter{}
	m := metrics.New()
	svc := newTestService(rec, m)

	form := validForm()
	form.Email = "  MAYA.CHEN@example.com"
	form.StudentGrade = "GAP-YEAR"

	sub, err := svc.Submit(context.Background(), form, "session-42")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, sub.Reference)
	assert.Equal(t, "session-42", sub.SessionID)
	assert.Equal(t, fixedNow, sub.SubmittedAt)
	assert.Equal(t, "maya.chen@example.com", sub.Form.Email)
	assert.Equal(t, string(GradeGapYear), sub.Form.StudentGrade)
	require.Len(t, rec.subs, 1)
	assert.Equal(t, sub, rec.subs[0])
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Inquiries.WithLabelValues("accepted")))
}

func TestSubmitRejectsInvalidFormWithoutSubmitting(t *testing.T) {
	rec := &recordingSubmitter{}
	m := metrics.New()
	svc := newTestService(rec, m)

	_, err := svc.Submit(context.Background(), Form{FirstName: "Maya"}, "")
	require.Error(t, err)

	assert.True(t, validation.Is(err))
	assert.Empty(t, rec.subs)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Inquiries.WithLabelValues("rejected")))
}

func TestSubmitWrapsSubmitterFailure(t *testing.T) {
	boom := errors.New("disk full")
	svc := newTestService(&recordingSubmitter{err: boom}, nil)

	_, err := svc.Submit(context.Background(), validForm(), "")
	assert.ErrorIs(t, err, boom)
	assert.False(t, validation.Is(err))
}

func TestStoreSubmitterRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := store.NewSQLiteStore(store.SQLiteConfig{Path: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, st.Connect(ctx))
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { st.Close() })

	svc := newTestService(NewStoreSubmitter(st), nil)
	sub, err := svc.Submit(ctx, validForm(), "session-7")
	require.NoError(t, err)

	row, err := st.GetInquiry(ctx, sub.Reference.String())
	require.NoError(t, err)

	restored, err := FromModel(*row)
	require.NoError(t, err)
	assert.Equal(t, sub.Reference, restored.Reference)
	assert.Equal(t, sub.Form, restored.Form)
	assert.Equal(t, "session-7", restored.SessionID)
	assert.True(t, sub.SubmittedAt.Equal(restored.SubmittedAt))
}

func TestLogSubmitter(t *testing.T) {
	assert.NoError(t, NewLogSubmitter(log.Discard()).Submit(context.Background(), Submission{Reference: uuid.New()}))
}
