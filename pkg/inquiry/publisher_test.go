package inquiry

//go:generate mockgen -source=submitter.go -destination=mocks/mocks.go -package=mocks Submitter

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mwantia/pathways/pkg/db/models"
	"github.com/mwantia/pathways/pkg/db/store"
	"github.com/mwantia/pathways/pkg/db/store/mocks"
	"github.com/mwantia/pathways/pkg/log"
	"github.com/mwantia/pathways/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twmb/franz-go/pkg/kgo"
	"go.uber.org/mock/gomock"
)

type fakeProducer struct {
	records []*kgo.Record
	err     error
	closed  bool
}

func (f *fakeProducer) ProduceSync(_ context.Context, rs ...*kgo.Record) kgo.ProduceResults {
	results := make(kgo.ProduceResults, 0, len(rs))
	for _, r := range rs {
		if f.err == nil {
			f.records = append(f.records, r)
		}
		results = append(results, kgo.ProduceResult{Record: r, Err: f.err})
	}
	return results
}

func (f *fakeProducer) Close() {
	f.closed = true
}

func TestKafkaPublisherSubmit(t *testing.T) {
	fake := &fakeProducer{}
	pub := &KafkaPublisher{client: fake, topic: "pathways.inquiries"}

	sub := Submission{Reference: uuid.New(), SessionID: "s-1", Form: validForm(), SubmittedAt: fixedNow}
	require.NoError(t, pub.Submit(context.Background(), sub))
	require.Len(t, fake.records, 1)

	record := fake.records[0]
	assert.Equal(t, "pathways.inquiries", record.Topic)
	assert.Equal(t, sub.Reference.String(), string(record.Key))
	require.Len(t, record.Headers, 1)
	assert.Equal(t, eventInquirySubmitted, string(record.Headers[0].Value))

	var decoded Submission
	require.NoError(t, json.Unmarshal(record.Value, &decoded))
	assert.Equal(t, sub.Reference, decoded.Reference)
	assert.Equal(t, sub.Form, decoded.Form)

	require.NoError(t, pub.Close())
	assert.True(t, fake.closed)
}

func TestKafkaPublisherSubmitFailure(t *testing.T) {
	boom := errors.New("broker unavailable")
	pub := &KafkaPublisher{client: &fakeProducer{err: boom}, topic: "t"}

	err := pub.Submit(context.Background(), Submission{Reference: uuid.New()})
	assert.ErrorIs(t, err, boom)
}

func TestNewKafkaPublisherRequiresBrokers(t *testing.T) {
	_, err := NewKafkaPublisher(nil, "t")
	assert.Error(t, err)
}

func TestPublishersRunAfterStoreCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockInquiryStore(ctrl)

	var stored string
	st.EXPECT().
		CreateInquiry(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *models.Inquiry) error {
			assert.Equal(t, "s-9", m.SessionID)
			stored = m.Reference
			return nil
		})

	pub := &recordingSubmitter{}
	svc := newTestService(NewStoreSubmitter(st), nil)
	svc.publishers = []Submitter{pub}

	sub, err := svc.Submit(context.Background(), validForm(), "s-9")
	require.NoError(t, err)

	assert.Equal(t, sub.Reference.String(), stored)
	require.Len(t, pub.subs, 1)
	assert.Equal(t, sub, pub.subs[0])
}

func TestStoreFailureSkipsPublishers(t *testing.T) {
	ctrl := gomock.NewController(t)
	st := mocks.NewMockInquiryStore(ctrl)

	boom := errors.New("constraint violation")
	st.EXPECT().CreateInquiry(gomock.Any(), gomock.Any()).Return(boom)

	pub := &recordingSubmitter{}
	svc := NewService(NewStoreSubmitter(st), log.Discard(), WithPublishers(pub))

	_, err := svc.Submit(context.Background(), validForm(), "")
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, pub.subs)
}

func TestPublishFailureKeepsStoredSubmission(t *testing.T) {
	ctx := context.Background()
	st, err := store.NewSQLiteStore(store.SQLiteConfig{Path: "file::memory:"})
	require.NoError(t, err)
	require.NoError(t, st.Connect(ctx))
	require.NoError(t, st.Migrate(ctx))
	t.Cleanup(func() { st.Close() })

	m := metrics.New()
	broker := &KafkaPublisher{client: &fakeProducer{err: errors.New("broker down")}, topic: "t"}
	svc := NewService(NewStoreSubmitter(st), log.Discard(), WithMetrics(m), WithPublishers(broker))

	sub, err := svc.Submit(ctx, validForm(), "")
	require.NoError(t, err)

	_, err = st.GetInquiry(ctx, sub.Reference.String())
	require.NoError(t, err)

	count, err := st.CountInquiries(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Inquiries.WithLabelValues("accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Inquiries.WithLabelValues("publish_failed")))
	assert.Zero(t, testutil.ToFloat64(m.Inquiries.WithLabelValues("failed")))
}
