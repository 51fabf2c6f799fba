package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/mwantia/pathways/pkg/match"
	"github.com/mwantia/pathways/pkg/metrics"
	"github.com/mwantia/pathways/pkg/tracker"
	"github.com/mwantia/pathways/pkg/view"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, time.September, 1, 8, 0, 0, 0, time.UTC)}
}

func TestCreateStartsWithDefaults(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create(tracker.Transfer)

	sum := s.Summary()
	assert.Equal(t, s.ID(), sum.ID)
	assert.Equal(t, tracker.Transfer, sum.StudentType)
	assert.Equal(t, view.Default, sum.View)
	assert.True(t, sum.Selection.Empty())
	assert.Equal(t, match.CollegeCriteria{}, sum.Criteria)
	assert.Equal(t, 9, sum.DocumentProgress.Total)
	assert.Empty(t, sum.Drafts)
}

func TestGetAndDelete(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create(tracker.HighSchool)

	got, err := m.Get(s.ID().String())
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = m.Get("not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, m.Delete(s.ID().String()))
	_, err = m.Get(s.ID().String())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, m.Delete(s.ID().String()), ErrNotFound)
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager(time.Hour)
	a := m.Create(tracker.HighSchool)
	b := m.Create(tracker.HighSchool)

	require.NoError(t, a.Do(func(st *State) error {
		st.Selection = st.Selection.Toggle(3)
		return nil
	}))

	assert.Equal(t, []int{3}, a.Summary().Selection.IDs())
	assert.True(t, b.Summary().Selection.Empty())
}

func TestResetRestoresDefaultsButKeepsStudentType(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create(tracker.Transfer)

	require.NoError(t, s.Do(func(st *State) error {
		st.View = view.Essays
		st.Selection = st.Selection.Toggle(1).Toggle(2)
		if _, err := st.Documents.Advance(1); err != nil {
			return err
		}
		return st.Drafts.Save("common-1", "draft")
	}))

	s.Reset()

	sum := s.Summary()
	assert.Equal(t, tracker.Transfer, sum.StudentType)
	assert.Equal(t, view.Default, sum.View)
	assert.True(t, sum.Selection.Empty())
	assert.Empty(t, sum.Drafts)
	assert.Zero(t, sum.DocumentProgress.Done)
}

func TestSwitchStudentTypeReplacesTimeline(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create(tracker.HighSchool)

	require.NoError(t, s.Do(func(st *State) error {
		st.SwitchStudentType(tracker.Transfer)
		assert.Equal(t, tracker.Transfer, st.Timeline.StudentType())
		return nil
	}))
}

func TestSweepDropsIdleSessions(t *testing.T) {
	clock := newClock()
	mt := metrics.New()
	m := NewManager(30*time.Minute, WithClock(clock.Now), WithMetrics(mt))

	stale := m.Create(tracker.HighSchool)
	fresh := m.Create(tracker.HighSchool)

	clock.Advance(20 * time.Minute)
	_, err := m.Get(fresh.ID().String())
	require.NoError(t, err)

	clock.Advance(15 * time.Minute)
	assert.Equal(t, 1, m.Sweep())

	_, err = m.Get(stale.ID().String())
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = m.Get(fresh.ID().String())
	assert.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(mt.SessionsExpired))
	assert.Equal(t, 1.0, testutil.ToFloat64(mt.SessionsActive))
}

func TestRunStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	m := NewManager(time.Nanosecond)
	m.Create(tracker.HighSchool)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, time.Millisecond)

	cancel()
	<-done
}

func TestDoSerializesOperations(t *testing.T) {
	m := NewManager(time.Hour)
	s := m.Create(tracker.HighSchool)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Do(func(st *State) error {
				st.Selection = st.Selection.Toggle(1)
				return nil
			})
		}()
	}
	wg.Wait()

	assert.True(t, s.Summary().Selection.Empty(), "an even number of toggles cancels out")
}
