package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mwantia/pathways/pkg/essay"
	"github.com/mwantia/pathways/pkg/match"
	"github.com/mwantia/pathways/pkg/tracker"
	"github.com/mwantia/pathways/pkg/view"
)

// State is everything one view session owns. It is only ever touched while
// the owning Session is locked.
type State struct {
	StudentType tracker.StudentType
	View        view.View
	Criteria    match.CollegeCriteria
	Transfer    match.TransferCriteria
	Selection   match.SelectionSet
	Documents   *tracker.Documents
	Timeline    *tracker.Timeline
	Drafts      *essay.Drafts
}

func newState(student tracker.StudentType, now func() time.Time) State {
	return State{
		StudentType: student,
		View:        view.Default,
		Selection:   match.NewSelection(),
		Documents:   tracker.NewDocuments(now),
		Timeline:    tracker.NewTimeline(student),
		Drafts:      essay.NewDrafts(),
	}
}

// SwitchStudentType replaces the timeline when the student type changes.
// Completion marks of the previous timeline are dropped.
func (st *State) SwitchStudentType(student tracker.StudentType) {
	if st.StudentType == student {
		return
	}
	st.StudentType = student
	st.Timeline = tracker.NewTimeline(student)
}

// Session serializes all operations on one State.
type Session struct {
	mu      sync.Mutex
	id      uuid.UUID
	created time.Time
	now     func() time.Time
	state   State

	// guarded by Manager.mu
	lastSeen time.Time
}

func (s *Session) ID() uuid.UUID {
	return s.id
}

func (s *Session) CreatedAt() time.Time {
	return s.created
}

// Do runs fn with exclusive access to the session state. Concurrent calls on
// the same session run one after the other.
func (s *Session) Do(fn func(*State) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(&s.state)
}

// Reset restores every default while keeping the student type.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = newState(s.state.StudentType, s.now)
}

// Summary is a point-in-time view of a session.
type Summary struct {
	ID               uuid.UUID              `json:"id"`
	StudentType      tracker.StudentType    `json:"student_type"`
	View             view.View              `json:"view"`
	Criteria         match.CollegeCriteria  `json:"criteria"`
	Transfer         match.TransferCriteria `json:"transfer_criteria"`
	Selection        match.SelectionSet     `json:"selection"`
	DocumentProgress tracker.Progress       `json:"document_progress"`
	TimelineProgress tracker.Progress       `json:"timeline_progress"`
	Drafts           []string               `json:"drafts"`
	CreatedAt        time.Time              `json:"created_at"`
}

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Summary{
		ID:               s.id,
		StudentType:      s.state.StudentType,
		View:             s.state.View,
		Criteria:         s.state.Criteria.Clone(),
		Transfer:         s.state.Transfer.Clone(),
		Selection:        s.state.Selection,
		DocumentProgress: s.state.Documents.Progress(),
		TimelineProgress: s.state.Timeline.Progress(),
		Drafts:           s.state.Drafts.PromptIDs(),
		CreatedAt:        s.created,
	}
}
