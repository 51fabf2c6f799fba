package tracker

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrUnknownDocument is returned for ids the tracker does not hold.
var ErrUnknownDocument = errors.New("unknown document")

// DateLayout formats submission stamps the way they are shown to students.
const DateLayout = "Jan 2"

// Document is one application document tracked for a student.
type Document struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Status        Status   `json:"status"`
	Deadline      string   `json:"deadline"`
	Notes         string   `json:"notes"`
	RequiredFor   []string `json:"required_for"`
	DateSubmitted string   `json:"date_submitted,omitempty"`
}

func (d Document) clone() Document {
	d.RequiredFor = slices.Clone(d.RequiredFor)
	return d
}

// Progress counts finished items: sent documents or completed tasks.
type Progress struct {
	Done    int `json:"done"`
	Total   int `json:"total"`
	Percent int `json:"percent"`
}

// CategoryProgress is the Progress of a single category.
type CategoryProgress struct {
	Category Category `json:"category"`
	Label    string   `json:"label"`
	Progress
}

// Documents tracks the document list of one session. It is not safe for
// concurrent use; the owning session serializes access.
type Documents struct {
	items []Document
	now   func() time.Time
}

// NewDocuments returns a tracker seeded with the default document list.
func NewDocuments(now func() time.Time) *Documents {
	return NewDocumentsFrom(defaultDocuments(), now)
}

// NewDocumentsFrom returns a tracker over a copy of items.
func NewDocumentsFrom(items []Document, now func() time.Time) *Documents {
	if now == nil {
		now = time.Now
	}

	d := &Documents{items: make([]Document, len(items)), now: now}
	for i, item := range items {
		d.items[i] = item.clone()
	}
	return d
}

// All returns every document in list order.
func (d *Documents) All() []Document {
	return d.Filter("", "")
}

// Filter returns documents matching status and category; an empty value matches all.
func (d *Documents) Filter(status Status, category Category) []Document {
	out := make([]Document, 0, len(d.items))
	for _, doc := range d.items {
		if status != "" && doc.Status != status {
			continue
		}
		if category != "" && doc.Category != category {
			continue
		}
		out = append(out, doc.clone())
	}
	return out
}

// Advance moves the document to its next status. Reaching sent stamps the submission date.
func (d *Documents) Advance(id int) (Document, error) {
	i := d.index(id)
	if i < 0 {
		return Document{}, fmt.Errorf("%w: %d", ErrUnknownDocument, id)
	}

	doc := &d.items[i]
	doc.Status = doc.Status.Advance()
	if doc.Status == StatusSent {
		doc.DateSubmitted = d.now().Format(DateLayout)
	}
	return doc.clone(), nil
}

func (d *Documents) Delete(id int) error {
	i := d.index(id)
	if i < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownDocument, id)
	}
	d.items = slices.Delete(d.items, i, i+1)
	return nil
}

// Progress reports the share of documents already sent.
func (d *Documents) Progress() Progress {
	sent := 0
	for _, doc := range d.items {
		if doc.Status == StatusSent {
			sent++
		}
	}
	return Progress{Done: sent, Total: len(d.items), Percent: Percent(sent, len(d.items))}
}

// CategoryProgress reports progress per category in order of first appearance.
func (d *Documents) CategoryProgress() []CategoryProgress {
	var out []CategoryProgress
	for _, doc := range d.items {
		i := slices.IndexFunc(out, func(cp CategoryProgress) bool { return cp.Category == doc.Category })
		if i < 0 {
			out = append(out, CategoryProgress{Category: doc.Category, Label: doc.Category.Label()})
			i = len(out) - 1
		}
		out[i].Total++
		if doc.Status == StatusSent {
			out[i].Done++
		}
	}

	for i := range out {
		out[i].Percent = Percent(out[i].Done, out[i].Total)
	}
	return out
}

func (d *Documents) index(id int) int {
	return slices.IndexFunc(d.items, func(doc Document) bool { return doc.ID == id })
}

func defaultDocuments() []Document {
	return []Document{
		{
			ID: 1, Name: "Official Transcripts", Category: CategoryTranscripts, Status: StatusSubmitted,
			Deadline: "Dec 1", Notes: "Requested from school registrar",
			RequiredFor: []string{"MIT", "Stanford", "Harvard", "Duke"}, DateSubmitted: "Oct 15",
		},
		{
			ID: 2, Name: "SAT Scores", Category: CategoryTestScores, Status: StatusSent,
			Deadline: "Dec 1", Notes: "Score: 1520 - Sent to 5 colleges",
			RequiredFor: []string{"MIT", "Stanford", "Harvard", "Duke", "Northwestern"},
		},
		{
			ID: 3, Name: "ACT Scores", Category: CategoryTestScores, Status: StatusPending,
			Deadline: "Dec 15", Notes: "Waiting for test results from Nov 5 test",
			RequiredFor: []string{"Michigan", "Yale"},
		},
		{
			ID: 4, Name: "Teacher Recommendation - Math", Category: CategoryRecommendations, Status: StatusPending,
			Deadline: "Dec 1", Notes: "Mr. Johnson - Senior AP Calculus teacher",
			RequiredFor: []string{"MIT", "Stanford", "Harvard", "Duke", "Northwestern"},
		},
		{
			ID: 5, Name: "Teacher Recommendation - English", Category: CategoryRecommendations, Status: StatusPending,
			Deadline: "Dec 1", Notes: "Ms. Williams - Junior year English Honors",
			RequiredFor: []string{"MIT", "Stanford", "Harvard", "Duke", "Northwestern"},
		},
		{
			ID: 6, Name: "Counselor Recommendation", Category: CategoryRecommendations, Status: StatusInProgress,
			Deadline: "Dec 1", Notes: "Ms. Davis - College Counselor (70% complete)",
			RequiredFor: []string{"All"},
		},
		{
			ID: 7, Name: "FAFSA - Free Application for Federal Student Aid", Category: CategoryFinancial, Status: StatusInProgress,
			Deadline: "Dec 15", Notes: "75% complete - Waiting for tax documents",
			RequiredFor: []string{"All"}, DateSubmitted: "Oct 30",
		},
		{
			ID: 8, Name: "CSS Profile", Category: CategoryFinancial, Status: StatusPending,
			Deadline: "Jan 1", Notes: "Required for select colleges only",
			RequiredFor: []string{"Harvard", "Stanford", "Duke"},
		},
		{
			ID: 9, Name: "AP Score Reports", Category: CategoryTranscripts, Status: StatusPending,
			Deadline: "Dec 10", Notes: "Request official reports from College Board",
			RequiredFor: []string{"MIT", "Stanford"},
		},
	}
}
