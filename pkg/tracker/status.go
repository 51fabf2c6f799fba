package tracker

import (
	"fmt"
	"slices"
)

// Status is the position of a document in its submission cycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusSubmitted  Status = "submitted"
	StatusSent       Status = "sent"
)

var statusCycle = []Status{StatusPending, StatusInProgress, StatusSubmitted, StatusSent}

// Statuses returns the cycle in order.
func Statuses() []Status {
	return slices.Clone(statusCycle)
}

// Advance returns the next status of the cycle; sent wraps around to pending.
// Unknown statuses restart the cycle at pending.
func (s Status) Advance() Status {
	i := slices.Index(statusCycle, s)
	if i < 0 {
		return StatusPending
	}
	return statusCycle[(i+1)%len(statusCycle)]
}

func (s Status) Valid() bool {
	return slices.Contains(statusCycle, s)
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", fmt.Errorf("unknown document status '%s'", s)
	}
	return status, nil
}

// Category groups documents in the tracker.
type Category string

const (
	CategoryTranscripts     Category = "transcripts"
	CategoryTestScores      Category = "test-scores"
	CategoryRecommendations Category = "recommendations"
	CategoryFinancial       Category = "financial"
	CategoryOther           Category = "other"
)

var categories = []Category{
	CategoryTranscripts, CategoryTestScores, CategoryRecommendations, CategoryFinancial, CategoryOther,
}

func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !slices.Contains(categories, c) {
		return "", fmt.Errorf("unknown document category '%s'", s)
	}
	return c, nil
}

// Label is the display name of the category.
func (c Category) Label() string {
	switch c {
	case CategoryTranscripts:
		return "Transcripts"
	case CategoryTestScores:
		return "Test Scores"
	case CategoryRecommendations:
		return "Recommendations"
	case CategoryFinancial:
		return "Financial Aid"
	}
	return "Other"
}

// Percent rounds part/total to a whole percentage; an empty total is 0%.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return (part*200 + total) / (total * 2)
}
