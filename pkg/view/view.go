package view

import (
	"fmt"
	"slices"
)

// View identifies the content panel a session is looking at. Any view is
// reachable from any other view.
type View string

const (
	Dashboard View = "dashboard"
	Timeline  View = "timeline"
	Match     View = "college-match"
	Documents View = "documents"
	Essays    View = "essays"
	Transfer  View = "transfer"
	Resources View = "resources"
)

// Default is the view a new session starts on.
const Default = Dashboard

var all = []View{Dashboard, Timeline, Match, Documents, Essays, Transfer, Resources}

// All returns every view in navigation order.
func All() []View {
	return slices.Clone(all)
}

func Parse(s string) (View, error) {
	v := View(s)
	if !slices.Contains(all, v) {
		return "", fmt.Errorf("unknown view '%s'", s)
	}
	return v, nil
}
