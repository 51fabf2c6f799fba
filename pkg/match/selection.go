package match

import (
	"encoding/json"
	"maps"
	"slices"
)

// SelectionSet is the set of entity ids a student marked for comparison.
// It has value semantics: Toggle and Clear return a new set.
//
// Selections are deliberately not pruned when a filter change hides an
// entity; they stay until toggled off or cleared.
type SelectionSet struct {
	ids map[int]struct{}
}

// NewSelection returns a set holding ids.
func NewSelection(ids ...int) SelectionSet {
	s := SelectionSet{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

// Toggle adds id when absent and removes it when present.
func (s SelectionSet) Toggle(id int) SelectionSet {
	next := SelectionSet{ids: maps.Clone(s.ids)}
	if next.ids == nil {
		next.ids = make(map[int]struct{}, 1)
	}

	if _, ok := next.ids[id]; ok {
		delete(next.ids, id)
	} else {
		next.ids[id] = struct{}{}
	}
	return next
}

// Contains reports whether id is selected.
func (s SelectionSet) Contains(id int) bool {
	_, ok := s.ids[id]
	return ok
}

// Clear returns an empty set; s itself is left untouched.
func (s SelectionSet) Clear() SelectionSet {
	return SelectionSet{}
}

// Len returns the number of selected ids.
func (s SelectionSet) Len() int {
	return len(s.ids)
}

// Empty reports whether nothing is selected.
func (s SelectionSet) Empty() bool {
	return len(s.ids) == 0
}

// IDs returns the members in ascending order.
func (s SelectionSet) IDs() []int {
	return slices.Sorted(maps.Keys(s.ids))
}

// Equal reports whether both sets hold the same ids.
func (s SelectionSet) Equal(other SelectionSet) bool {
	if len(s.ids) != len(other.ids) {
		return false
	}
	for id := range s.ids {
		if _, ok := other.ids[id]; !ok {
			return false
		}
	}
	return true
}

func (s SelectionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *SelectionSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewSelection(ids...)
	return nil
}
