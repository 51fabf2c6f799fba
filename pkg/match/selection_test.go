package match

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwantia/pathways/pkg/catalog"
)

func TestToggleIsIdempotentUnderDoubleToggle(t *testing.T) {
	sets := []SelectionSet{{}, NewSelection(), NewSelection(1), NewSelection(1, 2, 3)}

	for _, s := range sets {
		for _, id := range []int{1, 4} {
			assert.True(t, s.Toggle(id).Toggle(id).Equal(s))
		}
	}
}

func TestToggleReturnsNewSet(t *testing.T) {
	s := NewSelection(1)
	next := s.Toggle(2)

	assert.False(t, s.Contains(2))
	assert.True(t, next.Contains(2))
	assert.Equal(t, []int{1, 2}, next.IDs())

	removed := next.Toggle(1)
	assert.Equal(t, []int{2}, removed.IDs())
	assert.True(t, removed.Clear().Empty())
}

func TestSelectionSurvivesFilterChanges(t *testing.T) {
	colleges := catalog.Colleges()
	sel := NewSelection(1, 3)

	// Stanford (1) is above this budget; it stays selected regardless.
	result := MatchColleges(colleges, CollegeCriteria{Budget: ptr(40000)}, DefaultTolerances())
	assert.NotContains(t, ids(result.Items), 1)
	assert.Equal(t, []int{1, 3}, sel.IDs())

	cmp, err := Project(colleges, sel)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, cmp.Columns)
}

func TestSelectionJSON(t *testing.T) {
	data, err := json.Marshal(NewSelection(3, 1))
	require.NoError(t, err)
	assert.JSONEq(t, `[1,3]`, string(data))

	var s SelectionSet
	require.NoError(t, json.Unmarshal([]byte(`[5,2]`), &s))
	assert.Equal(t, []int{2, 5}, s.IDs())
}
