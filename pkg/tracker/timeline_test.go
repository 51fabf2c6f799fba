package tracker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimelineByStudentType(t *testing.T) {
	assert.Len(t, NewTimeline(HighSchool).Tasks(), 8)
	assert.Len(t, NewTimeline(Transfer).Tasks(), 7)

	st, err := ParseStudentType("")
	require.NoError(t, err)
	assert.Equal(t, HighSchool, st)

	_, err = ParseStudentType("graduate")
	assert.Error(t, err)
}

func TestToggleTask(t *testing.T) {
	tl := NewTimeline(HighSchool)

	done, err := tl.ToggleTask("essays")
	require.NoError(t, err)
	assert.True(t, done)
	assert.Equal(t, Progress{Done: 1, Total: 8, Percent: 13}, tl.Progress())

	done, err = tl.ToggleTask("essays")
	require.NoError(t, err)
	assert.False(t, done)
	assert.Equal(t, 0, tl.Progress().Percent)

	_, err = tl.ToggleTask("nope")
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestToggleSubtask(t *testing.T) {
	tl := NewTimeline(Transfer)

	done, err := tl.ToggleSubtask("transcript", "Verify GPA")
	require.NoError(t, err)
	assert.True(t, done)

	_, err = tl.ToggleSubtask("transcript", "Get course descriptions")
	require.NoError(t, err)

	tasks := tl.Tasks()
	assert.Equal(t, []string{"Verify GPA", "Get course descriptions"}, tasks[0].CompletedSubtasks)
	assert.False(t, tasks[0].Completed, "subtasks do not complete the task")

	done, err = tl.ToggleSubtask("transcript", "Verify GPA")
	require.NoError(t, err)
	assert.False(t, done)

	_, err = tl.ToggleSubtask("transcript", "Bake a cake")
	assert.ErrorIs(t, err, ErrUnknownSubtask)
	_, err = tl.ToggleSubtask("missing", "Verify GPA")
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestTimelineCategoryProgress(t *testing.T) {
	tl := NewTimeline(HighSchool)
	for _, id := range []string{"sat-prep", "research"} {
		_, err := tl.ToggleTask(id)
		require.NoError(t, err)
	}

	stats := tl.CategoryProgress()
	require.Len(t, stats, 5)
	assert.Equal(t, CategoryCompletion{Category: "research", Completed: 2, Total: 3, Percent: 67}, stats[0])
	assert.Equal(t, "essays", stats[1].Category)
	assert.Equal(t, 0, stats[1].Percent)
}
