package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleList() []Task {
	return []Task{
		{ID: "a", Title: "Water plants", Completed: true},
		{ID: "b", Title: "Buy seeds", Completed: false},
		{ID: "c", Title: "Plant tomatoes", Completed: true},
		{ID: "d", Title: "Weed the beds", Completed: false},
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		input   string
		want    Filter
		wantErr bool
	}{
		{"all", FilterAll, false},
		{"pending", FilterPending, false},
		{"completed", FilterCompleted, false},
		{"done", "", true},
		{"", "", true},
		{"Pending", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFilter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestFilterTasks_Partitions(t *testing.T) {
	tasks := sampleList()

	all := FilterTasks(tasks, FilterAll, "")
	pending := FilterTasks(tasks, FilterPending, "")
	completed := FilterTasks(tasks, FilterCompleted, "")

	// "all" is the list unchanged in order
	require.Len(t, all, 4)
	assert.Equal(t, tasks, all)

	// "pending" is exactly the non-completed elements, order preserved
	require.Len(t, pending, 2)
	assert.Equal(t, "b", pending[0].ID)
	assert.Equal(t, "d", pending[1].ID)
	for _, task := range pending {
		assert.False(t, task.Completed)
	}

	// "completed" is exactly the completed elements, order preserved
	require.Len(t, completed, 2)
	assert.Equal(t, "a", completed[0].ID)
	assert.Equal(t, "c", completed[1].ID)
	for _, task := range completed {
		assert.True(t, task.Completed)
	}
}

func TestFilterTasks_SearchOnTitleOnly(t *testing.T) {
	tasks := sampleList()
	tasks[1].Description = "plants everywhere"

	got := FilterTasks(tasks, FilterAll, "plant")

	// Matches "Water plants" and "Plant tomatoes" but not the description hit
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestFilterTasks_CombinesFilterAndSearch(t *testing.T) {
	got := FilterTasks(sampleList(), FilterCompleted, "plant")

	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}

func TestFilterTasks_EmptyList(t *testing.T) {
	got := FilterTasks(nil, FilterPending, "x")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCountByCompletion(t *testing.T) {
	pending, completed := CountByCompletion(sampleList())

	assert.Equal(t, 2, pending)
	assert.Equal(t, 2, completed)

	pending, completed = CountByCompletion(nil)
	assert.Zero(t, pending)
	assert.Zero(t, completed)
}
