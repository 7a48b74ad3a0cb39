package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JesperIV/TasX/internal/model"
)

func datePtr(year int, month time.Month, day int) *model.Date {
	d := model.NewDate(year, month, day)
	return &d
}

func TestBays_Partition(t *testing.T) {
	all := []model.Task{
		{ID: "1", Title: "march", DueDate: datePtr(2024, time.March, 5)},
		{ID: "2", Title: "january", DueDate: datePtr(2024, time.January, 10)},
		{ID: "3", Title: "undated"},
	}

	bays := Bays(all, nil)

	require.Len(t, bays, 2)
	assert.Equal(t, "General Tasks", bays[0].Title)
	assert.Equal(t, "Deadline Tasks", bays[1].Title)

	require.Len(t, bays[0].Tasks, 1)
	assert.Equal(t, "undated", bays[0].Tasks[0].Title)

	// Dated tasks sorted ascending by due date.
	require.Len(t, bays[1].Tasks, 2)
	assert.Equal(t, "january", bays[1].Tasks[0].Title)
	assert.Equal(t, "march", bays[1].Tasks[1].Title)
}

func TestBays_CustomOrder(t *testing.T) {
	bays := Bays(nil, []string{BayDeadline, BayGeneral})

	require.Len(t, bays, 2)
	assert.Equal(t, BayDeadline, bays[0].Key)
	assert.Equal(t, BayGeneral, bays[1].Key)
}

func TestBays_UnknownKeysSkippedMissingAppended(t *testing.T) {
	bays := Bays(nil, []string{"mystery", BayDeadline})

	require.Len(t, bays, 2)
	assert.Equal(t, BayDeadline, bays[0].Key)
	assert.Equal(t, BayGeneral, bays[1].Key)
}

func TestDeadline_StableForEqualDates(t *testing.T) {
	same := datePtr(2024, time.June, 1)
	all := []model.Task{
		{ID: "1", Title: "first", DueDate: same},
		{ID: "2", Title: "second", DueDate: same},
		{ID: "3", Title: "third", DueDate: same},
	}

	got := Deadline(all)

	require.Len(t, got, 3)
	assert.Equal(t, "first", got[0].Title)
	assert.Equal(t, "second", got[1].Title)
	assert.Equal(t, "third", got[2].Title)
}

func TestDeadline_IgnoresDueTimeInOrdering(t *testing.T) {
	same := datePtr(2024, time.June, 1)
	all := []model.Task{
		{ID: "1", Title: "late time", DueDate: same, DueTime: "23:00"},
		{ID: "2", Title: "early time", DueDate: same, DueTime: "01:00"},
	}

	got := Deadline(all)

	// Date-only ordering: insertion order wins for equal dates.
	assert.Equal(t, "late time", got[0].Title)
	assert.Equal(t, "early time", got[1].Title)
}

func TestCounts(t *testing.T) {
	all := []model.Task{
		{ID: "1", Completed: false},
		{ID: "2", Completed: false},
		{ID: "3", Completed: true},
	}

	assert.Equal(t, 2, RemainingCount(all))
	assert.Equal(t, 1, CompletedCount(all))
	assert.Equal(t, 0, RemainingCount(nil))
	assert.Equal(t, 0, CompletedCount(nil))
}

func TestDerivationDoesNotMutateInput(t *testing.T) {
	all := []model.Task{
		{ID: "1", Title: "b", DueDate: datePtr(2024, time.March, 5)},
		{ID: "2", Title: "a", DueDate: datePtr(2024, time.January, 10)},
	}

	Deadline(all)

	assert.Equal(t, "b", all[0].Title)
	assert.Equal(t, "a", all[1].Title)
}
