package tasks

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JesperIV/TasX/internal/model"
	"github.com/JesperIV/TasX/internal/store"
	"github.com/JesperIV/TasX/tests/testutil"
)

// TestTasksSurviveRestart runs the full round trip: edits through the
// editor flow, a store shutdown, and a fresh load from the same database.
func TestTasksSurviveRestart(t *testing.T) {
	gateway := testutil.NewTestStore(t)

	first := store.NewTaskStore(gateway, nil)
	first.Load(context.Background())
	editor := NewEditor(first, nil)

	due := model.NewDate(2024, time.March, 5)
	created, err := editor.Create(Fields{Title: "dentist", DueDate: &due, DueTime: "14:30", Alert: true})
	require.NoError(t, err)
	_, err = editor.Create(Fields{Title: "groceries"})
	require.NoError(t, err)
	editor.ToggleCompleted(created.ID)

	first.Close()

	second := store.NewTaskStore(gateway, nil)
	defer second.Close()
	second.Load(context.Background())

	all := second.GetAll()
	require.Len(t, all, 2)
	assert.Equal(t, "dentist", all[0].Title)
	assert.True(t, all[0].Completed)
	assert.Equal(t, "2024-03-05", all[0].DueDate.String())
	assert.Equal(t, "14:30", all[0].DueTime)
	assert.True(t, all[0].Alert)
	assert.Equal(t, "groceries", all[1].Title)
	assert.Nil(t, all[1].DueDate)
}
