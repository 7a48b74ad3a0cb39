package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JesperIV/TasX/internal/model"
)

func newTestGateway(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func (s *SQLiteStore) putSlot(t *testing.T, payload string) {
	t.Helper()

	_, err := s.db.Exec(
		"INSERT INTO slots (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		TasksKey, payload,
	)
	require.NoError(t, err)
}

func TestLoadTasks_EmptyWhenSlotMissing(t *testing.T) {
	s := newTestGateway(t)

	tasks, err := s.LoadTasks(context.Background())

	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	s := newTestGateway(t)
	ctx := context.Background()
	due := model.NewDate(2024, time.March, 5)

	in := []model.Task{
		{ID: "1", Title: "plain", Repeat: model.RepeatNever},
		{ID: "2", Title: "dated", DueDate: &due, DueTime: "14:30", Repeat: model.RepeatWeekly, Alert: true},
		{ID: "3", Title: "done", Repeat: model.RepeatNever, Completed: true},
	}

	require.NoError(t, s.SaveTasks(ctx, in))

	out, err := s.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestSaveLoad_Idempotent(t *testing.T) {
	s := newTestGateway(t)
	ctx := context.Background()
	due := model.NewDate(2024, time.January, 10)

	in := []model.Task{{ID: "1", Title: "a", DueDate: &due, Repeat: model.RepeatDaily}}
	require.NoError(t, s.SaveTasks(ctx, in))

	first, err := s.LoadTasks(ctx)
	require.NoError(t, err)

	// Saving what was just loaded reproduces the same stored state.
	require.NoError(t, s.SaveTasks(ctx, first))

	second, err := s.LoadTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSaveTasks_OverwritesPriorValue(t *testing.T) {
	s := newTestGateway(t)
	ctx := context.Background()

	require.NoError(t, s.SaveTasks(ctx, []model.Task{{ID: "1", Title: "old", Repeat: model.RepeatNever}}))
	require.NoError(t, s.SaveTasks(ctx, []model.Task{{ID: "2", Title: "new", Repeat: model.RepeatNever}}))

	out, err := s.LoadTasks(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "new", out[0].Title)
}

func TestLoadTasks_LegacyBareArray(t *testing.T) {
	s := newTestGateway(t)
	s.putSlot(t, `[{"id":"1","title":"from v0","dueDate":"2024-01-10","repeat":"daily","alert":true,"completed":false}]`)

	out, err := s.LoadTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "from v0", out[0].Title)
	assert.Equal(t, "2024-01-10", out[0].DueDate.String())
	assert.Equal(t, model.RepeatDaily, out[0].Repeat)
}

func TestLoadTasks_MalformedPayloadLoadsEmpty(t *testing.T) {
	s := newTestGateway(t)
	s.putSlot(t, `{"version": 1, "tasks": [{`)

	out, err := s.LoadTasks(context.Background())

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLoadTasks_UnknownFutureVersionLoadsEmpty(t *testing.T) {
	s := newTestGateway(t)
	s.putSlot(t, `{"version": 99, "tasks": [{"id":"1","title":"future"}]}`)

	out, err := s.LoadTasks(context.Background())

	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLoadTasks_UnknownFieldsIgnored(t *testing.T) {
	s := newTestGateway(t)
	s.putSlot(t, `{"version":1,"tasks":[{"id":"1","title":"a","repeat":"never","alert":false,"completed":false,"color":"red"}]}`)

	out, err := s.LoadTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "a", out[0].Title)
}

func TestLoadTasks_NormalizesStoredTasks(t *testing.T) {
	s := newTestGateway(t)
	// A payload with a due time but no due date: the coupling is restored
	// on load.
	s.putSlot(t, `{"version":1,"tasks":[{"id":"1","title":"a","dueTime":"14:30","repeat":"","alert":false,"completed":false}]}`)

	out, err := s.LoadTasks(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Empty(t, out[0].DueTime)
	assert.Equal(t, model.RepeatNever, out[0].Repeat)
}
