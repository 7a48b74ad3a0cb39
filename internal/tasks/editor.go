package tasks

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/JesperIV/TasX/internal/model"
	"github.com/JesperIV/TasX/internal/store"
)

// Fields holds the editable attributes of a task. ID and Completed are
// owned by the editor and the store, never set through Fields.
type Fields struct {
	Title       string
	Description string
	DueDate     *model.Date
	DueTime     string
	Repeat      model.Repeat
	Alert       bool
}

// Editor translates single-task intents into full-collection replacements
// on the task store. It is the only producer of task ids.
type Editor struct {
	store *store.TaskStore
	log   *slog.Logger
}

// NewEditor creates an Editor over the given store.
func NewEditor(s *store.TaskStore, log *slog.Logger) *Editor {
	if log == nil {
		log = slog.Default()
	}
	return &Editor{store: s, log: log}
}

// apply builds the task carrying the given fields. The zero Task gets a
// normalized copy of the fields; invariants are checked before any
// collection change.
func (f Fields) apply(t model.Task) (model.Task, error) {
	t.Title = f.Title
	t.Description = f.Description
	t.DueDate = f.DueDate
	t.DueTime = f.DueTime
	t.Repeat = f.Repeat
	t.Alert = f.Alert

	t.Normalize()
	if err := t.Validate(); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// Create validates the fields, mints a fresh id, and appends the new task.
// On validation failure the collection is left unchanged.
func (e *Editor) Create(f Fields) (model.Task, error) {
	task, err := f.apply(model.Task{})
	if err != nil {
		return model.Task{}, err
	}
	task.ID = uuid.NewString()
	task.Completed = false

	e.store.Mutate(func(current []model.Task) ([]model.Task, bool) {
		return append(current, task), true
	})
	return task, nil
}

// Update replaces the editable fields of the task matching id, preserving
// its id and completion state. An unknown id is a stale-view caller error
// and is ignored with a warning.
func (e *Editor) Update(id string, f Fields) error {
	var applyErr error
	found := false

	e.store.Mutate(func(current []model.Task) ([]model.Task, bool) {
		for i, t := range current {
			if t.ID != id {
				continue
			}
			found = true
			updated, err := f.apply(t)
			if err != nil {
				applyErr = err
				return nil, false
			}
			current[i] = updated
			return current, true
		}
		return nil, false
	})

	if applyErr != nil {
		return applyErr
	}
	if !found {
		e.log.Warn("update for unknown task id", "id", id)
	}
	return nil
}

// ToggleCompleted flips the completion flag on exactly the task matching
// id. An unknown id is a no-op.
func (e *Editor) ToggleCompleted(id string) {
	e.store.Mutate(func(current []model.Task) ([]model.Task, bool) {
		for i, t := range current {
			if t.ID == id {
				current[i].Completed = !t.Completed
				return current, true
			}
		}
		return nil, false
	})
}

// Delete removes exactly the task matching id. Deleting an unknown id
// leaves the collection unchanged.
func (e *Editor) Delete(id string) {
	e.store.Mutate(func(current []model.Task) ([]model.Task, bool) {
		for i, t := range current {
			if t.ID == id {
				return append(current[:i], current[i+1:]...), true
			}
		}
		return nil, false
	})
}

// ClearCompleted removes every completed task and returns how many were
// removed. With nothing completed it performs no mutation at all.
func (e *Editor) ClearCompleted() int {
	removed := 0

	e.store.Mutate(func(current []model.Task) ([]model.Task, bool) {
		remaining := current[:0]
		for _, t := range current {
			if !t.Completed {
				remaining = append(remaining, t)
			}
		}

		removed = len(current) - len(remaining)
		if removed == 0 {
			return nil, false
		}
		return remaining, true
	})

	return removed
}
