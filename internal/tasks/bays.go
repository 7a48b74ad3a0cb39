package tasks

import (
	"sort"

	"github.com/JesperIV/TasX/internal/model"
)

// Bay keys, stable identifiers for the two list sections.
const (
	BayGeneral  = "general"
	BayDeadline = "deadline"
)

// Bay is a named, filtered subset of the task collection shown as one
// section of the list view.
type Bay struct {
	Key   string
	Title string
	Tasks []model.Task
}

// General returns the tasks without a due date, in insertion order.
func General(all []model.Task) []model.Task {
	var out []model.Task
	for _, t := range all {
		if !t.HasDueDate() {
			out = append(out, t)
		}
	}
	return out
}

// Deadline returns the tasks with a due date, sorted ascending by date.
// The sort is stable: equal dates keep their original relative order, and
// the time-of-day field does not participate in ordering.
func Deadline(all []model.Task) []model.Task {
	var out []model.Task
	for _, t := range all {
		if t.HasDueDate() {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.Before(*out[j].DueDate)
	})
	return out
}

// Bays partitions the collection into its display sections, ordered by the
// given bay keys. Unknown keys are skipped; keys absent from order are
// appended in their default position.
func Bays(all []model.Task, order []string) []Bay {
	build := func(key string) (Bay, bool) {
		switch key {
		case BayGeneral:
			return Bay{Key: BayGeneral, Title: "General Tasks", Tasks: General(all)}, true
		case BayDeadline:
			return Bay{Key: BayDeadline, Title: "Deadline Tasks", Tasks: Deadline(all)}, true
		}
		return Bay{}, false
	}

	seen := map[string]bool{}
	var out []Bay
	for _, key := range order {
		if seen[key] {
			continue
		}
		if bay, ok := build(key); ok {
			out = append(out, bay)
			seen[key] = true
		}
	}
	for _, key := range []string{BayGeneral, BayDeadline} {
		if !seen[key] {
			bay, _ := build(key)
			out = append(out, bay)
		}
	}
	return out
}

// RemainingCount returns how many tasks are not completed.
func RemainingCount(all []model.Task) int {
	n := 0
	for _, t := range all {
		if !t.Completed {
			n++
		}
	}
	return n
}

// CompletedCount returns how many tasks are completed.
func CompletedCount(all []model.Task) int {
	return len(all) - RemainingCount(all)
}
