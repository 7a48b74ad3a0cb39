package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// Repeat is the recurrence rule attached to a task. It is stored and
// displayed only; occurrences are never expanded.
type Repeat string

const (
	RepeatNever   Repeat = "never"
	RepeatDaily   Repeat = "daily"
	RepeatWeekly  Repeat = "weekly"
	RepeatMonthly Repeat = "monthly"
)

// Repeats lists the valid repeat values in display order.
var Repeats = []Repeat{RepeatNever, RepeatDaily, RepeatWeekly, RepeatMonthly}

// ParseRepeat maps a stored string onto a Repeat value. Unknown or empty
// input resolves to RepeatNever so that older payloads load cleanly.
func ParseRepeat(s string) Repeat {
	switch Repeat(strings.ToLower(strings.TrimSpace(s))) {
	case RepeatDaily:
		return RepeatDaily
	case RepeatWeekly:
		return RepeatWeekly
	case RepeatMonthly:
		return RepeatMonthly
	default:
		return RepeatNever
	}
}

// Validation errors returned by Task.Validate.
var (
	ErrEmptyTitle           = errors.New("task title must not be empty")
	ErrDueTimeWithoutDate   = errors.New("due time requires a due date")
	ErrInvalidDueTimeFormat = errors.New("due time must be HH:mm")
)

var dueTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Task is a single to-do record. DueDate and DueTime are independent
// optional fields; DueTime is only meaningful when DueDate is set.
type Task struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     *Date  `json:"dueDate,omitempty"`
	DueTime     string `json:"dueTime,omitempty"`
	Repeat      Repeat `json:"repeat"`
	Alert       bool   `json:"alert"`
	Completed   bool   `json:"completed"`
}

// Normalize trims the title, defaults the repeat rule, and enforces the
// field coupling: without a due date there is no due time.
func (t *Task) Normalize() {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.Repeat = ParseRepeat(string(t.Repeat))
	if t.DueDate == nil {
		t.DueTime = ""
	}
}

// Validate reports whether the task satisfies the invariants enforced at
// save time. Callers should Normalize first.
func (t Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if t.DueTime != "" {
		if t.DueDate == nil {
			return ErrDueTimeWithoutDate
		}
		if !dueTimePattern.MatchString(t.DueTime) {
			return fmt.Errorf("%w: %q", ErrInvalidDueTimeFormat, t.DueTime)
		}
	}
	return nil
}

// HasDueDate reports whether the task carries a due date.
func (t Task) HasDueDate() bool { return t.DueDate != nil }

// AlertActive reports whether the alert flag should be treated as on.
// The stored flag is inert without a due date.
func (t Task) AlertActive() bool { return t.Alert && t.DueDate != nil }
