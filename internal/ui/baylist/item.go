package baylist

import (
	"fmt"
	"strings"

	"github.com/JesperIV/TasX/internal/model"
	"github.com/JesperIV/TasX/internal/theme"
)

// renderTaskLine draws a single task row: checkbox, title, and the due
// date/time, repeat, and alert annotations when present.
func renderTaskLine(t model.Task, selected bool) string {
	checkbox := "[ ]"
	if t.Completed {
		checkbox = "[x]"
	}

	parts := []string{checkbox, t.Title}

	if t.DueDate != nil {
		due := t.DueDate.Format("Jan 02")
		if t.DueTime != "" {
			due += " " + t.DueTime
		}
		parts = append(parts, theme.DueDateStyle.Render(due))
	}

	if t.Repeat != model.RepeatNever {
		parts = append(parts, theme.RepeatStyle.Render("↻ "+string(t.Repeat)))
	}

	if t.AlertActive() {
		parts = append(parts, theme.AlertStyle.Render("♪"))
	}

	line := strings.Join(parts, " ")

	if t.Completed {
		line = theme.DimmedStyle.Render(fmt.Sprintf("%s %s", checkbox, t.Title))
	}

	if selected {
		return theme.SelectedItemStyle.Render(line)
	}
	return theme.ListItemStyle.Render(line)
}
