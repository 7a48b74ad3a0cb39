package baylist

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JesperIV/TasX/internal/keys"
	"github.com/JesperIV/TasX/internal/model"
	"github.com/JesperIV/TasX/internal/tasks"
	"github.com/JesperIV/TasX/internal/theme"
)

// TasksChangedMsg is sent after any mutation so the app can refresh views.
type TasksChangedMsg struct{}

// NewTaskMsg requests the create-task form.
type NewTaskMsg struct{}

// EditTaskMsg requests the edit form for the task with the given id.
type EditTaskMsg struct {
	ID string
}

// modalState identifies the dialog currently covering the list, if any.
type modalState int

const (
	modalNone modalState = iota
	modalConfirmDelete
	modalConfirmClear
	modalNoCompleted
)

// Model is the bay-grouped task list view.
type Model struct {
	editor *tasks.Editor
	keys   *keys.KeyMap

	tasksAll []model.Task
	bayOrder []string
	cursor   int

	modal        modalState
	deleteTarget model.Task

	width  int
	height int
}

// New creates the list view model.
func New(editor *tasks.Editor, k *keys.KeyMap, bayOrder []string, width, height int) Model {
	if len(bayOrder) == 0 {
		bayOrder = []string{tasks.BayGeneral, tasks.BayDeadline}
	}
	return Model{
		editor:   editor,
		keys:     k,
		bayOrder: bayOrder,
		width:    width,
		height:   height,
	}
}

// SetTasks replaces the collection the view renders and clamps the cursor.
func (m *Model) SetTasks(all []model.Task) {
	m.tasksAll = all
	if n := len(m.flattened()); m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// InModal reports whether a dialog is currently covering the list.
func (m Model) InModal() bool {
	return m.modal != modalNone
}

// BayOrder returns the current bay display order.
func (m Model) BayOrder() []string {
	return m.bayOrder
}

// bays returns the derived sections in display order.
func (m Model) bays() []tasks.Bay {
	return tasks.Bays(m.tasksAll, m.bayOrder)
}

// flattened returns the visible tasks in cursor order across all bays.
func (m Model) flattened() []model.Task {
	var out []model.Task
	for _, bay := range m.bays() {
		out = append(out, bay.Tasks...)
	}
	return out
}

// cursorTask returns the task under the cursor, if any.
func (m Model) cursorTask() (model.Task, bool) {
	flat := m.flattened()
	if m.cursor < 0 || m.cursor >= len(flat) {
		return model.Task{}, false
	}
	return flat[m.cursor], true
}

// Update handles messages for the list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.modal != modalNone {
		return m.handleModalKeys(keyMsg)
	}
	return m.handleNormalKeys(keyMsg)
}

// handleModalKeys processes key input while a dialog is showing.
func (m Model) handleModalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.modal == modalNoCompleted {
		// Informational only: any key dismisses, nothing mutates.
		m.modal = modalNone
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Confirm):
		modal := m.modal
		target := m.deleteTarget
		m.modal = modalNone

		editor := m.editor
		switch modal {
		case modalConfirmDelete:
			return m, func() tea.Msg {
				editor.Delete(target.ID)
				return TasksChangedMsg{}
			}
		case modalConfirmClear:
			return m, func() tea.Msg {
				editor.ClearCompleted()
				return TasksChangedMsg{}
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Cancel):
		m.modal = modalNone
		return m, nil
	}

	return m, nil
}

// handleNormalKeys processes key input for the list itself.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.flattened())-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		task, ok := m.cursorTask()
		if !ok {
			return m, nil
		}
		editor := m.editor
		return m, func() tea.Msg {
			editor.ToggleCompleted(task.ID)
			return TasksChangedMsg{}
		}

	case key.Matches(msg, m.keys.New):
		return m, func() tea.Msg { return NewTaskMsg{} }

	case key.Matches(msg, m.keys.Edit):
		task, ok := m.cursorTask()
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg { return EditTaskMsg{ID: task.ID} }

	case key.Matches(msg, m.keys.Delete):
		task, ok := m.cursorTask()
		if !ok {
			return m, nil
		}
		m.modal = modalConfirmDelete
		m.deleteTarget = task
		return m, nil

	case key.Matches(msg, m.keys.ClearCompleted):
		if tasks.CompletedCount(m.tasksAll) == 0 {
			m.modal = modalNoCompleted
		} else {
			m.modal = modalConfirmClear
		}
		return m, nil

	case key.Matches(msg, m.keys.SwapBays):
		if len(m.bayOrder) >= 2 {
			order := make([]string, len(m.bayOrder))
			copy(order, m.bayOrder)
			order[0], order[1] = order[1], order[0]
			m.bayOrder = order
		}
		return m, nil
	}

	return m, nil
}

// View renders the bay sections, or the active dialog over a dimmed hint.
func (m Model) View() string {
	if m.modal != modalNone {
		return m.renderModal()
	}

	var sections []string
	index := 0
	for _, bay := range m.bays() {
		sections = append(sections, theme.BayTitleStyle.Render(bay.Title))
		if len(bay.Tasks) == 0 {
			sections = append(sections, theme.HelpStyle.Render("  no tasks"))
		}
		for _, t := range bay.Tasks {
			sections = append(sections, renderTaskLine(t, index == m.cursor))
			index++
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderModal draws the active confirmation or informational dialog.
func (m Model) renderModal() string {
	var title, body, hint string

	switch m.modal {
	case modalConfirmDelete:
		title = "Delete Task"
		body = fmt.Sprintf("Are you sure you want to delete %q?", m.deleteTarget.Title)
		hint = "y: delete   n: cancel"
	case modalConfirmClear:
		title = "Clear Completed Tasks"
		body = "Are you sure you want to clear all completed tasks?"
		hint = "y: clear   n: cancel"
	case modalNoCompleted:
		title = "No completed tasks"
		body = "There are no completed tasks to clear."
		hint = "press any key"
	}

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite).Render(title),
		"",
		body,
		"",
		theme.HelpStyle.Render(hint),
	)

	return lipgloss.Place(
		m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		theme.ModalStyle.Render(content),
	)
}
