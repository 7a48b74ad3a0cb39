package taskform

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/JesperIV/TasX/internal/model"
	"github.com/JesperIV/TasX/internal/tasks"
	"github.com/JesperIV/TasX/internal/theme"
)

// TaskSubmittedMsg is dispatched when the form is completed. EditID is
// empty for a newly created task.
type TaskSubmittedMsg struct {
	EditID string
	Fields tasks.Fields
}

// TaskFormCancelMsg is dispatched when the user cancels the form.
type TaskFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	title       string
	description string
	dueDate     string
	dueTime     string
	repeat      string
	alert       bool
}

// Model is the Bubble Tea model for the task create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a new task form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{repeat: string(model.RepeatNever)},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new task.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = ""
	m.fb.title = ""
	m.fb.description = ""
	m.fb.dueDate = ""
	m.fb.dueTime = ""
	m.fb.repeat = string(model.RepeatNever)
	m.fb.alert = false
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing task.
func (m *Model) StartEdit(task model.Task) tea.Cmd {
	m.editMode = true
	m.editID = task.ID
	m.fb.title = task.Title
	m.fb.description = task.Description
	if task.DueDate != nil {
		m.fb.dueDate = task.DueDate.String()
	} else {
		m.fb.dueDate = ""
	}
	m.fb.dueTime = task.DueTime
	m.fb.repeat = string(task.Repeat)
	m.fb.alert = task.Alert
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the task form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return TaskFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the task form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Task"
	if m.editMode {
		titleText = "Edit Task"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	repeatOpts := make([]huh.Option[string], len(model.Repeats))
	for i, r := range model.Repeats {
		repeatOpts[i] = huh.NewOption(repeatLabel(r), string(r))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Placeholder("What needs to be done?").
				Value(&m.fb.title).
				Validate(validateRequired("Title")),
			huh.NewText().
				Title("Description").
				Placeholder("Optional details...").
				Value(&m.fb.description),
			huh.NewInput().
				Title("Due Date").
				Placeholder("YYYY-MM-DD (optional)").
				Value(&m.fb.dueDate).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Due Time").
				Placeholder("HH:mm (needs a due date)").
				Value(&m.fb.dueTime).
				Validate(validateOptionalTime),
			huh.NewSelect[string]().
				Title("Repeat").
				Options(repeatOpts...).
				Value(&m.fb.repeat),
			huh.NewConfirm().
				Title("Alert").
				Description("Only active with a due date").
				Value(&m.fb.alert),
		),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

// handleSubmit converts the bindings into editor fields. The due date /
// due time coupling is normalized here: a time without a date is dropped.
func (m Model) handleSubmit() tea.Cmd {
	f := tasks.Fields{
		Title:       m.fb.title,
		Description: m.fb.description,
		DueTime:     strings.TrimSpace(m.fb.dueTime),
		Repeat:      model.ParseRepeat(m.fb.repeat),
		Alert:       m.fb.alert,
	}

	if d := strings.TrimSpace(m.fb.dueDate); d != "" {
		if parsed, err := model.ParseDate(d); err == nil {
			f.DueDate = &parsed
		}
	}
	if f.DueDate == nil {
		f.DueTime = ""
		f.Alert = false
	}

	editID := m.editID
	if !m.editMode {
		editID = ""
	}
	return func() tea.Msg { return TaskSubmittedMsg{EditID: editID, Fields: f} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// repeatLabel returns the display label for a repeat value.
func repeatLabel(r model.Repeat) string {
	switch r {
	case model.RepeatDaily:
		return "Daily"
	case model.RepeatWeekly:
		return "Weekly"
	case model.RepeatMonthly:
		return "Monthly"
	default:
		return "Never"
	}
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	_, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}
	return nil
}

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validateOptionalTime(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !timePattern.MatchString(s) {
		return fmt.Errorf("invalid time format, use HH:mm")
	}
	return nil
}
