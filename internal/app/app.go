package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JesperIV/TasX/internal/keys"
	"github.com/JesperIV/TasX/internal/model"
	"github.com/JesperIV/TasX/internal/store"
	"github.com/JesperIV/TasX/internal/tasks"
	"github.com/JesperIV/TasX/internal/ui"
	"github.com/JesperIV/TasX/internal/ui/baylist"
	"github.com/JesperIV/TasX/internal/ui/taskform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewForm
)

// tasksLoadedMsg carries the persisted collection after the startup load.
type tasksLoadedMsg struct {
	tasks []model.Task
}

// taskSavedMsg is sent after a form submission has been applied.
type taskSavedMsg struct {
	err error
}

// Model is the root Bubble Tea model that manages view routing, layout,
// and access to the task store.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	store       *store.TaskStore
	editor      *tasks.Editor
	keys        *keys.KeyMap
	log         *slog.Logger

	bayList  baylist.Model
	taskForm taskform.Model

	ready bool
}

// New creates the root application model over the given store.
func New(s *store.TaskStore, cfg *model.AppConfig, log *slog.Logger) Model {
	if log == nil {
		log = slog.Default()
	}
	k := keys.DefaultKeyMap()
	editor := tasks.NewEditor(s, log)

	return Model{
		currentView: ViewList,
		layout:      ui.NewLayout(80, 24),
		store:       s,
		editor:      editor,
		keys:        k,
		log:         log,
		bayList:     baylist.New(editor, k, cfg.Display.BayOrder, 80, 22),
		taskForm:    taskform.New(80, 22),
	}
}

// Init kicks off the startup load. The list renders empty until the
// persisted collection arrives.
func (m Model) Init() tea.Cmd {
	s := m.store
	return func() tea.Msg {
		s.Load(context.Background())
		return tasksLoadedMsg{tasks: s.GetAll()}
	}
}

// Update routes messages to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.bayList.SetSize(msg.Width, m.layout.ContentHeight())
		m.taskForm.SetSize(msg.Width, m.layout.ContentHeight())
		m.ready = true
		return m, nil

	case tasksLoadedMsg:
		m.bayList.SetTasks(msg.tasks)
		return m, nil

	case baylist.TasksChangedMsg:
		m.bayList.SetTasks(m.store.GetAll())
		return m, nil

	case baylist.NewTaskMsg:
		m.currentView = ViewForm
		return m, m.taskForm.StartCreate()

	case baylist.EditTaskMsg:
		for _, t := range m.store.GetAll() {
			if t.ID == msg.ID {
				m.currentView = ViewForm
				return m, m.taskForm.StartEdit(t)
			}
		}
		// Stale reference; the task is already gone.
		return m, nil

	case taskform.TaskSubmittedMsg:
		m.currentView = ViewList
		return m, m.saveTask(msg)

	case taskform.TaskFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case taskSavedMsg:
		if msg.err != nil {
			m.log.Warn("task save rejected", "error", msg.err)
		}
		m.bayList.SetTasks(m.store.GetAll())
		return m, nil

	case tea.KeyMsg:
		if m.currentView == ViewList && !m.bayList.InModal() && key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	switch m.currentView {
	case ViewForm:
		m.taskForm, cmd = m.taskForm.Update(msg)
	default:
		m.bayList, cmd = m.bayList.Update(msg)
	}
	return m, cmd
}

// saveTask applies a form submission through the editor flow.
func (m Model) saveTask(msg taskform.TaskSubmittedMsg) tea.Cmd {
	editor := m.editor
	return func() tea.Msg {
		var err error
		if msg.EditID == "" {
			_, err = editor.Create(msg.Fields)
		} else {
			err = editor.Update(msg.EditID, msg.Fields)
		}
		return taskSavedMsg{err: err}
	}
}

// View renders the active view inside the standard frame.
func (m Model) View() string {
	if !m.ready {
		return ""
	}

	remaining := tasks.RemainingCount(m.store.GetAll())
	noun := "tasks"
	if remaining == 1 {
		noun = "task"
	}
	header := m.layout.RenderHeader("TasX", fmt.Sprintf("%d %s remaining", remaining, noun))

	var content, hints string
	switch m.currentView {
	case ViewForm:
		content = m.taskForm.View()
		hints = "tab: next field   esc: cancel"
	default:
		content = m.bayList.View()
		hints = "j/k: move   space: toggle   n: new   e: edit   d: delete   c: clear completed   b: swap bays   q: quit"
	}

	statusBar := m.layout.RenderStatusBar(hints)
	return m.layout.RenderWithFrame(header, content, statusBar)
}
