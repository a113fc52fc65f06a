package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/storage"
)

// SessionModel manages the full flow: picker -> editor -> picker.
// It is the top-level model for SSH sessions and the local menu.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	opts     EditorOptions
	picker   PickerModel
	editor   *EditorModel
	quitting bool
	notice   string
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, opts EditorOptions) SessionModel {
	return SessionModel{
		store:  store,
		config: cfg,
		opts:   opts,
		picker: NewPickerModel(store, cfg),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	if m.editor != nil {
		return m.updateEditor(msg)
	}
	return m.updatePicker(msg)
}

// updatePicker handles updates while the room list is shown.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if picker, ok := next.(PickerModel); ok {
		m.picker = picker
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if selected := m.picker.Selected(); selected != nil {
		rec, err := m.store.Room(selected.ID)
		switch {
		case err != nil:
			m.notice = fmt.Sprintf("cannot open %s: %v", selected.Name, err)
		case rec == nil:
			m.notice = fmt.Sprintf("%s was deleted", selected.Name)
		default:
			m.config = m.picker.Config()
			editor := NewEditorModel(m.store, rec, m.config, m.opts)
			m.editor = &editor
			m.notice = ""
			return m, m.editor.Init()
		}
		m.picker = NewPickerModel(m.store, m.config)
		return m, nil
	}

	return m, cmd
}

// updateEditor handles updates while a room is open.
func (m SessionModel) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.editor.Update(msg)
	if editor, ok := next.(EditorModel); ok {
		m.editor = &editor
	}

	if m.editor.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.editor.BackToPicker() {
		m.editor = nil
		m.picker = NewPickerModel(m.store, m.config)
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.editor != nil {
		return m.editor.View()
	}
	if m.notice != "" {
		return m.picker.View() + "\n" + m.notice
	}
	return m.picker.View()
}

// InEditor reports whether a room is open.
func (m SessionModel) InEditor() bool {
	return m.editor != nil
}

// RunSession runs the picker and editor in the current terminal.
func RunSession(store *storage.Store, cfg core.RuntimeConfig, opts EditorOptions) error {
	p := tea.NewProgram(
		NewSessionModel(store, cfg, opts),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
