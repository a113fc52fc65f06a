package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/roomplan/internal/core"
	"github.com/vovakirdan/roomplan/internal/storage"
)

// PickerKeyMap defines the key bindings for the room picker.
type PickerKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Select  key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Refresh, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.Refresh, k.Quit},
	}
}

// DefaultPickerKeyMap returns default key bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PickerModel is the Bubble Tea model for choosing a room to edit.
type PickerModel struct {
	store    *storage.Store
	rooms    []storage.RoomSummary
	err      error
	table    table.Model
	help     help.Model
	keys     PickerKeyMap
	config   core.RuntimeConfig
	quitting bool
	selected *storage.RoomSummary
}

// NewPickerModel creates a picker listing every stored room.
func NewPickerModel(store *storage.Store, cfg core.RuntimeConfig) PickerModel {
	h := help.New()
	h.ShowAll = false

	m := PickerModel{
		store:  store,
		keys:   DefaultPickerKeyMap(),
		help:   h,
		config: cfg,
	}
	m.table = m.createTable()
	m.loadRooms()
	return m
}

// createTable creates the room table sized to the terminal.
func (m *PickerModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Shape", Width: 24},
		{Title: "Items", Width: 5},
		{Title: "Door", Width: 4},
		{Title: "Ver", Width: 4},
		{Title: "Updated", Width: 12},
	}

	// Give the name column whatever is left
	used := 0
	for _, c := range columns[1:] {
		used += c.Width + 2
	}
	if rest := m.config.ScreenW - 8 - used; rest > columns[0].Width {
		columns[0].Width = min(rest, 40)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.config.ScreenH-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRooms reloads the room list from the store.
func (m *PickerModel) loadRooms() {
	m.rooms, m.err = nil, nil
	if m.store != nil {
		m.rooms, m.err = m.store.ListRooms()
	}

	rows := make([]table.Row, len(m.rooms))
	for i, r := range m.rooms {
		door := ""
		if r.HasDoor {
			door = "yes"
		}
		rows[i] = table.Row{
			r.Name,
			r.Shape,
			fmt.Sprintf("%d", r.Placements),
			door,
			fmt.Sprintf("%d", r.Version),
			r.UpdatedAt.Local().Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the picker.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Refresh):
			m.loadRooms()
			return m, nil

		case key.Matches(msg, m.keys.Select):
			if i := m.table.Cursor(); i >= 0 && i < len(m.rooms) {
				room := m.rooms[i]
				m.selected = &room
				return m, tea.Quit
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.table = m.createTable()
		m.loadRooms()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting || m.selected != nil {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("R O O M S", m.config.ScreenW)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString(boxStyle.Render(errStyle.Render("Cannot list rooms: " + m.err.Error())))
	case len(m.rooms) == 0:
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		b.WriteString(boxStyle.Render(emptyStyle.Render("No rooms yet.\nImport one with: roomplan import <file.yaml>")))
	default:
		b.WriteString(boxStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the chosen room, or nil.
func (m PickerModel) Selected() *storage.RoomSummary {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m PickerModel) IsQuitting() bool {
	return m.quitting
}

// Config returns the current runtime config (may have been updated by resize).
func (m PickerModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	if len(text) >= width {
		return text
	}
	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
