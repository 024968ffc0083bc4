package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// AppModel is the root Bubble Tea model wrapping the decision dashboard.
type AppModel struct {
	services  Services
	dashboard DashboardModel
	width     int
	height    int
	quitting  bool
}

// NewAppModel creates the root application model.
func NewAppModel(svc Services) AppModel {
	return AppModel{
		services:  svc,
		dashboard: NewDashboardModel(svc),
	}
}

// Init initializes the dashboard.
func (m AppModel) Init() tea.Cmd {
	return m.dashboard.Init()
}

// Update handles incoming messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.dashboard.SetSize(m.width, m.height-2)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, DefaultKeyMap.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, DefaultKeyMap.ToggleView):
			var cmd tea.Cmd
			m.dashboard, cmd = m.dashboard.CycleVerdict()
			return m, cmd

		case key.Matches(msg, DefaultKeyMap.Refresh):
			var cmd tea.Cmd
			m.dashboard, cmd = m.dashboard.Refresh()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.dashboard, cmd = m.dashboard.Update(msg)
	return m, cmd
}

// View renders the title bar and dashboard.
func (m AppModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	title := "  tradegate"
	if m.services.Username != "" {
		title += " · " + m.services.Username
	}
	return lipgloss.JoinVertical(lipgloss.Left, HeaderStyle.Render(title), m.dashboard.View())
}

// SetSize updates dimensions on the root model and the dashboard.
func (m *AppModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.dashboard.SetSize(w, h-2)
}
