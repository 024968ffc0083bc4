package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"tradegate/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Verdict filter cycled by the ToggleView binding.
type verdictFilter int

const (
	verdictAll verdictFilter = iota
	verdictAccepted
	verdictRejected
)

var verdictNames = []string{"all", "accepted", "rejected"}

// Dashboard message types.
type decisionsMsg []domain.Decision
type decisionsErrMsg struct{ err error }
type dashTickMsg time.Time

// DashboardModel is the Bubble Tea model for the decision dashboard screen.
type DashboardModel struct {
	services  Services
	decisions []domain.Decision
	verdict   verdictFilter
	loading   bool
	err       error
	width     int
	height    int
}

// NewDashboardModel creates a new dashboard model.
func NewDashboardModel(svc Services) DashboardModel {
	return DashboardModel{
		services: svc,
		loading:  true,
	}
}

// Init fires the initial data fetch.
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(
		m.fetchDecisionsCmd(),
		m.tickCmd(),
	)
}

// Update handles incoming messages.
func (m DashboardModel) Update(msg tea.Msg) (DashboardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case decisionsMsg:
		m.decisions = []domain.Decision(msg)
		m.loading = false
		m.err = nil
		return m, nil

	case decisionsErrMsg:
		m.err = msg.err
		m.loading = false
		return m, nil

	case dashTickMsg:
		return m, tea.Batch(
			m.fetchDecisionsCmd(),
			m.tickCmd(),
		)
	}

	return m, nil
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	if m.loading && len(m.decisions) == 0 {
		return SubtextStyle.Render("Loading decisions...")
	}
	if m.err != nil && len(m.decisions) == 0 {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err))
	}

	table := m.renderDecisionTable()
	width := m.width - 2
	if width < 60 {
		width = 60
	}
	box := BorderStyle.Width(width).Render(table)

	help := SubtextStyle.Render("  v: filter (" + verdictNames[m.verdict] + ")  R: refresh  q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, box, help)
}

// SetSize updates the model dimensions.
func (m *DashboardModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// CycleVerdict advances the verdict filter and refetches.
func (m DashboardModel) CycleVerdict() (DashboardModel, tea.Cmd) {
	m.verdict = verdictFilter((int(m.verdict) + 1) % len(verdictNames))
	return m, m.fetchDecisionsCmd()
}

// Refresh triggers an immediate refetch.
func (m DashboardModel) Refresh() (DashboardModel, tea.Cmd) {
	return m, m.fetchDecisionsCmd()
}

// Decisions returns the current decisions (for testing).
func (m DashboardModel) Decisions() []domain.Decision { return m.decisions }

func (m DashboardModel) renderDecisionTable() string {
	header := HeaderStyle.Render("  Recent Decisions")
	var lines []string
	lines = append(lines, header)
	lines = append(lines, SubtextStyle.Render("  ID    Symbol  Dir   Verdict   Entry     Stop      TP1       TP2"))
	lines = append(lines, SubtextStyle.Render(strings.Repeat("─", 70)))

	count := len(m.decisions)
	if count > 15 {
		count = 15
	}
	for i := 0; i < count; i++ {
		lines = append(lines, "  "+FormatDecisionRow(m.decisions[i]))
	}

	if len(m.decisions) == 0 {
		lines = append(lines, SubtextStyle.Render("  No decisions yet"))
	}

	return strings.Join(lines, "\n")
}

// FormatDecisionRow renders one decision as a fixed-width table row.
func FormatDecisionRow(d domain.Decision) string {
	verdict := AcceptedStyle.Render("accept")
	if !d.Accepted {
		verdict = RejectedStyle.Render("reject")
	}

	direction := DirectionNoneStyle.Render("none")
	switch d.Direction {
	case domain.DirectionBuy:
		direction = DirectionBuyStyle.Render("buy ")
	case domain.DirectionSell:
		direction = DirectionSellStyle.Render("sell")
	}

	row := fmt.Sprintf("%-5d %-7s %s  %s", d.ID, d.Symbol, direction, verdict)
	if d.Levels != nil {
		row += fmt.Sprintf("  %8.2f  %8.2f  %8.2f  %8.2f",
			d.Levels.Entry, d.Levels.StopLoss, d.Levels.TakeProfit1, d.Levels.TakeProfit2)
	} else if d.Reason != "" {
		row += "  " + SubtextStyle.Render(d.Reason)
	}
	return row
}

func (m DashboardModel) fetchDecisionsCmd() tea.Cmd {
	verdict := m.verdict
	return func() tea.Msg {
		if m.services.Decisions == nil {
			return decisionsErrMsg{err: fmt.Errorf("decision service not available")}
		}
		filter := domain.DecisionFilter{Limit: 15}
		switch verdict {
		case verdictAccepted:
			accepted := true
			filter.Accepted = &accepted
		case verdictRejected:
			accepted := false
			filter.Accepted = &accepted
		}
		decisions, err := m.services.Decisions.ListDecisions(context.Background(), filter)
		if err != nil {
			return decisionsErrMsg{err: err}
		}
		return decisionsMsg(decisions)
	}
}

func (m DashboardModel) tickCmd() tea.Cmd {
	return tea.Tick(10*time.Second, func(t time.Time) tea.Msg {
		return dashTickMsg(t)
	})
}
