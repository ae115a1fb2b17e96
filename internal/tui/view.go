package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateGoals:
		content = docStyle.Render(m.goalsModel.View())
	case StateJournal:
		content = docStyle.Render(m.journalModel.View())
	case StateInsights:
		content = docStyle.Render(m.insightsModel.View())
	case StateAddGoal, StateAddEntry:
		content = docStyle.Render(m.form.View())
	case StateConfirmDelete:
		content = m.viewConfirm(dangerStyle.Render(fmt.Sprintf("Delete %q and all of its progress?", m.pendingTitle())))
	case StateConfirmComplete:
		content = m.viewConfirm(warningStyle.Render(fmt.Sprintf("Mark %q as completed? This cannot be undone.", m.pendingTitle())))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		m.viewBanner(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewBanner() string {
	if m.warning == "" {
		return ""
	}
	return warningStyle.Render(m.warning)
}

func (m Model) viewStatus() string {
	if m.formError != "" {
		return errorStyle.Render("Error: " + m.formError)
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

func (m Model) viewConfirm(question string) string {
	return lipgloss.Place(m.width, max(m.height-6, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			question,
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func (m Model) pendingTitle() string {
	for _, g := range m.goals {
		if g.ID == m.pendingGoalID {
			return g.Title
		}
	}
	return m.pendingGoalID
}
