package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/momentum/internal/tui/components/goals"
	"github.com/julianstephens/momentum/internal/tui/components/insights"
	"github.com/julianstephens/momentum/internal/tui/components/journal"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil
	case insights.QuoteMsg:
		m.insightsModel, _ = m.insightsModel.Update(msg)
		return m, nil
	}

	switch m.state {
	case StateAddGoal:
		return m, m.handleAddGoalState(msg)
	case StateAddEntry:
		return m, m.handleAddEntryState(msg)
	case StateConfirmDelete, StateConfirmComplete:
		return m, m.handleConfirmationState(msg)
	}

	switch msg := msg.(type) {
	case goals.AddGoalMsg:
		return m, m.startAddGoal()
	case goals.LogGoalMsg:
		return m, m.logToday(msg.ID)
	case goals.CompleteGoalMsg:
		m.pendingGoalID = msg.ID
		m.state = StateConfirmComplete
		return m, nil
	case goals.DeleteGoalMsg:
		m.pendingGoalID = msg.ID
		m.state = StateConfirmDelete
		return m, nil
	case journal.AddEntryMsg:
		return m, m.startAddEntry()
	case insights.RefreshQuoteMsg:
		return m, m.fetchQuote()
	case tea.KeyMsg:
		if !m.filtering() {
			if handled, cmd := m.handleGlobalKeys(msg); handled {
				return m, cmd
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateGoals:
		m.goalsModel, cmd = m.goalsModel.Update(msg)
	case StateJournal:
		m.journalModel, cmd = m.journalModel.Update(msg)
	case StateInsights:
		m.insightsModel, cmd = m.insightsModel.Update(msg)
	}
	return m, cmd
}

// handleGlobalKeys handles tab switching, help and quitting.
func (m *Model) handleGlobalKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return true, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return true, nil
	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % SessionState(len(tabTitles))
		m.status = ""
		return true, nil
	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state + SessionState(len(tabTitles)) - 1) % SessionState(len(tabTitles))
		m.status = ""
		return true, nil
	}
	return false, nil
}

func (m Model) filtering() bool {
	switch m.state {
	case StateGoals:
		return m.goalsModel.Filtering()
	case StateJournal:
		return m.journalModel.Filtering()
	}
	return false
}

func (m *Model) setSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width

	// tabs, banner, status and help take roughly six lines; docStyle pads 2x4
	w, h := width-4, height-8
	if h < 0 {
		h = 0
	}
	if w < 0 {
		w = 0
	}
	m.goalsModel.SetSize(w, h)
	m.journalModel.SetSize(w, h)
	m.insightsModel.SetSize(w, h)
}
