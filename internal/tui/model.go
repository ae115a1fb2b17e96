// Package tui is the interactive dashboard started by `momentum tui`.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/cli/checkin"
	"github.com/julianstephens/momentum/internal/coach"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/tui/components/goals"
	"github.com/julianstephens/momentum/internal/tui/components/insights"
	"github.com/julianstephens/momentum/internal/tui/components/journal"
	"github.com/julianstephens/momentum/internal/validation"
)

type SessionState int

// The first three states are the tabs, in display order.
const (
	StateGoals SessionState = iota
	StateJournal
	StateInsights
	StateAddGoal
	StateAddEntry
	StateConfirmDelete
	StateConfirmComplete
)

var tabTitles = []string{"Goals", "Journal", "Insights"}

type Model struct {
	ctx           *cli.Context
	coach         *coach.Coach
	state         SessionState
	keys          KeyMap
	help          help.Model
	goalsModel    goals.Model
	journalModel  journal.Model
	insightsModel insights.Model
	form          *huh.Form
	goalForm      *GoalFormModel
	journalForm   *JournalFormModel
	goals         []models.Goal
	pendingGoalID string // goal awaiting delete or complete confirmation
	status        string
	formError     string
	warning       string
	quitting      bool
	width         int
	height        int
}

// NewModel loads the current data from ctx.Store. The store must already be
// loaded.
func NewModel(ctx *cli.Context) Model {
	c, err := ctx.Coach(context.Background())
	if err != nil {
		logger.Warn("Coach unavailable in TUI", logger.KeyError, err)
		c = coach.New(nil, nil)
	}

	m := Model{
		ctx:           ctx,
		coach:         c,
		state:         StateGoals,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		goalsModel:    goals.New(nil, ctx.Now(), nil, 0, 0),
		journalModel:  journal.New(nil, nil, 0, 0),
		insightsModel: insights.New(0),
	}
	m.refresh()
	return m
}

// refresh reloads every view from the store.
func (m *Model) refresh() {
	today, loc, err := m.ctx.Today()
	if err != nil {
		m.status = ""
		m.formError = err.Error()
		return
	}
	now := m.ctx.Now()

	allGoals, err := m.ctx.Store.GetAllGoals()
	if err != nil {
		m.formError = fmt.Sprintf("Failed to load goals: %v", err)
		return
	}
	m.goals = allGoals
	m.goalsModel.SetGoals(allGoals, now, loc)

	entries, err := m.ctx.Store.GetAllJournalEntries()
	if err != nil {
		m.formError = fmt.Sprintf("Failed to load journal: %v", err)
		return
	}
	m.journalModel.SetEntries(entries, allGoals)

	var avg insights.Averages
	if checkIns, err := m.ctx.Store.GetCheckIns(today.AddDays(-6), today); err == nil {
		s := checkin.Averages(checkIns)
		avg = insights.Averages{Count: s.Count, Physical: s.Physical, Mental: s.Mental, Spiritual: s.Spiritual}
		m.updateValidationStatus(allGoals, entries, checkIns)
	}
	m.insightsModel.SetData(allGoals, avg, now, loc)
}

// updateValidationStatus sets the warning banner from a data integrity check.
func (m *Model) updateValidationStatus(allGoals []models.Goal, entries []models.JournalEntry, checkIns []models.CheckIn) {
	today, loc, err := m.ctx.Today()
	if err != nil {
		m.warning = "⚠ Validation unavailable"
		return
	}
	result := validation.New().Check(allGoals, entries, checkIns, today, loc)
	if result.HasConflicts() {
		m.warning = fmt.Sprintf("⚠ %d data warning(s), run 'momentum doctor' for details", len(result.Conflicts))
	} else {
		m.warning = ""
	}
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	var actions []key.Binding
	switch m.state {
	case StateGoals:
		gk := goals.DefaultKeyMap()
		actions = []key.Binding{gk.Add, gk.Log, gk.Complete, gk.Delete}
	case StateJournal:
		actions = []key.Binding{journal.DefaultKeyMap().Add}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return m.fetchQuote()
}

func (m Model) fetchQuote() tea.Cmd {
	c := m.coach
	return func() tea.Msg {
		return insights.QuoteMsg{Text: c.MotivationalQuote(context.Background())}
	}
}
