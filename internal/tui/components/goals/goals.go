package goals

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/momentum/internal/analytics"
	"github.com/julianstephens/momentum/internal/models"
)

type AddGoalMsg struct{}

type LogGoalMsg struct {
	ID string
}

type CompleteGoalMsg struct {
	ID string
}

type DeleteGoalMsg struct {
	ID string
}

type Item struct {
	Goal    models.Goal
	Summary analytics.GoalSummary
}

func (i Item) Title() string {
	switch {
	case i.Goal.Completed:
		return "✓ " + i.Goal.Title
	case i.Summary.LoggedToday:
		return "● " + i.Goal.Title
	default:
		return "○ " + i.Goal.Title
	}
}

func (i Item) Description() string {
	if i.Goal.Completed {
		return fmt.Sprintf("%s · completed · best streak %d", i.Goal.Category, i.Summary.LongestStreak)
	}
	return fmt.Sprintf("%s · %.0f%% · 🔥 %d · due %s", i.Goal.Category, i.Summary.Percentage, i.Summary.Streak, i.Goal.Deadline)
}

func (i Item) FilterValue() string { return i.Goal.Title }

type KeyMap struct {
	Add      key.Binding
	Log      key.Binding
	Complete key.Binding
	Delete   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Log: key.NewBinding(
			key.WithKeys("l", " "),
			key.WithHelp("l", "log today"),
		),
		Complete: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "complete"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func items(goals []models.Goal, now time.Time, loc *time.Location) []list.Item {
	out := make([]list.Item, len(goals))
	for i, g := range goals {
		out[i] = Item{Goal: g, Summary: analytics.Summarize(g, now, loc)}
	}
	return out
}

func New(goals []models.Goal, now time.Time, loc *time.Location, width, height int) Model {
	l := list.New(items(goals, now, loc), list.NewDefaultDelegate(), width, height)
	l.Title = "Goals"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Log, keys.Complete, keys.Delete}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Log, keys.Complete, keys.Delete}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetGoals(goals []models.Goal, now time.Time, loc *time.Location) {
	m.list.SetItems(items(goals, now, loc))
}

// Selected returns the highlighted goal, if any.
func (m Model) Selected() (models.Goal, bool) {
	i, ok := m.list.SelectedItem().(Item)
	return i.Goal, ok
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddGoalMsg{} }
		case key.Matches(msg, m.keys.Log):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Goal.Completed {
				return m, func() tea.Msg { return LogGoalMsg{ID: i.Goal.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Complete):
			if i, ok := m.list.SelectedItem().(Item); ok && !i.Goal.Completed {
				return m, func() tea.Msg { return CompleteGoalMsg{ID: i.Goal.ID} }
			}
			return m, nil
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteGoalMsg{ID: i.Goal.ID} }
			}
			return m, nil
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  No goals yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}
