package journal

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/julianstephens/momentum/internal/models"
)

type AddEntryMsg struct{}

type Item struct {
	Entry     models.JournalEntry
	GoalTitle string
}

func (i Item) Title() string {
	content := strings.Join(strings.Fields(i.Entry.Content), " ")
	if r := []rune(content); len(r) > 60 {
		content = string(r[:59]) + "…"
	}
	return content
}

func (i Item) Description() string {
	desc := fmt.Sprintf("%s · %s", i.Entry.Type, humanize.Time(i.Entry.CreatedAt))
	if i.GoalTitle != "" {
		desc += " · " + i.GoalTitle
	}
	return desc
}

func (i Item) FilterValue() string { return i.Entry.Content }

type KeyMap struct {
	Add key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "write"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func items(entries []models.JournalEntry, goals []models.Goal) []list.Item {
	titles := make(map[string]string, len(goals))
	for _, g := range goals {
		titles[g.ID] = g.Title
	}
	out := make([]list.Item, len(entries))
	for i, e := range entries {
		item := Item{Entry: e}
		if e.GoalID != nil {
			if t, ok := titles[*e.GoalID]; ok {
				item.GoalTitle = t
			} else {
				item.GoalTitle = "(deleted goal)"
			}
		}
		out[i] = item
	}
	return out
}

func New(entries []models.JournalEntry, goals []models.Goal, width, height int) Model {
	l := list.New(items(entries, goals), list.NewDefaultDelegate(), width, height)
	l.Title = "Journal"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add}
	}

	return Model{list: l, keys: keys}
}

func (m *Model) SetEntries(entries []models.JournalEntry, goals []models.Goal) {
	m.list.SetItems(items(entries, goals))
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		if key.Matches(msg, m.keys.Add) {
			return m, func() tea.Msg { return AddEntryMsg{} }
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && m.list.FilterState() != list.Filtering {
		return "\n  Your journal is empty.\n  Press 'a' to write an entry."
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
