package insights

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/momentum/internal/analytics"
	"github.com/julianstephens/momentum/internal/models"
)

// QuoteMsg carries a quote fetched from the coach.
type QuoteMsg struct {
	Text string
}

// RefreshQuoteMsg asks the parent to fetch a new quote.
type RefreshQuoteMsg struct{}

// Averages are the check-in means shown under the stats.
type Averages struct {
	Count                       int
	Physical, Mental, Spiritual float64
}

type row struct {
	title   string
	summary analytics.GoalSummary
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	quoteStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("111"))
)

type Model struct {
	stats    analytics.Stats
	rows     []row
	averages Averages
	quote    string
	loading  bool
	bar      progress.Model
	refresh  key.Binding
	width    int
}

func New(width int) Model {
	return Model{
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(barWidth(width))),
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new quote")),
		width:   width,
		loading: true,
	}
}

func barWidth(width int) int {
	w := width / 3
	if w < 10 {
		return 10
	}
	if w > 40 {
		return 40
	}
	return w
}

// SetData recomputes stats and per-goal rows. Completed goals are skipped in
// the rows but still count toward the stats.
func (m *Model) SetData(goals []models.Goal, avg Averages, now time.Time, loc *time.Location) {
	m.stats = analytics.Aggregate(goals, now)
	m.averages = avg
	m.rows = m.rows[:0]
	for _, g := range goals {
		if g.Completed {
			continue
		}
		m.rows = append(m.rows, row{title: g.Title, summary: analytics.Summarize(g, now, loc)})
	}
}

// Quote returns the current quote, empty while loading.
func (m Model) Quote() string {
	return m.quote
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case QuoteMsg:
		m.quote = msg.Text
		m.loading = false
	case tea.KeyMsg:
		if key.Matches(msg, m.refresh) && !m.loading {
			m.loading = true
			return m, func() tea.Msg { return RefreshQuoteMsg{} }
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	if m.loading {
		b.WriteString(labelStyle.Render("Fetching today's quote…"))
	} else {
		b.WriteString(quoteStyle.Render("“" + m.quote + "”"))
	}
	b.WriteString("\n\n")

	b.WriteString(headerStyle.Render("Overview"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d days\n",
		labelStyle.Render("Goals:"), m.stats.TotalGoals,
		labelStyle.Render("Completed:"), m.stats.CompletedGoals,
		labelStyle.Render("Longest streak:"), m.stats.LongestStreak)
	if m.stats.MostConsistentGoal != "" {
		fmt.Fprintf(&b, "%s %s (%.0f%%)\n", labelStyle.Render("Most consistent:"), m.stats.MostConsistentGoal, m.stats.MaxConsistency)
	}
	if m.averages.Count > 0 {
		fmt.Fprintf(&b, "%s physical %.1f · mental %.1f · spiritual %.1f\n",
			labelStyle.Render("Check-ins (7 days):"), m.averages.Physical, m.averages.Mental, m.averages.Spiritual)
	}

	if len(m.rows) > 0 {
		b.WriteString("\n")
		b.WriteString(headerStyle.Render("Active goals"))
		b.WriteString("\n")
		for _, r := range m.rows {
			fmt.Fprintf(&b, "%-24s %s  🔥 %d\n", truncate(r.title, 24), m.bar.ViewAs(r.summary.Percentage/100), r.summary.Streak)
		}
	}

	return b.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.bar.Width = barWidth(width)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
