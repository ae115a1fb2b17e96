package tui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"google.golang.org/genai"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
	"github.com/julianstephens/momentum/internal/tui/components/goals"
	"github.com/julianstephens/momentum/internal/tui/components/insights"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

type stubGenerator struct{}

func (stubGenerator) Generate(context.Context, string, *genai.Schema) (string, error) {
	return "Small steps every day.", nil
}

type recordingNotifier struct {
	messages []string
}

func (r *recordingNotifier) Notify(_ context.Context, text string) error {
	r.messages = append(r.messages, text)
	return nil
}

func setupModel(t *testing.T) (Model, *cli.Context, *recordingNotifier) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	settings := models.DefaultSettings()
	settings.Timezone = "UTC"
	if err := store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}
	goal := models.Goal{
		ID:        "g1",
		Title:     "Run",
		Category:  models.CategoryHealth,
		Deadline:  calendar.MustParse("2024-04-15"),
		CreatedAt: testNow.AddDate(0, 0, -5),
		Progress:  []calendar.Date{calendar.MustParse("2024-03-13"), calendar.MustParse("2024-03-14")},
	}
	if err := store.AddGoal(goal); err != nil {
		t.Fatal(err)
	}

	n := &recordingNotifier{}
	ctx := &cli.Context{
		Store:     store,
		Notifier:  n,
		Generator: stubGenerator{},
		Clock:     func() time.Time { return testNow },
	}
	m := NewModel(ctx)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model), ctx, n
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitFetchesQuote(t *testing.T) {
	m, _, _ := setupModel(t)

	cmd := m.Init()
	if cmd == nil {
		t.Fatal("Init() returned no command")
	}
	msg, ok := cmd().(insights.QuoteMsg)
	if !ok {
		t.Fatalf("Init() command produced %T, want QuoteMsg", msg)
	}
	m, _ = send(t, m, msg)
	if got := m.insightsModel.Quote(); got != "Small steps every day." {
		t.Errorf("quote = %q", got)
	}
}

func TestTabCyclesViews(t *testing.T) {
	m, _, _ := setupModel(t)

	want := []SessionState{StateJournal, StateInsights, StateGoals}
	for _, w := range want {
		m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
		if m.state != w {
			t.Fatalf("state = %d, want %d", m.state, w)
		}
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.state != StateInsights {
		t.Errorf("shift+tab from goals = %d, want insights", m.state)
	}
	if !strings.Contains(m.View(), "Insights") {
		t.Error("view missing tab titles")
	}
}

func TestLogTodayTogglesAndCelebrates(t *testing.T) {
	m, ctx, n := setupModel(t)
	today := calendar.MustParse("2024-03-15")

	m, cmd := send(t, m, goals.LogGoalMsg{ID: "g1"})
	got, _ := ctx.Store.GetGoal("g1")
	if !got.HasProgress(today) {
		t.Fatalf("progress after log = %v", got.Progress)
	}
	if !strings.Contains(m.status, "streak: 3") {
		t.Errorf("status = %q", m.status)
	}
	if cmd == nil {
		t.Fatal("expected a celebration command")
	}
	cmd()
	if len(n.messages) != 1 || !strings.Contains(n.messages[0], "3 days in a row") {
		t.Errorf("celebrations = %v", n.messages)
	}

	m, cmd = send(t, m, goals.LogGoalMsg{ID: "g1"})
	got, _ = ctx.Store.GetGoal("g1")
	if got.HasProgress(today) {
		t.Errorf("second log should remove today, got %v", got.Progress)
	}
	if cmd != nil {
		t.Error("removing progress should not celebrate")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	m, ctx, _ := setupModel(t)

	m, _ = send(t, m, goals.DeleteGoalMsg{ID: "g1"})
	if m.state != StateConfirmDelete {
		t.Fatalf("state = %d, want confirm delete", m.state)
	}
	if !strings.Contains(m.View(), `Delete "Run"`) {
		t.Error("confirmation does not name the goal")
	}

	m, _ = send(t, m, keyRunes("n"))
	if m.state != StateGoals {
		t.Errorf("state after n = %d", m.state)
	}
	if _, err := ctx.Store.GetGoal("g1"); err != nil {
		t.Fatalf("goal deleted after declining: %v", err)
	}

	m, _ = send(t, m, goals.DeleteGoalMsg{ID: "g1"})
	m, _ = send(t, m, keyRunes("y"))
	if _, err := ctx.Store.GetGoal("g1"); err == nil {
		t.Error("goal still present after confirming delete")
	}
	if len(m.goals) != 0 {
		t.Errorf("view still lists %d goals", len(m.goals))
	}
}

func TestCompleteGoal(t *testing.T) {
	m, ctx, _ := setupModel(t)

	m, _ = send(t, m, goals.CompleteGoalMsg{ID: "g1"})
	if m.state != StateConfirmComplete {
		t.Fatalf("state = %d, want confirm complete", m.state)
	}
	m, _ = send(t, m, keyRunes("y"))

	got, _ := ctx.Store.GetGoal("g1")
	if !got.Completed || got.CompletedAt == nil || !got.CompletedAt.Equal(testNow) {
		t.Errorf("goal not completed: %+v", got)
	}

	// Logging a completed goal is refused.
	m, _ = send(t, m, goals.LogGoalMsg{ID: "g1"})
	if m.formError == "" {
		t.Error("expected an error logging a completed goal")
	}
}

func TestAddGoalFormCancel(t *testing.T) {
	m, _, _ := setupModel(t)

	m, _ = send(t, m, goals.AddGoalMsg{})
	if m.state != StateAddGoal || m.form == nil {
		t.Fatalf("state = %d, want add goal form", m.state)
	}
	if m.goalForm.Deadline != "2024-04-15" {
		t.Errorf("default deadline = %q", m.goalForm.Deadline)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.state != StateGoals {
		t.Errorf("state after esc = %d", m.state)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := setupModel(t)

	m, cmd := send(t, m, keyRunes("q"))
	if !m.quitting || cmd == nil {
		t.Fatal("q did not quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("command is not tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}
