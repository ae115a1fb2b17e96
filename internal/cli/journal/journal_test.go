package journal

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
)

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func setupTestDB(t *testing.T) *cli.Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &cli.Context{
		Store: store,
		Clock: func() time.Time { return testNow },
	}
}

func TestJournalAddCmd(t *testing.T) {
	ctx := setupTestDB(t)
	goal := models.Goal{
		ID:        "g1",
		Title:     "Run",
		Category:  models.CategoryHealth,
		Deadline:  calendar.MustParse("2024-04-01"),
		CreatedAt: testNow,
	}
	if err := ctx.Store.AddGoal(goal); err != nil {
		t.Fatalf("AddGoal failed: %v", err)
	}

	cmd := &JournalAddCmd{Content: "  Felt great after the run  ", Type: "joyful", Goal: "run"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("journal add failed: %v", err)
	}

	entries, err := ctx.Store.GetAllJournalEntries()
	if err != nil {
		t.Fatalf("GetAllJournalEntries failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Content != "Felt great after the run" || e.Type != models.JournalJoyful {
		t.Errorf("entry = %+v", e)
	}
	if e.GoalID == nil || *e.GoalID != "g1" {
		t.Errorf("goal link = %v, want g1", e.GoalID)
	}
}

func TestJournalAddCmdErrors(t *testing.T) {
	ctx := setupTestDB(t)

	tests := []struct {
		name string
		cmd  JournalAddCmd
	}{
		{name: "empty content", cmd: JournalAddCmd{Content: "   "}},
		{name: "bad type", cmd: JournalAddCmd{Content: "hi", Type: "dreams"}},
		{name: "unknown goal", cmd: JournalAddCmd{Content: "hi", Goal: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestJournalListCmdSurvivesDeletedGoal(t *testing.T) {
	ctx := setupTestDB(t)
	deleted := "gone"
	if err := ctx.Store.AddJournalEntry(models.JournalEntry{
		ID: "j1", CreatedAt: testNow.Add(-time.Hour), Content: "line one\nline two", Type: models.JournalPrayer, GoalID: &deleted,
	}); err != nil {
		t.Fatalf("AddJournalEntry failed: %v", err)
	}

	cache := map[string]string{}
	if got := goalTitle(ctx, cache, deleted); got != "(deleted goal)" {
		t.Errorf("goalTitle() = %q, want (deleted goal)", got)
	}

	for _, cmd := range []JournalListCmd{{Days: 7}, {Days: 0, Type: "prayer"}, {Type: "joyful"}} {
		if err := cmd.Run(ctx); err != nil {
			t.Errorf("journal list %+v failed: %v", cmd, err)
		}
	}
	if err := (&JournalListCmd{Type: "bogus"}).Run(ctx); err == nil {
		t.Error("expected error for unknown type filter")
	}
}

func TestJournalPromptCmd(t *testing.T) {
	if err := (&JournalPromptCmd{}).Run(setupTestDB(t)); err != nil {
		t.Errorf("journal prompt failed: %v", err)
	}
}
