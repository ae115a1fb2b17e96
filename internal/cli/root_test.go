package cli

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"google.golang.org/genai"

	"github.com/julianstephens/momentum/internal/backup"
	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/models"
	"github.com/julianstephens/momentum/internal/notifier"
	"github.com/julianstephens/momentum/internal/storage"
	"github.com/julianstephens/momentum/internal/storage/sqlite"
)

var testNow = time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)

type stubNotifier struct {
	err      error
	messages []string
}

func (s *stubNotifier) Notify(_ context.Context, text string) error {
	s.messages = append(s.messages, text)
	return s.err
}

type stubGenerator struct{ text string }

func (s stubGenerator) Generate(context.Context, string, *genai.Schema) (string, error) {
	return s.text, nil
}

func setupContext(t *testing.T) *Context {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return &Context{Store: store, Clock: func() time.Time { return testNow }}
}

func addGoal(t *testing.T, ctx *Context, id, title string) {
	t.Helper()
	err := ctx.Store.AddGoal(models.Goal{
		ID:        id,
		Title:     title,
		Category:  models.CategoryHealth,
		Deadline:  calendar.MustParse("2024-06-01"),
		CreatedAt: testNow,
	})
	if err != nil {
		t.Fatalf("AddGoal() error = %v", err)
	}
}

func TestTodayUsesConfiguredTimezone(t *testing.T) {
	ctx := setupContext(t)
	settings := models.DefaultSettings()
	settings.Timezone = "Asia/Tokyo"
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	today, loc, err := ctx.Today()
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if loc.String() != "Asia/Tokyo" {
		t.Errorf("location = %s", loc)
	}
	// 23:30 UTC is already the next morning in Tokyo.
	if want := calendar.MustParse("2024-03-16"); today != want {
		t.Errorf("Today() = %s, want %s", today, want)
	}
}

func TestResolveGoal(t *testing.T) {
	ctx := setupContext(t)
	addGoal(t, ctx, "a1b2c3", "Run a 5k")
	addGoal(t, ctx, "d4e5f6", "Read")
	addGoal(t, ctx, "d4ffff", "Read")

	tests := []struct {
		name    string
		ref     string
		wantID  string
		wantErr bool
		notFnd  bool
	}{
		{name: "by id", ref: "a1b2c3", wantID: "a1b2c3"},
		{name: "by title ignoring case", ref: "  run A 5K ", wantID: "a1b2c3"},
		{name: "by id prefix", ref: "a1b", wantID: "a1b2c3"},
		{name: "ambiguous title", ref: "read", wantErr: true},
		{name: "ambiguous prefix", ref: "d4", wantErr: true},
		{name: "unique prefix", ref: "d4e", wantID: "d4e5f6"},
		{name: "empty", ref: " ", wantErr: true},
		{name: "missing", ref: "swim", wantErr: true, notFnd: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ctx.ResolveGoal(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ResolveGoal(%q) = %s, want error", tt.ref, got.ID)
				}
				if tt.notFnd && !errors.Is(err, storage.ErrNotFound) {
					t.Errorf("error = %v, want ErrNotFound", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ResolveGoal(%q) error = %v", tt.ref, err)
			}
			if got.ID != tt.wantID {
				t.Errorf("ResolveGoal(%q) = %s, want %s", tt.ref, got.ID, tt.wantID)
			}
		})
	}
}

func TestCelebrate(t *testing.T) {
	t.Run("sends message", func(t *testing.T) {
		ctx := setupContext(t)
		n := &stubNotifier{}
		ctx.Notifier = n

		ctx.Celebrate(context.Background(), "Run", 3)
		if len(n.messages) != 1 || n.messages[0] != notifier.CelebrationMessage("Run", 3) {
			t.Errorf("messages = %v", n.messages)
		}
	})

	t.Run("respects settings", func(t *testing.T) {
		ctx := setupContext(t)
		settings := models.DefaultSettings()
		settings.NotificationsEnabled = false
		if err := ctx.Store.SaveSettings(settings); err != nil {
			t.Fatal(err)
		}
		n := &stubNotifier{}
		ctx.Notifier = n

		ctx.Celebrate(context.Background(), "Run", 3)
		if len(n.messages) != 0 {
			t.Errorf("notification sent while disabled: %v", n.messages)
		}
	})

	t.Run("tray not running is ignored", func(t *testing.T) {
		ctx := setupContext(t)
		ctx.Notifier = &stubNotifier{err: notifier.ErrTrayNotRunning}
		ctx.Celebrate(context.Background(), "Run", 1)
	})

	t.Run("nil notifier", func(t *testing.T) {
		ctx := setupContext(t)
		ctx.Celebrate(context.Background(), "Run", 1)
	})
}

func TestCoachUsesGenerator(t *testing.T) {
	ctx := setupContext(t)
	ctx.Generator = stubGenerator{text: `"Keep going."`}

	c, err := ctx.Coach(context.Background())
	if err != nil {
		t.Fatalf("Coach() error = %v", err)
	}
	if got := c.MotivationalQuote(context.Background()); got != "Keep going." {
		t.Errorf("MotivationalQuote() = %q", got)
	}
}

func TestCoachDisabledInSettings(t *testing.T) {
	ctx := setupContext(t)
	settings := models.DefaultSettings()
	settings.CoachEnabled = false
	if err := ctx.Store.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	c, err := ctx.Coach(context.Background())
	if err != nil {
		t.Fatalf("Coach() error = %v", err)
	}
	if got := c.MotivationalQuote(context.Background()); strings.TrimSpace(got) == "" {
		t.Error("disabled coach should fall back to a quote")
	}
}

func TestPerformAutomaticBackup(t *testing.T) {
	ctx := setupContext(t)
	ctx.PerformAutomaticBackup()

	backups, err := backup.NewManager(ctx.Store.GetConfigPath()).ListBackups()
	if err != nil {
		t.Fatalf("ListBackups() error = %v", err)
	}
	if len(backups) != 1 {
		t.Errorf("found %d backups, want 1", len(backups))
	}
}
