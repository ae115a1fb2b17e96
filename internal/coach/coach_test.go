package coach

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/models"
)

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
	schemas  []*genai.Schema
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)
	if _, ok := ctx.Deadline(); !ok {
		return "", errors.New("no deadline on context")
	}
	return f.response, f.err
}

var testNow = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestCoach(gen Generator) *Coach {
	c := New(gen, time.UTC)
	c.now = func() time.Time { return testNow }
	return c
}

func failing() *fakeGenerator {
	return &fakeGenerator{err: errors.New("boom")}
}

func TestMotivationalQuote(t *testing.T) {
	ctx := context.Background()

	gen := &fakeGenerator{response: `  "Small steps, *every* day."  `}
	if got := newTestCoach(gen).MotivationalQuote(ctx); got != "Small steps, every day." {
		t.Errorf("MotivationalQuote() = %q", got)
	}
	if gen.schemas[0] != nil {
		t.Error("quote should request plain text")
	}

	if got := newTestCoach(failing()).MotivationalQuote(ctx); got != constants.FallbackQuote {
		t.Errorf("fallback = %q", got)
	}
	if got := newTestCoach(&fakeGenerator{response: `"**"`}).MotivationalQuote(ctx); got != constants.FallbackQuote {
		t.Errorf("empty quote after cleanup = %q, want fallback", got)
	}
}

func TestDisabledCoachUsesFallbacks(t *testing.T) {
	c := New(nil, nil)
	if got := c.MotivationalQuote(context.Background()); got != constants.FallbackQuote {
		t.Errorf("MotivationalQuote() = %q, want fallback", got)
	}
}

func TestGoalSuggestions(t *testing.T) {
	ctx := context.Background()

	gen := &fakeGenerator{response: `["Walk 10k steps", "Sleep by 11pm", "Drink water"]`}
	got := newTestCoach(gen).GoalSuggestions(ctx, models.CategoryHealth)
	want := []string{"Walk 10k steps", "Sleep by 11pm", "Drink water"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GoalSuggestions() mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(gen.prompts[0], `"Health"`) {
		t.Errorf("prompt missing category: %q", gen.prompts[0])
	}
	if gen.schemas[0] == nil || gen.schemas[0].Type != genai.TypeArray {
		t.Error("suggestions should request a JSON array")
	}

	fallback := []string{"Read one book about Learning", "Practice a Learning-related skill for 15 mins daily"}
	for name, gen := range map[string]*fakeGenerator{
		"error":    failing(),
		"bad json": {response: "not json"},
	} {
		t.Run(name, func(t *testing.T) {
			got := newTestCoach(gen).GoalSuggestions(ctx, models.CategoryLearning)
			if diff := cmp.Diff(fallback, got); diff != "" {
				t.Errorf("fallback mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestWeeklySummary(t *testing.T) {
	ctx := context.Background()
	entries := []models.JournalEntry{
		{Content: "Ran 5k", CreatedAt: testNow.AddDate(0, 0, -1)},
		{Content: "Too old", CreatedAt: testNow.AddDate(0, 0, -10)},
	}

	t.Run("no recent entries skips the model", func(t *testing.T) {
		gen := &fakeGenerator{response: "unused"}
		got := newTestCoach(gen).WeeklySummary(ctx, entries[1:])
		if got != constants.NoWeeklyEntriesMessage {
			t.Errorf("WeeklySummary() = %q", got)
		}
		if len(gen.prompts) != 0 {
			t.Error("model called with no entries")
		}
	})

	t.Run("recent entries are summarized", func(t *testing.T) {
		gen := &fakeGenerator{response: "Great week!"}
		if got := newTestCoach(gen).WeeklySummary(ctx, entries); got != "Great week!" {
			t.Errorf("WeeklySummary() = %q", got)
		}
		if !strings.Contains(gen.prompts[0], "[Thu Mar 14 2024]: Ran 5k") {
			t.Errorf("prompt missing dated entry: %q", gen.prompts[0])
		}
		if strings.Contains(gen.prompts[0], "Too old") {
			t.Error("prompt includes entry older than a week")
		}
	})

	t.Run("failure falls back", func(t *testing.T) {
		if got := newTestCoach(failing()).WeeklySummary(ctx, entries); got != constants.FallbackWeeklySummary {
			t.Errorf("WeeklySummary() = %q", got)
		}
	})
}

func TestReflectionInsights(t *testing.T) {
	ctx := context.Background()
	recent := calendar.FromTime(testNow, time.UTC).AddDays(-3)
	old := calendar.FromTime(testNow, time.UTC).AddDays(-60)
	created := testNow.AddDate(0, -3, 0)

	tests := []struct {
		name      string
		goals     []models.Goal
		gen       *fakeGenerator
		want      string
		wantCalls int
	}{
		{
			name:  "no goals",
			gen:   &fakeGenerator{response: "unused"},
			want:  constants.NoActiveGoalsMessage,
			goals: nil,
		},
		{
			name:  "only completed goals",
			gen:   &fakeGenerator{response: "unused"},
			want:  constants.NoActiveGoalsMessage,
			goals: []models.Goal{{Title: "Done", Completed: true, Progress: []calendar.Date{recent}}},
		},
		{
			name:  "no progress in the last month",
			gen:   &fakeGenerator{response: "unused"},
			want:  constants.NoRecentProgressMessage,
			goals: []models.Goal{{Title: "Run", CreatedAt: created, Progress: []calendar.Date{old}}},
		},
		{
			name:      "model answer",
			gen:       &fakeGenerator{response: "Mondays look tricky."},
			want:      "Mondays look tricky.",
			wantCalls: 1,
			goals:     []models.Goal{{Title: "Run", CreatedAt: created, Progress: []calendar.Date{old, recent}}},
		},
		{
			name:      "model failure",
			gen:       failing(),
			want:      constants.FallbackReflection,
			wantCalls: 1,
			goals:     []models.Goal{{Title: "Run", CreatedAt: created, Progress: []calendar.Date{recent}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newTestCoach(tt.gen).ReflectionInsights(ctx, tt.goals); got != tt.want {
				t.Errorf("ReflectionInsights() = %q, want %q", got, tt.want)
			}
			if len(tt.gen.prompts) != tt.wantCalls {
				t.Fatalf("model called %d times, want %d", len(tt.gen.prompts), tt.wantCalls)
			}
		})
	}
}

func TestReflectionPromptOnlyCarriesLastMonth(t *testing.T) {
	recent := calendar.MustParse("2024-03-12")
	old := calendar.MustParse("2024-01-10")
	gen := &fakeGenerator{response: "ok"}
	newTestCoach(gen).ReflectionInsights(context.Background(), []models.Goal{
		{Title: "Run", CreatedAt: testNow.AddDate(0, -3, 0), Progress: []calendar.Date{old, recent}},
	})

	prompt := gen.prompts[0]
	if !strings.Contains(prompt, `"2024-03-12"`) || strings.Contains(prompt, "2024-01-10") {
		t.Errorf("prompt has wrong dates: %s", prompt)
	}
	if !strings.Contains(prompt, `"goal_start_date": "2023-12-15"`) {
		t.Errorf("prompt missing start date: %s", prompt)
	}
}

func TestWordCloud(t *testing.T) {
	ctx := context.Background()
	entries := []models.JournalEntry{{Content: "growth mindset"}, {Content: "growth again"}}

	if got := newTestCoach(failing()).WordCloud(ctx, nil); len(got) != 0 || got == nil {
		t.Errorf("WordCloud(nil) = %#v, want empty non-nil slice", got)
	}

	gen := &fakeGenerator{response: `[{"text":"growth","value":2},{"text":"mindset","value":1}]`}
	got := newTestCoach(gen).WordCloud(ctx, entries)
	want := []Word{{Text: "growth", Value: 2}, {Text: "mindset", Value: 1}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("WordCloud() mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(gen.prompts[0], "growth mindset\ngrowth again") {
		t.Errorf("prompt missing entries: %q", gen.prompts[0])
	}

	for name, gen := range map[string]*fakeGenerator{
		"error":    failing(),
		"bad json": {response: "{"},
	} {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(FallbackWords, newTestCoach(gen).WordCloud(ctx, entries)); diff != "" {
				t.Errorf("fallback mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGeminiGenerator(context.Background(), "", ""); !errors.Is(err, ErrDisabled) {
		t.Errorf("NewGeminiGenerator(\"\") error = %v, want ErrDisabled", err)
	}
}
