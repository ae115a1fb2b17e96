package models

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/momentum/internal/calendar"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{input: "Health", want: CategoryHealth},
		{input: "learning", want: CategoryLearning},
		{input: "  HOBBY ", want: CategoryHobby},
		{input: "Sleep", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCategory(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestToggleProgress(t *testing.T) {
	day := calendar.MustParse("2024-03-15")
	g := &Goal{ID: "g1", Title: "Run"}

	added, err := g.ToggleProgress(day)
	if err != nil {
		t.Fatalf("ToggleProgress() error = %v", err)
	}
	if !added || !g.HasProgress(day) {
		t.Fatalf("expected %s to be added, progress = %v", day, g.Progress)
	}

	added, err = g.ToggleProgress(day)
	if err != nil {
		t.Fatalf("ToggleProgress() error = %v", err)
	}
	if added || g.HasProgress(day) {
		t.Fatalf("expected %s to be removed, progress = %v", day, g.Progress)
	}
}

func TestToggleProgressKeepsSetSemantics(t *testing.T) {
	g := &Goal{}
	days := []string{"2024-03-13", "2024-03-14", "2024-03-15"}
	for _, d := range days {
		if _, err := g.ToggleProgress(calendar.MustParse(d)); err != nil {
			t.Fatalf("ToggleProgress(%s) error = %v", d, err)
		}
	}
	// Remove the middle day; the others stay exactly once.
	if _, err := g.ToggleProgress(calendar.MustParse("2024-03-14")); err != nil {
		t.Fatalf("ToggleProgress() error = %v", err)
	}
	if len(g.Progress) != 2 {
		t.Fatalf("len(Progress) = %d, want 2", len(g.Progress))
	}
	if g.HasProgress(calendar.MustParse("2024-03-14")) {
		t.Error("removed day still present")
	}
}

func TestToggleProgressOnCompletedGoal(t *testing.T) {
	g := &Goal{Completed: true}
	_, err := g.ToggleProgress(calendar.MustParse("2024-03-15"))
	if !errors.Is(err, ErrGoalCompleted) {
		t.Errorf("ToggleProgress() error = %v, want ErrGoalCompleted", err)
	}
	if len(g.Progress) != 0 {
		t.Errorf("progress changed on completed goal: %v", g.Progress)
	}
}

func TestCompleteIsOneWay(t *testing.T) {
	g := &Goal{}
	at := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	if err := g.Complete(at); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if !g.Completed || g.CompletedAt == nil || !g.CompletedAt.Equal(at) {
		t.Fatalf("goal not marked complete: %+v", g)
	}
	if err := g.Complete(at.Add(time.Hour)); !errors.Is(err, ErrGoalCompleted) {
		t.Errorf("second Complete() error = %v, want ErrGoalCompleted", err)
	}
	if !g.CompletedAt.Equal(at) {
		t.Errorf("CompletedAt changed on second Complete(): %v", g.CompletedAt)
	}
}

func TestParseJournalType(t *testing.T) {
	tests := []struct {
		input   string
		want    JournalType
		wantErr bool
	}{
		{input: "", want: JournalThoughts},
		{input: "joyful", want: JournalJoyful},
		{input: "Prayer Journal", want: JournalPrayer},
		{input: "release", want: JournalReleasing},
		{input: "dreams", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseJournalType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseJournalType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseJournalType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
