package system

import (
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/models"
)

// DemoData returns a small set of goals and journal entries relative to now,
// so a fresh install has something to look at.
func DemoData(now time.Time, loc *time.Location) ([]models.Goal, []models.JournalEntry) {
	local := now.In(loc)
	y, m := local.Year(), local.Month()
	today := calendar.FromTime(now, loc)
	yesterday := today.AddDays(-1)
	dayBefore := today.AddDays(-2)

	run := models.Goal{
		ID:          uuid.New().String(),
		Title:       "Morning Run 5x a Week",
		Description: "Run for at least 20 minutes every morning to boost energy and fitness.",
		Category:    models.CategoryHealth,
		Deadline:    calendar.New(y, m+2, 0),
		CreatedAt:   time.Date(y, m, 1, 0, 0, 0, 0, loc),
		Progress:    []calendar.Date{dayBefore, yesterday},
	}
	learn := models.Goal{
		ID:          uuid.New().String(),
		Title:       "Learn a New Framework",
		Description: "Complete a course on a new framework to sharpen day-to-day skills.",
		Category:    models.CategoryLearning,
		Deadline:    calendar.New(y, m+1, 15),
		CreatedAt:   time.Date(y, m, 5, 0, 0, 0, 0, loc),
		Progress:    []calendar.Date{yesterday},
	}
	meditateCreated := time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	meditate := models.Goal{
		ID:          uuid.New().String(),
		Title:       "Meditate Daily",
		Description: "Practice mindfulness for 10 minutes each day.",
		Category:    models.CategorySpiritual,
		Deadline:    calendar.New(y+1, time.January, 1),
		CreatedAt:   meditateCreated,
		Completed:   true,
		CompletedAt: &now,
		Progress:    []calendar.Date{},
	}

	// A goal created on the 5th of this month would start in the future
	// during the first days of the month.
	if learn.CreatedAt.After(now) {
		learn.CreatedAt = time.Date(y, m, 1, 0, 0, 0, 0, loc)
	}
	// The same holds for the run goal's logged days on the 1st or 2nd.
	run.Progress = onOrAfter(run.Progress, calendar.FromTime(run.CreatedAt, loc))
	learn.Progress = onOrAfter(learn.Progress, calendar.FromTime(learn.CreatedAt, loc))

	entries := []models.JournalEntry{
		{
			ID:        uuid.New().String(),
			CreatedAt: now.AddDate(0, 0, -1),
			Content:   "Felt great after the morning run today. The fresh air was invigorating. Also made some good progress on the course, feeling more confident with it.",
			GoalID:    &run.ID,
			Type:      models.JournalThoughts,
		},
		{
			ID:        uuid.New().String(),
			CreatedAt: now.AddDate(0, 0, -2),
			Content:   "A bit tired today, but still managed to get my run in. Pushing through on low-energy days feels like a big win.",
			GoalID:    &run.ID,
			Type:      models.JournalReleasing,
		},
	}

	return []models.Goal{run, learn, meditate}, entries
}

// DemoConversations returns a single mentor thread ending just before now.
func DemoConversations(now time.Time) []models.Conversation {
	start := now.AddDate(0, 0, -1)
	return []models.Conversation{
		{
			ID:              uuid.New().String(),
			ParticipantName: "Your Mentor",
			CreatedAt:       start,
			Messages: []models.Message{
				{
					ID:     uuid.New().String(),
					Sender: "Mentor",
					Text:   "Hey! I was just looking at your progress on the 'Morning Run' goal. Amazing consistency this week. Keep up the fantastic work!",
					SentAt: start,
				},
				{
					ID:     uuid.New().String(),
					Sender: models.SenderYou,
					Text:   "Thanks for the encouragement! It's been tough but I'm sticking with it.",
					SentAt: now.Add(-2 * time.Minute),
				},
				{
					ID:     uuid.New().String(),
					Sender: "Mentor",
					Text:   "That's the spirit! Remember, every step forward, no matter how small, is a victory. I'm here if you hit any roadblocks.",
					SentAt: now.Add(-time.Minute),
				},
			},
		},
	}
}

func onOrAfter(days []calendar.Date, start calendar.Date) []calendar.Date {
	out := []calendar.Date{}
	for _, d := range days {
		if !d.Before(start) {
			out = append(out, d)
		}
	}
	return out
}
