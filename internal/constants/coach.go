package constants

// Static fallbacks shown when the coach cannot reach the model.
const (
	FallbackQuote            = "The journey of a thousand miles begins with a single step."
	FallbackWeeklySummary    = "There was an issue summarizing your progress, but keep up the great work!"
	FallbackReflection       = "Couldn't analyze your progress right now, but take a moment to reflect on what went well this week and what you'd like to improve."
	NoWeeklyEntriesMessage   = "No journal entries from the past week to summarize."
	NoActiveGoalsMessage     = "You have no active goals to reflect on. Add a new goal to get started!"
	NoRecentProgressMessage  = "It looks like it's been a challenging week. What's one small step you can take today to get back on track?"
	FallbackSuggestionFormat = "Read one book about %s"
	FallbackPracticeFormat   = "Practice a %s-related skill for 15 mins daily"
)

// ReflectionPrompts are offered when writing a journal entry.
var ReflectionPrompts = []string{
	"What went well today?",
	"What am I grateful for today?",
	"What's one thing I learned today?",
	"How did I move closer to my goals today?",
	"What was the biggest challenge I faced today, and how did I handle it?",
}
