// Package coach produces motivational text from goals and journal entries
// using a generative model. Every operation has a static fallback, so callers
// always get something to show; failures are only logged.
package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/julianstephens/momentum/internal/calendar"
	"github.com/julianstephens/momentum/internal/constants"
	"github.com/julianstephens/momentum/internal/logger"
	"github.com/julianstephens/momentum/internal/models"
)

var coachLog = logger.With(logger.KeyComponent, "coach")

// Word is one entry of a journal word cloud.
type Word struct {
	Text  string  `json:"text"`
	Value float64 `json:"value"`
}

type Coach struct {
	gen     Generator
	timeout time.Duration
	now     func() time.Time
	loc     *time.Location
}

// New returns a Coach using gen. A nil gen behaves like Disabled().
func New(gen Generator, loc *time.Location) *Coach {
	if gen == nil {
		gen = Disabled()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Coach{
		gen:     gen,
		timeout: constants.CoachTimeout,
		now:     time.Now,
		loc:     loc,
	}
}

func (c *Coach) generate(ctx context.Context, op, prompt string, schema *genai.Schema) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.gen.Generate(ctx, prompt, schema)
	if err != nil {
		coachLog.Warn("Coach request failed, using fallback", logger.KeyOp, op, logger.KeyError, err)
		return "", err
	}
	coachLog.Debug("Coach request succeeded", logger.KeyOp, op, "chars", len(text))
	return text, nil
}

// MotivationalQuote returns a short quote about growth or consistency.
func (c *Coach) MotivationalQuote(ctx context.Context) string {
	text, err := c.generate(ctx, "quote", quotePrompt, nil)
	if err != nil {
		return constants.FallbackQuote
	}
	quote := strings.TrimSpace(strings.NewReplacer(`"`, "", "*", "").Replace(text))
	if quote == "" {
		return constants.FallbackQuote
	}
	return quote
}

// GoalSuggestions returns three goal ideas for category.
func (c *Coach) GoalSuggestions(ctx context.Context, category models.Category) []string {
	fallback := []string{
		fmt.Sprintf(constants.FallbackSuggestionFormat, category),
		fmt.Sprintf(constants.FallbackPracticeFormat, category),
	}

	text, err := c.generate(ctx, "suggest", fmt.Sprintf(suggestionPrompt, category), suggestionSchema)
	if err != nil {
		return fallback
	}

	var ideas []string
	if err := json.Unmarshal([]byte(text), &ideas); err != nil || len(ideas) == 0 {
		coachLog.Warn("Coach returned unusable suggestions", logger.KeyError, err)
		return fallback
	}
	return ideas
}

// WeeklySummary summarizes the entries written in the last seven days.
func (c *Coach) WeeklySummary(ctx context.Context, entries []models.JournalEntry) string {
	since := c.now().AddDate(0, 0, -constants.WeeklySummaryDays)

	var lines []string
	for _, e := range entries {
		if e.CreatedAt.Before(since) {
			continue
		}
		lines = append(lines, fmt.Sprintf("[%s]: %s", e.CreatedAt.In(c.loc).Format("Mon Jan 02 2006"), e.Content))
	}
	if len(lines) == 0 {
		return constants.NoWeeklyEntriesMessage
	}

	text, err := c.generate(ctx, "summary", fmt.Sprintf(summaryPrompt, strings.Join(lines, "\n")), nil)
	if err != nil {
		return constants.FallbackWeeklySummary
	}
	return text
}

type reflectionGoal struct {
	Title          string   `json:"title"`
	DatesCompleted []string `json:"dates_completed"`
	GoalStartDate  string   `json:"goal_start_date"`
}

// reflectionData collects each active goal's progress over the last month.
func (c *Coach) reflectionData(goals []models.Goal) []reflectionGoal {
	cutoff := calendar.FromTime(c.now().AddDate(0, -constants.ReflectionWindowMonth, 0), c.loc)

	data := []reflectionGoal{}
	for _, g := range goals {
		if g.Completed {
			continue
		}
		recent := []string{}
		for _, d := range calendar.Sorted(g.Progress) {
			if d.After(cutoff) {
				recent = append(recent, d.String())
			}
		}
		data = append(data, reflectionGoal{
			Title:          g.Title,
			DatesCompleted: recent,
			GoalStartDate:  calendar.FromTime(g.CreatedAt, c.loc).String(),
		})
	}
	return data
}

// ReflectionInsights points out a pattern in the last month of progress on
// active goals and asks a reflection question.
func (c *Coach) ReflectionInsights(ctx context.Context, goals []models.Goal) string {
	data := c.reflectionData(goals)
	if len(data) == 0 {
		return constants.NoActiveGoalsMessage
	}

	anyProgress := false
	for _, g := range data {
		if len(g.DatesCompleted) > 0 {
			anyProgress = true
			break
		}
	}
	if !anyProgress {
		return constants.NoRecentProgressMessage
	}

	payload, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return constants.FallbackReflection
	}

	text, err := c.generate(ctx, "reflect", fmt.Sprintf(reflectionPrompt, payload), nil)
	if err != nil {
		return constants.FallbackReflection
	}
	return text
}

// FallbackWords is returned when the word cloud cannot be generated.
var FallbackWords = []Word{
	{Text: "growth", Value: 3},
	{Text: "challenge", Value: 2},
	{Text: "progress", Value: 5},
}

func fallbackWords() []Word {
	return append([]Word(nil), FallbackWords...)
}

// WordCloud extracts the most meaningful keywords from entries with their
// frequencies. No entries yields an empty cloud.
func (c *Coach) WordCloud(ctx context.Context, entries []models.JournalEntry) []Word {
	if len(entries) == 0 {
		return []Word{}
	}

	contents := make([]string, len(entries))
	for i, e := range entries {
		contents[i] = e.Content
	}

	text, err := c.generate(ctx, "wordcloud", fmt.Sprintf(wordCloudPrompt, strings.Join(contents, "\n")), wordCloudSchema)
	if err != nil {
		return fallbackWords()
	}

	var words []Word
	if err := json.Unmarshal([]byte(text), &words); err != nil {
		coachLog.Warn("Coach returned an unparseable word cloud", logger.KeyError, err)
		return fallbackWords()
	}
	return words
}
