package coach

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/momentum/internal/cli"
	"github.com/julianstephens/momentum/internal/models"
)

type CoachCmd struct {
	Quote     CoachQuoteCmd     `cmd:"" help:"Get a motivational quote." default:"1"`
	Suggest   CoachSuggestCmd   `cmd:"" help:"Get goal ideas for a category."`
	Summary   CoachSummaryCmd   `cmd:"" help:"Summarize the past week of journal entries."`
	Reflect   CoachReflectCmd   `cmd:"" help:"Reflect on patterns in the last month of progress."`
	WordCloud CoachWordCloudCmd `cmd:"" name:"wordcloud" help:"Show the most frequent themes in your journal."`
}

type CoachQuoteCmd struct{}

func (c *CoachQuoteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	bg := context.Background()
	co, err := ctx.Coach(bg)
	if err != nil {
		return err
	}
	fmt.Printf("“%s”\n", co.MotivationalQuote(bg))
	return nil
}

type CoachSuggestCmd struct {
	Category string `arg:"" help:"Category to get ideas for."`
}

func (c *CoachSuggestCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	category, err := models.ParseCategory(c.Category)
	if err != nil {
		return err
	}

	bg := context.Background()
	co, err := ctx.Coach(bg)
	if err != nil {
		return err
	}

	fmt.Printf("Ideas for %s:\n", category)
	for _, idea := range co.GoalSuggestions(bg, category) {
		fmt.Printf("  - %s\n", idea)
	}
	return nil
}

type CoachSummaryCmd struct{}

func (c *CoachSummaryCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	since := ctx.Now().AddDate(0, 0, -7)
	entries, err := ctx.Store.GetJournalEntries(&since)
	if err != nil {
		return err
	}

	bg := context.Background()
	co, err := ctx.Coach(bg)
	if err != nil {
		return err
	}
	fmt.Println(co.WeeklySummary(bg, entries))
	return nil
}

type CoachReflectCmd struct{}

func (c *CoachReflectCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	goals, err := ctx.Store.GetAllGoals()
	if err != nil {
		return err
	}

	bg := context.Background()
	co, err := ctx.Coach(bg)
	if err != nil {
		return err
	}
	fmt.Println(co.ReflectionInsights(bg, goals))
	return nil
}

type CoachWordCloudCmd struct {
	Days int `help:"Only use entries from the last N days (0 for all)." default:"0"`
	Top  int `help:"Maximum number of words to show." default:"15"`
}

func (c *CoachWordCloudCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	var since *time.Time
	if c.Days > 0 {
		s := ctx.Now().AddDate(0, 0, -c.Days)
		since = &s
	}
	entries, err := ctx.Store.GetJournalEntries(since)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("Write some journal entries first to see your word cloud.")
		return nil
	}

	bg := context.Background()
	co, err := ctx.Coach(bg)
	if err != nil {
		return err
	}

	words := co.WordCloud(bg, entries)
	sort.SliceStable(words, func(i, j int) bool { return words[i].Value > words[j].Value })
	if c.Top > 0 && len(words) > c.Top {
		words = words[:c.Top]
	}

	maxValue := 0.0
	for _, w := range words {
		if w.Value > maxValue {
			maxValue = w.Value
		}
	}
	for _, w := range words {
		width := 1
		if maxValue > 0 {
			width = int(w.Value / maxValue * 30)
		}
		if width < 1 {
			width = 1
		}
		fmt.Printf("  %-20s %s %g\n", w.Text, strings.Repeat("▇", width), w.Value)
	}
	return nil
}
